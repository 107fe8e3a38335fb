package registry

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/example/pin-gallery/internal/kv"
)

const pngDataURL = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg=="

func newTestRegistry() (*Registry, kv.Store) {
	backing := kv.NewMemoryStore()
	return New(backing, zap.NewNop()), backing
}

func TestLoad_EmptyWhenNeverWritten(t *testing.T) {
	reg, _ := newTestRegistry()

	imgs, err := reg.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(imgs) != 0 {
		t.Fatalf("expected empty registry, got %d", len(imgs))
	}
}

func TestUpload_StoresImageDataURL(t *testing.T) {
	reg, _ := newTestRegistry()

	img, stored, err := reg.Upload(context.Background(), pngDataURL)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !stored {
		t.Fatal("expected image to be stored")
	}
	if img.ID == "" {
		t.Fatal("expected generated id")
	}
	if img.Data != pngDataURL {
		t.Fatalf("data changed: %q", img.Data)
	}

	imgs, _ := reg.Load(context.Background())
	if len(imgs) != 1 || imgs[0].ID != img.ID {
		t.Fatalf("expected the uploaded image, got %+v", imgs)
	}
}

func TestUpload_AppendsInOrder(t *testing.T) {
	reg, _ := newTestRegistry()

	first, _, _ := reg.Upload(context.Background(), pngDataURL)
	second, _, _ := reg.Upload(context.Background(), "data:image/jpeg;base64,/9j/4AAQ")

	imgs, _ := reg.Load(context.Background())
	if len(imgs) != 2 {
		t.Fatalf("expected 2 images, got %d", len(imgs))
	}
	if imgs[0].ID != first.ID || imgs[1].ID != second.ID {
		t.Fatal("upload order not preserved")
	}
}

func TestUpload_NonImagePayloadIsSilentNoOp(t *testing.T) {
	reg, backing := newTestRegistry()
	if _, stored, _ := reg.Upload(context.Background(), pngDataURL); !stored {
		t.Fatal("seed upload failed")
	}
	before, _, _ := backing.Get(context.Background(), StorageKey)

	for _, payload := range []string{
		"data:text/plain;base64,aGVsbG8=",
		"data:application/pdf;base64,JVBERi0=",
		"not a data url at all",
		"",
	} {
		_, stored, err := reg.Upload(context.Background(), payload)
		if err != nil {
			t.Fatalf("upload %q: %v", payload, err)
		}
		if stored {
			t.Fatalf("payload %q was stored", payload)
		}
	}

	after, _, _ := backing.Get(context.Background(), StorageKey)
	if string(before) != string(after) {
		t.Fatal("collection changed by rejected uploads")
	}
}

func TestGet(t *testing.T) {
	reg, _ := newTestRegistry()
	img, _, _ := reg.Upload(context.Background(), pngDataURL)

	got, found, err := reg.Get(context.Background(), img.ID)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.Data != pngDataURL {
		t.Fatalf("unexpected data: %q", got.Data)
	}

	_, found, err = reg.Get(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("get unknown: %v", err)
	}
	if found {
		t.Fatal("expected unknown id to be absent")
	}
}

func TestLoad_MalformedCollectionRecoversEmpty(t *testing.T) {
	backing := kv.NewMemoryStore()
	_ = backing.Set(context.Background(), StorageKey, []byte("][nonsense"))
	reg := New(backing, zap.NewNop())

	imgs, err := reg.Load(context.Background())
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if len(imgs) != 0 {
		t.Fatalf("expected empty registry, got %d", len(imgs))
	}
}

func TestIsImageData(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"data:image/png;base64,xxx", true},
		{"data:image/svg+xml,<svg/>", true},
		{"data:text/html;base64,xxx", false},
		{"image/png", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsImageData(tc.raw); got != tc.want {
			t.Errorf("IsImageData(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestDecodeDataURL(t *testing.T) {
	mime, data, err := DecodeDataURL("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("expected image/png, got %q", mime)
	}
	if string(data) != "hello" {
		t.Fatalf("expected decoded payload, got %q", data)
	}

	mime, data, err = DecodeDataURL("data:image/svg+xml,<svg/>")
	if err != nil {
		t.Fatalf("decode plain: %v", err)
	}
	if mime != "image/svg+xml" || string(data) != "<svg/>" {
		t.Fatalf("unexpected plain decode: %q %q", mime, data)
	}

	if _, _, err := DecodeDataURL("nope"); err == nil {
		t.Fatal("expected error for non data URL")
	}
}
