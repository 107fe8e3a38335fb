package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_MissingKey(t *testing.T) {
	s := NewMemoryStore()

	_, found, err := s.Get(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("expected missing key")
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Set(context.Background(), "doc", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, found, err := s.Get(context.Background(), "doc")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Fatalf("unexpected value: %s", got)
	}
}

func TestMemoryStore_SetReplacesWholeDocument(t *testing.T) {
	s := NewMemoryStore()

	_ = s.Set(context.Background(), "doc", []byte("first"))
	_ = s.Set(context.Background(), "doc", []byte("second"))

	got, _, _ := s.Get(context.Background(), "doc")
	if string(got) != "second" {
		t.Fatalf("expected full replace, got %s", got)
	}
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	s := NewMemoryStore()

	_ = s.Set(context.Background(), "images", []byte("imgs"))
	_ = s.Set(context.Background(), "comments", []byte("cmts"))

	got, _, _ := s.Get(context.Background(), "images")
	if string(got) != "imgs" {
		t.Fatalf("images document clobbered: %s", got)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Set(context.Background(), "doc", []byte("abc"))

	got, _, _ := s.Get(context.Background(), "doc")
	got[0] = 'x'

	again, _, _ := s.Get(context.Background(), "doc")
	if string(again) != "abc" {
		t.Fatalf("stored document mutated through returned slice: %s", again)
	}
}

func TestNewStore_ProdForbidsMemoryFallback(t *testing.T) {
	_, err := NewStore("", "", "", true)
	if err == nil {
		t.Fatal("expected error in production without a configured backend")
	}
}

func TestNewStore_DevFallsBackToMemory(t *testing.T) {
	s, err := NewStore("", "", "", false)
	if err != nil {
		t.Fatalf("expected in-memory fallback, got %v", err)
	}
	if s == nil {
		t.Fatal("expected a store")
	}
}

func TestNewStore_SQLiteInMemory(t *testing.T) {
	s, err := NewStore("", "", ":memory:", false)
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Set(context.Background(), "doc", []byte("payload")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, found, err := s.Get(context.Background(), "doc")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if string(got) != "payload" {
		t.Fatalf("unexpected value: %s", got)
	}

	_, found, err = s.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("get absent: %v", err)
	}
	if found {
		t.Fatal("expected absent key")
	}
}

type failingStore struct{ Store }

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("backend unreachable")
}

func TestReady(t *testing.T) {
	if err := Ready(NewMemoryStore())(); err != nil {
		t.Fatalf("healthy store reported not ready: %v", err)
	}
	if err := Ready(failingStore{})(); err == nil {
		t.Fatal("expected error from unreachable backend")
	}
}
