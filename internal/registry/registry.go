// Package registry keeps the uploaded image collection: embedded data URLs,
// append-only, read wholesale from the document store.
package registry

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/pin-gallery/internal/kv"
)

// StorageKey is the fixed document key for the image collection.
const StorageKey = "uploaded_images"

// Image is one uploaded image with its embedded data URL. Images are
// immutable and never deleted.
type Image struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

type Registry struct {
	mu  sync.Mutex
	kv  kv.Store
	log *zap.Logger
}

func New(kvs kv.Store, log *zap.Logger) *Registry {
	return &Registry{kv: kvs, log: log}
}

// Load returns all uploaded images in upload order. A missing document is
// an empty collection; a malformed one is recovered as empty with a
// warning, the next upload repairs it.
func (r *Registry) Load(ctx context.Context) ([]Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked(ctx)
}

// Get looks up a single image by id.
func (r *Registry) Get(ctx context.Context, id string) (Image, bool, error) {
	imgs, err := r.Load(ctx)
	if err != nil {
		return Image{}, false, err
	}
	for _, img := range imgs {
		if img.ID == id {
			return img, true, nil
		}
	}
	return Image{}, false, nil
}

// Upload validates and stores a new image. Payloads that are not image data
// URLs are discarded without error: stored reports whether anything was
// written, and the collection is untouched when it is false.
func (r *Registry) Upload(ctx context.Context, rawData string) (img Image, stored bool, err error) {
	if !IsImageData(rawData) {
		return Image{}, false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	imgs, err := r.loadLocked(ctx)
	if err != nil {
		return Image{}, false, err
	}

	img = Image{ID: uuid.NewString(), Data: rawData}
	imgs = append(imgs, img)

	raw, err := json.Marshal(imgs)
	if err != nil {
		return Image{}, false, err
	}
	if err := r.kv.Set(ctx, StorageKey, raw); err != nil {
		return Image{}, false, err
	}
	return img, true, nil
}

func (r *Registry) loadLocked(ctx context.Context) ([]Image, error) {
	raw, found, err := r.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var imgs []Image
	if err := json.Unmarshal(raw, &imgs); err != nil {
		r.log.Warn("image collection is malformed, starting empty", zap.Error(err))
		return nil, nil
	}
	return imgs, nil
}

// IsImageData reports whether the payload looks like an image data URL.
// Anything else is silently dropped by Upload.
func IsImageData(raw string) bool {
	return strings.HasPrefix(raw, "data:image/")
}

// DecodeDataURL splits a data URL into its mime type and decoded bytes.
func DecodeDataURL(raw string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return "", nil, errors.New("registry: not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("registry: malformed data URL")
	}

	if typ, isB64 := strings.CutSuffix(meta, ";base64"); isB64 {
		mime = typ
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, err
		}
	} else {
		mime = meta
		data = []byte(payload)
	}
	if mime == "" {
		mime = "text/plain"
	}
	return mime, data, nil
}
