package comments

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/example/pin-gallery/internal/kv"
)

// StorageKey is the fixed document key for the global comment collection.
const StorageKey = "image_comments"

// Store is the partitioned view over the global comment collection.
// Mutations go through Update, which holds the store mutex across the whole
// read-mutate-write cycle: concurrent mutations cannot overwrite each
// other's comments, and writing one image's subset can never drop or mutate
// comments belonging to another image.
type Store struct {
	mu  sync.Mutex
	kv  kv.Store
	log *zap.Logger
}

func NewStore(kvs kv.Store, log *zap.Logger) *Store {
	return &Store{kv: kvs, log: log}
}

// ReadAll returns every persisted comment across all images, in store order.
func (s *Store) ReadAll(ctx context.Context) ([]Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAllLocked(ctx)
}

// Find looks up one comment by id across the whole collection.
func (s *Store) Find(ctx context.Context, id string) (Comment, bool, error) {
	all, err := s.ReadAll(ctx)
	if err != nil {
		return Comment{}, false, err
	}
	for _, c := range all {
		if c.ID == id {
			return c, true, nil
		}
	}
	return Comment{}, false, nil
}

// Update atomically rewrites one image's subset of the collection: the
// current partition is read, handed to mutate, and the result written back
// while the store mutex is held, so no other request can slip a write in
// between. Comments belonging to other images are kept untouched. A mutate
// error aborts without writing. Returns the image's new partition.
func (s *Store) Update(ctx context.Context, imageID string, mutate func(rows []Comment) ([]Comment, error)) ([]Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAllLocked(ctx)
	if err != nil {
		return nil, err
	}

	var rows []Comment
	for _, c := range all {
		if c.ImageID == imageID {
			rows = append(rows, c)
		}
	}

	updated, err := mutate(rows)
	if err != nil {
		return nil, err
	}

	merged := make([]Comment, 0, len(all)+len(updated))
	for _, c := range all {
		if c.ImageID != imageID {
			merged = append(merged, c)
		}
	}
	merged = append(merged, updated...)

	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, StorageKey, raw); err != nil {
		return nil, err
	}
	return updated, nil
}

// ReplacePartition replaces one image's subset wholesale, ignoring whatever
// the partition held before.
func (s *Store) ReplacePartition(ctx context.Context, imageID string, rows []Comment) error {
	_, err := s.Update(ctx, imageID, func([]Comment) ([]Comment, error) {
		return rows, nil
	})
	return err
}

// readAllLocked treats a missing document as an empty collection and a
// malformed one as recoverable empty state: the next successful write
// repairs the record.
func (s *Store) readAllLocked(ctx context.Context) ([]Comment, error) {
	raw, found, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var all []Comment
	if err := json.Unmarshal(raw, &all); err != nil {
		s.log.Warn("comment collection is malformed, starting empty", zap.Error(err))
		return nil, nil
	}
	return all, nil
}
