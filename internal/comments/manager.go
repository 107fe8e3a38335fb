package comments

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/pin-gallery/internal/placement"
)

// Manager operates on one image's partition of the comment collection: a
// flat ordered list the tree is derived from per call. Create one per
// request, Load it, then mutate. Mutations re-read the partition inside the
// store's atomic Update, so a stale snapshot from Load can never overwrite
// another request's write; the snapshot only serves reads.
type Manager struct {
	store   *Store
	imageID string
	list    []Comment
}

func NewManager(store *Store) *Manager {
	return &Manager{store: store}
}

// Load reads the global collection and keeps the given image's subset.
// Whether the image id exists in the registry is the caller's concern.
func (m *Manager) Load(ctx context.Context, imageID string) error {
	all, err := m.store.ReadAll(ctx)
	if err != nil {
		return err
	}
	m.imageID = imageID
	m.list = nil
	for _, c := range all {
		if c.ImageID == imageID {
			m.list = append(m.list, c)
		}
	}
	return nil
}

// All returns the image's comments in store order.
func (m *Manager) All() []Comment {
	return m.list
}

// Roots returns the comments pinned directly on the image.
func (m *Manager) Roots() []Comment {
	var roots []Comment
	for _, c := range m.list {
		if c.IsRoot() {
			roots = append(roots, c)
		}
	}
	return roots
}

// Children returns the direct replies of parentID in insertion order.
// Insertion order stands in for chronology: created-at timestamps can tie,
// order in the flat list cannot.
func (m *Manager) Children(parentID string) []Comment {
	var kids []Comment
	for _, c := range m.list {
		if c.ParentID != nil && *c.ParentID == parentID {
			kids = append(kids, c)
		}
	}
	return kids
}

func (m *Manager) Get(id string) (Comment, bool) {
	for _, c := range m.list {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

// Add promotes a draft to a new root comment at the draft's coordinates.
func (m *Manager) Add(ctx context.Context, draft placement.Draft, author string) (Comment, error) {
	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return Comment{}, ErrEmptyText
	}

	now := time.Now().UTC()
	c := Comment{
		ID:        uuid.NewString(),
		ImageID:   m.imageID,
		User:      author,
		X:         draft.X,
		Y:         draft.Y,
		Text:      text,
		CreatedAt: &now,
	}
	updated, err := m.store.Update(ctx, m.imageID, func(rows []Comment) ([]Comment, error) {
		return append(rows, c), nil
	})
	if err != nil {
		return Comment{}, err
	}
	m.list = updated
	return c, nil
}

// Reply appends a child comment inheriting the parent's image and its own
// x/y coordinates. The parent is resolved against the partition as it is
// at write time, not the Load snapshot.
func (m *Manager) Reply(ctx context.Context, parentID, text, author string) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, ErrEmptyText
	}

	var created Comment
	updated, err := m.store.Update(ctx, m.imageID, func(rows []Comment) ([]Comment, error) {
		idx := indexOf(rows, parentID)
		if idx < 0 {
			return nil, ErrNotFound
		}
		parent := rows[idx]

		now := time.Now().UTC()
		pid := parent.ID
		created = Comment{
			ID:        uuid.NewString(),
			ImageID:   parent.ImageID,
			User:      author,
			X:         parent.X,
			Y:         parent.Y,
			Text:      text,
			ParentID:  &pid,
			CreatedAt: &now,
		}
		return append(rows, created), nil
	})
	if err != nil {
		return Comment{}, err
	}
	m.list = updated
	return created, nil
}

// Edit replaces the comment's text and nothing else; identity, author,
// position, and tree linkage stay as created. Empty text is rejected
// before anything is written.
func (m *Manager) Edit(ctx context.Context, id, newText string) error {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return ErrEmptyText
	}

	updated, err := m.store.Update(ctx, m.imageID, func(rows []Comment) ([]Comment, error) {
		idx := indexOf(rows, id)
		if idx < 0 {
			return nil, ErrNotFound
		}
		rows[idx].Text = newText
		return rows, nil
	})
	if err != nil {
		return err
	}
	m.list = updated
	return nil
}

// DeleteSubtree removes the comment and every descendant reachable through
// parent links. Comments form a forest in healthy data; the visited set
// keeps a corrupted self-referential parent id from looping.
func (m *Manager) DeleteSubtree(ctx context.Context, id string) error {
	updated, err := m.store.Update(ctx, m.imageID, func(rows []Comment) ([]Comment, error) {
		if indexOf(rows, id) < 0 {
			return nil, ErrNotFound
		}

		doomed := map[string]struct{}{id: {}}
		queue := []string{id}
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			for _, c := range rows {
				if c.ParentID == nil || *c.ParentID != next {
					continue
				}
				if _, seen := doomed[c.ID]; seen {
					continue
				}
				doomed[c.ID] = struct{}{}
				queue = append(queue, c.ID)
			}
		}

		kept := make([]Comment, 0, len(rows))
		for _, c := range rows {
			if _, del := doomed[c.ID]; !del {
				kept = append(kept, c)
			}
		}
		return kept, nil
	})
	if err != nil {
		return err
	}
	m.list = updated
	return nil
}

func indexOf(rows []Comment, id string) int {
	for i, c := range rows {
		if c.ID == id {
			return i
		}
	}
	return -1
}
