// Package comments keeps the positional comment trees pinned on images.
//
// The whole store is one flat ordered JSON array across all images. The
// parent/child tree is derived from ParentID back-references on demand and
// never stored, so deletions cannot leave dangling child pointers.
package comments

import (
	"errors"
	"time"
)

// Comment is a single comment row. Root comments (nil ParentID) carry the
// on-image anchor position; replies inherit their parent's coordinates and
// render nested under it, not spatially placed.
type Comment struct {
	ID        string     `json:"id"`
	ImageID   string     `json:"imageId"`
	User      string     `json:"user"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Text      string     `json:"text"`
	ParentID  *string    `json:"parentId,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// IsRoot reports whether the comment is pinned directly on the image.
func (c Comment) IsRoot() bool {
	return c.ParentID == nil
}

var (
	// ErrEmptyText rejects a mutation whose text trims to nothing.
	// Nothing is written when it is returned.
	ErrEmptyText = errors.New("comments: text must not be empty")

	// ErrNotFound means the referenced comment is not in the loaded image's
	// partition.
	ErrNotFound = errors.New("comments: comment not found")
)
