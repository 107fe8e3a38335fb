package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/pin-gallery/internal/comments"
	"github.com/example/pin-gallery/internal/events"
	"github.com/example/pin-gallery/internal/placement"
	"github.com/example/pin-gallery/internal/platform/api"
	"github.com/example/pin-gallery/internal/users"
)

type createCommentRequest struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
	// When the container dimensions are sent, placement runs server-side
	// and may adjust the coordinates.
	ContainerWidth  float64 `json:"container_width,omitempty"`
	ContainerHeight float64 `json:"container_height,omitempty"`
}

type replyCommentRequest struct {
	Text string `json:"text"`
}

type editCommentRequest struct {
	Text string `json:"text"`
}

// threadNode is a comment with its nested replies, derived per request from
// the flat list.
type threadNode struct {
	comments.Comment
	Replies []threadNode `json:"replies"`
}

type threadResponse struct {
	Comments []threadNode `json:"comments"`
}

// GetThread handles GET /v1/images/{image_id}/comments
func GetThread(cs *comments.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imageID := strings.TrimSpace(chi.URLParam(r, "image_id"))
		if imageID == "" {
			api.BadRequest(w, "MISSING_ID", "image_id is required", "", nil)
			return
		}

		m := comments.NewManager(cs)
		if err := m.Load(r.Context(), imageID); err != nil {
			api.Internal(w, "")
			return
		}

		nodes := []threadNode{}
		seen := map[string]struct{}{}
		for _, root := range m.Roots() {
			seen[root.ID] = struct{}{}
			nodes = append(nodes, buildNode(m, root, seen))
		}
		api.WriteJSON(w, http.StatusOK, threadResponse{Comments: nodes})
	}
}

// buildNode nests replies under their parent. The seen set guards against
// corrupted parent links; healthy data is a forest.
func buildNode(m *comments.Manager, c comments.Comment, seen map[string]struct{}) threadNode {
	node := threadNode{Comment: c, Replies: []threadNode{}}
	for _, child := range m.Children(c.ID) {
		if _, dup := seen[child.ID]; dup {
			continue
		}
		seen[child.ID] = struct{}{}
		node.Replies = append(node.Replies, buildNode(m, child, seen))
	}
	return node
}

// CreateComment handles POST /v1/images/{image_id}/comments
func CreateComment(cs *comments.Store, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := users.FromContext(r.Context())
		if !ok || user == "" {
			api.Unauthorized(w, "UNKNOWN_USER", "a roster user is required", "")
			return
		}

		imageID := strings.TrimSpace(chi.URLParam(r, "image_id"))
		if imageID == "" {
			api.BadRequest(w, "MISSING_ID", "image_id is required", "", nil)
			return
		}

		var req createCommentRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			api.BadRequest(w, "EMPTY_TEXT", "text must not be empty", "", nil)
			return
		}

		var draft placement.Draft
		if req.ContainerWidth > 0 && req.ContainerHeight > 0 {
			draft = placement.Place(req.X, req.Y, req.ContainerWidth, req.ContainerHeight)
		} else {
			draft = placement.Draft{X: req.X, Y: req.Y}
		}
		draft.Text = req.Text

		m := comments.NewManager(cs)
		if err := m.Load(r.Context(), imageID); err != nil {
			api.Internal(w, "")
			return
		}

		created, err := m.Add(r.Context(), draft, user)
		if err != nil {
			if errors.Is(err, comments.ErrEmptyText) {
				api.BadRequest(w, "EMPTY_TEXT", "text must not be empty", "", nil)
				return
			}
			api.Internal(w, "")
			return
		}

		pub.Publish(events.SubjectCommentCreated, "comment_created", user, map[string]any{
			"image_id":   imageID,
			"comment_id": created.ID,
		})
		api.WriteJSON(w, http.StatusCreated, created)
	}
}

// ReplyComment handles POST /v1/comments/{comment_id}/replies
func ReplyComment(cs *comments.Store, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := users.FromContext(r.Context())
		if !ok || user == "" {
			api.Unauthorized(w, "UNKNOWN_USER", "a roster user is required", "")
			return
		}

		parentID := strings.TrimSpace(chi.URLParam(r, "comment_id"))
		if parentID == "" {
			api.BadRequest(w, "MISSING_ID", "comment_id is required", "", nil)
			return
		}

		var req replyCommentRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			api.BadRequest(w, "EMPTY_TEXT", "text must not be empty", "", nil)
			return
		}

		parent, found, err := cs.Find(r.Context(), parentID)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if !found {
			api.NotFound(w, "NOT_FOUND", "comment not found", "")
			return
		}

		m := comments.NewManager(cs)
		if err := m.Load(r.Context(), parent.ImageID); err != nil {
			api.Internal(w, "")
			return
		}

		created, err := m.Reply(r.Context(), parentID, req.Text, user)
		if err != nil {
			switch {
			case errors.Is(err, comments.ErrEmptyText):
				api.BadRequest(w, "EMPTY_TEXT", "text must not be empty", "", nil)
			case errors.Is(err, comments.ErrNotFound):
				api.NotFound(w, "NOT_FOUND", "comment not found", "")
			default:
				api.Internal(w, "")
			}
			return
		}

		pub.Publish(events.SubjectCommentCreated, "comment_created", user, map[string]any{
			"image_id":   created.ImageID,
			"comment_id": created.ID,
			"parent_id":  parentID,
		})
		api.WriteJSON(w, http.StatusCreated, created)
	}
}

// UpdateComment handles PUT /v1/comments/{comment_id}
func UpdateComment(cs *comments.Store, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := users.FromContext(r.Context())
		if !ok || user == "" {
			api.Unauthorized(w, "UNKNOWN_USER", "a roster user is required", "")
			return
		}

		commentID := strings.TrimSpace(chi.URLParam(r, "comment_id"))
		if commentID == "" {
			api.BadRequest(w, "MISSING_ID", "comment_id is required", "", nil)
			return
		}

		var req editCommentRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			api.BadRequest(w, "EMPTY_TEXT", "text must not be empty", "", nil)
			return
		}

		target, found, err := cs.Find(r.Context(), commentID)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if !found || target.User != user {
			api.Forbidden(w, "FORBIDDEN", "not found or not the author", "")
			return
		}

		m := comments.NewManager(cs)
		if err := m.Load(r.Context(), target.ImageID); err != nil {
			api.Internal(w, "")
			return
		}
		if err := m.Edit(r.Context(), commentID, req.Text); err != nil {
			switch {
			case errors.Is(err, comments.ErrEmptyText):
				api.BadRequest(w, "EMPTY_TEXT", "text must not be empty", "", nil)
			case errors.Is(err, comments.ErrNotFound):
				// Deleted out from under us between the author check and
				// the write.
				api.NotFound(w, "NOT_FOUND", "comment not found", "")
			default:
				api.Internal(w, "")
			}
			return
		}

		pub.Publish(events.SubjectCommentUpdated, "comment_updated", user, map[string]any{
			"image_id":   target.ImageID,
			"comment_id": commentID,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteComment handles DELETE /v1/comments/{comment_id} and cascades to
// every descendant reply.
func DeleteComment(cs *comments.Store, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := users.FromContext(r.Context())
		if !ok || user == "" {
			api.Unauthorized(w, "UNKNOWN_USER", "a roster user is required", "")
			return
		}

		commentID := strings.TrimSpace(chi.URLParam(r, "comment_id"))
		if commentID == "" {
			api.BadRequest(w, "MISSING_ID", "comment_id is required", "", nil)
			return
		}

		target, found, err := cs.Find(r.Context(), commentID)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if !found || target.User != user {
			api.Forbidden(w, "FORBIDDEN", "not found or not the author", "")
			return
		}

		m := comments.NewManager(cs)
		if err := m.Load(r.Context(), target.ImageID); err != nil {
			api.Internal(w, "")
			return
		}
		if err := m.DeleteSubtree(r.Context(), commentID); err != nil {
			if errors.Is(err, comments.ErrNotFound) {
				api.NotFound(w, "NOT_FOUND", "comment not found", "")
				return
			}
			api.Internal(w, "")
			return
		}

		pub.Publish(events.SubjectCommentDeleted, "comment_deleted", user, map[string]any{
			"image_id":   target.ImageID,
			"comment_id": commentID,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}
