package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/pin-gallery/internal/events"
	"github.com/example/pin-gallery/internal/platform/api"
	"github.com/example/pin-gallery/internal/registry"
)

type uploadImageRequest struct {
	Data string `json:"data"`
}

type imageListResponse struct {
	Images []registry.Image `json:"images"`
}

// ListImages handles GET /v1/images (and the gallery root).
func ListImages(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imgs, err := reg.Load(r.Context())
		if err != nil {
			api.Internal(w, "")
			return
		}
		if imgs == nil {
			imgs = []registry.Image{}
		}
		api.WriteJSON(w, http.StatusOK, imageListResponse{Images: imgs})
	}
}

// UploadImage handles POST /v1/images
func UploadImage(reg *registry.Registry, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req uploadImageRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}

		img, stored, err := reg.Upload(r.Context(), req.Data)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if !stored {
			// Non-image payloads are dropped without complaint.
			w.WriteHeader(http.StatusNoContent)
			return
		}

		pub.Publish(events.SubjectImageUploaded, "image_uploaded", "", map[string]any{
			"image_id": img.ID,
		})
		api.WriteJSON(w, http.StatusCreated, img)
	}
}

// GetImage handles GET /v1/images/{image_id}
func GetImage(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imageID := strings.TrimSpace(chi.URLParam(r, "image_id"))
		if imageID == "" {
			api.BadRequest(w, "MISSING_ID", "image_id is required", "", nil)
			return
		}

		img, found, err := reg.Get(r.Context(), imageID)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if !found {
			api.NotFound(w, "NOT_FOUND", "image not found", "")
			return
		}
		api.WriteJSON(w, http.StatusOK, img)
	}
}

// Preview handles GET /preview/{image_id}: the decoded image bytes for a
// known id, a redirect back to the gallery root for anything else.
func Preview(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imageID := strings.TrimSpace(chi.URLParam(r, "image_id"))

		img, found, err := reg.Get(r.Context(), imageID)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if !found {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		mime, data, err := registry.DecodeDataURL(img.Data)
		if err != nil {
			api.Internal(w, "")
			return
		}
		w.Header().Set("Content-Type", mime)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
