package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/example/pin-gallery/internal/placement"
	"github.com/example/pin-gallery/internal/platform/api"
)

type placementRequest struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	ContainerWidth  float64 `json:"container_width"`
	ContainerHeight float64 `json:"container_height"`
}

// ComputePlacement handles POST /v1/placement: the stateless draft anchor
// computation for a click inside the preview container.
func ComputePlacement() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req placementRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		if req.ContainerWidth <= 0 || req.ContainerHeight <= 0 {
			api.BadRequest(w, "INVALID_CONTAINER", "container dimensions must be positive", "", nil)
			return
		}

		draft := placement.Place(req.X, req.Y, req.ContainerWidth, req.ContainerHeight)
		api.WriteJSON(w, http.StatusOK, draft)
	}
}
