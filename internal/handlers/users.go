package handlers

import (
	"net/http"

	"github.com/example/pin-gallery/internal/platform/api"
	"github.com/example/pin-gallery/internal/users"
)

type userListResponse struct {
	Users   []string `json:"users"`
	Default string   `json:"default"`
}

// ListUsers handles GET /v1/users
func ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		api.WriteJSON(w, http.StatusOK, userListResponse{Users: users.Roster, Default: users.Default})
	}
}
