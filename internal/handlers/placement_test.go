package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestComputePlacement(t *testing.T) {
	req := setupReq(http.MethodPost, "/v1/placement",
		`{"x":900,"y":50,"container_width":1000,"container_height":800}`, nil, "")
	rr := httptest.NewRecorder()
	ComputePlacement().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var draft struct {
		X          float64 `json:"x"`
		Y          float64 `json:"y"`
		Horizontal string  `json:"horizontal"`
		Vertical   string  `json:"vertical"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if draft.Horizontal != "left" || draft.Vertical != "bottom" {
		t.Fatalf("unexpected anchors: %+v", draft)
	}
	if draft.X != 900 || draft.Y != 50 {
		t.Fatalf("expected coordinates unchanged, got (%v, %v)", draft.X, draft.Y)
	}
}

func TestComputePlacement_InvalidContainer(t *testing.T) {
	req := setupReq(http.MethodPost, "/v1/placement",
		`{"x":10,"y":10,"container_width":0,"container_height":800}`, nil, "")
	rr := httptest.NewRecorder()
	ComputePlacement().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
