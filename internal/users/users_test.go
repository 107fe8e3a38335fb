package users

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValid(t *testing.T) {
	for _, name := range Roster {
		if !Valid(name) {
			t.Errorf("roster user %q rejected", name)
		}
	}
	for _, name := range []string{"", "alice", "Mallory"} {
		if Valid(name) {
			t.Errorf("non-roster user %q accepted", name)
		}
	}
}

func TestRequire_InjectsUser(t *testing.T) {
	var got string
	h := Require()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(Header, "Charlie")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got != "Charlie" {
		t.Fatalf("expected Charlie in context, got %q", got)
	}
}

func TestRequire_RejectsMissingHeader(t *testing.T) {
	h := Require()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRequire_RejectsUnknownUser(t *testing.T) {
	h := Require()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(Header, "Mallory")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
