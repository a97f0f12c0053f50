package httpapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

func TestSessionGateMissingHeader(t *testing.T) {
	s, _, tr := newTestServer()

	rec, env := doRequest(t, s, http.MethodGet, "/api/tasks", "", nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if env.Message != "Authentication required" {
		t.Errorf("expected %q, got %q", "Authentication required", env.Message)
	}
	if tr.calls != 0 {
		t.Errorf("expected no repository calls, got %d", tr.calls)
	}
}

func TestSessionGateMalformedHeader(t *testing.T) {
	s, _, tr := newTestServer()

	tests := []struct {
		name   string
		header string
	}{
		{"no scheme", "sometoken"},
		{"wrong scheme", "Basic sometoken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRawAuthRequest(t, s, http.MethodGet, "/api/tasks", tt.header)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
			}
			if env.Message != "Invalid authorization header" {
				t.Errorf("expected %q, got %q", "Invalid authorization header", env.Message)
			}
		})
	}

	if tr.calls != 0 {
		t.Errorf("expected no repository calls, got %d", tr.calls)
	}
}

func TestSessionGateTamperedToken(t *testing.T) {
	s, _, tr := newTestServer()

	token := testToken(t, "u1") + "x"
	rec, env := doRequest(t, s, http.MethodGet, "/api/tasks", token, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if env.Message != "Invalid or expired token" {
		t.Errorf("expected %q, got %q", "Invalid or expired token", env.Message)
	}
	if tr.calls != 0 {
		t.Errorf("expected no repository calls, got %d", tr.calls)
	}
}

func TestSessionGateExpiredToken(t *testing.T) {
	s, _, tr := newTestServer()

	token, err := auth.GenerateToken("u1", []byte(testSecret), -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, env := doRequest(t, s, http.MethodGet, "/api/tasks", token, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if env.Message != "Invalid or expired token" {
		t.Errorf("expected %q, got %q", "Invalid or expired token", env.Message)
	}
	if tr.calls != 0 {
		t.Errorf("expected no repository calls, got %d", tr.calls)
	}
}

func TestSessionGatePassesUserID(t *testing.T) {
	s, _, tr := newTestServer()

	var seenUserID string
	tr.listByUserFn = func(ctx context.Context, userID string) ([]*models.Task, error) {
		seenUserID = userID
		return []*models.Task{}, nil
	}

	rec, _ := doRequest(t, s, http.MethodGet, "/api/tasks", testToken(t, "u42"), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if seenUserID != "u42" {
		t.Errorf("expected user id %q, got %q", "u42", seenUserID)
	}
}

func TestPublicRoutesSkipSessionGate(t *testing.T) {
	s, _, _ := newTestServer()

	rec, env := doRequest(t, s, http.MethodPost, "/api/users/login", "", map[string]string{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if env.Message == "Authentication required" {
		t.Errorf("login must not require a session")
	}
}
