package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	tl "todo_list"
	"todo_list/internal/models"
	"todo_list/internal/service"
)

func TestAuthHandlers_Register(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "created", body: `{"username":"alice","password":"secret123"}`, wantCode: http.StatusCreated},
		{name: "missing password", body: `{"username":"alice"}`, wantCode: http.StatusBadRequest},
		{name: "bad json", body: `{"username":1}`, wantCode: http.StatusBadRequest},
		{
			name:     "duplicate",
			body:     `{"username":"alice","password":"secret123"}`,
			err:      fmt.Errorf("register: %w", tl.ErrDuplicateUsername),
			wantCode: http.StatusBadRequest,
			wantErr:  "username already exists",
		},
		{
			name:     "store failure",
			body:     `{"username":"alice","password":"secret123"}`,
			err:      &tl.PersistenceError{Kind: tl.KindStore, Op: "commit", Err: errors.New("disk full")},
			wantCode: http.StatusInternalServerError,
			wantErr:  "internal error",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{registerID: 42, registerErr: tc.err}
			r := newTestRouter(&service.Service{Authorization: auth})

			w := doRequest(r, http.MethodPost, "/register", tc.body, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			var m map[string]any
			_ = json.Unmarshal(w.Body.Bytes(), &m)
			if tc.wantCode == http.StatusCreated {
				if int(m["id"].(float64)) != 42 || m["message"] != msgRegistered {
					t.Fatalf("unexpected body: %v", m)
				}
				if auth.lastRegisterUsername != "alice" || auth.lastRegisterPassword != "secret123" {
					t.Fatalf("service got %q/%q", auth.lastRegisterUsername, auth.lastRegisterPassword)
				}
			}
			if tc.wantErr != "" && m["error"] != tc.wantErr {
				t.Fatalf("error=%v, want %q", m["error"], tc.wantErr)
			}
		})
	}
}

func TestAuthHandlers_LoginEstablishesSessionAndToken(t *testing.T) {
	auth := &mockAuth{
		loginUser: &models.User{ID: 9, Username: "alice"},
		token:     "tok123",
		users:     []models.User{{ID: 9, Username: "alice"}},
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(r, http.MethodPost, "/login", `{"username":"alice","password":"secret123"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}
	cookie := w.Header().Get("Set-Cookie")
	if cookie == "" {
		t.Fatalf("expected session cookie to be set")
	}

	// the cookie alone authenticates
	h := http.Header{}
	h.Set("Cookie", cookie)
	w = doRequest(r, http.MethodGet, "/users", "", h)
	if w.Code != http.StatusOK {
		t.Fatalf("users status=%d, body=%s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != `[{"id":9,"username":"alice"}]` {
		t.Fatalf("unexpected users body: %s", got)
	}

	// logout invalidates the session
	w = doRequest(r, http.MethodPost, "/logout", "", h)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status=%d", w.Code)
	}
	h.Set("Cookie", w.Header().Get("Set-Cookie"))
	w = doRequest(r, http.MethodGet, "/users", "", h)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestAuthHandlers_LoginFailures(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"wrong password", `{"username":"alice","password":"wrong"}`, &tl.AuthenticationError{Reason: "password mismatch", Err: tl.ErrInvalidCredentials}, http.StatusUnauthorized},
		{"unknown user", `{"username":"ghost","password":"x"}`, &tl.AuthenticationError{Reason: "unknown user", Err: tl.ErrInvalidCredentials}, http.StatusUnauthorized},
		{"missing fields", `{"username":"alice"}`, nil, http.StatusBadRequest},
		{"empty body", ``, nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{loginErr: tc.err}
			r := newTestRouter(&service.Service{Authorization: auth})

			w := doRequest(r, http.MethodPost, "/login", tc.body, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if w.Header().Get("Set-Cookie") != "" {
				t.Fatalf("failed login must not set a session cookie")
			}
			if tc.wantCode == http.StatusUnauthorized {
				var m map[string]string
				_ = json.Unmarshal(w.Body.Bytes(), &m)
				if m["error"] != errInvalidCreds {
					t.Fatalf("error=%q, reason must not leak", m["error"])
				}
			}
		})
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := doRequest(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", tl.NewValidationError("title", "must not be empty"), http.StatusBadRequest},
		{"duplicate username", fmt.Errorf("x: %w", tl.ErrDuplicateUsername), http.StatusBadRequest},
		{"not found", fmt.Errorf("todo 3: %w", tl.ErrNotFound), http.StatusNotFound},
		{"bad credentials", &tl.AuthenticationError{Err: tl.ErrInvalidCredentials}, http.StatusUnauthorized},
		{"unauthenticated", tl.ErrUnauthenticated, http.StatusUnauthorized},
		{"foreign key", &tl.PersistenceError{Kind: tl.KindForeignKey}, http.StatusBadRequest},
		{"store", &tl.PersistenceError{Kind: tl.KindStore}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.want {
				t.Fatalf("statusFor(%v)=%d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
