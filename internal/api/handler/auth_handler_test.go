package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ucetportal/campus-api/internal/core/domain"
	"github.com/ucetportal/campus-api/internal/core/ports"
)

type stubAuthService struct {
	registerID  string
	registerErr error
	loginResult *ports.LoginResult
	loginErr    error
	users       []ports.UserSummary

	lastIdentifier string
	lastRole       string
}

func (s *stubAuthService) Register(_ context.Context, _, _, _, role string) (string, error) {
	s.lastRole = role
	if s.registerErr != nil {
		return "", s.registerErr
	}
	return s.registerID, nil
}

func (s *stubAuthService) Login(_ context.Context, identifier, _, assertedRole string) (*ports.LoginResult, error) {
	s.lastIdentifier = identifier
	s.lastRole = assertedRole
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func (s *stubAuthService) ListUsers(_ context.Context) ([]ports.UserSummary, error) {
	return s.users, nil
}

func newAuthTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Created(t *testing.T) {
	svc := &stubAuthService{registerID: "user_1"}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"pw123","role":"student"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.UserID != "user_1" {
		t.Fatalf("unexpected user id: %q", resp.UserID)
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrUserExists}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"pw123"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerID: "user_1"})

	cases := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"a@example.com","password":"pw"}`},
		{"bad email", `{"username":"a","email":"not-an-email","password":"pw"}`},
		{"bad role", `{"username":"a","email":"a@example.com","password":"pw","role":"superuser"}`},
		{"not json", `{"username":`},
	}
	for _, tc := range cases {
		c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register", tc.body)
		if err := h.Register(c); err != nil {
			t.Fatalf("%s: handler returned error: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d (%s)", tc.name, rec.Code, rec.Body.String())
		}
	}
}

func TestAuthHandler_Login_OK(t *testing.T) {
	svc := &stubAuthService{loginResult: &ports.LoginResult{
		Token:    "signed-token",
		Role:     domain.RoleStudent,
		Username: "alice",
		Email:    "alice@example.com",
	}}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"identifier":"alice","password":"pw123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed-token" || resp.Role != "student" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_EmailFieldAccepted(t *testing.T) {
	// The older login form posts "email" instead of "identifier".
	svc := &stubAuthService{loginResult: &ports.LoginResult{Token: "tok", Role: domain.RoleStudent}}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"pw123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if svc.lastIdentifier != "alice@example.com" {
		t.Fatalf("identifier not taken from email field: %q", svc.lastIdentifier)
	}
}

func TestAuthHandler_Login_MissingIdentifier(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login", `{"password":"pw123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"identifier":"alice","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_RoleMismatch(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrRoleMismatch}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"identifier":"alice","password":"pw","role":"admin"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if svc.lastRole != "admin" {
		t.Fatalf("role assertion not forwarded: %q", svc.lastRole)
	}
}

func TestAuthHandler_ListUsers(t *testing.T) {
	svc := &stubAuthService{users: []ports.UserSummary{
		{ID: "user_2", Username: "bob", Role: domain.RoleAdmin},
		{ID: "user_1", Username: "alice", Role: domain.RoleStudent},
	}}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, http.MethodGet, "/admin/users", "")
	if err := h.ListUsers(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listUsersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Users) != 2 || resp.Users[0].Username != "bob" {
		t.Fatalf("unexpected users: %+v", resp.Users)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not carry password material: %s", rec.Body.String())
	}
}
