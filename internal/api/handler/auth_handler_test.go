package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

type stubAuthService struct {
	registered *ports.RegisterInput
	loginToken string
	loginErr   error
	loggedOut  []string
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
	s.registered = &input
	return &domain.User{
		ID:        "user-1",
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      domain.RoleUser,
	}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, &domain.User{ID: "user-1", Email: email}, nil
}

func (s *stubAuthService) Logout(_ context.Context, tokenID string, _ time.Time) error {
	s.loggedOut = append(s.loggedOut, tokenID)
	return nil
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	body := `{"username":"alice","email":"alice@example.com","first_name":"Alice","last_name":"Cooper","password":"s3cretpass"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/users", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.registered == nil || svc.registered.Username != "alice" {
		t.Fatalf("service did not receive input: %+v", svc.registered)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != "user-1" || resp.Username != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	// Missing required fields fail the request validator before the service.
	c, _ := newTestContext(t, http.MethodPost, "/api/users", `{"username":"alice"}`)
	err := h.Register(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{loginToken: "signed-token"}
	h := NewAuthHandler(svc)

	body := `{"email":"alice@example.com","password":"s3cretpass"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/token/login", body)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.AuthToken != "signed-token" {
		t.Fatalf("unexpected token: %q", resp.AuthToken)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	body := `{"email":"alice@example.com","password":"wrong"}`
	c, _ := newTestContext(t, http.MethodPost, "/api/auth/token/login", body)

	// The domain error propagates so the central error handler maps it to 401.
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}
