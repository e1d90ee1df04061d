package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

type stubAuthService struct {
	registerUser *domain.User
	registerErr  error

	loginToken string
	loginUser  *domain.User
	loginErr   error

	loggedOut []string
}

func (s *stubAuthService) Register(_ context.Context, username, password string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registerUser, nil
}

func (s *stubAuthService) Login(_ context.Context, username, password string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, s.loginUser, nil
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{registerUser: &domain.User{ID: 2, Username: "bob", Role: domain.RoleEmployee}}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/account/register", `{"username":"bob","password":"hunter2"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.User == nil || resp.User.Username != "bob" || resp.User.Role != domain.RoleEmployee {
		t.Errorf("unexpected user: %+v", resp.User)
	}
	if resp.Token != "" {
		t.Error("register must not hand out a session token")
	}
}

func TestAuthHandler_Register_ServiceErrorPropagates(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrUserExists}
	h := NewAuthHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/account/register", `{"username":"bob","password":"x"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("got %v, want ErrUserExists", err)
	}
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(http.MethodPost, "/account/register", `{not json`)
	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400 HTTPError", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		loginToken: "tok-1",
		loginUser:  &domain.User{ID: 2, Username: "bob", Role: domain.RoleEmployee},
	}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/account/login", `{"username":"bob","password":"hunter2"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Token != "tok-1" {
		t.Errorf("token = %q, want tok-1", resp.Token)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(http.MethodPost, "/account/login", `{"username":"bob"}`)
	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400 HTTPError", err)
	}
}

func TestAuthHandler_Login_BadCredentialsPropagate(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/account/login", `{"username":"bob","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/account/logout", "")
	c.Set("session", domain.SessionContext{Token: "tok-1", UserID: 2, Username: "bob", Role: domain.RoleEmployee})

	if err := h.Logout(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "tok-1" {
		t.Errorf("expected the session token to be invalidated, got %v", svc.loggedOut)
	}
}
