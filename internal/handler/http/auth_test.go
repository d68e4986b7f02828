// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case; unset fields fall
// back to deny-everything defaults.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	signInFn       func(ctx context.Context, user models.User) (models.Session, error)
	authorizeFn    func(ctx context.Context, token string) (int64, error)
	signOutFn      func(ctx context.Context, token string) error
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	if m.registerUserFn != nil {
		return m.registerUserFn(ctx, user)
	}
	return models.User{}, service.ErrInvalidDataProvided
}

func (m *mockAuthService) SignIn(ctx context.Context, user models.User) (models.Session, error) {
	if m.signInFn != nil {
		return m.signInFn(ctx, user)
	}
	return models.Session{}, service.ErrInvalidCredentials
}

func (m *mockAuthService) Authorize(ctx context.Context, token string) (int64, error) {
	if m.authorizeFn != nil {
		return m.authorizeFn(ctx, token)
	}
	return 0, service.ErrUnauthenticated
}

func (m *mockAuthService) SignOut(ctx context.Context, token string) error {
	if m.signOutFn != nil {
		return m.signOutFn(ctx, token)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newHandlerWithAuth builds a Handler with the given AuthService mock.
func newHandlerWithAuth(t *testing.T, auth service.AuthService) *Handler {
	t.Helper()
	svcs := &service.Services{
		AuthService: auth,
		TaskService: &mockTaskService{},
	}
	return NewHandler(svcs, config.App{}, logger.Nop())
}

// userBody serialises a models.User to a JSON request body string.
func userBody(t *testing.T, u models.User) string {
	t.Helper()
	b, err := json.Marshal(u)
	require.NoError(t, err)
	return string(b)
}

// stubSession returns a live session fixture for the given user.
func stubSession(userID int64, token string) models.Session {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	return models.Session{
		SessionID: 1,
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(12 * time.Hour),
	}
}

// sessionCookieFrom extracts the session cookie from a recorded response,
// or nil if none was set.
func sessionCookieFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	return nil
}

// ─────────────────────────────────────────────
// apiRegister
// ─────────────────────────────────────────────

func TestAPIRegister_Success(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, u models.User) (models.User, error) {
			u.UserID = 1
			return u, nil
		},
	}
	router := newHandlerWithAuth(t, auth).Init()

	body := userBody(t, models.User{Login: "alice", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"login":"alice"`)
	assert.NotContains(t, rec.Body.String(), "secret123",
		"password must never be echoed back")
}

func TestAPIRegister_InvalidJSON(t *testing.T) {
	router := newHandlerWithAuth(t, &mockAuthService{}).Init()

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIRegister_LoginTaken(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrLoginAlreadyExists
		},
	}
	router := newHandlerWithAuth(t, auth).Init()

	body := userBody(t, models.User{Login: "alice", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// ─────────────────────────────────────────────
// apiLogin
// ─────────────────────────────────────────────

func TestAPILogin_Success_SetsSessionCookie(t *testing.T) {
	auth := &mockAuthService{
		signInFn: func(_ context.Context, u models.User) (models.Session, error) {
			return stubSession(1, "issued-token"), nil
		},
	}
	router := newHandlerWithAuth(t, auth).Init()

	body := userBody(t, models.User{Login: "alice", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookieFrom(rec)
	require.NotNil(t, cookie, "expected a session cookie")
	assert.Equal(t, "issued-token", cookie.Value)
	assert.True(t, cookie.HttpOnly, "session cookie must be HttpOnly")

	var session models.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "issued-token", session.Token)
}

func TestAPILogin_BadCredentials(t *testing.T) {
	auth := &mockAuthService{
		signInFn: func(_ context.Context, _ models.User) (models.Session, error) {
			return models.Session{}, service.ErrInvalidCredentials
		},
	}
	router := newHandlerWithAuth(t, auth).Init()

	body := userBody(t, models.User{Login: "alice", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidCredentials)
	assert.Nil(t, sessionCookieFrom(rec))
}

func TestAPILogin_StoreFailureIs500(t *testing.T) {
	auth := &mockAuthService{
		signInFn: func(_ context.Context, _ models.User) (models.Session, error) {
			return models.Session{}, errors.New("connection refused")
		},
	}
	router := newHandlerWithAuth(t, auth).Init()

	body := userBody(t, models.User{Login: "alice", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// a broken store must not masquerade as bad credentials
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// apiLogout
// ─────────────────────────────────────────────

func TestAPILogout_Success(t *testing.T) {
	var revokedToken string
	auth := &mockAuthService{
		authorizeFn: func(_ context.Context, token string) (int64, error) {
			return 1, nil
		},
		signOutFn: func(_ context.Context, token string) error {
			revokedToken = token
			return nil
		},
	}
	router := newHandlerWithAuth(t, auth).Init()

	req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "live-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "live-token", revokedToken)

	cookie := sessionCookieFrom(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value, "session cookie must be cleared")
	assert.Negative(t, cookie.MaxAge)
}

func TestAPILogout_WithoutSessionIs401(t *testing.T) {
	router := newHandlerWithAuth(t, &mockAuthService{}).Init()

	req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// HTML sign-in flow
// ─────────────────────────────────────────────

func TestLoginSubmit_Success_RedirectsToTasks(t *testing.T) {
	auth := &mockAuthService{
		signInFn: func(_ context.Context, u models.User) (models.Session, error) {
			assert.Equal(t, "alice", u.Login)
			assert.Equal(t, "secret123", u.Password)
			return stubSession(1, "issued-token"), nil
		},
	}
	router := newHandlerWithAuth(t, auth).Init()

	form := strings.NewReader("username=alice&password=secret123")
	req := httptest.NewRequest(http.MethodPost, "/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))

	cookie := sessionCookieFrom(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "issued-token", cookie.Value)
}

func TestLoginSubmit_BadCredentials_RedirectsBackWithFlash(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "wrong credentials", err: service.ErrInvalidCredentials},
		{name: "empty fields", err: service.ErrInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				signInFn: func(_ context.Context, _ models.User) (models.Session, error) {
					return models.Session{}, tt.err
				},
			}
			router := newHandlerWithAuth(t, auth).Init()

			form := strings.NewReader("username=alice&password=wrong")
			req := httptest.NewRequest(http.MethodPost, "/login", form)
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			// same outcome for every credential failure
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/login", rec.Header().Get("Location"))
			assert.Nil(t, sessionCookieFrom(rec))
		})
	}
}

func TestLoginPage_ShowsFlash(t *testing.T) {
	router := newHandlerWithAuth(t, &mockAuthService{}).Init()

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: "please%20sign%20in%20to%20continue"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), msgSignInRequired)
}

// ─────────────────────────────────────────────
// HTML registration flow
// ─────────────────────────────────────────────

func TestRegisterSubmit_Success_SignsInAndRedirects(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, u models.User) (models.User, error) {
			u.UserID = 1
			return u, nil
		},
		signInFn: func(_ context.Context, _ models.User) (models.Session, error) {
			return stubSession(1, "fresh-token"), nil
		},
	}
	router := newHandlerWithAuth(t, auth).Init()

	form := strings.NewReader("username=alice&password=secret123")
	req := httptest.NewRequest(http.MethodPost, "/register", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))
	require.NotNil(t, sessionCookieFrom(rec))
}

func TestRegisterSubmit_LoginTaken_RedirectsBack(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrLoginAlreadyExists
		},
	}
	router := newHandlerWithAuth(t, auth).Init()

	form := strings.NewReader("username=alice&password=secret123")
	req := httptest.NewRequest(http.MethodPost, "/register", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/register", rec.Header().Get("Location"))
}

// ─────────────────────────────────────────────
// HTML sign-out
// ─────────────────────────────────────────────

func TestLogoutSubmit_RedirectsToLogin(t *testing.T) {
	auth := &mockAuthService{
		authorizeFn: func(_ context.Context, _ string) (int64, error) {
			return 1, nil
		},
	}
	router := newHandlerWithAuth(t, auth).Init()

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "live-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookie := sessionCookieFrom(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}
