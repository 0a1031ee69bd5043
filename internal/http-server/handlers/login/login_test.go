package login_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEVYESH-1211/campus-events/internal/http-server/handlers/login"
	"github.com/DEVYESH-1211/campus-events/internal/http-server/middlewarectx"
	"github.com/DEVYESH-1211/campus-events/internal/lib/password"
	"github.com/DEVYESH-1211/campus-events/internal/models"
	"github.com/DEVYESH-1211/campus-events/internal/storage"
)

type mockUserProvider struct {
	GetFunc func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserProvider) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetFunc(ctx, email)
}

type mockTokenMaker struct {
	GenerateFunc func(username, role string) (string, error)
}

func (m *mockTokenMaker) GenerateToken(username, role string) (string, error) {
	return m.GenerateFunc(username, role)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func loginForm(email, pass string) *strings.Reader {
	form := url.Values{"email": {email}, "password": {pass}}
	return strings.NewReader(form.Encode())
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middlewarectx.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLoginHandler(t *testing.T) {
	student := &models.User{
		ID:       1,
		Name:     "Devyesh Tandon",
		Email:    "devyesh@college.edu",
		Password: "secret123",
		Role:     "user",
	}

	t.Run("success redirects to events page", func(t *testing.T) {
		provider := &mockUserProvider{
			GetFunc: func(_ context.Context, email string) (*models.User, error) {
				require.Equal(t, "devyesh@college.edu", email)
				return student, nil
			},
		}
		maker := &mockTokenMaker{
			GenerateFunc: func(username, role string) (string, error) {
				require.Equal(t, "Devyesh Tandon", username)
				require.Equal(t, "user", role)
				return "token-123", nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/login", loginForm("devyesh@college.edu", "secret123"))
		w := httptest.NewRecorder()

		login.New(makeLogger(), provider, password.Plain{}, maker, time.Hour).ServeHTTP(w, req)

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/events.html", w.Header().Get("Location"))

		cookie := sessionCookie(t, w)
		require.NotNil(t, cookie)
		assert.Equal(t, "token-123", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, 3600, cookie.MaxAge)
	})

	t.Run("admin role redirects to admin page case-insensitively", func(t *testing.T) {
		admin := *student
		admin.Role = "Admin"
		provider := &mockUserProvider{
			GetFunc: func(context.Context, string) (*models.User, error) {
				return &admin, nil
			},
		}
		maker := &mockTokenMaker{
			GenerateFunc: func(string, string) (string, error) { return "token-admin", nil },
		}

		req := httptest.NewRequest(http.MethodPost, "/login", loginForm("devyesh@college.edu", "secret123"))
		w := httptest.NewRecorder()

		login.New(makeLogger(), provider, password.Plain{}, maker, time.Hour).ServeHTTP(w, req)

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin.html", w.Header().Get("Location"))
	})

	t.Run("wrong password answers 200 with alert, never a redirect", func(t *testing.T) {
		provider := &mockUserProvider{
			GetFunc: func(context.Context, string) (*models.User, error) {
				return student, nil
			},
		}
		maker := &mockTokenMaker{
			GenerateFunc: func(string, string) (string, error) {
				t.Fatal("GenerateToken should not be called")
				return "", nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/login", loginForm("devyesh@college.edu", "wrong"))
		w := httptest.NewRecorder()

		login.New(makeLogger(), provider, password.Plain{}, maker, time.Hour).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alert('Invalid email or password')")
		assert.Empty(t, w.Header().Get("Location"))
		assert.Nil(t, sessionCookie(t, w))
	})

	t.Run("unknown email answers 200 with alert", func(t *testing.T) {
		provider := &mockUserProvider{
			GetFunc: func(context.Context, string) (*models.User, error) {
				return nil, storage.ErrUserNotFound
			},
		}
		maker := &mockTokenMaker{
			GenerateFunc: func(string, string) (string, error) { return "", nil },
		}

		req := httptest.NewRequest(http.MethodPost, "/login", loginForm("nobody@college.edu", "x"))
		w := httptest.NewRecorder()

		login.New(makeLogger(), provider, password.Plain{}, maker, time.Hour).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alert('Invalid email or password')")
	})

	t.Run("persistence failure", func(t *testing.T) {
		provider := &mockUserProvider{
			GetFunc: func(context.Context, string) (*models.User, error) {
				return nil, assert.AnError
			},
		}
		maker := &mockTokenMaker{
			GenerateFunc: func(string, string) (string, error) { return "", nil },
		}

		req := httptest.NewRequest(http.MethodPost, "/login", loginForm("devyesh@college.edu", "secret123"))
		w := httptest.NewRecorder()

		login.New(makeLogger(), provider, password.Plain{}, maker, time.Hour).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Error: ")
	})

	t.Run("token generation failure", func(t *testing.T) {
		provider := &mockUserProvider{
			GetFunc: func(context.Context, string) (*models.User, error) {
				return student, nil
			},
		}
		maker := &mockTokenMaker{
			GenerateFunc: func(string, string) (string, error) {
				return "", assert.AnError
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/login", loginForm("devyesh@college.edu", "secret123"))
		w := httptest.NewRecorder()

		login.New(makeLogger(), provider, password.Plain{}, maker, time.Hour).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("malformed form body", func(t *testing.T) {
		provider := &mockUserProvider{
			GetFunc: func(context.Context, string) (*models.User, error) {
				t.Fatal("GetUserByEmail should not be called")
				return nil, nil
			},
		}
		maker := &mockTokenMaker{
			GenerateFunc: func(string, string) (string, error) { return "", nil },
		}

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=%zz"))
		w := httptest.NewRecorder()

		login.New(makeLogger(), provider, password.Plain{}, maker, time.Hour).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
