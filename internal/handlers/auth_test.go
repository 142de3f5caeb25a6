package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dom "Pastel/internal/domain"
	"Pastel/internal/handlers"
	"Pastel/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessionManager struct {
	created map[string]string // session id -> user id
	deleted []string
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{created: make(map[string]string)}
}

func (s *stubSessionManager) Create(_ context.Context, userID string) (string, error) {
	id := "session-for-" + userID
	s.created[id] = userID
	return id, nil
}

func (s *stubSessionManager) Delete(_ context.Context, sessionID string) error {
	s.deleted = append(s.deleted, sessionID)
	delete(s.created, sessionID)
	return nil
}

type stubUserRepo struct {
	users map[string]dom.User
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (dom.User, error) {
	u, ok := r.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *stubUserRepo) Upsert(_ context.Context, u dom.User) (dom.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func newAuthRouter(sessions *stubSessionManager, secret string, ttl time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	userSvc := service.NewUserService(&stubUserRepo{users: make(map[string]dom.User)})
	h := handlers.NewAuthHandler(sessions, userSvc, secret, ttl)

	r := gin.New()
	r.POST("/auth/session", h.CreateSession)
	r.POST("/auth/logout", h.Logout)
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatal("session_id cookie not set")
	return nil
}

func TestCreateSession(t *testing.T) {
	const secret = "s3cret"

	t.Run("mints a session and syncs the user", func(t *testing.T) {
		sessions := newStubSessionManager()
		r := newAuthRouter(sessions, secret, time.Hour)

		w := doJSON(t, r, http.MethodPost, "/auth/session",
			`{"secret":"s3cret","user_id":"u1","email":"ana@example.com"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "u1", sessions.created["session-for-u1"])

		cookie := sessionCookie(t, w)
		assert.Equal(t, "session-for-u1", cookie.Value)
		assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge,
			"cookie lifetime must follow the configured session TTL")
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("wrong secret is unauthorized", func(t *testing.T) {
		sessions := newStubSessionManager()
		r := newAuthRouter(sessions, secret, time.Hour)

		w := doJSON(t, r, http.MethodPost, "/auth/session",
			`{"secret":"nope","user_id":"u1"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, sessions.created)
	})

	t.Run("blank user id is rejected", func(t *testing.T) {
		sessions := newStubSessionManager()
		r := newAuthRouter(sessions, secret, time.Hour)

		w := doJSON(t, r, http.MethodPost, "/auth/session",
			`{"secret":"s3cret","user_id":"   "}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogout(t *testing.T) {
	sessions := newStubSessionManager()
	r := newAuthRouter(sessions, "s3cret", time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(""))
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-for-u1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"session-for-u1"}, sessions.deleted)

	cookie := sessionCookie(t, w)
	assert.Less(t, cookie.MaxAge, 0, "logout must expire the cookie")
}
