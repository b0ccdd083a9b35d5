package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/authd/internal/handler"
	"github.com/xxxsen/authd/internal/model"
	appErr "github.com/xxxsen/authd/internal/pkg/errors"
	"github.com/xxxsen/authd/internal/pkg/jwt"
	"github.com/xxxsen/authd/internal/service"
)

var testSecret = []byte("test-secret")

type memoryStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*model.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[string]*model.User)}
}

func (m *memoryStore) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return appErr.ErrDuplicateEmail
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	clone := *user
	m.users[user.Email] = &clone
	return nil
}

func (m *memoryStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return nil, appErr.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *memoryStore) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == userID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, appErr.ErrUserNotFound
}

type fakeProbe struct {
	now time.Time
	err error
}

func (p fakeProbe) Now(ctx context.Context) (time.Time, error) {
	return p.now, p.err
}

func setupRouter(t *testing.T, probe handler.StoreProbe) (http.Handler, *memoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemoryStore()
	authService := service.NewAuthService(store, testSecret, time.Hour, 16)
	router := handler.NewRouter(handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Profile:   handler.NewProfileHandler(authService),
		Health:    handler.NewHealthHandler(probe),
		JWTSecret: testSecret,
	})
	return router, store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	decoded := map[string]interface{}{}
	if resp.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &decoded))
	}
	return resp, decoded
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	router, _ := setupRouter(t, fakeProbe{now: time.Now()})

	resp, body := doJSON(t, router, http.MethodPost, "/api/register",
		map[string]string{"name": "Amina", "email": "a@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, true, body["success"])
	registerToken, _ := body["token"].(string)
	require.NotEmpty(t, registerToken)
	user, _ := body["user"].(map[string]interface{})
	require.Equal(t, "a@x.com", user["email"])
	require.NotContains(t, user, "created_at")

	resp, body = doJSON(t, router, http.MethodPost, "/api/login",
		map[string]string{"email": "a@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, resp.Code)
	loginToken, _ := body["token"].(string)
	require.NotEmpty(t, loginToken)

	registerSubject, err := jwt.ParseToken(registerToken, testSecret)
	require.NoError(t, err)
	loginSubject, err := jwt.ParseToken(loginToken, testSecret)
	require.NoError(t, err)
	require.Equal(t, registerSubject, loginSubject)

	resp, body = doJSON(t, router, http.MethodGet, "/api/profile", nil, loginToken)
	require.Equal(t, http.StatusOK, resp.Code)
	profile, _ := body["user"].(map[string]interface{})
	require.Equal(t, "a@x.com", profile["email"])
	require.Contains(t, profile, "created_at")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, store := setupRouter(t, fakeProbe{now: time.Now()})

	resp, _ := doJSON(t, router, http.MethodPost, "/api/register",
		map[string]string{"name": "Amina", "email": "a@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp, body := doJSON(t, router, http.MethodPost, "/api/register",
		map[string]string{"name": "Other", "email": "a@x.com", "password": "different"}, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, body, "error")
	require.Len(t, store.users, 1)
}

func TestRegisterValidation(t *testing.T) {
	router, _ := setupRouter(t, fakeProbe{now: time.Now()})

	resp, body := doJSON(t, router, http.MethodPost, "/api/register",
		map[string]string{"name": "Amina", "email": "a@x.com"}, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, body, "error")

	resp, body = doJSON(t, router, http.MethodPost, "/api/register",
		map[string]string{"name": "  ", "email": "a@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, body, "error")
}

func TestLoginFailures(t *testing.T) {
	router, _ := setupRouter(t, fakeProbe{now: time.Now()})

	resp, _ := doJSON(t, router, http.MethodPost, "/api/register",
		map[string]string{"name": "Amina", "email": "a@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp, body := doJSON(t, router, http.MethodPost, "/api/login",
		map[string]string{"email": "nobody@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "user not found", body["error"])

	resp, body = doJSON(t, router, http.MethodPost, "/api/login",
		map[string]string{"email": "a@x.com", "password": "wrong"}, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "invalid email or password", body["error"])

	resp, body = doJSON(t, router, http.MethodPost, "/api/login",
		map[string]string{"email": "a@x.com"}, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, body, "error")
}

func TestProfileAuthFailures(t *testing.T) {
	router, _ := setupRouter(t, fakeProbe{now: time.Now()})

	resp, body := doJSON(t, router, http.MethodGet, "/api/profile", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Equal(t, "missing authorization token", body["error"])

	resp, body = doJSON(t, router, http.MethodGet, "/api/profile", nil, "forged.token.value")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Equal(t, "invalid token", body["error"])
}

func TestProfileUnknownSubject(t *testing.T) {
	router, _ := setupRouter(t, fakeProbe{now: time.Now()})

	token, err := jwt.GenerateToken(9999, testSecret, time.Hour)
	require.NoError(t, err)

	resp, body := doJSON(t, router, http.MethodGet, "/api/profile", nil, token)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "user not found", body["error"])
}

func TestDiagnostics(t *testing.T) {
	now := time.Now()
	router, _ := setupRouter(t, fakeProbe{now: now})

	resp, body := doJSON(t, router, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "authd", body["service"])

	resp, body = doJSON(t, router, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "ok", body["status"])

	resp, body = doJSON(t, router, http.MethodGet, "/test-db", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, true, body["success"])
	require.Contains(t, body, "time")
}

func TestDiagnosticsStoreDown(t *testing.T) {
	router, _ := setupRouter(t, fakeProbe{err: errors.New("connection refused")})

	resp, body := doJSON(t, router, http.MethodGet, "/test-db", nil, "")
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	require.Equal(t, "store unavailable", body["error"])
}
