package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/internal/app/service"
	"github.com/ecommercio/storefront-backend/internal/db"
	"github.com/ecommercio/storefront-backend/internal/middleware"
	"github.com/ecommercio/storefront-backend/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionCookie = "storefront_session"

func setupAuthControllerTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	sessions := session.NewMemoryStore(time.Hour)
	authService := service.NewAuthService(userRepo, sessions)
	authController := NewAuthController(authService, testSessionCookie, time.Hour, false)
	auth := middleware.NewAuthMiddleware(sessions, testSessionCookie)

	engine := gin.New()
	engine.POST("/api/register", authController.Register)
	engine.POST("/api/login", authController.Login)
	engine.POST("/api/logout", authController.Logout)
	engine.GET("/api/session", auth.OptionalAuthenticate(), authController.GetSession)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == testSessionCookie {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestAuthController_Register(t *testing.T) {
	engine := setupAuthControllerTest(t)

	w := postJSON(t, engine, "/api/register", gin.H{
		"username": "alice",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		User struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.User.Username)
	// First account is promoted so the install always has an admin
	assert.Equal(t, "admin", resp.User.Role)

	cookie := sessionCookie(t, w)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// Token stays out of the body
	assert.NotContains(t, w.Body.String(), cookie.Value)
}

func TestAuthController_Register_Validation(t *testing.T) {
	engine := setupAuthControllerTest(t)

	tests := []struct {
		name string
		body gin.H
		want int
	}{
		{"missing password", gin.H{"username": "alice"}, http.StatusBadRequest},
		{"short username", gin.H{"username": "ab", "password": "secret1"}, http.StatusBadRequest},
		{"short password", gin.H{"username": "alice", "password": "abc"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, engine, "/api/register", tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthController_Register_DuplicateUsername(t *testing.T) {
	engine := setupAuthControllerTest(t)

	w := postJSON(t, engine, "/api/register", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, engine, "/api/register", gin.H{"username": "alice", "password": "other99"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists")
}

func TestAuthController_Login(t *testing.T) {
	engine := setupAuthControllerTest(t)

	w := postJSON(t, engine, "/api/register", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("valid credentials", func(t *testing.T) {
		w := postJSON(t, engine, "/api/login", gin.H{"username": "alice", "password": "secret1"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, sessionCookie(t, w).Value)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(t, engine, "/api/login", gin.H{"username": "alice", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown username", func(t *testing.T) {
		w := postJSON(t, engine, "/api/login", gin.H{"username": "nobody", "password": "secret1"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthController_Session(t *testing.T) {
	engine := setupAuthControllerTest(t)

	registered := postJSON(t, engine, "/api/register", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, registered.Code)
	cookie := sessionCookie(t, registered)

	t.Run("with session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"alice"`)
	})

	t.Run("as guest", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user":null`)
	})
}

func TestAuthController_Logout(t *testing.T) {
	engine := setupAuthControllerTest(t)

	registered := postJSON(t, engine, "/api/register", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, registered.Code)
	cookie := sessionCookie(t, registered)

	w := postJSON(t, engine, "/api/logout", gin.H{}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// The cookie is expired on the way out
	cleared := sessionCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// The old token no longer resolves
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	assert.Contains(t, resp.Body.String(), `"user":null`)

	// Logout without a cookie still succeeds
	w = postJSON(t, engine, "/api/logout", gin.H{})
	assert.Equal(t, http.StatusOK, w.Code)
}
