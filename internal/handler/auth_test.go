package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/service"
)

type stubAuthService struct {
	loginToken  string
	loginErr    error
	registered  *models.User
	registerErr error
}

func (s *stubAuthService) Register(context.Context, string, string, string, models.Role, *bool) (*models.User, error) {
	return s.registered, s.registerErr
}

func (s *stubAuthService) Login(context.Context, string, string) (string, error) {
	return s.loginToken, s.loginErr
}

func (s *stubAuthService) CurrentUser(context.Context, string) (*models.User, error) {
	panic("not used")
}

func newAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(bytes.NewBuffer(nil))
	h := NewAuthHandler(svc, log)

	router := gin.New()
	router.POST("/api/v1/auth/login", h.Login)
	router.POST("/api/v1/auth/register", h.Register)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	router := newAuthRouter(&stubAuthService{loginToken: "signed-token"})

	w := postJSON(router, "/api/v1/auth/login", gin.H{"email": "alice@example.com", "password": "secret123"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"access_token":"signed-token","token_type":"bearer"}`, w.Body.String())
}

func TestLogin_InvalidCredentialsShape(t *testing.T) {
	router := newAuthRouter(&stubAuthService{loginErr: service.ErrInvalidCredentials})

	// Wrong password and unknown email go through the same sentinel, so both
	// produce byte-identical responses.
	wrongPassword := postJSON(router, "/api/v1/auth/login", gin.H{"email": "alice@example.com", "password": "wrong"})
	unknownEmail := postJSON(router, "/api/v1/auth/login", gin.H{"email": "nobody@example.com", "password": "secret123"})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.JSONEq(t, `{"error":"Incorrect email or password"}`, wrongPassword.Body.String())
}

func TestLogin_MissingFields(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})
	w := postJSON(router, "/api/v1/auth/login", gin.H{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_Success(t *testing.T) {
	created := &models.User{
		ID:             1,
		Name:           "Alice",
		Email:          "alice@example.com",
		HashedPassword: "$argon2id$v=19$m=65536,t=1,p=4$x$y",
		Role:           models.RoleUser,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	router := newAuthRouter(&stubAuthService{registered: created})

	w := postJSON(router, "/api/v1/auth/register", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
		"name":     "Alice",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "hashed_password")
	assert.NotContains(t, w.Body.String(), "argon2id")

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "alice@example.com", got["email"])
	assert.Equal(t, "user", got["role"])
	assert.Equal(t, true, got["is_active"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := newAuthRouter(&stubAuthService{registerErr: service.ErrEmailAlreadyRegistered})

	w := postJSON(router, "/api/v1/auth/register", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email already registered"}`, w.Body.String())
}

func TestRegister_UnknownRole(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := postJSON(router, "/api/v1/auth/register", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
		"role":     "superuser",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
