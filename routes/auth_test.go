package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tasknest/tasknest/database"
	"tasknest/tasknest/models"
	"tasknest/tasknest/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type MockUserService struct{}

func (m *MockUserService) CreateUser(db *database.Database, username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, services.ErrValidation
	}
	if username == "taken" {
		return models.User{}, services.ErrUserExists
	}
	return models.User{
		ID:       uuid.New(),
		Username: username,
	}, nil
}

func (m *MockUserService) GetUserById(db *database.Database, id string) (models.User, error) {
	return models.User{}, services.ErrUserNotFound
}

type MockAuthService struct{}

func (m *MockAuthService) Login(db *database.Database, username, password string) (services.LoginResult, error) {
	if username == "alice" && password == "hunter2" {
		return services.LoginResult{
			Token:   "access-token",
			Refresh: "refresh-token",
			User: models.User{
				ID:       testUserID,
				Username: "alice",
			},
		}, nil
	}
	return services.LoginResult{}, services.ErrInvalidCredentials
}

func (m *MockAuthService) ValidateToken(tokenString string) (*services.JWTClaims, error) {
	return nil, services.ErrInvalidToken
}

func (m *MockAuthService) HashPassword(password string) (string, error) {
	return "hashed-" + password, nil
}

func (m *MockAuthService) ComparePasswords(hashedPassword, password string) error {
	return nil
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterAuthRoutes(router, &database.Database{}, &MockUserService{}, &MockAuthService{})
	return router
}

func TestSignup(t *testing.T) {
	router := setupAuthRouter()

	body := []byte(`{"username":"alice","password":"hunter2"}`)
	req, _ := http.NewRequest("POST", "/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var response map[string]string
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "User alice created successfully. Please log in to get your tokens.", response["message"])
}

func TestSignupMissingFields(t *testing.T) {
	router := setupAuthRouter()

	body := []byte(`{"username":"alice"}`)
	req, _ := http.NewRequest("POST", "/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSignupDuplicateUsername(t *testing.T) {
	router := setupAuthRouter()

	body := []byte(`{"username":"taken","password":"hunter2"}`)
	req, _ := http.NewRequest("POST", "/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response map[string]string
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "A user with this username already exists.", response["error"])
}

func TestLoginIssuesTokens(t *testing.T) {
	router := setupAuthRouter()

	body := []byte(`{"username":"alice","password":"hunter2"}`)
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "access-token", response["token"])
	assert.Equal(t, "refresh-token", response["refresh"])

	user, ok := response["user"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, testUserID.String(), user["id"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := setupAuthRouter()

	for _, body := range []string{
		`{"username":"alice","password":"wrong"}`,
		`{"username":"nobody","password":"hunter2"}`,
	} {
		req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		// Unknown user and wrong password get the same response
		assert.Equal(t, http.StatusUnauthorized, resp.Code)

		var response map[string]string
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
		assert.Equal(t, "Invalid credentials", response["error"])
	}
}
