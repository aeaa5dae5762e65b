package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "storerate/internal/errors"
	"storerate/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password, address string) (*model.User, string, error) {
	args := m.Called(ctx, name, email, password, address)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, *uint, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, "", args.Error(3)
	}
	var storeID *uint
	if args.Get(1) != nil {
		storeID = args.Get(1).(*uint)
	}
	return args.Get(0).(*model.User), storeID, args.String(2), args.Error(3)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type echoValidator struct {
	validator *validator.Validate
}

func (v *echoValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newTestEcho(h *AuthHandler) *echo.Echo {
	e := echo.New()
	e.Validator = &echoValidator{validator: validator.New()}
	e.POST("/api/auth/register", h.Register)
	e.POST("/api/auth/login", h.Login)
	return e
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("valid registration returns 201 with token", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Register", mock.Anything, "Systems Engineer Number One!", "a@b.com", "Abcdef1!", "").
			Return(&model.User{ID: 1, Email: "a@b.com", Role: model.RoleUser}, "signed-token", nil)

		e := newTestEcho(NewAuthHandler(mockService))
		rec := postJSON(e, "/api/auth/register",
			`{"name":"Systems Engineer Number One!","email":"a@b.com","password":"Abcdef1!"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "signed-token", body["token"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "user", user["role"])
		mockService.AssertExpectations(t)
	})

	t.Run("invalid input returns field errors without touching the service", func(t *testing.T) {
		mockService := new(MockAuthService)

		e := newTestEcho(NewAuthHandler(mockService))
		rec := postJSON(e, "/api/auth/register",
			`{"name":"short","email":"bad","password":"weak"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body apperrors.ValidationError
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Fields, 3)
		mockService.AssertNotCalled(t, "Register")
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, "", apperrors.ErrEmailTaken)

		e := newTestEcho(NewAuthHandler(mockService))
		rec := postJSON(e, "/api/auth/register",
			`{"name":"Systems Engineer Number One!","email":"a@b.com","password":"Abcdef1!"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("bad credentials return 401 with generic message", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Login", mock.Anything, "a@b.com", "wrong").
			Return(nil, nil, "", apperrors.ErrInvalidCredentials)

		e := newTestEcho(NewAuthHandler(mockService))
		rec := postJSON(e, "/api/auth/login", `{"email":"a@b.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body apperrors.ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Invalid credentials", body.Error)
	})

	t.Run("store owner response carries storeId", func(t *testing.T) {
		storeID := uint(42)
		mockService := new(MockAuthService)
		mockService.On("Login", mock.Anything, "owner@example.com", "Owner@Pass1").
			Return(&model.User{ID: 9, Email: "owner@example.com", Role: model.RoleStoreOwner}, &storeID, "signed-token", nil)

		e := newTestEcho(NewAuthHandler(mockService))
		rec := postJSON(e, "/api/auth/login", `{"email":"owner@example.com","password":"Owner@Pass1"}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		user := body["user"].(map[string]interface{})
		assert.Equal(t, float64(42), user["storeId"])
	})
}
