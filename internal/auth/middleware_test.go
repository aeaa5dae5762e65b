package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func runRequest(t *testing.T, mw []echo.MiddlewareFunc, token string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/protected", okHandler, mw...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	t.Run("valid token attaches identity", func(t *testing.T) {
		token, _ := service.GenerateToken(7, "user@example.com", "admin")

		e := echo.New()
		e.GET("/protected", func(c echo.Context) error {
			identity := IdentityFromContext(c)
			assert.NotNil(t, identity)
			assert.Equal(t, uint(7), identity.UserID)
			assert.Equal(t, "admin", identity.Role)
			return c.String(http.StatusOK, "ok")
		}, Middleware(service))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token is 401", func(t *testing.T) {
		rec := runRequest(t, []echo.MiddlewareFunc{Middleware(service)}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is 401", func(t *testing.T) {
		expired := NewJWTService("test-secret", -time.Minute)
		token, _ := expired.GenerateToken(7, "user@example.com", "user")
		rec := runRequest(t, []echo.MiddlewareFunc{Middleware(service)}, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is 401", func(t *testing.T) {
		other := NewJWTService("other-secret", time.Hour)
		token, _ := other.GenerateToken(7, "user@example.com", "user")
		rec := runRequest(t, []echo.MiddlewareFunc{Middleware(service)}, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	t.Run("allowed role passes", func(t *testing.T) {
		token, _ := service.GenerateToken(1, "admin@example.com", "admin")
		rec := runRequest(t, []echo.MiddlewareFunc{Middleware(service), RequireRole("admin")}, token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("role outside the set is 403", func(t *testing.T) {
		token, _ := service.GenerateToken(2, "user@example.com", "user")
		rec := runRequest(t, []echo.MiddlewareFunc{Middleware(service), RequireRole("admin")}, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("multiple allowed roles", func(t *testing.T) {
		token, _ := service.GenerateToken(3, "owner@example.com", "store_owner")
		rec := runRequest(t, []echo.MiddlewareFunc{Middleware(service), RequireRole("admin", "store_owner")}, token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no identity is 401", func(t *testing.T) {
		rec := runRequest(t, []echo.MiddlewareFunc{RequireRole("admin")}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalMiddleware(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	t.Run("anonymous request passes through", func(t *testing.T) {
		e := echo.New()
		e.GET("/protected", func(c echo.Context) error {
			assert.Nil(t, IdentityFromContext(c))
			return c.String(http.StatusOK, "ok")
		}, OptionalMiddleware(service))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		token, _ := service.GenerateToken(5, "user@example.com", "user")

		e := echo.New()
		e.GET("/protected", func(c echo.Context) error {
			identity := IdentityFromContext(c)
			assert.NotNil(t, identity)
			assert.Equal(t, uint(5), identity.UserID)
			return c.String(http.StatusOK, "ok")
		}, OptionalMiddleware(service))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
