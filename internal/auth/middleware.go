package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "storerate/internal/errors"
)

const identityKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

// Middleware verifies the bearer token signature and expiry and attaches
// the caller's Identity to the context. Missing, malformed or expired
// tokens short-circuit with 401 before any handler runs.
func Middleware(s *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: s.secret,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		SuccessHandler: attachIdentity,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "invalid or expired token",
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// OptionalMiddleware attaches an Identity when a valid bearer token is
// present but lets anonymous or invalid-token requests through.
func OptionalMiddleware(s *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: s.secret,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		SuccessHandler:         attachIdentity,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			// anonymous access is allowed on these routes
			return nil
		},
	})
}

// RequireRole rejects authenticated callers whose role is outside the
// allowed set. Must run after Middleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFromContext(c)
			if identity == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "authentication required",
					Code:  "UNAUTHENTICATED",
				})
			}
			if _, ok := allowed[identity.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "insufficient permissions",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

// IdentityFromContext returns the attached Identity, or nil for anonymous requests.
func IdentityFromContext(c echo.Context) *Identity {
	identity, _ := c.Get(identityKey).(*Identity)
	return identity
}

func attachIdentity(c echo.Context) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return
	}
	c.Set(identityKey, &Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	})
}
