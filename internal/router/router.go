package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storerate/internal/auth"
	"storerate/internal/handler"
	"storerate/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	storeHandler *handler.StoreHandler,
	ratingHandler *handler.RatingHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "OK"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	requireAuth := auth.Middleware(jwtService)
	optionalAuth := auth.OptionalMiddleware(jwtService)

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Any authenticated role
	api.GET("/auth/profile", authHandler.Profile, requireAuth)
	api.PUT("/auth/password", authHandler.ChangePassword, requireAuth)

	// Admin routes
	admin := api.Group("/admin", requireAuth, auth.RequireRole(model.RoleAdmin))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.GET("/stores", adminHandler.ListStores)

	// Store routes; creation is admin-only, browsing is for end users,
	// detail is public with richer output for authenticated callers.
	api.POST("/stores", storeHandler.CreateStore, requireAuth, auth.RequireRole(model.RoleAdmin))
	api.GET("/stores", storeHandler.ListStores, requireAuth, auth.RequireRole(model.RoleUser))
	api.GET("/stores/owner/dashboard", storeHandler.OwnerDashboard, requireAuth, auth.RequireRole(model.RoleStoreOwner))
	api.GET("/stores/:id", storeHandler.GetStore, optionalAuth)

	// Rating routes
	ratings := api.Group("/ratings", requireAuth, auth.RequireRole(model.RoleUser))
	ratings.POST("", ratingHandler.Submit)
	ratings.GET("/store/:storeId/my-rating", ratingHandler.MyRating)
	ratings.GET("/store/:storeId", ratingHandler.StoreRatings)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
