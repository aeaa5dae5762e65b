package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storerate/internal/query"
	"storerate/internal/repository"
	"storerate/internal/service"
	"storerate/internal/validation"
)

// AdminHandler handles the admin-only endpoints.
type AdminHandler struct {
	adminService service.AdminService
	storeService service.StoreService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService, storeService service.StoreService) *AdminHandler {
	return &AdminHandler{adminService: adminService, storeService: storeService}
}

// CreateUserRequest represents an admin user-creation request.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Address  string `json:"address"`
	Role     string `json:"role" validate:"required"`
}

// Dashboard godoc
// @Summary Aggregate counts for the admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.adminService.DashboardStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": stats})
}

// CreateUser godoc
// @Summary Create a user with an admin or user role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ValidationError
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validation.AdminCreateUserInput(req.Name, req.Email, req.Password, req.Address, req.Role); err != nil {
		return respondError(c, err)
	}

	user, err := h.adminService.CreateUser(c.Request().Context(), req.Name, req.Email, req.Password, req.Address, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// ListUsers godoc
// @Summary Filtered, sorted, paginated user listing
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name substring filter"
// @Param email query string false "Email substring filter"
// @Param address query string false "Address substring filter"
// @Param role query string false "Exact role filter"
// @Param sortBy query string false "Sort key"
// @Param sortOrder query string false "ASC or DESC"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} map[string]interface{}
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	filter := repository.UserFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
		Role:    c.QueryParam("role"),
	}
	params := listQuery(c, query.UserSort)

	users, pagination, err := h.adminService.ListUsers(c.Request().Context(), filter, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users":      users,
		"pagination": pagination,
	})
}

// GetUser godoc
// @Summary User detail with the owned-store summary
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.adminService.GetUserDetail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": detail})
}

// ListStores godoc
// @Summary Filtered, sorted, paginated store listing with aggregates
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name substring filter"
// @Param email query string false "Email substring filter"
// @Param address query string false "Address substring filter"
// @Param sortBy query string false "Sort key (rating sorts by average)"
// @Param sortOrder query string false "ASC or DESC"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} map[string]interface{}
// @Router /admin/stores [get]
func (h *AdminHandler) ListStores(c echo.Context) error {
	filter := repository.StoreFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
	}
	params := listQuery(c, query.AdminStoreSort)

	stores, pagination, err := h.storeService.ListAdmin(c.Request().Context(), filter, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stores":     stores,
		"pagination": pagination,
	})
}
