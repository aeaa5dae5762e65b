package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storerate/internal/auth"
	"storerate/internal/query"
	"storerate/internal/repository"
	"storerate/internal/service"
	"storerate/internal/validation"
)

// StoreHandler handles store endpoints.
type StoreHandler struct {
	storeService service.StoreService
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(storeService service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// CreateStoreRequest represents the combined store + owner creation request.
type CreateStoreRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required"`
	Address       string `json:"address"`
	OwnerName     string `json:"ownerName" validate:"required"`
	OwnerPassword string `json:"ownerPassword" validate:"required"`
}

// CreateStore godoc
// @Summary Create a store and its owner account atomically
// @Tags stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateStoreRequest true "Store and owner data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ValidationError
// @Failure 409 {object} errors.ErrorResponse
// @Router /stores [post]
func (h *StoreHandler) CreateStore(c echo.Context) error {
	var req CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validation.CreateStoreInput(req.Name, req.Email, req.Address, req.OwnerName, req.OwnerPassword); err != nil {
		return respondError(c, err)
	}

	store, err := h.storeService.CreateStore(c.Request().Context(), req.Name, req.Email, req.Address, req.OwnerName, req.OwnerPassword)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Store created successfully",
		"store":   store,
	})
}

// ListStores godoc
// @Summary Browsable store listing with the caller's own ratings
// @Tags stores
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name substring filter"
// @Param address query string false "Address substring filter"
// @Param sortBy query string false "Sort key (name, address, rating)"
// @Param sortOrder query string false "ASC or DESC"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} map[string]interface{}
// @Router /stores [get]
func (h *StoreHandler) ListStores(c echo.Context) error {
	identity := auth.IdentityFromContext(c)
	filter := repository.StoreFilter{
		Name:    c.QueryParam("name"),
		Address: c.QueryParam("address"),
	}
	params := listQuery(c, query.BrowseStoreSort)

	stores, pagination, err := h.storeService.ListForUser(c.Request().Context(), identity.UserID, filter, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stores":     stores,
		"pagination": pagination,
	})
}

// GetStore godoc
// @Summary Store detail with aggregate rating
// @Tags stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /stores/{id} [get]
func (h *StoreHandler) GetStore(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	// Anonymous callers get the aggregate only; authenticated ones also
	// get their own rating.
	var userID uint
	if identity := auth.IdentityFromContext(c); identity != nil {
		userID = identity.UserID
	}

	store, err := h.storeService.GetDetail(c.Request().Context(), id, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"store": store})
}

// OwnerDashboard godoc
// @Summary Owned store's ratings and average for store owners
// @Tags stores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.OwnerDashboard
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stores/owner/dashboard [get]
func (h *StoreHandler) OwnerDashboard(c echo.Context) error {
	identity := auth.IdentityFromContext(c)
	dashboard, err := h.storeService.OwnerDashboard(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
