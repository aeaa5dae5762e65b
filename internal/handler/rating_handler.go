package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storerate/internal/auth"
	"storerate/internal/query"
	"storerate/internal/service"
	"storerate/internal/validation"
)

// RatingHandler handles rating endpoints.
type RatingHandler struct {
	ratingService service.RatingService
}

// NewRatingHandler creates a new rating handler.
func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// SubmitRatingRequest represents a rating submission.
type SubmitRatingRequest struct {
	StoreID uint `json:"storeId" validate:"required"`
	Rating  int  `json:"rating" validate:"required"`
}

// Submit godoc
// @Summary Submit or update a rating for a store
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitRatingRequest true "Store ID and rating"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ValidationError
// @Failure 404 {object} errors.ErrorResponse
// @Router /ratings [post]
func (h *RatingHandler) Submit(c echo.Context) error {
	var req SubmitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validation.Rating(req.StoreID, req.Rating); err != nil {
		return respondError(c, err)
	}

	identity := auth.IdentityFromContext(c)
	rating, err := h.ratingService.Submit(c.Request().Context(), identity.UserID, req.StoreID, req.Rating)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Rating submitted successfully",
		"rating":  rating,
	})
}

// MyRating godoc
// @Summary The caller's own rating for a store
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param storeId path int true "Store ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /ratings/store/{storeId}/my-rating [get]
func (h *RatingHandler) MyRating(c echo.Context) error {
	storeID, err := pathID(c, "storeId")
	if err != nil {
		return err
	}

	identity := auth.IdentityFromContext(c)
	rating, err := h.ratingService.MyRating(c.Request().Context(), identity.UserID, storeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rating": rating})
}

// StoreRatings godoc
// @Summary Paginated ratings for a store with rater details
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param storeId path int true "Store ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /ratings/store/{storeId} [get]
func (h *RatingHandler) StoreRatings(c echo.Context) error {
	storeID, err := pathID(c, "storeId")
	if err != nil {
		return err
	}

	// Ratings always list newest first; only page/limit vary here.
	params := listQuery(c, query.SortMap{
		Columns:      map[string]string{"created_at": "ratings.created_at"},
		DefaultKey:   "created_at",
		DefaultOrder: "DESC",
	})

	ratings, pagination, err := h.ratingService.ListForStore(c.Request().Context(), storeID, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ratings":    ratings,
		"pagination": pagination,
	})
}
