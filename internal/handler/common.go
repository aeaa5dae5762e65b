package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "storerate/internal/errors"
	"storerate/internal/query"
)

// respondError translates domain errors into JSON error responses.
// Validation failures carry the per-field list; everything else goes
// through the central HTTP mapping.
func respondError(c echo.Context, err error) error {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, validationErr)
	}
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// listQuery pulls the sort/page/limit controls out of the query string
// and normalizes them against the entity's allow-list.
func listQuery(c echo.Context, m query.SortMap) query.ListParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return query.Normalize(m, c.QueryParam("sortBy"), c.QueryParam("sortOrder"), page, limit)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_PARAM",
		})
	}
	return uint(id), nil
}
