package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"mangahub/internal/errors"
)

const defaultPageSize = 20

// respondError translates a domain error into the standard error envelope.
func respondError(c echo.Context, err error) error {
	he := errors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}

// pageParams extracts offset/limit from ?page and ?per_page.
func pageParams(c echo.Context) (offset, limit int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = defaultPageSize
	}
	return (page - 1) * perPage, perPage
}
