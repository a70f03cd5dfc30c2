package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/torann10/flowboard-sub000/internal/constants"
)

// PaginationParams is a sanitized page/limit pair taken from query params.
type PaginationParams struct {
	Page  int
	Limit int
}

// GetPaginationParams reads `page` and `limit` query parameters, clamping
// out-of-range or unparseable values to the configured defaults.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))
	if limit < 1 || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{Page: page, Limit: limit}
}
