package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"venue_ops_backend/pkg/utils"
)

// parseIDParam reads a positive int64 path parameter, responding with a 400
// on failure. The bool result reports whether parsing succeeded.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" format.", c.Param(name)))
		return 0, false
	}
	return id, true
}

// parsePagination reads page/page_size query parameters with defaults.
func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// parseOptionalInt64Query reads an optional int64 query parameter. A
// malformed value responds with a 400 and returns ok=false.
func parseOptionalInt64Query(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" format.", raw))
		return nil, false
	}
	return &id, true
}

// listResponse is the envelope for paginated collections.
func listResponse(items interface{}, total, page, pageSize int) gin.H {
	return gin.H{
		"data":        items,
		"total_count": total,
		"page":        page,
		"page_size":   pageSize,
	}
}
