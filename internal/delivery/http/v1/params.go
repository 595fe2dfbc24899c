package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

// sessionUserID reads the authenticated user id set by the auth middleware.
func sessionUserID(c *gin.Context) int64 {
	return c.GetInt64(string(domain.KeyUserID))
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + name)
	}
	return id, nil
}

// pageParams reads ?page and ?limit with defaults.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}
