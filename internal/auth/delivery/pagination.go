package delivery

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// Page reads ?limit= and ?offset= for list endpoints. Limit is clamped to
// 1..100 (default 50) and offset is never negative.
func Page(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = defaultPageLimit
	}
	limit = max(1, min(limit, maxPageLimit))

	offset, _ = strconv.Atoi(c.Query("offset"))
	return limit, max(offset, 0)
}
