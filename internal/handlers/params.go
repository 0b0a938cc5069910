package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// pageParams reads the skip/limit query pair, defaulting to skip=0 limit=100.
func pageParams(c *gin.Context) (int, int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	return skip, limit
}
