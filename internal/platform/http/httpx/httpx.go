// Package httpx holds small request helpers shared by the feature handlers.
package httpx

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"emergy_api/internal/shared/apperr"
)

// PathID parses the named path parameter as a positive integer id.
func PathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, apperr.Malformed(fmt.Sprintf("%s must be a positive integer, got %q", name, raw))
	}
	return uint(id), nil
}

// Location returns the URI of a resource created under the current request path.
func Location(c *gin.Context, id uint) string {
	return fmt.Sprintf("%s/%d", c.Request.URL.Path, id)
}
