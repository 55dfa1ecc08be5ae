package utils

import "github.com/gin-gonic/gin"

// CurrentUserID returns the staff id the auth middleware stored on the
// context, or 0 when the request never passed authentication.
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get("userId"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
