package http

import (
	"errors"
	"net/http"

	"shop-backend/internal/services"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

const cookieName = "token"

func (h *Handler) RequireAuth(c *gin.Context) {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access Denied"})
		return
	}

	userID, err := h.tokens.Parse(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Token"})
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

// RequireAdmin checks the role on the stored user record, not the claim, so
// a revoked admin loses access as soon as the record changes.
func (h *Handler) RequireAdmin(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}
	if !user.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access forbidden: Admins only"})
		return
	}
	c.Next()
}

func currentUserID(c *gin.Context) uint64 {
	v, _ := c.Get(userIDKey)
	id, _ := v.(uint64)
	return id
}
