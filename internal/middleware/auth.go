package middleware

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/confessbox/confessbox/internal/constants"
	"github.com/confessbox/confessbox/internal/database"
	"github.com/confessbox/confessbox/internal/flash"
	"github.com/confessbox/confessbox/internal/models"
)

// CurrentUser copies the authenticated user id, if any, from the session
// into the request context. It never aborts: handlers that allow anonymous
// access simply see no user id.
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if userID := session.Get(constants.ContextKeyUserID); userID != nil {
			c.Set(constants.ContextKeyUserID, userID)
		}
		c.Next()
	}
}

// RequireOwner guards routes under /:username that belong to that user: the
// requester must be authenticated as exactly the user named in the URL. On
// success the resolved user is stored in the context for the handler.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, authenticated := GetUserID(c)
		if !authenticated {
			flash.Error(c, "/login", "Please log in to continue.")
			c.Abort()
			return
		}

		username := c.Param("username")
		var user models.User
		if err := database.GetDB().Where("username = ?", username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				flash.Error(c, "/", "User not found.")
			} else {
				flash.Error(c, "/", "Something went wrong. Please try again.")
			}
			c.Abort()
			return
		}

		if user.ID != userID {
			flash.Error(c, "/", "You are not allowed to view this page.")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProfileUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetProfileUser retrieves the user resolved by RequireOwner from context.
func GetProfileUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyProfileUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
