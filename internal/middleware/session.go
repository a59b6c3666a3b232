package middleware

import (
	"net/http"

	"github.com/AlexBrence/TODO-list-app/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

const (
	// SessionCookie is the name of the cookie carrying the signed session
	// token.
	SessionCookie = "session"

	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// Session resolves the session cookie into a user identity on the request
// context. It never aborts: missing, expired, or tampered tokens simply leave
// the request anonymous.
func Session(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := auth.ParseSession(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserID, session.UserID)
		c.Set(ContextUsername, session.Username)
		c.Next()
	}
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			c.Redirect(http.StatusSeeOther, "/login/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, if any.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
