package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stash/internal/config"
	apperrors "stash/internal/errors"
	"stash/internal/services"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "stash_session"

// SetSessionCookie writes the session cookie. HttpOnly keeps the token
// away from scripts; the max age mirrors the configured session TTL.
func SetSessionCookie(c *gin.Context, token string) {
	maxAge := int(config.Get().SessionTTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", false, true)
}

// ClearSessionCookie removes the session cookie from the client.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// SessionAuth verifies the session cookie against the server-side
// session store and sets the resolved user in the context. Requests
// without a valid, live session are rejected with a 401 response.
func SessionAuth(sessions services.SessionServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
				"code":    apperrors.ErrUnauthorized.Code,
				"message": apperrors.ErrUnauthorized.Message,
			}})
			c.Abort()
			return
		}

		user, err := sessions.Resolve(token)
		if err != nil {
			appErr := apperrors.ErrUnauthorized
			var resolved *apperrors.AppError
			if errors.As(err, &resolved) && resolved.StatusCode == http.StatusUnauthorized {
				appErr = resolved
			}
			c.JSON(appErr.StatusCode, gin.H{"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			}})
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("email", user.Email)
		c.Next()
	}
}
