package handler

import (
	"net/http"

	"github.com/michellexliu/journly/internal/model"
	"github.com/michellexliu/journly/internal/repo"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserKey  = "user_id"
	sessionStateKey = "oauth_state"
	contextUserKey  = "current_user"
)

// RequireUser is the auth gate: it resolves the session to a user and puts
// it in the request context, or redirects to /login and stops the chain.
// The redirect is terminal; no handler body runs without a user.
func RequireUser(users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, _ := session.Get(sessionUserKey).(string)
		if id == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			// Stale or malformed session: drop it and start over.
			session.Clear()
			_ = session.Save()
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by RequireUser. Only valid on
// routes behind the gate.
func CurrentUser(c *gin.Context) *model.User {
	user, _ := c.MustGet(contextUserKey).(*model.User)
	return user
}

func loginSession(c *gin.Context, user *model.User) error {
	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID.Hex())
	return session.Save()
}

func isAuthenticated(c *gin.Context) bool {
	id, _ := sessions.Default(c).Get(sessionUserKey).(string)
	return id != ""
}
