package approuters

import (
	"github.com/michellexliu/journly/internal/configuration"
	"github.com/michellexliu/journly/internal/handler"

	"github.com/gin-gonic/gin"
)

// JournalRouters mounts every route behind the auth gate. Logout lives
// here too: destroying a session requires having one.
func JournalRouters(router *gin.Engine, container *configuration.Container) {
	h := container.JournalHandler

	authed := router.Group("/", handler.RequireUser(container.Users))
	{
		authed.GET("/posts", h.ListPosts)
		authed.GET("/posts/:postId", h.PostDetail)
		authed.GET("/compose", h.ComposeForm)
		authed.POST("/compose", h.Compose)
		authed.GET("/insights", h.Insights)
		authed.GET("/logout", container.AuthHandler.Logout)
	}
}
