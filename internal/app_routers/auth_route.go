package approuters

import (
	"github.com/michellexliu/journly/internal/configuration"

	"github.com/gin-gonic/gin"
)

// AuthRouters mounts the public routes: home, local login/registration and
// the Google OAuth flow.
func AuthRouters(router *gin.Engine, container *configuration.Container) {
	h := container.AuthHandler

	router.GET("/", h.Home)
	router.GET("/login", h.LoginForm)
	router.POST("/login", h.Login)
	router.GET("/register", h.RegisterForm)
	router.POST("/register", h.Register)
	router.GET("/auth/google", h.GoogleLogin)
	router.GET("/auth/google/secrets", h.GoogleCallback)
}
