package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/michellexliu/journly/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

type AuthHandler interface {
	Home(c *gin.Context)
	LoginForm(c *gin.Context)
	Login(c *gin.Context)
	RegisterForm(c *gin.Context)
	Register(c *gin.Context)
	Logout(c *gin.Context)
	GoogleLogin(c *gin.Context)
	GoogleCallback(c *gin.Context)
}

type authHandler struct {
	service     service.AuthService
	oauth       *oauth2.Config
	userinfoURL string
	logger      *zap.Logger
}

func NewAuthHandler(service service.AuthService, oauth *oauth2.Config, logger *zap.Logger) AuthHandler {
	return &authHandler{
		service:     service,
		oauth:       oauth,
		userinfoURL: googleUserinfoURL,
		logger:      logger,
	}
}

func (h *authHandler) Home(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/posts")
		return
	}
	c.HTML(http.StatusOK, "home.tmpl", gin.H{})
}

func (h *authHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{"Error": false})
}

// Login authenticates local credentials. Bad credentials re-render the
// form with a bare error flag; the response never says what was wrong.
func (h *authHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.service.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.tmpl", gin.H{"Error": true})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{})
		return
	}

	if err := loginSession(c, user); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{})
		return
	}
	c.Redirect(http.StatusFound, "/posts")
}

func (h *authHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", gin.H{"Error": false})
}

// Register creates an account and logs it in. A taken username re-renders
// the form with the error flag set; no duplicate account is ever created.
func (h *authHandler) Register(c *gin.Context) {
	input := service.RegisterInput{
		Username:  c.PostForm("username"),
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Password:  c.PostForm("password"),
	}

	user, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrMissingFields):
			c.HTML(http.StatusConflict, "register.tmpl", gin.H{"Error": true})
		default:
			h.logger.Error("registration failed", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{})
		}
		return
	}

	if err := loginSession(c, user); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{})
		return
	}
	c.Redirect(http.StatusFound, "/posts")
}

func (h *authHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.logger.Error("failed to destroy session", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/")
}

// GoogleLogin starts the OAuth flow. The state nonce lives in the session
// and is checked by the callback.
func (h *authHandler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	session := sessions.Default(c)
	session.Set(sessionStateKey, state)
	if err := session.Save(); err != nil {
		h.logger.Error("failed to save oauth state", zap.Error(err))
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state))
}

// GoogleCallback finishes the OAuth flow: verify state, exchange the code,
// fetch the profile, find-or-create the account, log in. Every failure
// path lands back on /login.
func (h *authHandler) GoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	wantState, _ := session.Get(sessionStateKey).(string)
	session.Delete(sessionStateKey)
	_ = session.Save()

	if wantState == "" || c.Query("state") != wantState {
		h.logger.Warn("oauth state mismatch")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	token, err := h.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("oauth code exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	profile, err := h.fetchProfile(c.Request.Context(), token)
	if err != nil {
		h.logger.Error("failed to fetch google profile", zap.Error(err))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.service.FindOrCreateGoogleUser(c.Request.Context(), profile.Sub, profile.GivenName, profile.FamilyName)
	if err != nil {
		h.logger.Error("failed to resolve google user", zap.Error(err))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := loginSession(c, user); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/posts")
}

type googleProfile struct {
	Sub        string `json:"sub"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

func (h *authHandler) fetchProfile(ctx context.Context, token *oauth2.Token) (*googleProfile, error) {
	resp, err := h.oauth.Client(ctx, token).Get(h.userinfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.Sub == "" {
		return nil, errors.New("userinfo response missing subject")
	}
	return &profile, nil
}
