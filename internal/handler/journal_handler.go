package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/michellexliu/journly/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type JournalHandler interface {
	ListPosts(c *gin.Context)
	ComposeForm(c *gin.Context)
	Compose(c *gin.Context)
	PostDetail(c *gin.Context)
	Insights(c *gin.Context)
}

type journalHandler struct {
	service service.JournalService
	logger  *zap.Logger
}

func NewJournalHandler(service service.JournalService, logger *zap.Logger) JournalHandler {
	return &journalHandler{
		service: service,
		logger:  logger,
	}
}

func (h *journalHandler) ListPosts(c *gin.Context) {
	user := CurrentUser(c)
	c.HTML(http.StatusOK, "posts.tmpl", gin.H{
		"Name":  user.FirstName,
		"Posts": user.Posts,
	})
}

func (h *journalHandler) ComposeForm(c *gin.Context) {
	c.HTML(http.StatusOK, "compose.tmpl", gin.H{})
}

// Compose scores and appends a new entry. A persistence failure is a
// user-visible 500, not a silent redirect.
func (h *journalHandler) Compose(c *gin.Context) {
	user := CurrentUser(c)

	_, err := h.service.Compose(c.Request.Context(), user, c.PostForm("postBody"), c.PostForm("date"))
	if err != nil {
		h.logger.Error("failed to compose post", zap.String("userId", user.ID.Hex()), zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{})
		return
	}
	c.Redirect(http.StatusFound, "/posts")
}

func (h *journalHandler) PostDetail(c *gin.Context) {
	user := CurrentUser(c)

	post, err := h.service.PostByID(user, c.Param("postId"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.HTML(http.StatusNotFound, "notfound.tmpl", gin.H{})
			return
		}
		h.logger.Error("failed to load post", zap.String("postId", c.Param("postId")), zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{})
		return
	}

	c.HTML(http.StatusOK, "post.tmpl", gin.H{"Post": post})
}

// Insights renders the aggregate sentiment view. The chart series is
// embedded as JSON for the client-side chart.
func (h *journalHandler) Insights(c *gin.Context) {
	user := CurrentUser(c)
	insights := h.service.Insights(user)

	chartJSON, err := json.Marshal(insights.Chart)
	if err != nil {
		h.logger.Error("failed to encode chart data", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{})
		return
	}

	c.HTML(http.StatusOK, "insights.tmpl", gin.H{
		"Name":         user.FirstName,
		"HasData":      insights.HasData,
		"Average":      insights.Average,
		"MostPositive": insights.MostPositive,
		"MostNegative": insights.MostNegative,
		"ChartData":    string(chartJSON),
	})
}
