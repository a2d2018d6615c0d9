package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kazeyhaya/orkcord/internal/domain"
	"github.com/Kazeyhaya/orkcord/internal/history"
	"github.com/Kazeyhaya/orkcord/internal/repository"
	"github.com/Kazeyhaya/orkcord/internal/service"
	"github.com/Kazeyhaya/orkcord/pkg/log"
	"github.com/Kazeyhaya/orkcord/pkg/response"
)

// HTTPHandler serves the read-only history endpoint, the feed endpoints, and
// the content mutation endpoints.
type HTTPHandler struct {
	historyLog history.Log
	feeds      service.FeedService
	posts      service.PostService
	social     service.SocialService
}

func NewHTTPHandler(historyLog history.Log, feeds service.FeedService, posts service.PostService, social service.SocialService) *HTTPHandler {
	return &HTTPHandler{
		historyLog: historyLog,
		feeds:      feeds,
		posts:      posts,
		social:     social,
	}
}

func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/history", h.GetHistory)

		api.GET("/feed", h.GetPersonalizedFeed)
		api.GET("/feed/global", h.GetGlobalFeed)

		api.POST("/posts", h.CreatePost)
		api.POST("/posts/:id/like", h.LikePost)
		api.DELETE("/posts/:id/like", h.UnlikePost)
		api.POST("/posts/:id/comments", h.AddComment)

		api.POST("/users/:user_id/follow", h.Follow)
		api.DELETE("/users/:user_id/follow", h.Unfollow)
	}

	r.GET("/health", h.HealthCheck)
}

// GetHistory handles GET /api/v1/history?channel=X.
func (h *HTTPHandler) GetHistory(c *gin.Context) {
	channel := strings.TrimSpace(c.Query("channel"))
	if channel == "" {
		response.BadRequest(c, "channel is required")
		return
	}

	msgs, err := h.historyLog.Recent(c.Request.Context(), channel)
	if err != nil {
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Str(log.FieldChannel, channel).Msg("history read failed")
		response.InternalError(c, "failed to read history")
		return
	}

	out := make([]domain.MessageOut, 0, len(msgs))
	for _, m := range msgs {
		msg := domain.NewMessageOut(m)
		msg.Type = ""
		out = append(out, msg)
	}

	response.Success(c, gin.H{
		"channel":  channel,
		"messages": out,
	})
}

// GetPersonalizedFeed handles GET /api/v1/feed?user=X&limit=N.
func (h *HTTPHandler) GetPersonalizedFeed(c *gin.Context) {
	user := strings.TrimSpace(c.Query("user"))
	if user == "" {
		response.BadRequest(c, "user is required")
		return
	}

	posts, err := h.feeds.PersonalizedFeed(c.Request.Context(), user, parseLimit(c))
	if err != nil {
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Str(log.FieldUser, user).Msg("personalized feed failed")
		response.InternalError(c, "failed to assemble feed")
		return
	}

	response.Success(c, gin.H{"posts": posts})
}

// GetGlobalFeed handles GET /api/v1/feed/global?limit=N.
func (h *HTTPHandler) GetGlobalFeed(c *gin.Context) {
	posts, err := h.feeds.GlobalFeed(c.Request.Context(), parseLimit(c))
	if err != nil {
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("global feed failed")
		response.InternalError(c, "failed to assemble feed")
		return
	}

	response.Success(c, gin.H{"posts": posts})
}

type createPostRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// CreatePost handles POST /api/v1/posts.
func (h *HTTPHandler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), req.Author, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.BadRequest(c, err.Error())
			return
		}
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("create post failed")
		response.InternalError(c, "failed to create post")
		return
	}

	response.Created(c, post)
}

// LikePost handles POST /api/v1/posts/:id/like.
func (h *HTTPHandler) LikePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	likes, err := h.posts.Like(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Uint("post_id", id).Msg("like failed")
		response.InternalError(c, "failed to like post")
		return
	}

	response.Success(c, gin.H{"likes": likes})
}

// UnlikePost handles DELETE /api/v1/posts/:id/like.
func (h *HTTPHandler) UnlikePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	likes, err := h.posts.Unlike(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Uint("post_id", id).Msg("unlike failed")
		response.InternalError(c, "failed to unlike post")
		return
	}

	response.Success(c, gin.H{"likes": likes})
}

type addCommentRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// AddComment handles POST /api/v1/posts/:id/comments.
func (h *HTTPHandler) AddComment(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	comment, err := h.posts.AddComment(c.Request.Context(), id, req.Author, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			response.BadRequest(c, err.Error())
		case errors.Is(err, repository.ErrPostNotFound):
			response.NotFound(c, "post not found")
		default:
			l := log.Ctx(c.Request.Context())
			l.Error().Err(err).Uint("post_id", id).Msg("add comment failed")
			response.InternalError(c, "failed to add comment")
		}
		return
	}

	response.Created(c, comment)
}

type followRequest struct {
	Follower string `json:"follower"`
}

// Follow handles POST /api/v1/users/:user_id/follow.
func (h *HTTPHandler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.social.Follow(c.Request.Context(), req.Follower, c.Param("user_id")); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			response.BadRequest(c, "cannot follow yourself")
		case errors.Is(err, service.ErrValidation):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "failed to follow user")
		}
		return
	}

	response.Created(c, gin.H{"message": "followed"})
}

// Unfollow handles DELETE /api/v1/users/:user_id/follow.
func (h *HTTPHandler) Unfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.social.Unfollow(c.Request.Context(), req.Follower, c.Param("user_id")); err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "failed to unfollow user")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseLimit(c *gin.Context) int {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return 0
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return 0
	}
	return limit
}

func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return 0, false
	}
	return uint(id), true
}
