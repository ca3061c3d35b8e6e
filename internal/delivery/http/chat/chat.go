package http_chat

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/reelmatch/core/internal/delivery/http/common"
	http_auth_middleware "github.com/reelmatch/core/internal/delivery/http/middleware/auth"
	"github.com/reelmatch/core/internal/model"
	usecase_suggestion "github.com/reelmatch/core/internal/usecase/suggestion"
)

const maxMessageLen = 500

type Distributor interface {
	Publish(ctx context.Context, env model.EventEnvelope)
}

// Controller fans chat messages and content suggestions into the realtime
// layer. Messages are not persisted; a room chat dies with its room.
type Controller struct {
	suggestions *usecase_suggestion.Usecase
	distributor Distributor
	auth        *http_auth_middleware.Middleware
	logger      *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	suggestions *usecase_suggestion.Usecase,
	distributor Distributor,
	auth *http_auth_middleware.Middleware,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		suggestions: suggestions,
		distributor: distributor,
		auth:        auth,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms", c.auth.UserRequired())
	{
		rooms.POST("/:room_id/messages", c.postMessage)
		rooms.POST("/:room_id/suggestions", c.postSuggestions)
	}
}

type MessageRequestDTO struct {
	Text string `json:"text" binding:"required"`
}

func (c *Controller) postMessage(ctx *gin.Context) {
	code := ctx.Param("room_id")
	userID := ctx.GetString(http_auth_middleware.ContextUserKey)

	var req MessageRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil || len(req.Text) > maxMessageLen {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	env, err := model.NewEnvelope(model.EventChatMessage, code, model.ChatMessagePayload{
		UserID: userID,
		Text:   req.Text,
	})
	if err != nil {
		c.logger.Error("failed to build chat envelope", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}
	c.distributor.Publish(context.Background(), env)

	ctx.Status(http.StatusAccepted)
}

type SuggestionsRequestDTO struct {
	Source  string   `json:"source"`
	ItemIDs []string `json:"item_ids" binding:"required,min=1,dive,uuid"`
}

type SuggestionsResponseDTO struct {
	Accepted []string `json:"accepted"`
}

func (c *Controller) postSuggestions(ctx *gin.Context) {
	code := ctx.Param("room_id")

	var req SuggestionsRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	itemIDs := make([]uuid.UUID, 0, len(req.ItemIDs))
	for _, id := range req.ItemIDs {
		itemUUID, err := uuid.Parse(id)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid request body",
			})
			return
		}
		itemIDs = append(itemIDs, itemUUID)
	}

	_, fresh, err := c.suggestions.Suggest(ctx, code, itemIDs)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	accepted := make([]string, 0, len(fresh))
	for _, id := range fresh {
		accepted = append(accepted, id.String())
	}

	if len(accepted) > 0 {
		source := req.Source
		if source == "" {
			source = "member"
		}
		if env, err := model.NewEnvelope(model.EventContentSuggestion, code, model.ContentSuggestionPayload{
			Source: source,
			Items:  accepted,
		}); err == nil {
			c.distributor.Publish(context.Background(), env)
		}
	}

	ctx.JSON(http.StatusOK, SuggestionsResponseDTO{Accepted: accepted})
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	c.logger.Error("suggestion operation failed", slog.String("error", err.Error()))
	switch {
	case errors.Is(err, usecase_suggestion.ErrRoomNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "room not found",
		})
	case errors.Is(err, usecase_suggestion.ErrRoomNotAccepting):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "room does not accept suggestions",
		})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}
