package http_room

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/reelmatch/core/internal/delivery/http/common"
	http_auth_middleware "github.com/reelmatch/core/internal/delivery/http/middleware/auth"
	"github.com/reelmatch/core/internal/model"
	usecase_room "github.com/reelmatch/core/internal/usecase/room"
)

// Distributor is the piece of the realtime layer this controller needs:
// hand over an envelope, never hear back.
type Distributor interface {
	Publish(ctx context.Context, env model.EventEnvelope)
}

type Controller struct {
	usecase     *usecase_room.Usecase
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
	usecase *usecase_room.Usecase,
	distributor Distributor,
	auth *http_auth_middleware.Middleware,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		usecase:     usecase,
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
	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.GET("/:room_id/status", c.status)
		rooms.POST("/:room_id/members", c.join)

		authed := rooms.Group("", c.auth.UserRequired())
		{
			authed.DELETE("/:room_id/members/me", c.leave)
			authed.PATCH("/:room_id/status", c.changeStatus)
			authed.PATCH("/:room_id/settings", c.updateSettings)
			authed.PATCH("/:room_id/theme", c.updateTheme)
			authed.POST("/:room_id/roles", c.assignRole)
			authed.POST("/:room_id/moderation", c.moderate)
			authed.DELETE("/:room_id", c.free)
		}
	}
}

type CreateResponseDTO struct {
	RoomCode string `json:"room_code"`
}

func (c *Controller) create(ctx *gin.Context) {
	roomCode, hostToken, err := c.usecase.Create(ctx)
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_room.ErrRoomsUnavailable):
			ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
				Message: "unavailable",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Header("X-user-token", hostToken)
	ctx.JSON(http.StatusCreated, CreateResponseDTO{
		RoomCode: roomCode,
	})
}

type StatusResponseDTO struct {
	Status string `json:"status"`
}

func (c *Controller) status(ctx *gin.Context) {
	code := ctx.Param("room_id")

	status, err := c.usecase.Status(ctx, code)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, StatusResponseDTO{Status: status})
}

type JoinResponseDTO struct {
	UserToken   string `json:"user_token"`
	ActiveCount int    `json:"active_count"`
}

func (c *Controller) join(ctx *gin.Context) {
	code := ctx.Param("room_id")

	var userID *string
	if t := ctx.GetHeader("X-user-token"); t != "" {
		userID = &t
	}

	memberID, count, err := c.usecase.Join(ctx, code, userID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	c.publishMemberStatus(code, memberID, "joined", count)

	ctx.Header("X-user-token", memberID)
	ctx.JSON(http.StatusCreated, JoinResponseDTO{
		UserToken:   memberID,
		ActiveCount: count,
	})
}

func (c *Controller) leave(ctx *gin.Context) {
	code := ctx.Param("room_id")
	userID := ctx.GetString(http_auth_middleware.ContextUserKey)

	count, err := c.usecase.Leave(ctx, code, userID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	c.publishMemberStatus(code, userID, "left", count)

	ctx.Status(http.StatusNoContent)
}

type ChangeStatusRequestDTO struct {
	Action string `json:"action" binding:"required,oneof=start reset"`
}

func (c *Controller) changeStatus(ctx *gin.Context) {
	code := ctx.Param("room_id")
	userID := ctx.GetString(http_auth_middleware.ContextUserKey)

	var req ChangeStatusRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	var err error
	var phase string
	switch req.Action {
	case "start":
		err = c.usecase.Start(ctx, code, userID)
		phase = "voting_started"
	case "reset":
		err = c.usecase.Reset(ctx, code, userID)
		phase = "voting_reset"
	}
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	if env, err := model.NewEnvelope(model.EventScheduleEvent, code, model.ScheduleEventPayload{
		Phase: phase,
	}); err == nil {
		c.distributor.Publish(context.Background(), env)
	}

	ctx.Status(http.StatusOK)
}

type SettingsRequestDTO struct {
	Genres     []string `json:"genres"`
	MinYear    int      `json:"min_year"`
	MaxRuntime int      `json:"max_runtime"`
}

func (c *Controller) updateSettings(ctx *gin.Context) {
	code := ctx.Param("room_id")
	userID := ctx.GetString(http_auth_middleware.ContextUserKey)

	var req SettingsRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	filter := model.ContentFilter{
		Genres:     req.Genres,
		MinYear:    req.MinYear,
		MaxRuntime: req.MaxRuntime,
	}

	if err := c.usecase.UpdateSettings(ctx, code, userID, filter); err != nil {
		c.respondError(ctx, err)
		return
	}

	if env, err := model.NewEnvelope(model.EventSettingsChange, code, model.SettingsChangePayload{
		Genres:     req.Genres,
		MinYear:    req.MinYear,
		MaxRuntime: req.MaxRuntime,
	}); err == nil {
		c.distributor.Publish(context.Background(), env)
	}

	ctx.Status(http.StatusOK)
}

type ThemeRequestDTO struct {
	Theme string `json:"theme" binding:"required"`
}

func (c *Controller) updateTheme(ctx *gin.Context) {
	code := ctx.Param("room_id")
	userID := ctx.GetString(http_auth_middleware.ContextUserKey)

	var req ThemeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	// The theme rides on the genre filter; a themed night is a genre list.
	if err := c.usecase.UpdateSettings(ctx, code, userID, model.ContentFilter{
		Genres: []string{req.Theme},
	}); err != nil {
		c.respondError(ctx, err)
		return
	}

	if env, err := model.NewEnvelope(model.EventThemeChange, code, model.ThemeChangePayload{
		Theme: req.Theme,
	}); err == nil {
		c.distributor.Publish(context.Background(), env)
	}

	ctx.Status(http.StatusOK)
}

type AssignRoleRequestDTO struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role" binding:"required,oneof=HOST MEMBER"`
}

func (c *Controller) assignRole(ctx *gin.Context) {
	code := ctx.Param("room_id")
	actorID := ctx.GetString(http_auth_middleware.ContextUserKey)

	var req AssignRoleRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	if err := c.usecase.AssignRole(ctx, code, actorID, req.UserID, req.Role); err != nil {
		c.respondError(ctx, err)
		return
	}

	if env, err := model.NewEnvelope(model.EventRoleAssignment, code, model.RoleAssignmentPayload{
		UserID: req.UserID,
		Role:   req.Role,
	}); err == nil {
		c.distributor.Publish(context.Background(), env)
	}

	ctx.Status(http.StatusOK)
}

type ModerationRequestDTO struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Action string `json:"action" binding:"required,oneof=kick"`
	Reason string `json:"reason"`
}

func (c *Controller) moderate(ctx *gin.Context) {
	code := ctx.Param("room_id")
	actorID := ctx.GetString(http_auth_middleware.ContextUserKey)

	var req ModerationRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	count, err := c.usecase.Kick(ctx, code, actorID, req.UserID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	if env, err := model.NewEnvelope(model.EventModerationAction, code, model.ModerationActionPayload{
		ActorID:  actorID,
		TargetID: req.UserID,
		Action:   req.Action,
		Reason:   req.Reason,
	}); err == nil {
		c.distributor.Publish(context.Background(), env)
	}

	c.publishMemberStatus(code, req.UserID, "left", count)

	ctx.Status(http.StatusOK)
}

func (c *Controller) free(ctx *gin.Context) {
	code := ctx.Param("room_id")
	userID := ctx.GetString(http_auth_middleware.ContextUserKey)

	isHost, err := c.usecase.IsHost(ctx, code, userID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	if !isHost {
		c.respondError(ctx, usecase_room.ErrNotHost)
		return
	}

	if err := c.usecase.Free(ctx, code); err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) publishMemberStatus(code, userID, status string, activeCount int) {
	env, err := model.NewEnvelope(model.EventMemberStatus, code, model.MemberStatusPayload{
		UserID:      userID,
		Status:      status,
		ActiveCount: activeCount,
	})
	if err != nil {
		c.logger.Error("failed to build member status envelope", slog.String("error", err.Error()))
		return
	}
	c.distributor.Publish(context.Background(), env)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	c.logger.Error("room operation failed", slog.String("error", err.Error()))
	switch {
	case errors.Is(err, usecase_room.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
	case errors.Is(err, usecase_room.ErrNotHost):
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
			Message: "host only",
		})
	case errors.Is(err, usecase_room.ErrInvalidTransition):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "invalid status transition",
		})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}
