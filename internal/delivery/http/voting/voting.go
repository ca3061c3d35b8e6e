package http_voting

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
	usecase_vote "github.com/reelmatch/core/internal/usecase/vote"
)

type Distributor interface {
	Publish(ctx context.Context, env model.EventEnvelope)
}

type Controller struct {
	usecase     *usecase_vote.Usecase
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
	usecase *usecase_vote.Usecase,
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
		rooms.POST("/:room_id/votes", c.auth.UserRequired(), c.submit)
		rooms.GET("/:room_id/results", c.results)
	}
}

type SubmitRequestDTO struct {
	ItemID   string `json:"item_id" binding:"required,uuid"`
	VoteType string `json:"vote_type" binding:"required,oneof=LIKE DISLIKE"`
}

type SubmitResponseDTO struct {
	Accepted      bool    `json:"accepted"`
	CurrentLikes  int     `json:"current_likes"`
	RequiredVotes int     `json:"required_votes"`
	MatchFound    bool    `json:"match_found"`
	MatchedItem   *string `json:"matched_item,omitempty"`
}

func (c *Controller) submit(ctx *gin.Context) {
	code := ctx.Param("room_id")
	userID := ctx.GetString(http_auth_middleware.ContextUserKey)

	var req SubmitRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	itemUUID, err := uuid.Parse(req.ItemID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid user token",
		})
		return
	}

	receipt, err := c.usecase.Submit(ctx, code, itemUUID, userUUID, req.VoteType)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	c.publishVote(code, userID, req.ItemID, req.VoteType, receipt)
	if receipt.MatchFound {
		c.publishMatch(code, itemUUID)
	}

	resp := SubmitResponseDTO{
		Accepted:      receipt.Accepted,
		CurrentLikes:  receipt.CurrentLikes,
		RequiredVotes: receipt.RequiredVotes,
		MatchFound:    receipt.MatchFound,
	}
	if receipt.MatchedItem != nil {
		s := receipt.MatchedItem.String()
		resp.MatchedItem = &s
	}

	ctx.JSON(http.StatusOK, resp)
}

type ResultEntryDTO struct {
	ItemID     string `json:"item_id"`
	Title      string `json:"title"`
	PosterLink string `json:"poster_link,omitempty"`
	Likes      int    `json:"likes"`
}

func (c *Controller) results(ctx *gin.Context) {
	code := ctx.Param("room_id")

	results, err := c.usecase.Results(ctx, code)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	entries := make([]ResultEntryDTO, 0, len(results))
	for _, r := range results {
		entries = append(entries, ResultEntryDTO{
			ItemID:     r.MM.ID.String(),
			Title:      r.MM.Title,
			PosterLink: r.MM.PosterLink,
			Likes:      r.Likes,
		})
	}

	ctx.JSON(http.StatusOK, entries)
}

func (c *Controller) publishVote(code, userID, itemID string, vote model.VoteType, receipt model.Receipt) {
	var pct float64
	if receipt.RequiredVotes > 0 {
		pct = float64(receipt.CurrentLikes) / float64(receipt.RequiredVotes) * 100
	}

	env, err := model.NewEnvelope(model.EventVote, code, model.VotePayload{
		UserID:   userID,
		ItemID:   itemID,
		VoteType: vote,
		Progress: model.VoteProgress{
			Total:      receipt.CurrentLikes,
			Required:   receipt.RequiredVotes,
			Percentage: pct,
		},
	})
	if err != nil {
		c.logger.Error("failed to build vote envelope", slog.String("error", err.Error()))
		return
	}
	c.distributor.Publish(context.Background(), env)
}

func (c *Controller) publishMatch(code string, itemID uuid.UUID) {
	meta, participants, err := c.usecase.MatchDetails(context.Background(), code, itemID)
	if err != nil {
		c.logger.Error("failed to collect match details",
			slog.String("room_code", code),
			slog.String("error", err.Error()),
		)
		// A thin match beat no match at all.
		meta = &model.MovieMeta{ID: itemID}
	}

	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.String())
	}

	env, err := model.NewEnvelope(model.EventMatch, code, model.MatchPayload{
		ItemID:         itemID.String(),
		ItemTitle:      meta.Title,
		PosterLink:     meta.PosterLink,
		ParticipantIDs: ids,
		ConsensusType:  "unanimous",
	})
	if err != nil {
		c.logger.Error("failed to build match envelope", slog.String("error", err.Error()))
		return
	}
	c.distributor.Publish(context.Background(), env)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	c.logger.Error("vote operation failed", slog.String("error", err.Error()))
	switch {
	case errors.Is(err, usecase_vote.ErrRoomNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "room not found",
		})
	case errors.Is(err, usecase_vote.ErrRoomNotActive):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "room is not accepting votes",
		})
	case errors.Is(err, usecase_vote.ErrNotAMember):
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
			Message: "not a member of the room",
		})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}
