package http_realtime

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	notify_hybrid "github.com/reelmatch/core/internal/notify/hybrid"
)

// Controller exposes distribution-layer introspection for operators and
// for clients deciding which channel to listen on.
type Controller struct {
	distributor *notify_hybrid.Distributor
	logger      *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(distributor *notify_hybrid.Distributor, opts ...ControllerOption) *Controller {
	c := &Controller{
		distributor: distributor,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	realtime := router.Group("/realtime")
	{
		realtime.GET("/status", c.status)
		realtime.GET("/rooms/:room_id/presence", c.presence)
	}
}

type StatusResponseDTO struct {
	PrimaryHealthy   bool      `json:"primary_healthy"`
	LastProbe        time.Time `json:"last_probe"`
	EffectivePrimary string    `json:"effective_primary"`
	Connections      int       `json:"connections"`
}

func (c *Controller) status(ctx *gin.Context) {
	st := c.distributor.Status()
	total, _ := c.distributor.ConnectionStats()

	ctx.JSON(http.StatusOK, StatusResponseDTO{
		PrimaryHealthy:   st.PrimaryHealthy,
		LastProbe:        st.LastProbe,
		EffectivePrimary: st.EffectivePrimary,
		Connections:      total,
	})
}

type PresenceResponseDTO struct {
	UserIDs []string `json:"user_ids"`
	Count   int      `json:"count"`
}

func (c *Controller) presence(ctx *gin.Context) {
	roomID := ctx.Param("room_id")

	users := c.distributor.ConnectedUsers(roomID)
	ctx.JSON(http.StatusOK, PresenceResponseDTO{
		UserIDs: users,
		Count:   len(users),
	})
}
