package ws_room

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Controller struct {
	hub    *Hub
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithControllerLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func NewController(hub *Hub, opts ...ControllerOption) *Controller {
	c := &Controller{
		hub:    hub,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // ! Tighten on NGINX setup
	},
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws/rooms/:room_id", c.connect)
}

func (c *Controller) connect(ctx *gin.Context) {
	roomCode := ctx.Param("room_id")

	userID := ctx.Query("user_token")
	if userID == "" {
		userID = uuid.New().String()
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed",
			slog.String("room", roomCode),
			slog.String("error", err.Error()))
		return
	}

	client := &Client{
		hub:      c.hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		userID:   userID,
		roomCode: roomCode,
	}

	c.hub.RegisterClient(client)

	go c.hub.StartClientWriting(client)
	go c.hub.StartClientReading(client)
}
