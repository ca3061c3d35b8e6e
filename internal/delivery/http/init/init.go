package http_init

import (
	"log"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

// Controller mounts its routes on the shared versioned group.
type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// ControllerPool gathers every delivery controller behind a single engine so
// the app wires routes in one place.
type ControllerPool struct {
	controllers []Controller
	group       *gin.RouterGroup
	engine      *gin.Engine
}

func NewControllerPool() *ControllerPool {
	engine := gin.Default() // ! Change on NGINX setup
	return &ControllerPool{
		controllers: make([]Controller, 0),
		group:       engine.Group(apiPrefix),
		engine:      engine,
	}
}

func (pool *ControllerPool) Add(c Controller) {
	pool.controllers = append(pool.controllers, c)
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.controllers {
		c.RegisterRoutes(pool.group)
	}
}

func (pool *ControllerPool) RunAll(port string) {
	if err := pool.engine.Run(":" + port); err != nil {
		log.Fatalf("http server stopped: %v", err)
	}
}
