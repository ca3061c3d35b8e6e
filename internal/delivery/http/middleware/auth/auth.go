package http_auth_middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/reelmatch/core/internal/delivery/http/common"
)

const (
	userHeader = "X-user-token"

	// ContextUserKey is where the parsed token lands for handlers.
	ContextUserKey = "user_id"
)

// Middleware extracts the caller identity minted at room creation/join.
// Validation of who the token belongs to is the identity service's
// business; here we only require a well-formed token.
type Middleware struct {
	logger *slog.Logger
}

func New() *Middleware {
	return &Middleware{
		logger: slog.Default(),
	}
}

func (m *Middleware) UserRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		t := ctx.GetHeader(userHeader)
		if t == "" {
			m.logger.Error(fmt.Sprintf("no %s header", userHeader))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: fmt.Sprintf("no %s header", userHeader),
			})
			ctx.Abort()
			return
		}

		if _, err := uuid.Parse(t); err != nil {
			m.logger.Error("malformed user token", slog.String("token", t))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "malformed user token",
			})
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserKey, t)
		ctx.Next()
	}
}
