package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/arcadehub/ledger_engine/internal/dto"
)

// actorIDKey is the key used to store the caller's opaque actor id in the
// Gin context. Using a custom type prevents collisions.
const actorIDKey = contextKey("actorID")

// ActorHeader is the request header that carries the caller's opaque id.
// The ledger records it for audit attribution; it performs no authentication.
const ActorHeader = "X-Actor-ID"

// ActorMiddleware extracts the actor id from the request header and rejects
// mutating requests that omit it at the handler layer (handlers decide).
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorID := c.GetHeader(ActorHeader); actorID != "" {
			c.Set(string(actorIDKey), actorID)
		}
		c.Next()
	}
}

// GetActorFromContext assembles the audit attribution for the current
// request. The boolean reports whether an actor id was supplied.
func GetActorFromContext(c *gin.Context) (dto.Actor, bool) {
	actorIDVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return dto.Actor{}, false
	}
	actorID, ok := actorIDVal.(string)
	if !ok || actorID == "" {
		return dto.Actor{}, false
	}
	return dto.Actor{
		UserID:    actorID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}, true
}
