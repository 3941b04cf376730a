package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// actorKey is the key used to store the caller's identity in the Gin context.
const actorKey = contextKey("actor")

// ActorHeader carries the opaque caller identity resolved by the presentation
// layer. The core does not authenticate it.
const ActorHeader = "X-Actor"

// ActorMiddleware extracts the caller identity header into the Gin context.
// Mutating handlers reject requests without it.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(ActorHeader))
		if actor != "" {
			c.Set(string(actorKey), actor)
		}
		c.Next()
	}
}

// GetActorFromContext retrieves the caller identity from the Gin context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorKey))
	if !exists {
		return "", false
	}

	actor, ok := actorVal.(string)
	if !ok || actor == "" {
		return "", false
	}

	return actor, true
}

// RequireActor aborts with 400 when no actor identity accompanies the request.
// Used by handlers for mutating operations, which must record who acted.
func RequireActor(c *gin.Context) (string, bool) {
	actor, ok := GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + ActorHeader + " header"})
		return "", false
	}
	return actor, true
}
