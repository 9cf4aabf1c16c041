package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the authenticated actor's ID.
const actorIDKey = contextKey("actorID")

// GetActorIDFromContext retrieves the authenticated actor ID placed in the
// request context by AuthMiddleware. The second return reports presence.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorVal := c.Request.Context().Value(actorIDKey)
	if actorVal == nil {
		return "", false
	}
	actorID, ok := actorVal.(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
