package contexthelpers

import (
	"context"

	"github.com/jlaasonen/precinct/internal/models"
)

func IsAuthenticated(ctx context.Context) bool {
	isAuthenticated, ok := ctx.Value(isAuthenticatedContextKey).(bool)
	if !ok {
		return false
	}

	return isAuthenticated
}

// Actor returns the authenticated actor resolved for this request.
func Actor(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(models.Actor)
	return actor, ok
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}
