package contexthelpers

import (
	"context"
	"net/http"

	"github.com/jlaasonen/precinct/internal/models"
)

func AuthenticateContext(r *http.Request, actor models.Actor) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, isAuthenticatedContextKey, true)
	ctx = context.WithValue(ctx, actorContextKey, actor)
	return r.WithContext(ctx)
}

func SetCSRFToken(r *http.Request, token string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, csrfTokenContextKey, token)
	return r.WithContext(ctx)
}
