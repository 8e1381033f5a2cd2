package contexthelpers

type contextKey string

const isAuthenticatedContextKey = contextKey("isAuthenticated")
const actorContextKey = contextKey("actor")
const csrfTokenContextKey = contextKey("csrfToken")
