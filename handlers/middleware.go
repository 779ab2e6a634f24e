package handlers

import (
	"net/http"

	gorilla "github.com/gorilla/handlers"

	"github.com/php369/kyc-blockchain-system/handlers/middleware"
	"github.com/php369/kyc-blockchain-system/roles"
	"github.com/php369/kyc-blockchain-system/session"
)

func UseCors(h http.Handler) http.Handler {
	return gorilla.CORS(
		gorilla.AllowedOrigins([]string{"*"}),
		gorilla.AllowedHeaders([]string{"Content-Type", "Idempotency-Key", SyncHeader}),
		gorilla.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
	)(h)
}

func UseLogging(h http.Handler) http.Handler {
	return middleware.LoggingHandler(h)
}

func UseCompress(h http.Handler) http.Handler {
	return gorilla.CompressHandler(h)
}

func UseJson(h http.Handler) http.Handler {
	// Only PUT, POST, and PATCH requests are considered.
	return gorilla.ContentTypeHandler(h, "application/json")
}

// UseRole gates a handler behind the session's role authorization. The
// response carries the route the original dashboard would redirect to.
func UseRole(c *session.Controller, allowed ...roles.Role) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			switch c.Authorize(allowed...) {
			case session.Allow:
				h.ServeHTTP(rw, r)
			case session.RedirectLogin:
				handleJsonResponse(rw, http.StatusUnauthorized, map[string]string{"redirect": "/login"})
			case session.RedirectRegister:
				handleJsonResponse(rw, http.StatusForbidden, map[string]string{"redirect": "/register"})
			}
		})
	}
}
