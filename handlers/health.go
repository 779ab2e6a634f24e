package handlers

import (
	"net/http"
)

func HandleHealthReady(rw http.ResponseWriter, r *http.Request) {
	rw.WriteHeader(http.StatusOK)
}

// Liveness reports whether the node connection behind the gateway is
// usable. getLiveness typically pings the chain-ID endpoint.
func Liveness(getLiveness func() (interface{}, error)) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		liveness, err := getLiveness()
		if err != nil {
			handleError(rw, err)
			return
		}
		handleJsonResponse(rw, http.StatusOK, liveness)
	})
}
