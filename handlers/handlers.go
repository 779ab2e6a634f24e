// Package handlers provides HTTP handlers for the different services
// across the application.
package handlers

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/php369/kyc-blockchain-system/errors"
)

// SyncHeader selects synchronous execution of a write request. Without
// it writes run as jobs and the job is returned instead of the result.
const SyncHeader = "Use-Sync"

// handleError is a helper function for unified HTTP error handling. It
// maps the error taxonomy onto status codes; anything unrecognized
// stays an opaque 500.
func handleError(rw http.ResponseWriter, err error) {
	log.WithFields(log.Fields{"error": err}).Error("Request failed")

	var reqErr *errors.RequestError
	if stdErrors.As(err, &reqErr) {
		http.Error(rw, reqErr.Error(), reqErr.StatusCode)
		return
	}

	var transitionErr *errors.IllegalTransitionError
	if stdErrors.As(err, &transitionErr) {
		http.Error(rw, transitionErr.Error(), http.StatusConflict)
		return
	}

	var rejectedErr *errors.RemoteRejectedError
	if stdErrors.As(err, &rejectedErr) {
		http.Error(rw, rejectedErr.Error(), http.StatusUnprocessableEntity)
		return
	}

	var cancelledErr *errors.UserCancelledError
	if stdErrors.As(err, &cancelledErr) {
		http.Error(rw, cancelledErr.Error(), http.StatusBadRequest)
		return
	}

	var initErr *errors.NotInitializedError
	if stdErrors.As(err, &initErr) {
		http.Error(rw, initErr.Error(), http.StatusServiceUnavailable)
		return
	}

	var netErr *errors.NetworkError
	if stdErrors.As(err, &netErr) {
		http.Error(rw, netErr.Error(), http.StatusBadGateway)
		return
	}

	var roleErr *errors.UnknownRoleError
	if stdErrors.As(err, &roleErr) {
		http.Error(rw, roleErr.Error(), http.StatusInternalServerError)
		return
	}

	// Do not send data regarding the error
	http.Error(rw, "Error", http.StatusInternalServerError)
}

// handleJsonResponse is a helper function for unified JSON response
// handling.
func handleJsonResponse(rw http.ResponseWriter, status int, res interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(res); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Failed to encode response")
	}
}

func servePlainText(rw http.ResponseWriter, s string) {
	rw.Header().Set("Content-Type", "text/plain")
	rw.Write([]byte(s))
}
