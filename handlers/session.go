package handlers

import (
	"net/http"

	"github.com/php369/kyc-blockchain-system/session"
)

// Session is a server for the wallet session.
type Session struct {
	controller *session.Controller
}

// NewSession initiates a new session server.
func NewSession(controller *session.Controller) *Session {
	return &Session{controller}
}

func (s *Session) Status() http.Handler {
	return http.HandlerFunc(s.StatusFunc)
}

func (s *Session) Connect() http.Handler {
	return http.HandlerFunc(s.ConnectFunc)
}

func (s *Session) Disconnect() http.Handler {
	return http.HandlerFunc(s.DisconnectFunc)
}

func (s *Session) Refresh() http.Handler {
	return http.HandlerFunc(s.RefreshFunc)
}
