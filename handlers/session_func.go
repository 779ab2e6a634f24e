package handlers

import (
	"net/http"
)

func (s *Session) StatusFunc(rw http.ResponseWriter, r *http.Request) {
	handleJsonResponse(rw, http.StatusOK, s.controller.Status())
}

func (s *Session) ConnectFunc(rw http.ResponseWriter, r *http.Request) {
	status, err := s.controller.Connect(r.Context())
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusCreated, status)
}

func (s *Session) DisconnectFunc(rw http.ResponseWriter, r *http.Request) {
	handleJsonResponse(rw, http.StatusOK, s.controller.Disconnect())
}

func (s *Session) RefreshFunc(rw http.ResponseWriter, r *http.Request) {
	status, err := s.controller.Refresh(r.Context())
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, status)
}
