package handlers

import (
	"net/http"

	"github.com/php369/kyc-blockchain-system/jobs"
)

// Jobs is a server for async job status.
type Jobs struct {
	service *jobs.Service
}

// NewJobs initiates a new jobs server.
func NewJobs(service *jobs.Service) *Jobs {
	return &Jobs{service}
}

func (s *Jobs) List() http.Handler {
	return http.HandlerFunc(s.ListFunc)
}

func (s *Jobs) Details() http.Handler {
	return http.HandlerFunc(s.DetailsFunc)
}
