package handlers

import (
	"net/http"

	"github.com/php369/kyc-blockchain-system/roles"
	"github.com/php369/kyc-blockchain-system/session"
)

// Roles is a server for role resolution and role grants.
type Roles struct {
	service    *roles.Service
	controller *session.Controller
}

// NewRoles initiates a new roles server.
func NewRoles(service *roles.Service, controller *session.Controller) *Roles {
	return &Roles{service, controller}
}

func (s *Roles) Details() http.Handler {
	return http.HandlerFunc(s.DetailsFunc)
}

func (s *Roles) GrantCustomer() http.Handler {
	h := http.HandlerFunc(s.GrantCustomerFunc)
	return UseJson(h)
}

func (s *Roles) GrantEmployee() http.Handler {
	h := http.HandlerFunc(s.GrantEmployeeFunc)
	return UseJson(h)
}

func (s *Roles) GrantAdmin() http.Handler {
	h := http.HandlerFunc(s.GrantAdminFunc)
	return UseJson(h)
}
