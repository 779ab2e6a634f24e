package handlers

import (
	"net/http"

	"github.com/php369/kyc-blockchain-system/transactions"
)

// Transactions is a server for the ledger write audit trail.
type Transactions struct {
	service *transactions.Service
}

// NewTransactions initiates a new transactions server.
func NewTransactions(service *transactions.Service) *Transactions {
	return &Transactions{service}
}

func (s *Transactions) List() http.Handler {
	return http.HandlerFunc(s.ListFunc)
}

func (s *Transactions) Details() http.Handler {
	return http.HandlerFunc(s.DetailsFunc)
}
