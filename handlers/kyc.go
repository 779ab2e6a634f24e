package handlers

import (
	"net/http"

	"github.com/php369/kyc-blockchain-system/documents"
	"github.com/php369/kyc-blockchain-system/kyc"
	"github.com/php369/kyc-blockchain-system/session"
)

// KYC is a server for the KYC application workflow.
type KYC struct {
	service    *kyc.Service
	documents  *documents.Service
	controller *session.Controller
}

// NewKYC initiates a new KYC server.
func NewKYC(service *kyc.Service, docs *documents.Service, controller *session.Controller) *KYC {
	return &KYC{service, docs, controller}
}

func (s *KYC) Details() http.Handler {
	return http.HandlerFunc(s.DetailsFunc)
}

func (s *KYC) Submit() http.Handler {
	h := http.HandlerFunc(s.SubmitFunc)
	return UseJson(h)
}

func (s *KYC) Verify() http.Handler {
	return http.HandlerFunc(s.VerifyFunc)
}

func (s *KYC) Approve() http.Handler {
	return http.HandlerFunc(s.ApproveFunc)
}

func (s *KYC) Reject() http.Handler {
	h := http.HandlerFunc(s.RejectFunc)
	return UseJson(h)
}

func (s *KYC) CheckExpiry() http.Handler {
	return http.HandlerFunc(s.CheckExpiryFunc)
}

func (s *KYC) Delete() http.Handler {
	return http.HandlerFunc(s.DeleteFunc)
}
