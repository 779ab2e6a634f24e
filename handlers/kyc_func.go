package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"github.com/php369/kyc-blockchain-system/errors"
	"github.com/php369/kyc-blockchain-system/jobs"
	"github.com/php369/kyc-blockchain-system/kyc"
)

type submitKYCRequest struct {
	DocumentRef string `json:"documentRef" validate:"required"`
	IFSCCode    string `json:"ifscCode" validate:"required,ifsc"`
}

type rejectKYCRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// detailsResponse is a KYC record enriched with the resolvable
// document location.
type detailsResponse struct {
	kyc.Record
	DocumentURL string `json:"documentUrl,omitempty"`
}

func (s *KYC) DetailsFunc(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	record, err := s.service.Details(r.Context(), vars["address"])
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, s.enrich(record))
}

func (s *KYC) SubmitFunc(rw http.ResponseWriter, r *http.Request) {
	var req submitKYCRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(rw, err)
		return
	}

	actor, err := s.actor()
	if err != nil {
		handleError(rw, err)
		return
	}

	sync := r.Header.Get(SyncHeader) != ""
	job, record, err := s.service.Submit(r.Context(), sync, actor, req.DocumentRef, req.IFSCCode)
	s.respond(rw, sync, job, record, err)
}

func (s *KYC) VerifyFunc(rw http.ResponseWriter, r *http.Request) {
	actor, err := s.actor()
	if err != nil {
		handleError(rw, err)
		return
	}

	vars := mux.Vars(r)
	sync := r.Header.Get(SyncHeader) != ""
	job, record, err := s.service.Verify(r.Context(), sync, actor, vars["address"])
	s.respond(rw, sync, job, record, err)
}

func (s *KYC) ApproveFunc(rw http.ResponseWriter, r *http.Request) {
	actor, err := s.actor()
	if err != nil {
		handleError(rw, err)
		return
	}

	vars := mux.Vars(r)
	sync := r.Header.Get(SyncHeader) != ""
	job, record, err := s.service.Approve(r.Context(), sync, actor, vars["address"])
	s.respond(rw, sync, job, record, err)
}

func (s *KYC) RejectFunc(rw http.ResponseWriter, r *http.Request) {
	var req rejectKYCRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(rw, err)
		return
	}

	actor, err := s.actor()
	if err != nil {
		handleError(rw, err)
		return
	}

	vars := mux.Vars(r)
	sync := r.Header.Get(SyncHeader) != ""
	job, record, err := s.service.Reject(r.Context(), sync, actor, vars["address"], req.Reason)
	s.respond(rw, sync, job, record, err)
}

func (s *KYC) CheckExpiryFunc(rw http.ResponseWriter, r *http.Request) {
	// The check is open to every role, but the write is signed as the
	// connected account.
	actor, err := s.actor()
	if err != nil {
		handleError(rw, err)
		return
	}

	vars := mux.Vars(r)
	sync := r.Header.Get(SyncHeader) != ""

	job, record, err := s.service.CheckExpiry(r.Context(), sync, actor, vars["address"])
	if err != nil {
		handleError(rw, err)
		return
	}

	// No write was due, report the unchanged record.
	if job == nil {
		handleJsonResponse(rw, http.StatusOK, s.enrich(*record))
		return
	}

	s.respond(rw, sync, job, record, nil)
}

func (s *KYC) DeleteFunc(rw http.ResponseWriter, r *http.Request) {
	actor, err := s.actor()
	if err != nil {
		handleError(rw, err)
		return
	}

	sync := r.Header.Get(SyncHeader) != ""
	job, record, err := s.service.Delete(r.Context(), sync, actor)
	s.respond(rw, sync, job, record, err)
}

func (s *KYC) respond(rw http.ResponseWriter, sync bool, job *jobs.Job, record *kyc.Record, err error) {
	if err != nil {
		handleError(rw, err)
		return
	}
	if sync {
		handleJsonResponse(rw, http.StatusCreated, s.enrich(*record))
		return
	}
	handleJsonResponse(rw, http.StatusCreated, job)
}

func (s *KYC) enrich(record kyc.Record) detailsResponse {
	res := detailsResponse{Record: record}
	if record.Exists() && record.DocumentRef != "" {
		if u, err := s.documents.URL(record.DocumentRef); err == nil {
			res.DocumentURL = u
		}
	}
	return res
}

func (s *KYC) actor() (common.Address, error) {
	actor, ok := s.controller.Account()
	if !ok {
		return common.Address{}, &errors.RequestError{
			StatusCode: http.StatusUnauthorized,
			Err:        fmt.Errorf("no wallet session"),
		}
	}
	return actor, nil
}

func decodeBody(r *http.Request, into interface{}) error {
	if r.Body == nil {
		return &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("empty body"),
		}
	}
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("invalid body"),
		}
	}
	return validateRequest(into)
}
