package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"github.com/php369/kyc-blockchain-system/errors"
)

type grantRoleRequest struct {
	Address  string `json:"address" validate:"required,eth_addr"`
	IFSCCode string `json:"ifscCode" validate:"omitempty,ifsc"`
}

func (s *Roles) DetailsFunc(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	res, err := s.service.Resolve(r.Context(), vars["address"])
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

func (s *Roles) GrantCustomerFunc(rw http.ResponseWriter, r *http.Request) {
	req, actor, err := s.decodeGrant(r)
	if err != nil {
		handleError(rw, err)
		return
	}

	receipt, err := s.service.GrantCustomer(r.Context(), actor, req.Address)
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusCreated, receipt)
}

func (s *Roles) GrantEmployeeFunc(rw http.ResponseWriter, r *http.Request) {
	req, actor, err := s.decodeGrant(r)
	if err != nil {
		handleError(rw, err)
		return
	}

	receipt, err := s.service.GrantBankEmployee(r.Context(), actor, req.Address, req.IFSCCode)
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusCreated, receipt)
}

func (s *Roles) GrantAdminFunc(rw http.ResponseWriter, r *http.Request) {
	req, actor, err := s.decodeGrant(r)
	if err != nil {
		handleError(rw, err)
		return
	}

	receipt, err := s.service.GrantAdmin(r.Context(), actor, req.Address)
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusCreated, receipt)
}

func (s *Roles) decodeGrant(r *http.Request) (grantRoleRequest, common.Address, error) {
	var req grantRoleRequest

	if r.Body == nil {
		return req, common.Address{}, &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("empty body"),
		}
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, common.Address{}, &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("invalid body"),
		}
	}
	if err := validateRequest(req); err != nil {
		return req, common.Address{}, err
	}

	actor, ok := s.controller.Account()
	if !ok {
		return req, common.Address{}, &errors.RequestError{
			StatusCode: http.StatusUnauthorized,
			Err:        fmt.Errorf("no wallet session"),
		}
	}

	return req, actor, nil
}
