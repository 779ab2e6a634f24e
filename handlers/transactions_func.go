package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func (s *Transactions) ListFunc(rw http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.FormValue("limit"))
	if err != nil {
		limit = 0
	}

	offset, err := strconv.Atoi(r.FormValue("offset"))
	if err != nil {
		offset = 0
	}

	var (
		res interface{}
		e   error
	)
	if address := r.FormValue("address"); address != "" {
		res, e = s.service.ListForAccount(address, limit, offset)
	} else {
		res, e = s.service.List(limit, offset)
	}
	if e != nil {
		handleError(rw, e)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

func (s *Transactions) DetailsFunc(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	res, err := s.service.Details(vars["transactionId"])
	if err != nil {
		handleError(rw, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}
