package kyc

import (
	"fmt"

	"github.com/php369/kyc-blockchain-system/chain"
)

// Record is a KYC application as reported by the ledger.
type Record struct {
	Account         string `json:"account"`
	Status          State  `json:"status"`
	StatusDisplay   string `json:"statusDisplay"`
	DocumentRef     string `json:"documentRef"`
	IFSCCode        string `json:"ifscCode"`
	SubmissionDate  int64  `json:"submissionDate"`
	ExpiryDate      int64  `json:"expiryDate"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// Exists reports whether the ledger holds a record for the account. A
// record that was never submitted, or was deleted, reads back with a
// zero submission date.
func (r Record) Exists() bool {
	return r.SubmissionDate != 0
}

// State returns the workflow state of the record, Absent when no
// record exists.
func (r Record) State() State {
	if !r.Exists() {
		return Absent
	}
	return r.Status
}

// recordFromValues normalizes the getKYCDetails return tuple. The
// ledger delivers (status, documentRef, ifscCode, submissionDate,
// expiryDate, rejectionReason) with integers possibly wrapped in
// big-integer types.
func recordFromValues(account string, values []interface{}) (Record, error) {
	if len(values) < 6 {
		return Record{}, fmt.Errorf("ledger returned a truncated KYC record (%d of 6 values)", len(values))
	}

	status, err := StateFromValue(values[0])
	if err != nil {
		return Record{}, err
	}
	documentRef, err := chain.ToString(values[1])
	if err != nil {
		return Record{}, err
	}
	ifscCode, err := chain.ToString(values[2])
	if err != nil {
		return Record{}, err
	}
	submissionDate, err := chain.ToInt64(values[3])
	if err != nil {
		return Record{}, err
	}
	expiryDate, err := chain.ToInt64(values[4])
	if err != nil {
		return Record{}, err
	}
	rejectionReason, err := chain.ToString(values[5])
	if err != nil {
		return Record{}, err
	}

	r := Record{
		Account:         account,
		Status:          status,
		DocumentRef:     documentRef,
		IFSCCode:        ifscCode,
		SubmissionDate:  submissionDate,
		ExpiryDate:      expiryDate,
		RejectionReason: rejectionReason,
	}
	r.Status = r.State()
	r.StatusDisplay = r.Status.DisplayName()

	return r, nil
}
