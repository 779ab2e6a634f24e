// Package kyc implements the KYC application workflow. The ledger
// holds the authoritative record, this package models its lifecycle,
// validates transition preconditions locally and issues the matching
// contract writes.
package kyc

import (
	"fmt"
	"strings"

	"github.com/php369/kyc-blockchain-system/chain"
)

// State of a KYC application. The numeric values of the ledger-encoded
// states match the contract encoding, Absent is local shorthand for
// "no record exists".
type State uint8

const (
	Pending State = iota
	VerifiedByEmployee
	VerifiedByAdmin
	Rejected
	Expired
	Absent
)

func (s State) String() string {
	switch s {
	case Pending:
		return "Pending"
	case VerifiedByEmployee:
		return "VerifiedByEmployee"
	case VerifiedByAdmin:
		return "VerifiedByAdmin"
	case Rejected:
		return "Rejected"
	case Expired:
		return "Expired"
	case Absent:
		return "Absent"
	default:
		return "Unknown"
	}
}

// DisplayName is the human-facing state name.
func (s State) DisplayName() string {
	switch s {
	case VerifiedByEmployee:
		return "Verified by Bank Employee"
	case VerifiedByAdmin:
		return "Verified by Admin"
	case Absent:
		return "Not Submitted"
	default:
		return s.String()
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "pending":
		*s = Pending
	case "verifiedbyemployee":
		*s = VerifiedByEmployee
	case "verifiedbyadmin":
		*s = VerifiedByAdmin
	case "rejected":
		*s = Rejected
	case "expired":
		*s = Expired
	case "absent":
		*s = Absent
	default:
		return fmt.Errorf("unknown KYC state %q", string(text))
	}
	return nil
}

// StateFromValue normalizes a raw ledger status value into a State.
func StateFromValue(raw interface{}) (State, error) {
	n, err := chain.ToUint8(raw)
	if err != nil {
		return Absent, fmt.Errorf("unknown KYC status value %s reported by ledger", chain.RawString(raw))
	}
	if n > uint8(Expired) {
		return Absent, fmt.Errorf("unknown KYC status value %d reported by ledger", n)
	}
	return State(n), nil
}

// The transition table. Every workflow operation has exactly one
// target state and a closed set of legal source states, anything else
// is an illegal transition and must leave the record unchanged.
var (
	targetStates = map[string]State{
		chain.OpSubmitKYC:            Pending,
		chain.OpVerifyKYC:            VerifiedByEmployee,
		chain.OpReverifyKYC:          VerifiedByAdmin,
		chain.OpRejectKYC:            Rejected,
		chain.OpCheckExpiry:          Expired,
		chain.OpDeleteKYCApplication: Absent,
	}

	legalSources = map[string][]State{
		chain.OpSubmitKYC:            {Absent, Rejected, Expired},
		chain.OpVerifyKYC:            {Pending},
		chain.OpReverifyKYC:          {VerifiedByEmployee},
		chain.OpRejectKYC:            {Pending, VerifiedByEmployee},
		chain.OpCheckExpiry:          {VerifiedByAdmin},
		chain.OpDeleteKYCApplication: {Pending, Rejected},
	}
)

// CanTransition reports whether the given workflow operation is legal
// from the given state.
func CanTransition(op string, from State) bool {
	for _, s := range legalSources[op] {
		if s == from {
			return true
		}
	}
	return false
}

// TargetState returns the state the given operation transitions to.
func TargetState(op string) State {
	return targetStates[op]
}
