// Package roles resolves account roles from the ledger and normalizes
// them into a closed set.
package roles

import (
	"strings"

	"github.com/php369/kyc-blockchain-system/chain"
	"github.com/php369/kyc-blockchain-system/errors"
)

// Role of an account, as reported by the ledger. Exactly one role is
// associated with each account at any time and the ledger assigns it
// once, this package never infers a role locally.
type Role uint8

const (
	Unassigned Role = iota
	Customer
	BankEmployee
	Admin
)

func (r Role) String() string {
	switch r {
	case Unassigned:
		return "Unassigned"
	case Customer:
		return "Customer"
	case BankEmployee:
		return "BankEmployee"
	case Admin:
		return "Admin"
	default:
		return "Unknown"
	}
}

// DisplayName is the human-facing role name.
func (r Role) DisplayName() string {
	if r == BankEmployee {
		return "Bank Employee"
	}
	return r.String()
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "unassigned":
		*r = Unassigned
	case "customer":
		*r = Customer
	case "bankemployee":
		*r = BankEmployee
	case "admin":
		*r = Admin
	default:
		return &errors.UnknownRoleError{Raw: string(text)}
	}
	return nil
}

// FromValue normalizes a raw ledger value into a Role. Zero or absent
// maps to Unassigned, any value outside the closed set fails with
// UnknownRoleError. Tolerates big-integer wrappers and converts them
// losslessly.
func FromValue(raw interface{}) (Role, error) {
	n, err := chain.ToUint64(raw)
	if err != nil {
		return Unassigned, &errors.UnknownRoleError{Raw: chain.RawString(raw)}
	}
	if n > uint64(Admin) {
		return Unassigned, &errors.UnknownRoleError{Raw: chain.RawString(raw)}
	}
	return Role(n), nil
}
