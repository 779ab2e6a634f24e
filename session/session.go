// Package session tracks the wallet connection lifecycle and gates
// role-protected operations. It holds no authoritative state of its
// own, roles always come from the ledger through the role resolver.
package session

import (
	"strings"

	"github.com/php369/kyc-blockchain-system/roles"
)

// State of the wallet session.
type State int

const (
	Disconnected State = iota
	Connecting
	ConnectedNoRole
	ConnectedWithRole
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case ConnectedNoRole:
		return "ConnectedNoRole"
	case ConnectedWithRole:
		return "ConnectedWithRole"
	default:
		return "Unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "disconnected":
		*s = Disconnected
	case "connecting":
		*s = Connecting
	case "connectednorole":
		*s = ConnectedNoRole
	case "connectedwithrole":
		*s = ConnectedWithRole
	}
	return nil
}

// Decision of an authorization check.
type Decision int

const (
	// Allow grants access to the requested view.
	Allow Decision = iota
	// RedirectLogin sends the caller to connect a wallet first.
	RedirectLogin
	// RedirectRegister sends the caller to acquire a role first.
	RedirectRegister
)

// Status is the externally visible session snapshot. Error carries the
// last role resolution failure so an unresolved role can be told apart
// from a failed resolution.
type Status struct {
	State       State      `json:"state"`
	Account     string     `json:"account,omitempty"`
	Role        roles.Role `json:"role"`
	RoleDisplay string     `json:"roleDisplay"`
	Error       string     `json:"error,omitempty"`
}
