// Package wallet supplies the connected account identity and its
// lifecycle events. The session controller owns the subscription and
// re-evaluates itself on every account arrival or removal.
package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

type EventKind int

const (
	AccountAdded EventKind = iota
	AccountRemoved
)

// Event is an account lifecycle notification.
type Event struct {
	Kind    EventKind
	Account common.Address
}

// Provider manages the wallet identity used to act on the ledger.
type Provider interface {
	// Accounts lists the identities currently available.
	Accounts() []common.Address

	// Connect establishes a session with one account and returns it.
	Connect(ctx context.Context) (common.Address, error)

	// Disconnect ends the session and re-locks the account.
	Disconnect()

	// Account returns the connected account, if any.
	Account() (common.Address, bool)

	// Subscribe delivers account lifecycle events to sink until the
	// returned subscription is unsubscribed.
	Subscribe(sink chan<- Event) event.Subscription
}
