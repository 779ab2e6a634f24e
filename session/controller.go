package session

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	log "github.com/sirupsen/logrus"

	"github.com/php369/kyc-blockchain-system/chain"
	"github.com/php369/kyc-blockchain-system/errors"
	"github.com/php369/kyc-blockchain-system/roles"
	"github.com/php369/kyc-blockchain-system/wallet"
)

// Controller owns the session state machine. Every suspension point
// (wallet connect, role resolution) records the session epoch before
// suspending and discards its result if the epoch moved on, so a role
// fetched for a stale account never lands on the new session.
type Controller struct {
	provider wallet.Provider
	roles    *roles.Service

	mu      sync.Mutex
	state   State
	account common.Address
	role    roles.Role
	epoch   uint64
	lastErr error

	events   chan wallet.Event
	sub      event.Subscription
	loopDone chan struct{}
}

// NewController initiates a session controller and starts consuming
// wallet lifecycle events.
func NewController(provider wallet.Provider, rs *roles.Service) *Controller {
	c := &Controller{
		provider: provider,
		roles:    rs,
		events:   make(chan wallet.Event, 16),
		loopDone: make(chan struct{}),
	}
	c.sub = provider.Subscribe(c.events)
	go c.loop()
	return c
}

// Connect establishes a wallet session and resolves the account role.
func (c *Controller) Connect(ctx context.Context) (Status, error) {
	c.mu.Lock()
	c.state = Connecting
	c.lastErr = nil
	c.epoch++
	epoch := c.epoch
	c.mu.Unlock()

	account, err := c.provider.Connect(ctx)

	c.mu.Lock()
	if c.epoch != epoch {
		// The session changed while the connect was in flight.
		defer c.mu.Unlock()
		return c.statusLocked(), nil
	}
	if err != nil {
		c.state = Disconnected
		c.lastErr = err
		defer c.mu.Unlock()
		return c.statusLocked(), err
	}
	c.account = account
	c.state = ConnectedNoRole
	c.role = roles.Unassigned
	c.mu.Unlock()

	return c.resolveRole(ctx, epoch, account)
}

// Refresh re-resolves the role of the connected account, bypassing the
// resolver cache.
func (c *Controller) Refresh(ctx context.Context) (Status, error) {
	c.mu.Lock()
	if c.state == Disconnected || c.state == Connecting {
		defer c.mu.Unlock()
		return c.statusLocked(), &errors.NotInitializedError{Err: fmt.Errorf("no wallet session")}
	}
	epoch := c.epoch
	account := c.account
	c.mu.Unlock()

	c.roles.Invalidate(account)
	return c.resolveRole(ctx, epoch, account)
}

// Disconnect ends the session.
func (c *Controller) Disconnect() Status {
	c.provider.Disconnect()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	return c.statusLocked()
}

// Status returns the current session snapshot.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

// Account returns the connected account, if any.
func (c *Controller) Account() (common.Address, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Disconnected || c.state == Connecting {
		return common.Address{}, false
	}
	return c.account, true
}

// Authorize decides whether the session may access a view restricted
// to the given roles. No session sends the caller to connect first, a
// session without a matching role to registration.
func (c *Controller) Authorize(allowed ...roles.Role) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Disconnected, Connecting:
		return RedirectLogin
	case ConnectedNoRole:
		return RedirectRegister
	}

	for _, r := range allowed {
		if c.role == r {
			return Allow
		}
	}
	return RedirectRegister
}

// HandleNetworkChange tears the session down after the node's chain
// identity stopped matching the contract's network. Wired as the
// network watcher callback.
func (c *Controller) HandleNetworkChange(observed *big.Int) {
	log.WithFields(log.Fields{"chainId": observed}).Warn("Network changed, disconnecting session")

	c.provider.Disconnect()
	c.roles.InvalidateAll()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	c.lastErr = &errors.NetworkError{Err: fmt.Errorf("node moved to chain %s", observed)}
}

// Close stops event consumption. The controller is unusable afterwards.
func (c *Controller) Close() {
	c.sub.Unsubscribe()
	close(c.events)
	<-c.loopDone
}

func (c *Controller) resolveRole(ctx context.Context, epoch uint64, account common.Address) (Status, error) {
	res, err := c.roles.Resolve(ctx, chain.FormatAddress(account))

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		return c.statusLocked(), nil
	}

	if err != nil {
		// Treated as "no role" for routing, surfaced for visibility.
		c.state = ConnectedNoRole
		c.role = roles.Unassigned
		c.lastErr = err
		return c.statusLocked(), err
	}

	c.lastErr = nil
	if res.Role == roles.Unassigned {
		c.state = ConnectedNoRole
		c.role = roles.Unassigned
	} else {
		c.state = ConnectedWithRole
		c.role = res.Role
	}

	return c.statusLocked(), nil
}

func (c *Controller) loop() {
	defer close(c.loopDone)
	for {
		select {
		case ev, ok := <-c.events:
			if !ok {
				return
			}
			c.handleWalletEvent(ev)
		case <-c.sub.Err():
			return
		}
	}
}

func (c *Controller) handleWalletEvent(ev wallet.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ev.Kind != wallet.AccountRemoved {
		return
	}
	if c.state == Disconnected || ev.Account != c.account {
		return
	}

	log.WithFields(log.Fields{"account": ev.Account.Hex()}).Info("Session account removed, disconnecting")
	c.roles.Invalidate(ev.Account)
	c.reset()
}

// reset moves the session to Disconnected. Callers hold the lock.
func (c *Controller) reset() {
	c.epoch++
	c.state = Disconnected
	c.account = common.Address{}
	c.role = roles.Unassigned
	c.lastErr = nil
}

func (c *Controller) statusLocked() Status {
	s := Status{
		State:       c.state,
		Role:        c.role,
		RoleDisplay: c.role.DisplayName(),
	}
	if c.state != Disconnected && c.state != Connecting {
		s.Account = chain.FormatAddress(c.account)
	}
	if c.lastErr != nil {
		s.Error = c.lastErr.Error()
	}
	return s
}
