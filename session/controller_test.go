package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/goleak"

	"github.com/php369/kyc-blockchain-system/chain/chaintest"
	"github.com/php369/kyc-blockchain-system/errors"
	"github.com/php369/kyc-blockchain-system/roles"
	"github.com/php369/kyc-blockchain-system/wallet"
)

var (
	sessionAccount = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	adminAccount   = common.HexToAddress("0x00000000000000000000000000000000000000a1")
)

// fakeProvider is an in-memory wallet.Provider.
type fakeProvider struct {
	account    common.Address
	connected  bool
	connectErr error
	feed       event.Feed
	scope      event.SubscriptionScope
}

func (p *fakeProvider) Accounts() []common.Address {
	return []common.Address{p.account}
}

func (p *fakeProvider) Connect(ctx context.Context) (common.Address, error) {
	if p.connectErr != nil {
		return common.Address{}, p.connectErr
	}
	p.connected = true
	return p.account, nil
}

func (p *fakeProvider) Disconnect() {
	p.connected = false
}

func (p *fakeProvider) Account() (common.Address, bool) {
	return p.account, p.connected
}

func (p *fakeProvider) Subscribe(sink chan<- wallet.Event) event.Subscription {
	return p.scope.Track(p.feed.Subscribe(sink))
}

func (p *fakeProvider) drop(account common.Address) {
	p.feed.Send(wallet.Event{Kind: wallet.AccountRemoved, Account: account})
}

func newTestController(t *testing.T, provider *fakeProvider) (*chaintest.Gateway, *Controller) {
	t.Helper()

	gw := chaintest.NewGateway()
	gw.SeedCustomer(sessionAccount)
	gw.SeedAdmin(adminAccount)

	// Callers defer Close themselves so it runs before the leak check.
	return gw, NewController(provider, roles.NewService(gw, nil))
}

func TestConnectResolvesRole(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &fakeProvider{account: sessionAccount}
	_, c := newTestController(t, provider)
	defer c.Close()

	status, err := c.Connect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if status.State != ConnectedWithRole {
		t.Fatalf("expected ConnectedWithRole, got %q", status.State)
	}
	if status.Role != roles.Customer {
		t.Errorf("expected Customer, got %q", status.Role)
	}
	if status.Account != sessionAccount.Hex() {
		t.Errorf("expected account %q, got %q", sessionAccount.Hex(), status.Account)
	}
}

func TestConnectWithoutRole(t *testing.T) {
	defer goleak.VerifyNone(t)

	unknown := common.HexToAddress("0x00000000000000000000000000000000000000f1")
	provider := &fakeProvider{account: unknown}
	_, c := newTestController(t, provider)
	defer c.Close()

	status, err := c.Connect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if status.State != ConnectedNoRole {
		t.Fatalf("expected ConnectedNoRole, got %q", status.State)
	}
	if status.Error != "" {
		t.Errorf("an unassigned role is not a resolution failure: %q", status.Error)
	}
}

func TestConnectFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &fakeProvider{account: sessionAccount, connectErr: fmt.Errorf("keystore locked")}
	_, c := newTestController(t, provider)
	defer c.Close()

	status, err := c.Connect(context.Background())
	if err == nil {
		t.Fatal("expected the connect error to surface")
	}
	if status.State != Disconnected {
		t.Fatalf("expected Disconnected, got %q", status.State)
	}
	if status.Error == "" {
		t.Error("expected the error text to be surfaced")
	}
}

func TestRoleResolutionFailureIsVisible(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &fakeProvider{account: sessionAccount}
	_, c := newTestController(t, provider)
	defer c.Close()

	if _, err := c.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}

	// A resolution that fails keeps the session connected but routes
	// as "no role" and surfaces the error.
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	status, err := c.Refresh(cancelled)
	var cancelErr *errors.UserCancelledError
	if !stderrors.As(err, &cancelErr) {
		t.Fatalf("expected UserCancelledError, got %#v", err)
	}
	if status.State != ConnectedNoRole {
		t.Fatalf("expected ConnectedNoRole, got %q", status.State)
	}
	if status.Error == "" {
		t.Error("expected the resolution failure to be surfaced")
	}
}

func TestAuthorize(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &fakeProvider{account: sessionAccount}
	_, c := newTestController(t, provider)
	defer c.Close()

	if got := c.Authorize(roles.Customer); got != RedirectLogin {
		t.Errorf("expected RedirectLogin before connect, got %v", got)
	}

	if _, err := c.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := c.Authorize(roles.Customer); got != Allow {
		t.Errorf("expected Allow for a customer view, got %v", got)
	}
	if got := c.Authorize(roles.Admin); got != RedirectRegister {
		t.Errorf("expected RedirectRegister for an admin view, got %v", got)
	}
	if got := c.Authorize(roles.BankEmployee, roles.Admin); got != RedirectRegister {
		t.Errorf("expected RedirectRegister for a staff view, got %v", got)
	}
}

func TestAccountRemovalDisconnects(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &fakeProvider{account: sessionAccount}
	_, c := newTestController(t, provider)
	defer c.Close()

	if _, err := c.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}

	provider.drop(sessionAccount)

	deadline := time.After(2 * time.Second)
	for c.Status().State != Disconnected {
		select {
		case <-deadline:
			t.Fatal("expected the session to disconnect after account removal")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestUnrelatedAccountRemovalIsIgnored(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &fakeProvider{account: sessionAccount}
	_, c := newTestController(t, provider)
	defer c.Close()

	if _, err := c.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}

	provider.drop(adminAccount)

	time.Sleep(50 * time.Millisecond)
	if got := c.Status().State; got != ConnectedWithRole {
		t.Errorf("expected the session to survive, got %q", got)
	}
}

func TestNetworkChangeTearsSessionDown(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &fakeProvider{account: sessionAccount}
	_, c := newTestController(t, provider)
	defer c.Close()

	if _, err := c.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}

	c.HandleNetworkChange(big.NewInt(1))

	status := c.Status()
	if status.State != Disconnected {
		t.Fatalf("expected Disconnected, got %q", status.State)
	}
	if status.Error == "" {
		t.Error("expected the network change to be surfaced")
	}
	if provider.connected {
		t.Error("expected the wallet to be disconnected")
	}
}

func TestDisconnect(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &fakeProvider{account: sessionAccount}
	_, c := newTestController(t, provider)
	defer c.Close()

	if _, err := c.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}

	status := c.Disconnect()
	if status.State != Disconnected {
		t.Fatalf("expected Disconnected, got %q", status.State)
	}
	if _, ok := c.Account(); ok {
		t.Error("expected no account after disconnect")
	}
}
