package wallet

import (
	"context"
	stderrors "errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	log "github.com/sirupsen/logrus"

	"github.com/php369/kyc-blockchain-system/errors"
)

// KeystoreProvider is a Provider over an encrypted on-disk keystore.
// It also signs ledger transactions for the connected account.
type KeystoreProvider struct {
	ks         *keystore.KeyStore
	passphrase string
	preferred  common.Address

	mu         sync.Mutex
	active     common.Address
	haveActive bool

	feed     event.Feed
	walletCh chan accounts.WalletEvent
	sub      event.Subscription
	quit     chan struct{}
}

// NewKeystoreProvider opens the keystore at path. The preferred address
// may be empty, in which case Connect picks the first account.
func NewKeystoreProvider(path, passphrase, preferred string) *KeystoreProvider {
	p := &KeystoreProvider{
		ks:         keystore.NewKeyStore(path, keystore.StandardScryptN, keystore.StandardScryptP),
		passphrase: passphrase,
		walletCh:   make(chan accounts.WalletEvent, 16),
		quit:       make(chan struct{}),
	}

	if preferred != "" {
		p.preferred = common.HexToAddress(preferred)
	}

	p.sub = p.ks.Subscribe(p.walletCh)
	go p.loop()

	return p
}

// loop translates keystore wallet events into account events on the feed.
func (p *KeystoreProvider) loop() {
	for {
		select {
		case <-p.quit:
			return
		case ev := <-p.walletCh:
			kind := AccountAdded
			if ev.Kind == accounts.WalletDropped {
				kind = AccountRemoved
			}
			for _, a := range ev.Wallet.Accounts() {
				p.feed.Send(Event{Kind: kind, Account: a.Address})
			}
		}
	}
}

func (p *KeystoreProvider) Accounts() []common.Address {
	var out []common.Address
	for _, a := range p.ks.Accounts() {
		out = append(out, a.Address)
	}
	return out
}

func (p *KeystoreProvider) Connect(ctx context.Context) (common.Address, error) {
	all := p.ks.Accounts()
	if len(all) == 0 {
		return common.Address{}, &errors.NotInitializedError{
			Err: stderrors.New("keystore has no accounts"),
		}
	}

	chosen := all[0]
	if (p.preferred != common.Address{}) {
		found := false
		for _, a := range all {
			if a.Address == p.preferred {
				chosen = a
				found = true
				break
			}
		}
		if !found {
			return common.Address{}, &errors.NotInitializedError{
				Err: stderrors.New("preferred account not present in keystore"),
			}
		}
	}

	if err := p.ks.Unlock(chosen, p.passphrase); err != nil {
		return common.Address{}, err
	}

	p.mu.Lock()
	p.active = chosen.Address
	p.haveActive = true
	p.mu.Unlock()

	log.WithFields(log.Fields{"account": chosen.Address.Hex()}).Info("Wallet connected")

	return chosen.Address, nil
}

func (p *KeystoreProvider) Disconnect() {
	p.mu.Lock()
	active, have := p.active, p.haveActive
	p.active = common.Address{}
	p.haveActive = false
	p.mu.Unlock()

	if have {
		if err := p.ks.Lock(active); err != nil {
			log.WithFields(log.Fields{"error": err}).Warn("Failed to re-lock account")
		}
	}
}

func (p *KeystoreProvider) Account() (common.Address, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active, p.haveActive
}

func (p *KeystoreProvider) Subscribe(sink chan<- Event) event.Subscription {
	return p.feed.Subscribe(sink)
}

// SignTx implements chain.TxSigner for the connected account.
func (p *KeystoreProvider) SignTx(account common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return p.ks.SignTx(accounts.Account{Address: account}, tx, chainID)
}

// Close tears down the keystore subscription.
func (p *KeystoreProvider) Close() {
	p.sub.Unsubscribe()
	close(p.quit)
}
