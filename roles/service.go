package roles

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/php369/kyc-blockchain-system/chain"
	"github.com/php369/kyc-blockchain-system/errors"
	"github.com/php369/kyc-blockchain-system/transactions"
)

// Resolution is a resolved role together with the time it was fetched.
type Resolution struct {
	Account    string    `json:"account"`
	Role       Role      `json:"role"`
	ResolvedAt time.Time `json:"resolvedAt"`
}

// Service resolves and grants roles. Resolutions are cached per account
// until the account changes or a role-granting write succeeds.
type Service struct {
	gw  chain.Gateway
	txs *transactions.Service

	mu    sync.RWMutex
	cache map[common.Address]Resolution
}

// NewService initiates a new role service.
func NewService(gw chain.Gateway, txs *transactions.Service) *Service {
	return &Service{
		gw:    gw,
		txs:   txs,
		cache: make(map[common.Address]Resolution),
	}
}

// Resolve returns the role of the given account, from cache when
// available, otherwise from the ledger.
func (s *Service) Resolve(ctx context.Context, address string) (Resolution, error) {
	account, err := chain.ParseAddress(address)
	if err != nil {
		return Resolution{}, err
	}

	s.mu.RLock()
	cached, ok := s.cache[account]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	return s.refresh(ctx, account)
}

func (s *Service) refresh(ctx context.Context, account common.Address) (Resolution, error) {
	values, err := s.gw.Read(ctx, chain.OpGetUserRole, account)
	if err != nil {
		return Resolution{}, err
	}

	var raw interface{}
	if len(values) > 0 {
		raw = values[0]
	}

	role, err := FromValue(raw)
	if err != nil {
		return Resolution{}, err
	}

	res := Resolution{
		Account:    chain.FormatAddress(account),
		Role:       role,
		ResolvedAt: time.Now(),
	}

	s.mu.Lock()
	s.cache[account] = res
	s.mu.Unlock()

	return res, nil
}

// Invalidate drops the cached resolution for one account.
func (s *Service) Invalidate(account common.Address) {
	s.mu.Lock()
	delete(s.cache, account)
	s.mu.Unlock()
}

// InvalidateAll drops every cached resolution. Used on network change.
func (s *Service) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[common.Address]Resolution)
	s.mu.Unlock()
}

// GrantCustomer registers the target account as a customer. Permitted
// for the account itself (self-registration) or an admin.
func (s *Service) GrantCustomer(ctx context.Context, actor common.Address, address string) (*chain.Receipt, error) {
	return s.grant(ctx, actor, address, chain.OpAddCustomer, transactions.AddCustomer, nil)
}

// GrantBankEmployee registers the target account as a bank employee of
// the given branch. Admin only, the branch code is required.
func (s *Service) GrantBankEmployee(ctx context.Context, actor common.Address, address, ifscCode string) (*chain.Receipt, error) {
	if ifscCode == "" {
		return nil, &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("ifscCode is required for a bank employee"),
		}
	}
	return s.grant(ctx, actor, address, chain.OpAddBankEmployee, transactions.AddBankEmployee, []interface{}{ifscCode})
}

// GrantAdmin registers the target account as an admin. Admin only.
func (s *Service) GrantAdmin(ctx context.Context, actor common.Address, address string) (*chain.Receipt, error) {
	return s.grant(ctx, actor, address, chain.OpAddAdmin, transactions.AddAdmin, nil)
}

func (s *Service) grant(ctx context.Context, actor common.Address, address, op string, txType transactions.Type, extra []interface{}) (*chain.Receipt, error) {
	target, err := chain.ParseAddress(address)
	if err != nil {
		return nil, err
	}

	args := append([]interface{}{target}, extra...)

	receipt, err := s.gw.Write(ctx, actor, op, args...)
	if err != nil {
		return nil, err
	}

	// Role changed remotely, the cached resolution is stale now.
	s.Invalidate(target)

	if s.txs != nil {
		if err := s.txs.Record(txType, chain.FormatAddress(actor), chain.FormatAddress(target), receipt); err != nil {
			log.WithFields(log.Fields{"error": err}).Warn("Failed to record role grant")
		}
	}

	return receipt, nil
}
