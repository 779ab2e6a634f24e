// Package chaintest provides an in-memory stand-in for the registry
// contract. It enforces the same permission and precondition rules the
// deployed contract does, so services can be tested against a ledger
// that actually pushes back.
package chaintest

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/php369/kyc-blockchain-system/chain"
	"github.com/php369/kyc-blockchain-system/errors"
)

const (
	roleUnassigned uint8 = 0
	roleCustomer   uint8 = 1
	roleEmployee   uint8 = 2
	roleAdmin      uint8 = 3

	statusPending            uint8 = 0
	statusVerifiedByEmployee uint8 = 1
	statusVerifiedByAdmin    uint8 = 2
	statusRejected           uint8 = 3
	statusExpired            uint8 = 4
)

type record struct {
	status          uint8
	ipfsHash        string
	ifscCode        string
	submissionDate  int64
	expiry          int64
	rejectionReason string
}

// Gateway is an in-memory chain.Gateway.
type Gateway struct {
	mu sync.Mutex

	roles        map[common.Address]uint8
	employeeIFSC map[common.Address]string
	records      map[common.Address]record

	validityPeriod time.Duration
	seq            uint64

	// Now supplies the ledger clock, override to drive expiry.
	Now func() int64

	// RoleAsBigInt makes getUserRole return a big-integer wrapper, the
	// way some RPC layers deliver small integers.
	RoleAsBigInt bool

	// NextWriteErr is returned (and cleared) by the next Write call
	// before any state change is applied.
	NextWriteErr error

	ReadCalls  int
	WriteCalls int

	// LastWriteActor is the actor of the most recent Write call.
	LastWriteActor common.Address
}

func NewGateway() *Gateway {
	return &Gateway{
		roles:          make(map[common.Address]uint8),
		employeeIFSC:   make(map[common.Address]string),
		records:        make(map[common.Address]record),
		validityPeriod: 2 * 8760 * time.Hour,
		Now:            func() int64 { return time.Now().Unix() },
	}
}

// SeedAdmin assigns the admin role directly, bypassing permission checks.
func (g *Gateway) SeedAdmin(account common.Address) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roles[account] = roleAdmin
}

// SeedEmployee assigns the employee role and branch directly.
func (g *Gateway) SeedEmployee(account common.Address, ifsc string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roles[account] = roleEmployee
	g.employeeIFSC[account] = ifsc
}

// SeedCustomer assigns the customer role directly.
func (g *Gateway) SeedCustomer(account common.Address) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roles[account] = roleCustomer
}

// SetValidityPeriod overrides the approval validity window.
func (g *Gateway) SetValidityPeriod(d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.validityPeriod = d
}

func (g *Gateway) Read(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ReadCalls++

	if err := ctx.Err(); err != nil {
		return nil, &errors.UserCancelledError{}
	}

	switch method {
	case chain.OpGetUserRole:
		account := args[0].(common.Address)
		role := g.roles[account]
		if g.RoleAsBigInt {
			return []interface{}{new(big.Int).SetUint64(uint64(role))}, nil
		}
		return []interface{}{role}, nil

	case chain.OpGetKYCDetails:
		account := args[0].(common.Address)
		r := g.records[account]
		return []interface{}{
			r.status,
			r.ipfsHash,
			r.ifscCode,
			big.NewInt(r.submissionDate),
			big.NewInt(r.expiry),
			r.rejectionReason,
		}, nil

	default:
		return nil, fmt.Errorf("unknown read operation %q", method)
	}
}

func (g *Gateway) Write(ctx context.Context, actor common.Address, method string, args ...interface{}) (*chain.Receipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.WriteCalls++
	g.LastWriteActor = actor

	if err := g.NextWriteErr; err != nil {
		g.NextWriteErr = nil
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, &errors.UserCancelledError{}
	}

	if err := g.apply(actor, method, args); err != nil {
		return nil, err
	}

	g.seq++
	return &chain.Receipt{
		TxHash:      fmt.Sprintf("0x%064x", g.seq),
		BlockNumber: g.seq,
		GasUsed:     21000,
	}, nil
}

func (g *Gateway) apply(actor common.Address, method string, args []interface{}) error {
	switch method {
	case chain.OpSubmitKYC:
		ipfsHash := args[0].(string)
		ifscCode := args[1].(string)
		if g.roles[actor] != roleCustomer {
			return reject("KYC: caller is not a customer")
		}
		r, exists := g.records[actor]
		if exists && r.status != statusRejected && r.status != statusExpired {
			return reject("KYC: application already exists")
		}
		g.records[actor] = record{
			status:         statusPending,
			ipfsHash:       ipfsHash,
			ifscCode:       ifscCode,
			submissionDate: g.Now(),
		}
		return nil

	case chain.OpVerifyKYC:
		target := args[0].(common.Address)
		if g.roles[actor] != roleEmployee {
			return reject("KYC: caller is not a bank employee")
		}
		r, exists := g.records[target]
		if !exists || r.status != statusPending {
			return reject("KYC: application is not pending")
		}
		if g.employeeIFSC[actor] != r.ifscCode {
			return reject("KYC: branch mismatch")
		}
		r.status = statusVerifiedByEmployee
		g.records[target] = r
		return nil

	case chain.OpReverifyKYC:
		target := args[0].(common.Address)
		if g.roles[actor] != roleAdmin {
			return reject("KYC: caller is not an admin")
		}
		r, exists := g.records[target]
		if !exists || r.status != statusVerifiedByEmployee {
			return reject("KYC: application is not verified by employee")
		}
		r.status = statusVerifiedByAdmin
		r.expiry = g.Now() + int64(g.validityPeriod/time.Second)
		g.records[target] = r
		return nil

	case chain.OpRejectKYC:
		target := args[0].(common.Address)
		reason := args[1].(string)
		if role := g.roles[actor]; role != roleEmployee && role != roleAdmin {
			return reject("KYC: caller cannot reject applications")
		}
		if reason == "" {
			return reject("KYC: rejection reason required")
		}
		r, exists := g.records[target]
		if !exists || (r.status != statusPending && r.status != statusVerifiedByEmployee) {
			return reject("KYC: application cannot be rejected")
		}
		r.status = statusRejected
		r.rejectionReason = reason
		g.records[target] = r
		return nil

	case chain.OpCheckExpiry:
		target := args[0].(common.Address)
		r, exists := g.records[target]
		if exists && r.status == statusVerifiedByAdmin && g.Now() >= r.expiry {
			r.status = statusExpired
			g.records[target] = r
		}
		// No-op otherwise, never an error.
		return nil

	case chain.OpDeleteKYCApplication:
		r, exists := g.records[actor]
		if !exists {
			return reject("KYC: no application")
		}
		if r.status != statusPending && r.status != statusRejected {
			return reject("KYC: application cannot be deleted")
		}
		delete(g.records, actor)
		return nil

	case chain.OpAddCustomer:
		target := args[0].(common.Address)
		if actor != target && g.roles[actor] != roleAdmin {
			return reject("KYC: not allowed to grant roles")
		}
		if g.roles[target] != roleUnassigned {
			return reject("KYC: role already assigned")
		}
		g.roles[target] = roleCustomer
		return nil

	case chain.OpAddBankEmployee:
		target := args[0].(common.Address)
		ifscCode := args[1].(string)
		if g.roles[actor] != roleAdmin {
			return reject("KYC: caller is not an admin")
		}
		if g.roles[target] != roleUnassigned {
			return reject("KYC: role already assigned")
		}
		g.roles[target] = roleEmployee
		g.employeeIFSC[target] = ifscCode
		return nil

	case chain.OpAddAdmin:
		target := args[0].(common.Address)
		if g.roles[actor] != roleAdmin {
			return reject("KYC: caller is not an admin")
		}
		if g.roles[target] != roleUnassigned {
			return reject("KYC: role already assigned")
		}
		g.roles[target] = roleAdmin
		return nil

	default:
		return fmt.Errorf("unknown write operation %q", method)
	}
}

func reject(reason string) error {
	return &errors.RemoteRejectedError{Reason: reason}
}
