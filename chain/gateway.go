// Package chain talks to the KYC registry contract on the external
// ledger. The ledger is the sole source of truth for roles and KYC
// records, this package only reads it and submits state changes to it.
package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Operation names on the KYC registry contract.
const (
	OpGetUserRole          = "getUserRole"
	OpGetKYCDetails        = "getKYCDetails"
	OpSubmitKYC            = "submitKYC"
	OpVerifyKYC            = "verifyKYC"
	OpReverifyKYC          = "reverifyKYC"
	OpRejectKYC            = "rejectKYC"
	OpCheckExpiry          = "checkExpiry"
	OpDeleteKYCApplication = "deleteKYCApplication"
	OpAddCustomer          = "addCustomer"
	OpAddBankEmployee      = "addBankEmployee"
	OpAddAdmin             = "addAdmin"
)

// Receipt is the confirmation of a state-changing call.
type Receipt struct {
	TxHash      string `json:"transactionId"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
}

// Gateway performs calls against the registry contract.
//
// Read must not mutate remote state and is retry-safe. Write submits a
// state-changing call as the given actor and does not resolve until the
// ledger has confirmed it. Both return the typed errors from the errors
// package: NotInitializedError, NetworkError, RemoteRejectedError and
// UserCancelledError (on context cancellation of an in-flight call).
type Gateway interface {
	Read(ctx context.Context, method string, args ...interface{}) ([]interface{}, error)
	Write(ctx context.Context, actor common.Address, method string, args ...interface{}) (*Receipt, error)
}

// TxSigner signs ledger transactions on behalf of an account. Implemented
// by the wallet package.
type TxSigner interface {
	SignTx(account common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}
