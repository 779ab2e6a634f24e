package transactions

import (
	"github.com/php369/kyc-blockchain-system/datastore"
)

// Store manages data regarding recorded ledger writes.
type Store interface {
	Transactions(o datastore.ListOptions) ([]Transaction, error)
	TransactionsForAccount(address string, o datastore.ListOptions) ([]Transaction, error)
	Transaction(txId string) (Transaction, error)
	InsertTransaction(t *Transaction) error
}
