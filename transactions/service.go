package transactions

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/php369/kyc-blockchain-system/chain"
	"github.com/php369/kyc-blockchain-system/datastore"
	"github.com/php369/kyc-blockchain-system/errors"
)

// Service lists and records ledger writes issued by this service.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store}
}

// List returns the most recent recorded writes regardless of account.
func (s *Service) List(limit, offset int) ([]Transaction, error) {
	o := datastore.ParseListOptions(limit, offset)
	return s.store.Transactions(o)
}

// ListForAccount returns writes where the address appears as the actor
// or the target.
func (s *Service) ListForAccount(address string, limit, offset int) ([]Transaction, error) {
	address, err := chain.ValidateAddress(address)
	if err != nil {
		return nil, err
	}
	o := datastore.ParseListOptions(limit, offset)
	return s.store.TransactionsForAccount(address, o)
}

func (s *Service) Details(txId string) (Transaction, error) {
	t, err := s.store.Transaction(txId)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return Transaction{}, &errors.RequestError{
				StatusCode: http.StatusNotFound,
				Err:        fmt.Errorf("transaction not found: %s", txId),
			}
		}
		return Transaction{}, err
	}
	return t, nil
}

// Record stores an audit row for a confirmed ledger write. A nil
// receipt records the write without block details.
func (s *Service) Record(txType Type, actor, target string, receipt *chain.Receipt) error {
	t := Transaction{
		TransactionId: uuid.New().String(),
		Operation:     txType,
		ActorAddress:  actor,
		TargetAddress: target,
	}

	if receipt != nil {
		t.TransactionId = receipt.TxHash
		t.BlockNumber = receipt.BlockNumber
		t.GasUsed = receipt.GasUsed
	}

	if err := s.store.InsertTransaction(&t); err != nil {
		return err
	}

	log.
		WithFields(log.Fields{
			"txId":      t.TransactionId,
			"operation": t.Operation,
			"actor":     actor,
			"target":    target,
		}).
		Debug("Recorded ledger write")

	return nil
}
