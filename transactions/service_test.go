package transactions

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/php369/kyc-blockchain-system/chain"
	"github.com/php369/kyc-blockchain-system/datastore"
	"github.com/php369/kyc-blockchain-system/errors"
)

type memoryStore struct {
	rows []Transaction

	// address passed to the last account-scoped query
	lastAddress string
}

func (m *memoryStore) Transactions(o datastore.ListOptions) ([]Transaction, error) {
	return m.rows, nil
}

func (m *memoryStore) TransactionsForAccount(address string, o datastore.ListOptions) ([]Transaction, error) {
	m.lastAddress = address
	var res []Transaction
	for _, t := range m.rows {
		if t.ActorAddress == address || t.TargetAddress == address {
			res = append(res, t)
		}
	}
	return res, nil
}

func (m *memoryStore) Transaction(txId string) (Transaction, error) {
	for _, t := range m.rows {
		if t.TransactionId == txId {
			return t, nil
		}
	}
	return Transaction{}, stderrors.New("not found")
}

func (m *memoryStore) InsertTransaction(t *Transaction) error {
	m.rows = append(m.rows, *t)
	return nil
}

func TestListForAccountNormalizesAddress(t *testing.T) {
	// Stored rows carry the checksummed form, as Record writes them.
	actor := chain.FormatAddress(common.HexToAddress("0x00000000000000000000000000000000000000c1"))

	store := &memoryStore{rows: []Transaction{
		{TransactionId: "0xabc", Operation: SubmitKYC, ActorAddress: actor, TargetAddress: actor},
	}}
	service := NewService(store)

	// Lowercased input still matches the checksummed stored form.
	txs, err := service.ListForAccount(strings.ToLower(actor), 100, 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction got %d", len(txs))
	}

	if store.lastAddress != actor {
		t.Errorf("expected query for checksummed address, got %q", store.lastAddress)
	}
}

func TestListForAccountRejectsInvalidAddress(t *testing.T) {
	service := NewService(&memoryStore{})

	_, err := service.ListForAccount("not-an-address", 100, 0)
	if err == nil {
		t.Fatal("expected an error")
	}

	var reqErr *errors.RequestError
	if !stderrors.As(err, &reqErr) || reqErr.StatusCode != 400 {
		t.Errorf("expected a 400 request error, got %v", err)
	}
}
