package transactions

import (
	"github.com/php369/kyc-blockchain-system/datastore"
	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db}
}

func (s *GormStore) Transactions(o datastore.ListOptions) (tt []Transaction, err error) {
	err = s.db.
		Order("created_at desc").
		Limit(o.Limit).
		Offset(o.Offset).
		Find(&tt).Error
	return
}

func (s *GormStore) TransactionsForAccount(address string, o datastore.ListOptions) (tt []Transaction, err error) {
	err = s.db.
		Where("actor_address = ? OR target_address = ?", address, address).
		Order("created_at desc").
		Limit(o.Limit).
		Offset(o.Offset).
		Find(&tt).Error
	return
}

func (s *GormStore) Transaction(txId string) (t Transaction, err error) {
	err = s.db.First(&t, "transaction_id = ?", txId).Error
	return
}

func (s *GormStore) InsertTransaction(t *Transaction) error {
	return s.db.Create(t).Error
}
