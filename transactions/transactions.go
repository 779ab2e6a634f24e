// Package transactions keeps an audit trail of ledger writes issued by
// this service. The ledger remains the source of truth for all KYC
// state, these rows only record what was sent, by whom and when.
package transactions

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Transaction is the database model for a recorded ledger write.
type Transaction struct {
	TransactionId string         `json:"transactionId" gorm:"column:transaction_id;primaryKey"`
	Operation     Type           `json:"operation" gorm:"column:operation;index"`
	ActorAddress  string         `json:"actorAddress" gorm:"column:actor_address;index"`
	TargetAddress string         `json:"targetAddress" gorm:"column:target_address;index"`
	BlockNumber   uint64         `json:"blockNumber" gorm:"column:block_number"`
	GasUsed       uint64         `json:"gasUsed" gorm:"column:gas_used"`
	CreatedAt     time.Time      `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Operation names are stored as text so the audit trail reads without
// the enum mapping at hand.

func (t Type) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *Type) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = TypeFromText(v)
	case []byte:
		*t = TypeFromText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into transactions.Type", value)
	}
	return nil
}
