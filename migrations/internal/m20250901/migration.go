package m20250901

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ID = "20250901"

type Transaction struct {
	TransactionId string         `gorm:"column:transaction_id;primaryKey"`
	Operation     string         `gorm:"column:operation;index"`
	ActorAddress  string         `gorm:"column:actor_address;index"`
	TargetAddress string         `gorm:"column:target_address;index"`
	BlockNumber   uint64         `gorm:"column:block_number"`
	GasUsed       uint64         `gorm:"column:gas_used"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type Job struct {
	ID        uuid.UUID      `gorm:"column:id;primary_key;type:uuid;"`
	Status    string         `gorm:"column:status"`
	Error     string         `gorm:"column:error"`
	Result    string         `gorm:"column:result"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Job) TableName() string {
	return "jobs"
}

type IdempotencyKey struct {
	Key        string    `gorm:"column:key;primary_key"`
	ExpiryDate time.Time `gorm:"column:expiry_date"`
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(&Transaction{}, &Job{}, &IdempotencyKey{})
}

func Rollback(tx *gorm.DB) error {
	return tx.Migrator().DropTable(&Transaction{}, &Job{}, &IdempotencyKey{})
}
