package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"

	"github.com/php369/kyc-blockchain-system/migrations/internal/m20250901"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID:       m20250901.ID,
			Migrate:  m20250901.Migrate,
			Rollback: m20250901.Rollback,
		},
	}
}
