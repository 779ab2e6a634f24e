package jobs

import (
	"github.com/google/uuid"

	"github.com/php369/kyc-blockchain-system/datastore"
)

// Store manages data regarding jobs.
type Store interface {
	Jobs(o datastore.ListOptions) ([]Job, error)
	Job(id uuid.UUID) (Job, error)
	InsertJob(j *Job) error
	UpdateJob(j *Job) error
}
