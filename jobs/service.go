package jobs

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/php369/kyc-blockchain-system/datastore"
	"github.com/php369/kyc-blockchain-system/errors"
)

// Service defines the API for job HTTP handlers.
type Service struct {
	store Store
}

// NewService initiates a new job service.
func NewService(store Store) *Service {
	return &Service{store}
}

// List returns all jobs in the datastore.
func (s *Service) List(limit, offset int) ([]Job, error) {
	o := datastore.ParseListOptions(limit, offset)
	return s.store.Jobs(o)
}

// Details returns a specific job.
func (s *Service) Details(jobId string) (Job, error) {
	id, err := uuid.Parse(jobId)
	if err != nil {
		return Job{}, &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("invalid job id"),
		}
	}

	j, err := s.store.Job(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return Job{}, &errors.RequestError{
				StatusCode: http.StatusNotFound,
				Err:        fmt.Errorf("job not found"),
			}
		}
		return Job{}, err
	}

	return j, nil
}
