package jobs

import (
	stderrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/php369/kyc-blockchain-system/datastore"
	"github.com/php369/kyc-blockchain-system/errors"
)

type memoryStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]Job
}

func newMemoryStore() *memoryStore {
	return &memoryStore{jobs: make(map[uuid.UUID]Job)}
}

func (s *memoryStore) Jobs(datastore.ListOptions) ([]Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jj := make([]Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jj = append(jj, j)
	}
	return jj, nil
}

func (s *memoryStore) Job(id uuid.UUID) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id], nil
}

func (s *memoryStore) InsertJob(j *Job) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID] = *j
	return nil
}

func (s *memoryStore) UpdateJob(j *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID] = *j
	return nil
}

func TestJobCompletes(t *testing.T) {
	pool := NewWorkerPool(newMemoryStore(), 10, 1)
	defer pool.Stop()

	job, err := pool.AddJob(func() (string, error) {
		return "0xdeadbeef", nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := job.Wait(true); err != nil {
		t.Fatal(err)
	}

	if job.Status != Complete {
		t.Errorf("expected Complete, got %q", job.Status)
	}
	if job.Result != "0xdeadbeef" {
		t.Errorf("expected result to carry through, got %q", job.Result)
	}
}

func TestJobError(t *testing.T) {
	pool := NewWorkerPool(newMemoryStore(), 10, 1)
	defer pool.Stop()

	job, err := pool.AddJob(func() (string, error) {
		return "", fmt.Errorf("ledger says no")
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := job.Wait(true); err == nil {
		t.Fatal("expected job error to surface on wait")
	}

	if job.Status != Error {
		t.Errorf("expected Error, got %q", job.Status)
	}
}

func TestQueueFull(t *testing.T) {
	store := newMemoryStore()

	// Zero workers, nothing drains the queue.
	pool := &WorkerPool{
		wg:      &sync.WaitGroup{},
		jobChan: make(chan *Job, 1),
		store:   store,
	}

	if _, err := pool.AddJob(func() (string, error) { return "", nil }); err != nil {
		t.Fatal(err)
	}

	job, err := pool.AddJob(func() (string, error) { return "", nil })
	var fullErr *errors.JobQueueFull
	if !stderrors.As(err, &fullErr) {
		t.Fatalf("expected JobQueueFull, got %#v", err)
	}
	if job.Status != QueueFull {
		t.Errorf("expected QueueFull, got %q", job.Status)
	}

	// A full queue must not block a synchronous wait.
	if err := job.Wait(true); err != nil {
		t.Fatal(err)
	}
}
