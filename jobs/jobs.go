// Package jobs manages the worker pool that executes ledger writes in
// the background. Every write travels through a job so callers can
// choose between waiting for confirmation and polling later.
package jobs

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/php369/kyc-blockchain-system/errors"
)

type Job struct {
	ID        uuid.UUID              `json:"jobId" gorm:"column:id;primary_key;type:uuid;"`
	Do        func() (string, error) `json:"-" gorm:"-"`
	Status    Status                 `json:"status" gorm:"column:status"`
	Error     string                 `json:"-" gorm:"column:error"`
	Result    string                 `json:"result" gorm:"column:result"`
	CreatedAt time.Time              `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time              `json:"updatedAt" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt         `json:"-" gorm:"column:deleted_at;index"`

	done chan struct{} `gorm:"-"`
}

func (Job) TableName() string {
	return "jobs"
}

func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return
}

// Wait blocks until the job has finished when sync is true and returns
// the job error, if any. When sync is false it returns immediately.
func (j *Job) Wait(sync bool) error {
	if !sync {
		return nil
	}
	<-j.done
	if j.Status == Error {
		return fmt.Errorf(j.Error)
	}
	return nil
}

type WorkerPool struct {
	wg       *sync.WaitGroup
	jobChan  chan *Job
	store    Store
	capacity uint
	workers  uint
}

// NewWorkerPool starts workerCount workers consuming a queue of the
// given capacity.
func NewWorkerPool(store Store, capacity uint, workerCount uint) *WorkerPool {
	pool := &WorkerPool{
		wg:       &sync.WaitGroup{},
		jobChan:  make(chan *Job, capacity),
		store:    store,
		capacity: capacity,
		workers:  workerCount,
	}

	for i := uint(0); i < workerCount; i++ {
		pool.wg.Add(1)
		go pool.work()
	}

	return pool
}

// AddJob queues the given function for execution. It returns a
// JobQueueFull error when the queue cannot accept more work.
func (p *WorkerPool) AddJob(do func() (string, error)) (*Job, error) {
	job := &Job{Do: do, Status: Init, done: make(chan struct{})}

	if err := p.store.InsertJob(job); err != nil {
		return nil, err
	}

	select {
	case p.jobChan <- job:
	default:
		job.Status = QueueFull
		p.update(job)
		close(job.done)
		return job, &errors.JobQueueFull{Err: fmt.Errorf("job queue is full")}
	}

	job.Status = Accepted
	p.update(job)

	return job, nil
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *WorkerPool) Stop() {
	close(p.jobChan)
	p.wg.Wait()
}

// Capacity reports the configured queue capacity.
func (p *WorkerPool) Capacity() uint {
	return p.capacity
}

func (p *WorkerPool) work() {
	defer p.wg.Done()
	for job := range p.jobChan {
		p.process(job)
	}
}

func (p *WorkerPool) process(job *Job) {
	defer close(job.done)

	result, err := job.Do()
	if err != nil {
		job.Status = Error
		job.Error = err.Error()
		p.update(job)
		return
	}

	job.Status = Complete
	job.Result = result
	p.update(job)
}

func (p *WorkerPool) update(job *Job) {
	if err := p.store.UpdateJob(job); err != nil {
		log.
			WithFields(log.Fields{"jobId": job.ID, "error": err}).
			Warn("Failed to update job")
	}
}
