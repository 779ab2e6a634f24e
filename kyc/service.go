package kyc

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/php369/kyc-blockchain-system/chain"
	"github.com/php369/kyc-blockchain-system/errors"
	"github.com/php369/kyc-blockchain-system/jobs"
	"github.com/php369/kyc-blockchain-system/roles"
	"github.com/php369/kyc-blockchain-system/transactions"
)

// Service drives the KYC workflow. Each transition is one ledger write
// executed through the worker pool, with the record state re-read from
// the ledger after the write resolves, success or not. Writes that
// target the same record are never issued concurrently, a second
// attempt fails fast instead of queueing.
type Service struct {
	gw    chain.Gateway
	roles *roles.Service
	txs   *transactions.Service
	wp    *jobs.WorkerPool

	expiryCheckOnRead bool
	signingAccount    func() (common.Address, bool)
	now               func() int64

	mu       sync.Mutex
	inFlight map[common.Address]struct{}
}

type ServiceOption func(*Service)

// WithExpiryCheckOnRead makes Details trigger the idempotent expiry
// check before returning a record whose approval window has lapsed.
// Requires a signing account to issue the write.
func WithExpiryCheckOnRead() ServiceOption {
	return func(s *Service) {
		s.expiryCheckOnRead = true
	}
}

// WithSigningAccount supplies the account ledger writes issued without
// an explicit actor are signed as, typically the connected wallet
// account. Only the read-triggered expiry check needs it.
func WithSigningAccount(account func() (common.Address, bool)) ServiceOption {
	return func(s *Service) {
		s.signingAccount = account
	}
}

// NewService initiates a new KYC service.
func NewService(gw chain.Gateway, rs *roles.Service, txs *transactions.Service, wp *jobs.WorkerPool, opts ...ServiceOption) *Service {
	s := &Service{
		gw:       gw,
		roles:    rs,
		txs:      txs,
		wp:       wp,
		now:      func() int64 { return time.Now().Unix() },
		signingAccount: func() (common.Address, bool) {
			return common.Address{}, false
		},
		inFlight: make(map[common.Address]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Details returns the current KYC record for the account, straight from
// the ledger.
func (s *Service) Details(ctx context.Context, address string) (Record, error) {
	account, err := chain.ParseAddress(address)
	if err != nil {
		return Record{}, err
	}

	record, err := s.read(ctx, account)
	if err != nil {
		return Record{}, err
	}

	if s.expiryCheckOnRead && s.expiryDue(record) {
		// The ledger never expires a record on its own, someone has to
		// call checkExpiry. Piggyback on the read, synchronously,
		// signed as the connected account. Without one the write
		// could not be signed, so the stale state is returned as is.
		if actor, ok := s.signingAccount(); ok {
			if _, after, err := s.CheckExpiry(ctx, true, actor, address); err == nil && after != nil {
				record = *after
			}
		}
	}

	return record, nil
}

// Submit creates or resubmits the actor's own application.
func (s *Service) Submit(ctx context.Context, sync bool, actor common.Address, documentRef, ifscCode string) (*jobs.Job, *Record, error) {
	if err := ValidateDocumentRef(documentRef); err != nil {
		return nil, nil, err
	}
	if err := ValidateIFSC(ifscCode); err != nil {
		return nil, nil, err
	}
	if err := s.requireRole(ctx, actor, roles.Customer); err != nil {
		return nil, nil, err
	}

	return s.execute(ctx, sync, actor, actor, chain.OpSubmitKYC, transactions.SubmitKYC, documentRef, ifscCode)
}

// Verify marks a pending application as verified by a bank employee.
// The ledger additionally enforces that the employee's branch matches
// the application's.
func (s *Service) Verify(ctx context.Context, sync bool, actor common.Address, address string) (*jobs.Job, *Record, error) {
	target, err := chain.ParseAddress(address)
	if err != nil {
		return nil, nil, err
	}
	if err := s.requireRole(ctx, actor, roles.BankEmployee); err != nil {
		return nil, nil, err
	}

	return s.execute(ctx, sync, actor, target, chain.OpVerifyKYC, transactions.VerifyKYC, target)
}

// Approve gives an employee-verified application its final admin
// approval. The ledger sets the expiry date.
func (s *Service) Approve(ctx context.Context, sync bool, actor common.Address, address string) (*jobs.Job, *Record, error) {
	target, err := chain.ParseAddress(address)
	if err != nil {
		return nil, nil, err
	}
	if err := s.requireRole(ctx, actor, roles.Admin); err != nil {
		return nil, nil, err
	}

	return s.execute(ctx, sync, actor, target, chain.OpReverifyKYC, transactions.ApproveKYC, target)
}

// Reject refuses an application with a reason. Open to employees and
// admins while the application is pending or employee-verified.
func (s *Service) Reject(ctx context.Context, sync bool, actor common.Address, address, reason string) (*jobs.Job, *Record, error) {
	if err := ValidateRejectionReason(reason); err != nil {
		return nil, nil, err
	}
	target, err := chain.ParseAddress(address)
	if err != nil {
		return nil, nil, err
	}
	if err := s.requireRole(ctx, actor, roles.BankEmployee, roles.Admin); err != nil {
		return nil, nil, err
	}

	return s.execute(ctx, sync, actor, target, chain.OpRejectKYC, transactions.RejectKYC, target, reason)
}

// CheckExpiry expires an approved application whose validity window has
// lapsed. A no-op on anything else, never an error, and no ledger write
// is issued unless the record is actually due. The call is open to any
// role, but the write is signed as the actor, so the actor must be the
// connected account.
func (s *Service) CheckExpiry(ctx context.Context, sync bool, actor common.Address, address string) (*jobs.Job, *Record, error) {
	target, err := chain.ParseAddress(address)
	if err != nil {
		return nil, nil, err
	}

	record, err := s.read(ctx, target)
	if err != nil {
		return nil, nil, err
	}
	if !s.expiryDue(record) {
		return nil, &record, nil
	}

	return s.execute(ctx, sync, actor, target, chain.OpCheckExpiry, transactions.CheckExpiry, target)
}

// Delete removes the actor's own application. Only pending and rejected
// applications can be deleted, states another actor has acted on stay.
func (s *Service) Delete(ctx context.Context, sync bool, actor common.Address) (*jobs.Job, *Record, error) {
	if err := s.requireRole(ctx, actor, roles.Customer); err != nil {
		return nil, nil, err
	}

	return s.execute(ctx, sync, actor, actor, chain.OpDeleteKYCApplication, transactions.DeleteKYC)
}

// InFlight reports whether a write for the record is outstanding.
func (s *Service) InFlight(account common.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[account]
	return ok
}

func (s *Service) expiryDue(r Record) bool {
	return r.State() == VerifiedByAdmin && r.ExpiryDate > 0 && s.now() >= r.ExpiryDate
}

func (s *Service) read(ctx context.Context, account common.Address) (Record, error) {
	values, err := s.gw.Read(ctx, chain.OpGetKYCDetails, account)
	if err != nil {
		return Record{}, err
	}
	return recordFromValues(chain.FormatAddress(account), values)
}

func (s *Service) requireRole(ctx context.Context, actor common.Address, allowed ...roles.Role) error {
	res, err := s.roles.Resolve(ctx, chain.FormatAddress(actor))
	if err != nil {
		return err
	}
	for _, r := range allowed {
		if res.Role == r {
			return nil
		}
	}
	return &errors.RequestError{
		StatusCode: http.StatusForbidden,
		Err:        fmt.Errorf("operation requires the %s role", allowed[0].DisplayName()),
	}
}

// execute runs one workflow transition as a job: take the per-record
// lock, check the transition against the current ledger state, issue
// the write, then re-read the authoritative state either way.
func (s *Service) execute(ctx context.Context, sync bool, actor, owner common.Address, op string, txType transactions.Type, args ...interface{}) (*jobs.Job, *Record, error) {
	if err := s.acquire(owner); err != nil {
		return nil, nil, err
	}

	record := &Record{}

	// Typed errors survive a synchronous wait through this slot, the
	// job row only keeps the flattened message.
	var opErr error

	job, err := s.wp.AddJob(func() (string, error) {
		defer s.release(owner)

		jctx := ctx
		if !sync {
			jctx = context.Background()
		}

		receipt, err := s.run(jctx, record, actor, owner, op, args)
		if err != nil {
			opErr = err
			return "", err
		}
		if s.txs != nil {
			if err := s.txs.Record(txType, chain.FormatAddress(actor), chain.FormatAddress(owner), receipt); err != nil {
				log.WithFields(log.Fields{"error": err}).Warn("Failed to record KYC write")
			}
		}
		return receipt.TxHash, nil
	})

	if err != nil {
		s.release(owner)
		if _, ok := err.(*errors.JobQueueFull); ok {
			err = &errors.RequestError{
				StatusCode: http.StatusServiceUnavailable,
				Err:        fmt.Errorf("max capacity reached, try again later"),
			}
		}
		return nil, nil, err
	}

	if err := job.Wait(sync); err != nil {
		if opErr != nil {
			err = opErr
		}
		return job, record, err
	}

	return job, record, nil
}

func (s *Service) run(ctx context.Context, record *Record, actor, owner common.Address, op string, args []interface{}) (*chain.Receipt, error) {
	current, err := s.read(ctx, owner)
	if err != nil {
		return nil, err
	}

	if !CanTransition(op, current.State()) {
		return nil, &errors.IllegalTransitionError{
			From:  current.State().String(),
			To:    TargetState(op).String(),
			Actor: chain.FormatAddress(actor),
		}
	}

	receipt, writeErr := s.gw.Write(ctx, actor, op, args...)

	// Resynchronize from the ledger regardless of the write outcome,
	// it may have been rejected for a precondition this service could
	// not see.
	if after, err := s.read(ctx, owner); err == nil {
		*record = after
	}

	if writeErr != nil {
		return nil, writeErr
	}

	return receipt, nil
}

func (s *Service) acquire(account common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[account]; ok {
		return &errors.RequestError{
			StatusCode: http.StatusConflict,
			Err:        fmt.Errorf("another write for this record is in flight"),
		}
	}
	s.inFlight[account] = struct{}{}
	return nil
}

func (s *Service) release(account common.Address) {
	s.mu.Lock()
	delete(s.inFlight, account)
	s.mu.Unlock()
}
