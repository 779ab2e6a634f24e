package main

import (
	"context"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.uber.org/goleak"

	"github.com/php369/kyc-blockchain-system/chain"
	"github.com/php369/kyc-blockchain-system/chain/chaintest"
	"github.com/php369/kyc-blockchain-system/datastore/gorm"
	"github.com/php369/kyc-blockchain-system/jobs"
	"github.com/php369/kyc-blockchain-system/kyc"
	"github.com/php369/kyc-blockchain-system/roles"
	"github.com/php369/kyc-blockchain-system/transactions"
)

const testDbDSN = "test.db"
const testDbType = "sqlite"

var (
	testAdmin    = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	testEmployee = common.HexToAddress("0x00000000000000000000000000000000000000e1")
	testCustomer = common.HexToAddress("0x00000000000000000000000000000000000000c1")
)

func TestMain(m *testing.M) {
	godotenv.Load(".env.test")

	os.Setenv("KYC_DATABASE_DSN", testDbDSN)
	os.Setenv("KYC_DATABASE_TYPE", testDbType)

	log.SetLevel(log.ErrorLevel)

	exitcode := m.Run()

	os.Remove(testDbDSN)
	os.Exit(exitcode)
}

func TestKYCWorkflowServices(t *testing.T) {
	defer goleak.VerifyNone(t)

	gw := chaintest.NewGateway()
	gw.SeedAdmin(testAdmin)
	gw.SeedEmployee(testEmployee, "HDFC0000001")

	db, err := gorm.New()
	if err != nil {
		t.Fatal(err)
	}
	defer gorm.Close(db)

	wp := jobs.NewWorkerPool(jobs.NewGormStore(db), 10, 1)
	defer wp.Stop()

	transactionService := transactions.NewService(transactions.NewGormStore(db))
	roleService := roles.NewService(gw, transactionService)
	kycService := kyc.NewService(gw, roleService, transactionService, wp)
	jobsService := jobs.NewService(jobs.NewGormStore(db))

	ctx := context.Background()
	customer := chain.FormatAddress(testCustomer)

	t.Run("customer self-registration", func(t *testing.T) {
		if _, err := roleService.GrantCustomer(ctx, testCustomer, customer); err != nil {
			t.Fatal(err)
		}

		res, err := roleService.Resolve(ctx, customer)
		if err != nil {
			t.Fatal(err)
		}

		if res.Role != roles.Customer {
			t.Errorf("expected role %s got %s", roles.Customer, res.Role)
		}
	})

	t.Run("sync submit and verify", func(t *testing.T) {
		_, submitted, err := kycService.Submit(ctx, true, testCustomer, "QmTestDocument", "SBIN0001234")
		if err != nil {
			t.Fatal(err)
		}

		if submitted.State() != kyc.Pending {
			t.Fatalf("expected state %s got %s", kyc.Pending, submitted.State())
		}

		_, verified, err := kycService.Verify(ctx, true, testEmployee, customer)
		if err != nil {
			t.Fatal(err)
		}

		want := kyc.Record{
			Account:       customer,
			Status:        kyc.VerifiedByEmployee,
			StatusDisplay: kyc.VerifiedByEmployee.DisplayName(),
			DocumentRef:   "QmTestDocument",
			IFSCCode:      "SBIN0001234",
		}
		ignoreDates := cmpopts.IgnoreFields(kyc.Record{}, "SubmissionDate", "ExpiryDate")
		if diff := cmp.Diff(want, *verified, ignoreDates); diff != "" {
			t.Errorf("record mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("async approve", func(t *testing.T) {
		job, _, err := kycService.Approve(ctx, false, testAdmin, customer)
		if err != nil {
			t.Fatal(err)
		}

		if job.Status != jobs.Accepted && job.Status != jobs.Complete {
			t.Errorf("expected job status to be %s or %s but got %s",
				jobs.Accepted, jobs.Complete, job.Status)
		}

		if err := job.Wait(true); err != nil {
			t.Fatal(err)
		}

		record, err := kycService.Details(ctx, customer)
		if err != nil {
			t.Fatal(err)
		}

		if record.State() != kyc.VerifiedByAdmin {
			t.Errorf("expected state %s got %s", kyc.VerifiedByAdmin, record.State())
		}

		stored, err := jobsService.Details(job.ID.String())
		if err != nil {
			t.Fatal(err)
		}

		if stored.Status != jobs.Complete {
			t.Errorf("expected stored job status %s got %s", jobs.Complete, stored.Status)
		}
	})

	t.Run("audit trail covers the workflow", func(t *testing.T) {
		txs, err := transactionService.ListForAccount(customer, 100, 0)
		if err != nil {
			t.Fatal(err)
		}

		seen := map[transactions.Type]bool{}
		for _, tx := range txs {
			seen[tx.Operation] = true
		}

		for _, op := range []transactions.Type{
			transactions.AddCustomer,
			transactions.SubmitKYC,
			transactions.VerifyKYC,
			transactions.ApproveKYC,
		} {
			if !seen[op] {
				t.Errorf("expected a recorded %s transaction", op)
			}
		}
	})
}
