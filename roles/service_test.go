package roles

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/php369/kyc-blockchain-system/chain/chaintest"
	"github.com/php369/kyc-blockchain-system/errors"
)

var (
	testAdmin    = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	testEmployee = common.HexToAddress("0x00000000000000000000000000000000000000e1")
	testCustomer = common.HexToAddress("0x00000000000000000000000000000000000000c1")
)

func TestResolve(t *testing.T) {
	gw := chaintest.NewGateway()
	gw.SeedAdmin(testAdmin)
	service := NewService(gw, nil)

	res, err := service.Resolve(context.Background(), testAdmin.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if res.Role != Admin {
		t.Errorf("expected Admin, got %q", res.Role)
	}
	if res.Account != testAdmin.Hex() {
		t.Errorf("expected %q, got %q", testAdmin.Hex(), res.Account)
	}
}

func TestResolveInvalidAddress(t *testing.T) {
	service := NewService(chaintest.NewGateway(), nil)
	if _, err := service.Resolve(context.Background(), "not-an-address"); err == nil {
		t.Error("expected an error for an invalid address")
	}
}

func TestResolveUsesCache(t *testing.T) {
	gw := chaintest.NewGateway()
	gw.SeedCustomer(testCustomer)
	service := NewService(gw, nil)

	for i := 0; i < 3; i++ {
		if _, err := service.Resolve(context.Background(), testCustomer.Hex()); err != nil {
			t.Fatal(err)
		}
	}

	if gw.ReadCalls != 1 {
		t.Errorf("expected 1 ledger read, got %d", gw.ReadCalls)
	}
}

func TestResolveNormalizesBigIntegers(t *testing.T) {
	gw := chaintest.NewGateway()
	gw.SeedEmployee(testEmployee, "HDFC0000123")
	gw.RoleAsBigInt = true
	service := NewService(gw, nil)

	res, err := service.Resolve(context.Background(), testEmployee.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if res.Role != BankEmployee {
		t.Errorf("expected BankEmployee, got %q", res.Role)
	}
}

func TestGrantInvalidatesCache(t *testing.T) {
	gw := chaintest.NewGateway()
	service := NewService(gw, nil)

	// Prime the cache with the unassigned role.
	res, err := service.Resolve(context.Background(), testCustomer.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if res.Role != Unassigned {
		t.Fatalf("expected Unassigned, got %q", res.Role)
	}

	// Self-registration is permitted for the customer role.
	if _, err := service.GrantCustomer(context.Background(), testCustomer, testCustomer.Hex()); err != nil {
		t.Fatal(err)
	}

	res, err = service.Resolve(context.Background(), testCustomer.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if res.Role != Customer {
		t.Errorf("expected Customer after grant, got %q", res.Role)
	}
}

func TestGrantBankEmployeeRequiresBranch(t *testing.T) {
	gw := chaintest.NewGateway()
	gw.SeedAdmin(testAdmin)
	service := NewService(gw, nil)

	_, err := service.GrantBankEmployee(context.Background(), testAdmin, testEmployee.Hex(), "")
	var reqErr *errors.RequestError
	if !stderrors.As(err, &reqErr) || reqErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected a bad request error, got %#v", err)
	}
	if gw.WriteCalls != 0 {
		t.Errorf("expected no ledger writes, got %d", gw.WriteCalls)
	}
}

func TestGrantRejectedByLedger(t *testing.T) {
	gw := chaintest.NewGateway()
	gw.SeedCustomer(testCustomer)
	service := NewService(gw, nil)

	// A customer cannot grant admin.
	_, err := service.GrantAdmin(context.Background(), testCustomer, testEmployee.Hex())
	var rejErr *errors.RemoteRejectedError
	if !stderrors.As(err, &rejErr) {
		t.Fatalf("expected RemoteRejectedError, got %#v", err)
	}
}
