package transactions

import (
	"testing"
)

func TestTypeRoundtrip(t *testing.T) {
	types := []Type{
		SubmitKYC, VerifyKYC, ApproveKYC, RejectKYC,
		CheckExpiry, DeleteKYC, AddCustomer, AddBankEmployee, AddAdmin,
	}

	for _, tt := range types {
		if got := TypeFromText(tt.String()); got != tt {
			t.Errorf("expected %q to roundtrip, got %q", tt, got)
		}
	}
}

func TestTypeFromTextIsCaseInsensitive(t *testing.T) {
	if got := TypeFromText("submitkyc"); got != SubmitKYC {
		t.Errorf("expected SubmitKYC, got %q", got)
	}
	if got := TypeFromText("ADDBANKEMPLOYEE"); got != AddBankEmployee {
		t.Errorf("expected AddBankEmployee, got %q", got)
	}
}

func TestTypeFromTextUnknown(t *testing.T) {
	if got := TypeFromText("bogus"); got != Unknown {
		t.Errorf("expected Unknown, got %q", got)
	}
}

func TestTypeScan(t *testing.T) {
	var tt Type
	if err := tt.Scan("VerifyKYC"); err != nil {
		t.Fatal(err)
	}
	if tt != VerifyKYC {
		t.Errorf("expected VerifyKYC, got %q", tt)
	}

	if err := tt.Scan([]byte("RejectKYC")); err != nil {
		t.Fatal(err)
	}
	if tt != RejectKYC {
		t.Errorf("expected RejectKYC, got %q", tt)
	}

	if err := tt.Scan(42); err == nil {
		t.Error("expected an error scanning an int")
	}
}
