package roles

import (
	stderrors "errors"
	"math/big"
	"testing"

	"github.com/php369/kyc-blockchain-system/errors"
)

func TestRoleText(t *testing.T) {
	roundtrip := []Role{Unassigned, Customer, BankEmployee, Admin}
	for _, r := range roundtrip {
		text, err := r.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Role
		if err := back.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if back != r {
			t.Errorf("expected %q to roundtrip, got %q", r, back)
		}
	}

	var r Role
	if err := r.UnmarshalText([]byte("superuser")); err == nil {
		t.Error("expected an error for an unknown role name")
	}
}

func TestDisplayName(t *testing.T) {
	if got := BankEmployee.DisplayName(); got != "Bank Employee" {
		t.Errorf("expected \"Bank Employee\", got %q", got)
	}
	if got := Admin.DisplayName(); got != "Admin" {
		t.Errorf("expected \"Admin\", got %q", got)
	}
}

func TestFromValue(t *testing.T) {
	cases := []struct {
		name string
		raw  interface{}
		want Role
	}{
		{"nil maps to unassigned", nil, Unassigned},
		{"zero", uint8(0), Unassigned},
		{"customer", uint8(1), Customer},
		{"employee as int", 2, BankEmployee},
		{"admin as big integer", big.NewInt(3), Admin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromValue(tc.raw)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFromValueRejectsOutOfRange(t *testing.T) {
	for _, raw := range []interface{}{uint8(4), big.NewInt(255), "admin", big.NewInt(-1)} {
		_, err := FromValue(raw)
		if err == nil {
			t.Errorf("expected an error for %v", raw)
			continue
		}
		var unknownErr *errors.UnknownRoleError
		if !stderrors.As(err, &unknownErr) {
			t.Errorf("expected UnknownRoleError for %v, got %#v", raw, err)
		}
	}
}
