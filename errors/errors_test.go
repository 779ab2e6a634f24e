package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	t.Run("request error unwraps", func(t *testing.T) {
		inner := fmt.Errorf("inner")
		err := &RequestError{StatusCode: 400, Err: inner}
		if !errors.Is(err, inner) {
			t.Error("expected RequestError to unwrap to inner error")
		}
	})

	t.Run("network error unwraps", func(t *testing.T) {
		inner := fmt.Errorf("connection refused")
		var err error = &NetworkError{Err: inner}

		var netErr *NetworkError
		if !errors.As(err, &netErr) {
			t.Error("expected errors.As to match NetworkError")
		}
		if !errors.Is(err, inner) {
			t.Error("expected NetworkError to unwrap to inner error")
		}
	})

	t.Run("remote rejection carries reason", func(t *testing.T) {
		err := &RemoteRejectedError{Reason: "KYC: caller is not a customer"}
		want := "rejected by ledger: KYC: caller is not a customer"
		if err.Error() != want {
			t.Errorf("expected %q got %q", want, err.Error())
		}
	})

	t.Run("illegal transition names state pair", func(t *testing.T) {
		err := &IllegalTransitionError{From: "Pending", To: "VerifiedByAdmin", Actor: "Admin"}
		want := `illegal transition from "Pending" to "VerifiedByAdmin" by Admin`
		if err.Error() != want {
			t.Errorf("expected %q got %q", want, err.Error())
		}
	})

	t.Run("unknown role reports raw value", func(t *testing.T) {
		err := &UnknownRoleError{Raw: "7"}
		if err.Error() != "unknown role value 7 reported by ledger" {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})
}
