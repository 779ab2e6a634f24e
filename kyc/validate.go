package kyc

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/php369/kyc-blockchain-system/errors"
)

// IFSC codes are four bank letters, a zero, then six branch characters.
var ifscRe = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

// ValidateIFSC checks the syntactic shape of a branch code. Whether the
// branch exists is not this service's concern.
func ValidateIFSC(code string) error {
	if !ifscRe.MatchString(code) {
		return &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("invalid IFSC code: %q", code),
		}
	}
	return nil
}

// ValidateDocumentRef checks that a document content address is
// present. Validation failures never reach the ledger.
func ValidateDocumentRef(ref string) error {
	if ref == "" {
		return &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("documentRef is required"),
		}
	}
	return nil
}

// ValidateRejectionReason checks that a rejection carries a reason.
func ValidateRejectionReason(reason string) error {
	if reason == "" {
		return &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("rejectionReason is required"),
		}
	}
	return nil
}
