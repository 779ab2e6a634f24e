package chain

import (
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/php369/kyc-blockchain-system/errors"
)

// ValidateAddress checks that the input is a valid 20-byte hex address
// and returns it in checksummed form.
func ValidateAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf(`not a valid address: "%s"`, address),
		}
	}
	return common.HexToAddress(address).Hex(), nil
}

// ParseAddress validates and parses an address string.
func ParseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf(`not a valid address: "%s"`, address),
		}
	}
	return common.HexToAddress(address), nil
}

func FormatAddress(address common.Address) string {
	return address.Hex()
}
