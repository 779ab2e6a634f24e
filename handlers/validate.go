package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/php369/kyc-blockchain-system/errors"
	"github.com/php369/kyc-blockchain-system/kyc"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// "eth_addr" ships with the library, the branch code rule is ours.
	must(v.RegisterValidation("ifsc", func(fl validator.FieldLevel) bool {
		return kyc.ValidateIFSC(fl.Field().String()) == nil
	}))

	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// validateRequest flattens validator failures into a 400.
func validateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        err,
		}
	}
	return nil
}
