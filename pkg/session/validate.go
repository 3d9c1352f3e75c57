package session

import (
	goerrors "errors"

	"github.com/go-playground/validator/v10"

	"github.com/status-im/status-wallet-go/pkg/network"
)

var (
	validate = validator.New()
)

func init() {
	// Register the custom validation function
	err := validate.RegisterValidation("network", isNetwork)
	if err != nil {
		panic(err)
	}
}

func validateRequest(v interface{}) error {
	err := validate.Struct(v)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		return goerrors.Join(errs)
	}
	return nil
}

// Custom validation function to check if a string names a known cluster
func isNetwork(fl validator.FieldLevel) bool {
	_, err := network.Parse(fl.Field().String())
	return err == nil
}
