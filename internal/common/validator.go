package common

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator"
)

type GenericEchoValidator struct {
	Validator *validator.Validate
	once      sync.Once
}

func NewGenericEchoValidator() *GenericEchoValidator {
	return &GenericEchoValidator{Validator: validator.New()}
}

// Validate checks struct tags and reports failures as input errors. It is
// safe for concurrent use, including on a zero GenericEchoValidator.
func (gv *GenericEchoValidator) Validate(i interface{}) error {
	gv.once.Do(func() {
		if gv.Validator == nil {
			gv.Validator = validator.New()
		}
	})
	if err := gv.Validator.Struct(i); err != nil {
		return E(KindInput, "validate", fmt.Errorf("received invalid request body: %w", err))
	}
	return nil
}
