package validation

import (
	"github.com/go-playground/validator/v10"
	"places-server/utils/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request payload against its validate tags. Failures are
// reported as the generic invalid-input error; field details go into Details
// so they are logged but never leak into the client-facing message.
func Struct(payload any) error {
	if err := validate.Struct(payload); err != nil {
		return errors.NewAPIError(
			errors.ErrInvalidInput.Code,
			errors.ErrInvalidInput.Message,
			errors.ErrInvalidInput.Status,
			err.Error(),
		)
	}
	return nil
}
