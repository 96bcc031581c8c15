package advance

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks the structural constraints on an advance request
// (non-negative amounts, rate within 0-100, term at least one month).
// Frequency validation happens in MonthlySalary so the error detail matches
// the calculation path.
func ValidateRequest(req AdvanceRequest) error {
	if err := validate.Struct(req); err != nil {
		return WrapInvalidRequestError(err, "invalid request")
	}
	return nil
}
