package roster

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CheckAddresses verifies that every participant's email address is
// syntactically valid. It is layered on top of Validate and follows the same
// collect-all policy: every offending participant is reported in a single
// InvalidAddressError.
func CheckAddresses(r *Roster) error {
	var invalid []string
	for _, p := range r.participants {
		if err := validate.Var(p.Email, "required,email"); err != nil {
			invalid = append(invalid, p.Name)
		}
	}
	if len(invalid) > 0 {
		return &InvalidAddressError{Names: invalid}
	}
	return nil
}
