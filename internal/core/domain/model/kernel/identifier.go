package kernel

import (
	"fmt"
	"regexp"

	"ftl/internal/pkg/errs"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_:.]+$`)

// ValidateIdentifier checks names used in URLs: ledger identities, address book
// aliases and setting names.
func ValidateIdentifier(paramName, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	if !identifierPattern.MatchString(value) {
		return errs.NewValueIsInvalidErrorWithCause(
			paramName,
			fmt.Errorf("%q may only contain letters, digits and - _ : .", value),
		)
	}
	return nil
}
