package roster

import (
	"fmt"
	"strings"
)

// InsufficientParticipantsError reports a roster with fewer than
// MinParticipants entries.
type InsufficientParticipantsError struct {
	Count int
}

func (e *InsufficientParticipantsError) Error() string {
	return fmt.Sprintf("not enough participants: got %d, need at least %d", e.Count, MinParticipants)
}

// DuplicateNameError reports every name that appears more than once in the
// input. Names must be unique because they are the participant identity.
type DuplicateNameError struct {
	Names []string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate participant names: %s", strings.Join(e.Names, ", "))
}

// MissingContactError reports every participant that has no email address.
type MissingContactError struct {
	Names []string
}

func (e *MissingContactError) Error() string {
	return fmt.Sprintf("missing email address for: %s", strings.Join(e.Names, ", "))
}

// InvalidAddressError reports every participant whose email address fails
// syntactic validation.
type InvalidAddressError struct {
	Names []string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid email address for: %s", strings.Join(e.Names, ", "))
}
