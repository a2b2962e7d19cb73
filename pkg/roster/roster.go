package roster

import (
	"fmt"
)

// MinParticipants is the smallest roster that can be paired. With a single
// participant no derangement exists.
const MinParticipants = 2

// Participant is one named person with a contact address. Names are the
// identity within a roster; addresses may legitimately be shared.
type Participant struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Entry is one raw (name, email) record as read from the input, before
// validation.
type Entry struct {
	Name  string
	Email string
}

// Roster is the validated, ordered participant list for one run. It is
// immutable after Validate returns it.
type Roster struct {
	participants []Participant
}

// Warning is a non-fatal observation about the roster that the caller should
// surface to the operator before proceeding.
type Warning struct {
	Message string
}

func (w Warning) String() string { return w.Message }

// Validate checks the candidate entries against the roster invariants and
// returns the validated roster. All faults of a given kind are collected and
// reported together rather than failing on the first record.
//
// The checks run in a fixed order so the most fundamental fault wins:
// cardinality, then duplicate names, then missing contacts. Duplicate email
// addresses are allowed (two participants can share a mailbox) and are
// reported as a warning only.
func Validate(entries []Entry) (*Roster, []Warning, error) {
	if len(entries) < MinParticipants {
		return nil, nil, &InsufficientParticipantsError{Count: len(entries)}
	}

	seen := make(map[string]int, len(entries))
	var duplicates []string
	for _, e := range entries {
		seen[e.Name]++
		if seen[e.Name] == 2 {
			duplicates = append(duplicates, e.Name)
		}
	}
	if len(duplicates) > 0 {
		return nil, nil, &DuplicateNameError{Names: duplicates}
	}

	var missing []string
	for _, e := range entries {
		if e.Email == "" {
			missing = append(missing, e.Name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &MissingContactError{Names: missing}
	}

	var warnings []Warning
	byEmail := make(map[string][]string, len(entries))
	for _, e := range entries {
		byEmail[e.Email] = append(byEmail[e.Email], e.Name)
	}
	for _, e := range entries {
		names := byEmail[e.Email]
		if len(names) > 1 && names[0] == e.Name {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("participants %v share the address %s", names, e.Email),
			})
		}
	}

	participants := make([]Participant, len(entries))
	for i, e := range entries {
		participants[i] = Participant{Name: e.Name, Email: e.Email}
	}
	return &Roster{participants: participants}, warnings, nil
}

// FromParticipants builds a roster directly, bypassing validation. It exists
// for callers that already hold validated participants; anything read from
// operator input must go through Validate instead.
func FromParticipants(participants []Participant) *Roster {
	ps := make([]Participant, len(participants))
	copy(ps, participants)
	return &Roster{participants: ps}
}

// Participants returns the validated participants in input order. The
// returned slice is a copy; mutating it does not affect the roster.
func (r *Roster) Participants() []Participant {
	out := make([]Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

// Len returns the number of participants.
func (r *Roster) Len() int { return len(r.participants) }
