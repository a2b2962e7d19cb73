// Package pairing implements the Secret Santa assignment: a random
// derangement of the roster built from a single random cyclic permutation.
// Every participant in a cycle of length >= 2 maps to somebody else, so the
// construction can never produce a self-assignment or strand a participant,
// for any roster size, without retry loops or parity special cases.
package pairing

import (
	"fmt"
	"math/rand"

	"github.com/santactl/santactl/pkg/roster"
)

// Pair is one giver -> receiver assignment, carrying full identity for both
// sides so the dispatcher can address the giver and name the receiver.
type Pair struct {
	Giver    roster.Participant
	Receiver roster.Participant
}

// Pairing is the complete assignment for one run, in giver order. It is a
// bijection over the roster: every participant gives exactly once and
// receives exactly once, and nobody is assigned to themselves.
type Pairing []Pair

// Receiver returns the receiver assigned to the named giver.
func (p Pairing) Receiver(giver string) (roster.Participant, bool) {
	for _, pair := range p {
		if pair.Giver.Name == giver {
			return pair.Receiver, true
		}
	}
	return roster.Participant{}, false
}

// DegenerateRosterError reports a roster too small to pair. The validator
// rejects these upstream; this is a defensive re-check.
type DegenerateRosterError struct {
	Count int
}

func (e *DegenerateRosterError) Error() string {
	return fmt.Sprintf("cannot pair a roster of %d participants", e.Count)
}

// A Shuffler permutes n elements in place through the given swap function.
// It exists so tests can substitute a deterministic permutation; production
// code uses the math/rand/v2 global source.
type Shuffler func(n int, swap func(i, j int))

// Engine produces pairings. The zero value is not usable; construct with New.
type Engine struct {
	shuffle Shuffler
}

// New returns an Engine backed by the default random source.
func New() *Engine {
	return &Engine{shuffle: rand.Shuffle}
}

// NewWithShuffler returns an Engine with a custom permutation source.
func NewWithShuffler(s Shuffler) *Engine {
	return &Engine{shuffle: s}
}

// Assign computes a random derangement of the roster.
//
// The roster indices are uniformly shuffled, then each participant in the
// shuffled order gives to the next one, and the last gives to the first. A
// two-person roster therefore yields the forced mutual exchange, the only
// derangement that exists for n == 2.
func (e *Engine) Assign(r *roster.Roster) (Pairing, error) {
	participants := r.Participants()
	n := len(participants)
	if n < roster.MinParticipants {
		return nil, &DegenerateRosterError{Count: n}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	e.shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	pairing := make(Pairing, n)
	for i, idx := range order {
		next := order[(i+1)%n]
		pairing[i] = Pair{
			Giver:    participants[idx],
			Receiver: participants[next],
		}
	}

	// Unreachable for a cycle of length >= 2; kept as an invariant check so
	// a broken Shuffler cannot leak a self-assignment.
	for _, pair := range pairing {
		if pair.Giver.Name == pair.Receiver.Name {
			return nil, fmt.Errorf("pairing invariant violated: %s assigned to themselves", pair.Giver.Name)
		}
	}

	return pairing, nil
}
