// Package searchers defines what the search algorithms share: the Searcher interface, the Clock
// they consult, and the Timer that turns the clock into cooperative cancellation.
//
// The algorithms themselves are in the subpackages minimax and alphabeta.
package searchers

import (
	"fmt"
	"math"
	"time"

	. "github.com/janpfeifer/isolationGo/internal/game"
	"github.com/pkg/errors"
)

// Searcher is the interface that any of the search algorithms must adhere to be valid.
type Searcher interface {
	// GetMove returns the move to play in the given state, for its active player, before the clock runs out.
	//
	// It never fails: it returns NoMove if there are no legal moves, or if it had to give up before
	// finding one.
	GetMove(s State, clock Clock) Move

	// String describes the searcher and its configuration.
	String() string
}

// Result of a search at a fixed depth.
type Result struct {
	// Move chosen at the root, or NoMove if there were no legal moves.
	Move Move

	// Value of the move, from the point of view of the searching player.
	Value float64

	// Depth in plies used in the search.
	Depth int
}

// String implements fmt.Stringer.
func (r Result) String() string {
	return fmt.Sprintf("%s (value=%g, depth=%d)", r.Move, r.Value, r.Depth)
}

// Clock reports the time left for the current decision. It is consulted, never owned, by the searchers.
type Clock interface {
	TimeLeft() time.Duration
}

// ClockFunc converts a function to a Clock.
type ClockFunc func() time.Duration

// TimeLeft implements Clock.
func (fn ClockFunc) TimeLeft() time.Duration { return fn() }

// NewDeadlineClock returns a Clock that runs out at the given deadline.
func NewDeadlineClock(deadline time.Time) Clock {
	return ClockFunc(func() time.Duration { return time.Until(deadline) })
}

// NewBudgetClock returns a Clock that runs out when clock does, or after budget from now, whichever
// comes first.
func NewBudgetClock(clock Clock, budget time.Duration) Clock {
	deadline := time.Now().Add(budget)
	return ClockFunc(func() time.Duration {
		return min(clock.TimeLeft(), time.Until(deadline))
	})
}

// Unlimited is a Clock that never runs out.
var Unlimited Clock = ClockFunc(func() time.Duration { return time.Duration(math.MaxInt64) })

// ErrTimeout is returned by Timer.Check, and up through the recursion of the searchers, when the
// time left dropped below the threshold. It is only inspected at the searchers' entry points.
var ErrTimeout = errors.New("search timeout")

// Timer checks the Clock against a threshold, and signals cancellation with ErrTimeout.
type Timer struct {
	clock     Clock
	threshold time.Duration

	// Checks counts the number of times the clock was consulted.
	Checks int
}

// NewTimer returns a Timer that cancels the search once clock reports less than threshold left.
func NewTimer(clock Clock, threshold time.Duration) *Timer {
	return &Timer{clock: clock, threshold: threshold}
}

// Check returns ErrTimeout if the time left is below the threshold.
// Searchers call it before expanding any node.
func (t *Timer) Check() error {
	t.Checks++
	if t.clock.TimeLeft() < t.threshold {
		return ErrTimeout
	}
	return nil
}

// ValidateThreshold returns an error if the timeout threshold is negative.
func ValidateThreshold(threshold time.Duration) error {
	if threshold < 0 {
		return errors.Errorf("invalid timeout threshold %s, it must be >= 0", threshold)
	}
	return nil
}

// Stats stores running stats collected during the search: for benchmarking, monitoring and debugging purposes.
// It is created fresh for each call to Searcher.GetMove.
type Stats struct {
	// Nodes "played" during search: forecasting of a move, creating a new state.
	Nodes int

	// Evals is the number of calls to the evaluator.
	Evals int

	// Prunes counts alpha-beta cutoffs.
	Prunes int

	// Cutoffs counts the nodes evaluated because the depth limit was reached while they still had legal moves.
	// A search without cutoffs explored every reachable end of the match, and searching deeper won't change it.
	Cutoffs int

	// Depth is the deepest search completed.
	Depth int
}
