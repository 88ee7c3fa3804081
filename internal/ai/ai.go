// Package ai (Artificial Intelligence) defines the evaluation interface used by the searchers to
// score the leaves of the game tree.
//
// Concrete heuristics live in the subpackage heuristics.
package ai

import (
	"math"

	. "github.com/janpfeifer/isolationGo/internal/game"
)

var (
	// WinScore is the score of a state won by the player being evaluated.
	WinScore = math.Inf(1)

	// LossScore is the score of a state lost by the player being evaluated.
	LossScore = math.Inf(-1)
)

// Evaluator returns a score (value) for the given state, from the point of view of player.
//
// It must return exactly WinScore (+Inf) for a state won by player, exactly LossScore (-Inf) for a
// state lost by player, and a finite value otherwise. It must be deterministic and free of
// side effects: the determinism of the searchers depends on it.
type Evaluator interface {
	Score(s State, player PlayerNum) float64
	String() string
}

// EvaluatorFunc converts a function into an Evaluator.
type EvaluatorFunc struct {
	Name string
	Fn   func(s State, player PlayerNum) float64
}

// Assert EvaluatorFunc implements Evaluator.
var _ Evaluator = EvaluatorFunc{}

// NewEvaluatorFunc returns an Evaluator with the given name, that calls fn.
func NewEvaluatorFunc(name string, fn func(s State, player PlayerNum) float64) EvaluatorFunc {
	return EvaluatorFunc{Name: name, Fn: fn}
}

// Score implements Evaluator.
func (e EvaluatorFunc) Score(s State, player PlayerNum) float64 {
	return e.Fn(s, player)
}

// String implements Evaluator.
func (e EvaluatorFunc) String() string {
	return e.Name
}

// IsEndGameAndScore returns whether the state is terminal for player, and if so, the hard-coded
// score of the win (WinScore) or loss (LossScore).
// If isEnd is false, the score should be ignored.
func IsEndGameAndScore(s State, player PlayerNum) (isEnd bool, score float64) {
	if s.IsLoser(player) {
		return true, LossScore
	}
	if s.IsWinner(player) {
		return true, WinScore
	}
	return false, 0
}

// WithEndGame wraps a heuristic that only knows how to score non-terminal states, so that
// terminal states are scored with WinScore and LossScore.
func WithEndGame(name string, heuristic func(s State, player PlayerNum) float64) EvaluatorFunc {
	return NewEvaluatorFunc(name, func(s State, player PlayerNum) float64 {
		if isEnd, score := IsEndGameAndScore(s, player); isEnd {
			return score
		}
		return heuristic(s, player)
	})
}
