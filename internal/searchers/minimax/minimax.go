// Package minimax implements a fixed-depth minimax searcher: it explores every branch of the game
// tree up to a configured number of plies.
//
// It has no partial-result fallback: if the clock runs out before the search completes, GetMove
// returns game.NoMove. Use package alphabeta for an anytime searcher.
package minimax

import (
	"fmt"
	"math"
	"time"

	"github.com/janpfeifer/isolationGo/internal/ai"
	. "github.com/janpfeifer/isolationGo/internal/game"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Searcher implements the searchers.Searcher interface with a fixed-depth minimax search.
type Searcher struct {
	depth     int
	evaluator ai.Evaluator
	threshold time.Duration

	// stats of the last call to GetMove.
	stats searchers.Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns a minimax searchers.Searcher that searches depth plies deep, scoring the leaves with
// evaluator. The search is cancelled once the clock reports less than threshold left.
func New(depth int, evaluator ai.Evaluator, threshold time.Duration) (*Searcher, error) {
	if depth <= 0 {
		return nil, errors.Errorf("minimax search depth must be positive, got %d", depth)
	}
	if evaluator == nil {
		return nil, errors.New("minimax searcher requires an evaluator")
	}
	if err := searchers.ValidateThreshold(threshold); err != nil {
		return nil, errors.WithMessage(err, "minimax searcher")
	}
	return &Searcher{depth: depth, evaluator: evaluator, threshold: threshold}, nil
}

// String implements searchers.Searcher.
func (mm *Searcher) String() string {
	return fmt.Sprintf("minimax(depth=%d, score=%s, timeout=%s)", mm.depth, mm.evaluator, mm.threshold)
}

// Stats returns the stats collected during the last call to GetMove.
func (mm *Searcher) Stats() searchers.Stats {
	return mm.stats
}

// GetMove implements searchers.Searcher. It returns NoMove if there are no legal moves or if the
// search didn't complete in time.
func (mm *Searcher) GetMove(s State, clock searchers.Clock) Move {
	mm.stats = searchers.Stats{}
	start := time.Now()
	timer := searchers.NewTimer(clock, mm.threshold)
	result, err := Search(s, s.ActivePlayer(), mm.depth, mm.evaluator, timer, &mm.stats)
	if err != nil {
		if klog.V(1).Enabled() {
			klog.Infof("minimax: search to depth %d interrupted after %s (%v): no move", mm.depth, time.Since(start), err)
		}
		return NoMove
	}
	mm.stats.Depth = mm.depth
	if klog.V(2).Enabled() {
		elapsedTime := time.Since(start).Seconds()
		klog.Infof("minimax: best move %s, counts: %+v, timer checks=%d", result, mm.stats, timer.Checks)
		klog.Infof("  nodes/s=%.1f, evals/s=%.1f", float64(mm.stats.Nodes)/elapsedTime, float64(mm.stats.Evals)/elapsedTime)
	}
	return result.Move
}

// scoredMove is a root move and its minimax value.
type scoredMove struct {
	move  Move
	value float64
}

// Search returns the move that maximizes player's outcome in s, exploring all branches up to depth plies
// (or to the end of the match), and scoring the leaves with evaluator from player's point of view.
//
// Ties are broken by the order of s.LegalMoves: the first move with the maximum value is returned.
// If there are no legal moves, it returns NoMove without calling the evaluator.
//
// It returns searchers.ErrTimeout if timer signals the clock ran out, in which case the result is
// meaningless.
func Search(s State, player PlayerNum, depth int, evaluator ai.Evaluator, timer *searchers.Timer, stats *searchers.Stats) (
	result searchers.Result, err error) {
	result = searchers.Result{Move: NoMove, Value: ai.LossScore, Depth: depth}
	if err = timer.Check(); err != nil {
		return
	}
	moves := s.LegalMoves(player)
	if len(moves) == 0 {
		return
	}

	scored := make([]scoredMove, 0, len(moves))
	for _, move := range moves {
		var value float64
		value, err = recursion(s, move, depth-1, false, player, evaluator, timer, stats)
		if err != nil {
			return
		}
		scored = append(scored, scoredMove{move, value})
	}

	best := scored[0]
	for _, candidate := range scored[1:] {
		if candidate.value > best.value {
			best = candidate
		}
	}
	result.Move, result.Value = best.move, best.value
	return
}

// recursion returns the minimax value of playing move in s, with depthLeft plies to search after it.
// maximize indicates whether the state after the move is a maximizing (player's) layer.
func recursion(s State, move Move, depthLeft int, maximize bool, player PlayerNum,
	evaluator ai.Evaluator, timer *searchers.Timer, stats *searchers.Stats) (float64, error) {
	if err := timer.Check(); err != nil {
		return 0, err
	}
	next := s.Forecast(move)
	stats.Nodes++
	nextMoves := next.LegalMoves(next.ActivePlayer())
	if len(nextMoves) == 0 || depthLeft <= 0 {
		if len(nextMoves) > 0 {
			stats.Cutoffs++
		}
		stats.Evals++
		return evaluator.Score(next, player), nil
	}

	bestValue := math.Inf(1)
	if maximize {
		bestValue = math.Inf(-1)
	}
	for _, nextMove := range nextMoves {
		value, err := recursion(next, nextMove, depthLeft-1, !maximize, player, evaluator, timer, stats)
		if err != nil {
			return 0, err
		}
		if maximize {
			bestValue = max(bestValue, value)
		} else {
			bestValue = min(bestValue, value)
		}
	}
	return bestValue, nil
}
