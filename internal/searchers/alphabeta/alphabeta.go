// Package alphabeta implements an anytime searcher: minimax with alpha-beta pruning, run with
// iterative deepening until the clock runs out.
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
package alphabeta

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

// Searcher implements the searchers.Searcher interface.
// It is used by players.SearcherPlayer to implement an AI player (players.Player interface).
type Searcher struct {
	evaluator ai.Evaluator
	threshold time.Duration
	maxDepth  int
	maxTime   time.Duration

	// stats of the last call to GetMove.
	stats searchers.Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns an Alpha-Beta Pruning with iterative deepening searchers.Searcher implementation.
// There are other optional configurations, see methods Searcher.With...
//
// The leaves are scored with evaluator, and the search is cancelled once the clock reports less than
// threshold left.
func New(evaluator ai.Evaluator, threshold time.Duration) (*Searcher, error) {
	if evaluator == nil {
		return nil, errors.New("alpha-beta searcher requires an evaluator")
	}
	if err := searchers.ValidateThreshold(threshold); err != nil {
		return nil, errors.WithMessage(err, "alpha-beta searcher")
	}
	return &Searcher{evaluator: evaluator, threshold: threshold}, nil
}

// WithMaxDepth limits the iterative deepening to maxDepth plies (ply singular). Each player
// playing counts as one ply. See https://en.wikipedia.org/wiki/Ply_(game_theory).
//
// The default is 0, meaning no limit: the search deepens until the clock runs out or the game tree is exhausted.
func (ab *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	ab.maxDepth = max(maxDepth, 0)
	return ab
}

// WithMaxTime sets a max duration of thinking per move, on top of the clock given to GetMove.
//
// The default is 0, meaning it is only limited by the clock.
func (ab *Searcher) WithMaxTime(maxTime time.Duration) *Searcher {
	ab.maxTime = max(maxTime, 0)
	return ab
}

// String implements searchers.Searcher.
func (ab *Searcher) String() string {
	return fmt.Sprintf("alphabeta(score=%s, timeout=%s, max_depth=%d, max_time=%s)",
		ab.evaluator, ab.threshold, ab.maxDepth, ab.maxTime)
}

// Stats returns the stats collected during the last call to GetMove. Stats.Depth is the deepest search
// completed.
func (ab *Searcher) Stats() searchers.Stats {
	return ab.stats
}

// LastDepth returns the deepest search completed by the last call to GetMove, 0 if none completed.
func (ab *Searcher) LastDepth() int {
	return ab.stats.Depth
}

// GetMove implements searchers.Searcher.
//
// It searches 1 ply deep, then 2, and so on, keeping the move of the last search that completed. It stops
// when the clock runs out, at the configured max depth, at the number of blank cells (if the state is a
// game.Board), or once a search reaches the end of every line of play. The search interrupted by the
// clock is discarded.
//
// It returns NoMove if there are no legal moves, or if not even the 1-ply search completed.
func (ab *Searcher) GetMove(s State, clock searchers.Clock) Move {
	ab.stats = searchers.Stats{}
	start := time.Now()
	if ab.maxTime > 0 {
		clock = searchers.NewBudgetClock(clock, ab.maxTime)
	}
	timer := searchers.NewTimer(clock, ab.threshold)
	player := s.ActivePlayer()
	maxDepth := ab.maxDepth
	if remaining := MaxRemainingPlies(s); remaining >= 0 && (maxDepth == 0 || remaining < maxDepth) {
		maxDepth = max(remaining, 1)
	}

	best := searchers.Result{Move: NoMove}
	for depth := 1; maxDepth == 0 || depth <= maxDepth; depth++ {
		cutoffs := ab.stats.Cutoffs
		result, err := Search(s, player, depth, math.Inf(-1), math.Inf(1), ab.evaluator, timer, &ab.stats)
		if err != nil {
			if klog.V(2).Enabled() {
				klog.Infof("alphabeta: search to depth %d interrupted after %s (%v)", depth, time.Since(start), err)
			}
			break
		}
		best = result
		ab.stats.Depth = depth
		if klog.V(3).Enabled() {
			klog.Infof("alphabeta: depth %d completed in %s: %s", depth, time.Since(start), result)
		}
		if result.Move.IsNoMove() || ab.stats.Cutoffs == cutoffs {
			// Nothing deeper to explore.
			break
		}
	}

	if klog.V(2).Enabled() {
		elapsedTime := time.Since(start).Seconds()
		klog.Infof("alphabeta: best move %s, counts: %+v, timer checks=%d", best, ab.stats, timer.Checks)
		klog.Infof("  nodes/s=%.1f, evals/s=%.1f", float64(ab.stats.Nodes)/elapsedTime, float64(ab.stats.Evals)/elapsedTime)
	}
	return best.Move
}

// Search executes alpha-beta pruning to the given depth, for player, the active player in s.
// The window [alpha, beta] is usually [-Inf, +Inf].
//
// Ties are broken by the order of s.LegalMoves, as in minimax: alpha-beta returns the same move and value
// as a full minimax search to the same depth. If the running best value reaches beta, the search returns
// right away with that move.
//
// If there are no legal moves, it returns NoMove without calling the evaluator.
//
// It returns searchers.ErrTimeout if timer signals the clock ran out, in which case the result is
// meaningless.
func Search(s State, player PlayerNum, depth int, alpha, beta float64, evaluator ai.Evaluator,
	timer *searchers.Timer, stats *searchers.Stats) (result searchers.Result, err error) {
	result = searchers.Result{Move: NoMove, Value: ai.LossScore, Depth: depth}
	if err = timer.Check(); err != nil {
		return
	}
	moves := s.LegalMoves(player)
	for ii, move := range moves {
		var value float64
		value, err = recursion(s, move, depth-1, alpha, beta, false, player, evaluator, timer, stats)
		if err != nil {
			return
		}
		if ii == 0 || value > result.Value {
			result.Move, result.Value = move, value
		}
		if result.Value >= beta {
			stats.Prunes++
			return
		}
		alpha = max(alpha, result.Value)
	}
	return
}

// recursion returns the alpha-beta value of playing move in s, with depthLeft plies to search after it.
// maximize indicates whether the state after the move is a maximizing (player's) layer.
//
// The returned value is exact if it falls within (alpha, beta); otherwise it's a bound that can't
// change the choice at the root.
func recursion(s State, move Move, depthLeft int, alpha, beta float64, maximize bool, player PlayerNum,
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
		value, err := recursion(next, nextMove, depthLeft-1, alpha, beta, !maximize, player, evaluator, timer, stats)
		if err != nil {
			return 0, err
		}
		if maximize {
			bestValue = max(bestValue, value)
			if bestValue >= beta {
				// The minimizer above will never let the game reach here.
				stats.Prunes++
				return bestValue, nil
			}
			alpha = max(alpha, bestValue)
		} else {
			bestValue = min(bestValue, value)
			if bestValue <= alpha {
				// The maximizer above will never let the game reach here.
				stats.Prunes++
				return bestValue, nil
			}
			beta = min(beta, bestValue)
		}
	}
	return bestValue, nil
}
