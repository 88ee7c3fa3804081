// Package _default registers the default players that can be included in any
// front-end for isolationGo.
//
// Currently, it includes:
//
//   - "minimax": fixed-depth minimax search. Parameters: depth (int, default 3), score (evaluator name,
//     default "improved"), timeout (duration, default 10ms: time left on the clock at which the search gives up).
//   - "alphabeta": iterative-deepening alpha-beta pruning search. Parameters: score, timeout, max_depth (int,
//     0 for no limit) and max_time (duration, 0 for no limit other than the clock).
//   - "greedy": one-ply search. Parameters: score, randomness (float, default 0) and seed.
//   - "random": uniformly random moves. Parameters: seed (int, default random).
package _default

import (
	"math/rand/v2"
	"time"

	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/ai/heuristics"
	"github.com/janpfeifer/isolationGo/internal/parameters"
	"github.com/janpfeifer/isolationGo/internal/players"
	"github.com/janpfeifer/isolationGo/internal/searchers/alphabeta"
	"github.com/janpfeifer/isolationGo/internal/searchers/minimax"
)

const (
	// DefaultDepth of the minimax player.
	DefaultDepth = 3

	// DefaultTimeout is the time left on the clock at which searches give up.
	DefaultTimeout = 10 * time.Millisecond
)

func init() {
	players.RegisterModule("minimax", players.ModuleFunc(newMinimax))
	players.RegisterModule("alphabeta", players.ModuleFunc(newAlphaBeta))
	players.RegisterModule("greedy", players.ModuleFunc(newGreedy))
	players.RegisterModule("random", players.ModuleFunc(newRandom))
}

// popEvaluator parses the "score" parameter.
func popEvaluator(params parameters.Params) (ai.Evaluator, error) {
	name, err := parameters.PopParamOr(params, "score", heuristics.Default)
	if err != nil {
		return nil, err
	}
	return heuristics.ByName(name)
}

// popSeed parses the "seed" parameter, defaulting to a random one.
func popSeed(params parameters.Params) (uint64, error) {
	seed, err := parameters.PopParamOr(params, "seed", -1)
	if err != nil || seed < 0 {
		return rand.Uint64(), err
	}
	return uint64(seed), nil
}

func newMinimax(params parameters.Params) (players.Player, error) {
	evaluator, err := popEvaluator(params)
	if err != nil {
		return nil, err
	}
	depth, err := parameters.PopParamOr(params, "depth", DefaultDepth)
	if err != nil {
		return nil, err
	}
	timeout, err := parameters.PopParamOr(params, "timeout", DefaultTimeout)
	if err != nil {
		return nil, err
	}
	searcher, err := minimax.New(depth, evaluator, timeout)
	if err != nil {
		return nil, err
	}
	return players.NewSearcherPlayer(searcher), nil
}

func newAlphaBeta(params parameters.Params) (players.Player, error) {
	evaluator, err := popEvaluator(params)
	if err != nil {
		return nil, err
	}
	timeout, err := parameters.PopParamOr(params, "timeout", DefaultTimeout)
	if err != nil {
		return nil, err
	}
	maxDepth, err := parameters.PopParamOr(params, "max_depth", 0)
	if err != nil {
		return nil, err
	}
	maxTime, err := parameters.PopParamOr(params, "max_time", time.Duration(0))
	if err != nil {
		return nil, err
	}
	searcher, err := alphabeta.New(evaluator, timeout)
	if err != nil {
		return nil, err
	}
	return players.NewSearcherPlayer(searcher.WithMaxDepth(maxDepth).WithMaxTime(maxTime)), nil
}

func newGreedy(params parameters.Params) (players.Player, error) {
	evaluator, err := popEvaluator(params)
	if err != nil {
		return nil, err
	}
	randomness, err := parameters.PopParamOr(params, "randomness", 0.0)
	if err != nil {
		return nil, err
	}
	seed, err := popSeed(params)
	if err != nil {
		return nil, err
	}
	return players.NewGreedyPlayer(evaluator, randomness, seed), nil
}

func newRandom(params parameters.Params) (players.Player, error) {
	seed, err := popSeed(params)
	if err != nil {
		return nil, err
	}
	return players.NewRandomPlayer(seed), nil
}
