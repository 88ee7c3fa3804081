package players

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/isolationGo/internal/ai"
	. "github.com/janpfeifer/isolationGo/internal/game"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"k8s.io/klog/v2"
)

// GreedyPlayer plays the move whose resulting position scores best for it, looking a single ply ahead.
//
// With randomness > 0 it instead samples the move from a softmax of the scores divided by randomness:
// larger values lead to more exploration. A winning move is always taken.
type GreedyPlayer struct {
	evaluator  ai.Evaluator
	randomness float64
	rng        *rand.Rand
}

var _ Player = &GreedyPlayer{}

// NewGreedyPlayer returns a GreedyPlayer scoring positions with evaluator.
func NewGreedyPlayer(evaluator ai.Evaluator, randomness float64, seed uint64) *GreedyPlayer {
	return &GreedyPlayer{
		evaluator:  evaluator,
		randomness: max(randomness, 0),
		rng:        rand.New(rand.NewPCG(seed, seed+1)),
	}
}

// Play implements Player. Ties are broken by the order of the legal moves.
func (p *GreedyPlayer) Play(s State, _ searchers.Clock) Move {
	player := s.ActivePlayer()
	moves := s.LegalMoves(player)
	if len(moves) == 0 {
		return NoMove
	}
	scores := make([]float64, len(moves))
	bestIdx := 0
	for ii, move := range moves {
		scores[ii] = p.evaluator.Score(s.Forecast(move), player)
		if scores[ii] > scores[bestIdx] {
			bestIdx = ii
		}
	}
	best := scores[bestIdx]
	if p.randomness == 0 || math.IsInf(best, 0) || len(moves) == 1 {
		return moves[bestIdx]
	}

	probabilities := softmax(scores, p.randomness)
	chance := p.rng.Float64()
	for moveIdx, value := range probabilities {
		if chance > value {
			chance -= value
			continue
		}
		if klog.V(2).Enabled() {
			klog.Infof("greedy: sampled move %s, score=%g (best %s, score=%g)", moves[moveIdx], scores[moveIdx], moves[bestIdx], best)
		}
		return moves[moveIdx]
	}
	// Rounding errors: the last move with non-zero probability.
	for moveIdx := len(probabilities) - 1; moveIdx >= 0; moveIdx-- {
		if probabilities[moveIdx] > 0 {
			return moves[moveIdx]
		}
	}
	exceptions.Panicf("greedy: nothing selected!? scores=%v, probabilities=%v", scores, probabilities)
	return NoMove
}

// softmax of values/temperature. Values of -Inf get probability 0, and the max value must be finite.
func softmax(values []float64, temperature float64) (probs []float64) {
	probs = make([]float64, len(values))
	var sum float64

	// Subtracting maxValue keeps the probabilities the same, with smaller exponentials.
	maxValue := slices.Max(values)
	for ii, value := range values {
		probs[ii] = math.Exp((value - maxValue) / temperature)
		sum += probs[ii]
	}
	for ii := range probs {
		probs[ii] /= sum
	}
	return
}

// String implements Player.
func (p *GreedyPlayer) String() string {
	if p.randomness > 0 {
		return fmt.Sprintf("greedy(score=%s, randomness=%g)", p.evaluator, p.randomness)
	}
	return fmt.Sprintf("greedy(score=%s)", p.evaluator)
}

// Finalize implements Player.
func (p *GreedyPlayer) Finalize() {}
