package players

import (
	"fmt"
	"math/rand/v2"

	. "github.com/janpfeifer/isolationGo/internal/game"
	"github.com/janpfeifer/isolationGo/internal/searchers"
)

// RandomPlayer plays a uniformly random legal move. It's the usual baseline opponent.
type RandomPlayer struct {
	rng  *rand.Rand
	seed uint64
}

var _ Player = &RandomPlayer{}

// NewRandomPlayer returns a RandomPlayer. The same seed plays the same moves in the same positions.
func NewRandomPlayer(seed uint64) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed: seed}
}

// Play implements Player. It returns NoMove if there are no legal moves.
func (p *RandomPlayer) Play(s State, _ searchers.Clock) Move {
	moves := s.LegalMoves(s.ActivePlayer())
	if len(moves) == 0 {
		return NoMove
	}
	return moves[p.rng.IntN(len(moves))]
}

// String implements Player.
func (p *RandomPlayer) String() string {
	return fmt.Sprintf("random(seed=%d)", p.seed)
}

// Finalize implements Player.
func (p *RandomPlayer) Finalize() {}
