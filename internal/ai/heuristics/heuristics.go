// Package heuristics implements the evaluation functions (ai.Evaluator) available to the players.
//
// All of them return ai.WinScore and ai.LossScore for terminal states, and finite values otherwise.
// The ones that use geometry (Staged, Lookahead and Center) require the state to implement
// game.Board, and panic otherwise.
package heuristics

import (
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/generics"
	. "github.com/janpfeifer/isolationGo/internal/game"
	"github.com/pkg/errors"
)

// Default is the name of the heuristic used when none is configured.
const Default = "improved"

// lookaheadWinBonus is the finite value Lookahead gives to a move that wins the match right away.
const lookaheadWinBonus = 1000.0

var registry = map[string]ai.Evaluator{
	"null":      Null,
	"open":      Open,
	"improved":  Improved,
	"staged":    Staged,
	"lookahead": Lookahead,
	"center":    Center,
}

// ByName returns the heuristic registered with the given name.
func ByName(name string) (ai.Evaluator, error) {
	eval, found := registry[strings.ToLower(name)]
	if !found {
		return nil, errors.Errorf("unknown heuristic %q, valid values are %q", name, Names())
	}
	return eval, nil
}

// Names of the heuristics available, sorted.
func Names() []string {
	return generics.KeysSlice(registry)
}

var (
	// Null scores every non-terminal state with 0.
	Null = ai.WithEndGame("null", func(s State, player PlayerNum) float64 {
		return 0
	})

	// Open scores the number of moves available to the player.
	Open = ai.WithEndGame("open", func(s State, player PlayerNum) float64 {
		return float64(len(s.LegalMoves(player)))
	})

	// Improved scores the player's mobility minus half of the opponent's mobility.
	Improved = ai.WithEndGame("improved", improved)

	// Staged changes the weights of mobility along the match: at the opening (less than 10% of the board
	// occupied) it also pulls the player towards the center; up to 30% it weighs both mobilities equally;
	// afterwards it falls back to Improved.
	Staged = ai.WithEndGame("staged", func(s State, player PlayerNum) float64 {
		b := asBoard(s, "staged")
		own := float64(len(s.LegalMoves(player)))
		opponent := float64(len(s.LegalMoves(s.Opponent(player))))
		occupied := occupiedRate(b)
		switch {
		case occupied < 0.1:
			return own - 0.2*centerDistance(b, player) - opponent
		case occupied < 0.3:
			return own - opponent
		default:
			return own - 0.5*opponent
		}
	})

	// Lookahead is Improved until 40% of the board is occupied. Afterwards, if the player is the one to
	// move, it scores the best Improved value reachable in one move.
	Lookahead = ai.WithEndGame("lookahead", func(s State, player PlayerNum) float64 {
		b := asBoard(s, "lookahead")
		if occupiedRate(b) < 0.4 || s.ActivePlayer() != player {
			return improved(s, player)
		}
		moves := s.LegalMoves(player)
		best := improved(s, player)
		for ii, move := range moves {
			next := s.Forecast(move)
			var value float64
			if next.IsWinner(player) {
				value = lookaheadWinBonus
			} else {
				value = improved(next, player)
			}
			if ii == 0 || value > best {
				best = value
			}
		}
		return best
	})

	// Center scores how close (negative squared distance) the player is to the center of the board.
	Center = ai.WithEndGame("center", func(s State, player PlayerNum) float64 {
		return -centerDistance(asBoard(s, "center"), player)
	})
)

func improved(s State, player PlayerNum) float64 {
	own := float64(len(s.LegalMoves(player)))
	opponent := float64(len(s.LegalMoves(s.Opponent(player))))
	return own - 0.5*opponent
}

// asBoard casts s to a Board, or panics: heuristics using geometry can't be used with other games.
func asBoard(s State, heuristic string) Board {
	b, ok := s.(Board)
	if !ok {
		exceptions.Panicf("heuristic %q requires a game.Board, got %T", heuristic, s)
	}
	return b
}

func occupiedRate(b Board) float64 {
	width, height := b.Size()
	return 1 - float64(len(b.BlankSpaces()))/float64(width*height)
}

// centerDistance is the squared distance of the player's piece to the center of the board. It is 0 if the
// piece hasn't been placed yet.
func centerDistance(b Board, player PlayerNum) float64 {
	location, placed := b.Location(player)
	if !placed {
		return 0
	}
	width, height := b.Size()
	w, h := float64(width)/2, float64(height)/2
	dy, dx := h-float64(location.Row), w-float64(location.Col)
	return dy*dy + dx*dx
}
