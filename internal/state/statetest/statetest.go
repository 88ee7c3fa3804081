// Package statetest provides helper functions to create tests using Isolation boards.
package statetest

import (
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/isolationGo/internal/game"
	"github.com/janpfeifer/isolationGo/internal/state"
)

// Layout describes a position: the cells visited (other than the current locations), the
// location of each player's piece (game.NoMove if not yet placed) and the player to move.
type Layout struct {
	Width, Height int
	Blocked       []game.Move
	First, Second game.Move
	Next          game.PlayerNum
}

// BuildBoard from a Layout. Pieces are placed without checking knight-move legality, since a
// layout is a snapshot and not a sequence of moves.
func BuildBoard(layout Layout) *state.Board {
	width, height := layout.Width, layout.Height
	if width == 0 {
		width = state.DefaultWidth
	}
	if height == 0 {
		height = state.DefaultHeight
	}
	b := state.NewBoard(width, height)
	for _, cell := range layout.Blocked {
		if !b.IsBlank(cell) {
			exceptions.Panicf("statetest: cell %s is out of the board or blocked twice", cell)
		}
		b.Block(cell)
	}
	for player, location := range map[game.PlayerNum]game.Move{game.PlayerFirst: layout.First, game.PlayerSecond: layout.Second} {
		if !location.IsNoMove() {
			b.Place(player, location)
		}
	}
	b.NextPlayer = layout.Next
	return b
}

// Play applies the sequence of moves to a copy of the board, panicking on illegal moves.
func Play(b *state.Board, moves ...game.Move) *state.Board {
	for _, m := range moves {
		b = b.Act(m)
	}
	return b
}
