package state_test

import (
	"fmt"
	"testing"

	"github.com/janpfeifer/isolationGo/internal/game"
	. "github.com/janpfeifer/isolationGo/internal/state"
	. "github.com/janpfeifer/isolationGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Printf

func TestNewBoard(t *testing.T) {
	b := NewBoard(DefaultWidth, DefaultHeight)
	assert.Equal(t, game.PlayerFirst, b.ActivePlayer())
	assert.Equal(t, 1, b.MoveNumber)
	assert.Len(t, b.BlankSpaces(), 49)
	assert.Len(t, b.LegalMoves(game.PlayerFirst), 49)
	assert.Len(t, b.LegalMoves(game.PlayerSecond), 49)
	assert.False(t, b.IsFinished())
	assert.Equal(t, game.PlayerInvalid, b.Winner())
	assert.Zero(t, b.OccupiedRate())
	_, placed := b.Location(game.PlayerFirst)
	assert.False(t, placed)

	// Blank spaces are listed column by column.
	blanks := b.BlankSpaces()
	assert.Equal(t, game.Move{Row: 0, Col: 0}, blanks[0])
	assert.Equal(t, game.Move{Row: 1, Col: 0}, blanks[1])
	assert.Equal(t, game.Move{Row: 0, Col: 1}, blanks[7])

	assert.Panics(t, func() { NewBoard(0, 3) })
}

func TestKnightMoves(t *testing.T) {
	b := Play(NewBoard(DefaultWidth, DefaultHeight), game.Move{Row: 3, Col: 3}, game.Move{Row: 0, Col: 0})
	assert.Equal(t, 3, b.MoveNumber)
	assert.Equal(t, game.PlayerFirst, b.NextPlayer)

	// All 8 knight moves available from the center, in the enumeration order.
	want := []game.Move{{1, 2}, {1, 4}, {2, 1}, {2, 5}, {4, 1}, {4, 5}, {5, 2}, {5, 4}}
	assert.Equal(t, want, b.LegalMoves(game.PlayerFirst))

	// From the corner, only 2 moves are available.
	assert.Equal(t, []game.Move{{1, 2}, {2, 1}}, b.LegalMoves(game.PlayerSecond))

	// Blocked cells are not available.
	b2 := b.Act(game.Move{Row: 1, Col: 2})
	assert.Equal(t, []game.Move{{2, 1}}, b2.LegalMoves(game.PlayerSecond))
	assert.Equal(t, 47-1, len(b2.BlankSpaces()))
}

func TestForecastDoesNotMutate(t *testing.T) {
	b := NewBoard(5, 5)
	before := b.String()
	next := b.Forecast(game.Move{Row: 2, Col: 2})
	assert.Equal(t, before, b.String())
	assert.Len(t, b.BlankSpaces(), 25)
	assert.Equal(t, game.PlayerFirst, b.ActivePlayer())

	nextBoard := next.(*Board)
	assert.Len(t, nextBoard.BlankSpaces(), 24)
	assert.Equal(t, game.PlayerSecond, next.ActivePlayer())
	loc, ok := nextBoard.Location(game.PlayerFirst)
	require.True(t, ok)
	assert.Equal(t, game.Move{Row: 2, Col: 2}, loc)
}

func TestApplyIllegal(t *testing.T) {
	b := Play(NewBoard(DefaultWidth, DefaultHeight), game.Move{Row: 3, Col: 3})
	err := b.Apply(game.Move{Row: 3, Col: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not legal")
	assert.Error(t, b.Apply(game.Move{Row: -1, Col: 0}))
	assert.Panics(t, func() { b.Forecast(game.Move{Row: 9, Col: 9}) })
}

func TestWinnerAndLoser(t *testing.T) {
	// First player at the corner, with both of its knight moves blocked.
	b := BuildBoard(Layout{
		Width: 4, Height: 4,
		Blocked: []game.Move{{1, 2}, {2, 1}},
		First:   game.Move{Row: 0, Col: 0},
		Second:  game.Move{Row: 3, Col: 3},
		Next:    game.PlayerFirst,
	})
	require.True(t, b.IsFinished())
	assert.True(t, b.IsLoser(game.PlayerFirst))
	assert.False(t, b.IsWinner(game.PlayerFirst))
	assert.True(t, b.IsWinner(game.PlayerSecond))
	assert.False(t, b.IsLoser(game.PlayerSecond))
	assert.Equal(t, game.PlayerSecond, b.Winner())

	// Same position, but second player to move: it still has no moves from (3,3), since (1,2) and (2,1) are blocked.
	b.NextPlayer = game.PlayerSecond
	assert.True(t, b.IsLoser(game.PlayerSecond))
	assert.True(t, b.IsWinner(game.PlayerFirst))

	// Winner and loser are mutually exclusive for every player, all along a match.
	b = NewBoard(5, 5)
	for !b.IsFinished() {
		for _, player := range []game.PlayerNum{game.PlayerFirst, game.PlayerSecond} {
			assert.False(t, b.IsWinner(player) && b.IsLoser(player))
			assert.False(t, b.IsWinner(player), "match is not finished")
		}
		b = b.Act(b.LegalMoves(b.NextPlayer)[0])
	}
	winner := b.Winner()
	assert.True(t, b.IsWinner(winner))
	assert.True(t, b.IsLoser(winner.Opponent()))
	assert.False(t, b.IsWinner(winner) && b.IsLoser(winner))
}

func TestString(t *testing.T) {
	b := Play(NewBoard(3, 3), game.Move{Row: 0, Col: 0}, game.Move{Row: 2, Col: 2}, game.Move{Row: 1, Col: 2})
	want := "" +
		" | - |   |   | \n" +
		" |   |   | 1 | \n" +
		" |   |   | 2 | \n"
	assert.Equal(t, want, b.String())
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("3,4")
	require.NoError(t, err)
	assert.Equal(t, game.Move{Row: 3, Col: 4}, m)

	m, err = ParseMove(" 0  6 ")
	require.NoError(t, err)
	assert.Equal(t, game.Move{Row: 0, Col: 6}, m)

	_, err = ParseMove("3")
	assert.Error(t, err)
	_, err = ParseMove("a,b")
	assert.Error(t, err)
}
