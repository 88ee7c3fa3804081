package heuristics

import (
	"math"
	"testing"

	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/game"
	"github.com/janpfeifer/isolationGo/internal/game/gametest"
	"github.com/janpfeifer/isolationGo/internal/state"
	"github.com/janpfeifer/isolationGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openingBoard() *state.Board {
	return statetest.Play(state.NewBoard(state.DefaultWidth, state.DefaultHeight),
		game.Move{Row: 3, Col: 3}, game.Move{Row: 0, Col: 0})
}

func TestHeuristicsValues(t *testing.T) {
	b := openingBoard()
	// First player has 8 moves from the center, second player 2 from the corner.
	assert.Equal(t, 0.0, Null.Score(b, game.PlayerFirst))
	assert.Equal(t, 8.0, Open.Score(b, game.PlayerFirst))
	assert.Equal(t, 2.0, Open.Score(b, game.PlayerSecond))
	assert.Equal(t, 7.0, Improved.Score(b, game.PlayerFirst))
	assert.Equal(t, -2.0, Improved.Score(b, game.PlayerSecond))
	assert.InDelta(t, -0.5, Center.Score(b, game.PlayerFirst), 1e-9)
	assert.InDelta(t, -24.5, Center.Score(b, game.PlayerSecond), 1e-9)
	assert.InDelta(t, 8-0.2*0.5-2, Staged.Score(b, game.PlayerFirst), 1e-9)

	// Lookahead behaves as Improved early in the match.
	assert.Equal(t, Improved.Score(b, game.PlayerFirst), Lookahead.Score(b, game.PlayerFirst))
}

func TestStagedLateGame(t *testing.T) {
	var blocked []game.Move
	for col := range 7 {
		for row := range 3 {
			blocked = append(blocked, game.Move{Row: row + 4, Col: col})
		}
	}
	b := statetest.BuildBoard(statetest.Layout{
		Blocked: blocked,
		First:   game.Move{Row: 2, Col: 3},
		Second:  game.Move{Row: 0, Col: 0},
		Next:    game.PlayerFirst,
	})
	require.Greater(t, b.OccupiedRate(), 0.3)
	own := float64(len(b.LegalMoves(game.PlayerFirst)))
	opponent := float64(len(b.LegalMoves(game.PlayerSecond)))
	assert.Equal(t, own-0.5*opponent, Staged.Score(b, game.PlayerFirst))

	// Lookahead takes the best reachable Improved value, which is at least the score of the first move.
	require.GreaterOrEqual(t, b.OccupiedRate(), 0.4)
	first := b.Forecast(b.LegalMoves(game.PlayerFirst)[0])
	assert.GreaterOrEqual(t, Lookahead.Score(b, game.PlayerFirst), Improved.Score(first, game.PlayerFirst))
	assert.False(t, math.IsInf(Lookahead.Score(b, game.PlayerFirst), 0))
}

func TestTerminalScoresAreExact(t *testing.T) {
	b := statetest.BuildBoard(statetest.Layout{
		Width: 4, Height: 4,
		Blocked: []game.Move{{1, 2}, {2, 1}},
		First:   game.Move{Row: 0, Col: 0},
		Second:  game.Move{Row: 3, Col: 1},
		Next:    game.PlayerFirst,
	})
	require.True(t, b.IsLoser(game.PlayerFirst))
	for _, name := range Names() {
		eval, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, math.Inf(-1), eval.Score(b, game.PlayerFirst), "heuristic %s", name)
		assert.Equal(t, math.Inf(1), eval.Score(b, game.PlayerSecond), "heuristic %s", name)
	}
}

func TestNonBoardStates(t *testing.T) {
	s := gametest.NewTree(gametest.Branch(0, gametest.Leaf(1), gametest.Leaf(2)), game.PlayerFirst)
	assert.Equal(t, 2.0, Open.Score(s, game.PlayerFirst))
	assert.Equal(t, 2.0, Improved.Score(s, game.PlayerFirst))
	for _, eval := range []ai.Evaluator{Staged, Lookahead, Center} {
		assert.Panics(t, func() { eval.Score(s, game.PlayerFirst) }, "heuristic %s", eval)
	}
}

func TestByName(t *testing.T) {
	assert.Equal(t, []string{"center", "improved", "lookahead", "null", "open", "staged"}, Names())
	eval, err := ByName("Improved")
	require.NoError(t, err)
	assert.Equal(t, "improved", eval.String())
	_, err = ByName("nope")
	assert.ErrorContains(t, err, "unknown heuristic")
	_, err = ByName(Default)
	assert.NoError(t, err)
}
