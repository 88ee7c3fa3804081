package minimax

import (
	"math"
	"testing"
	"time"

	"github.com/janpfeifer/isolationGo/internal/ai/heuristics"
	. "github.com/janpfeifer/isolationGo/internal/game"
	"github.com/janpfeifer/isolationGo/internal/game/gametest"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"github.com/janpfeifer/isolationGo/internal/state"
	"github.com/janpfeifer/isolationGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

const threshold = 10 * time.Millisecond

func newSearcher(t *testing.T, depth int, eval *gametest.Evaluator) *Searcher {
	mm, err := New(depth, eval, threshold)
	require.NoError(t, err)
	return mm
}

func TestNew(t *testing.T) {
	_, err := New(0, &gametest.Evaluator{}, threshold)
	assert.Error(t, err)
	_, err = New(3, nil, threshold)
	assert.Error(t, err)
	_, err = New(3, &gametest.Evaluator{}, -time.Second)
	assert.Error(t, err)
	mm, err := New(3, heuristics.Improved, threshold)
	require.NoError(t, err)
	assert.Equal(t, "minimax(depth=3, score=improved, timeout=10ms)", mm.String())
}

func TestNoLegalMoves(t *testing.T) {
	eval := &gametest.Evaluator{}
	root := gametest.NewTree(gametest.Leaf(5), PlayerFirst)
	move := newSearcher(t, 3, eval).GetMove(root, searchers.Unlimited)
	assert.Equal(t, NoMove, move)
	assert.Empty(t, eval.Evaluated, "evaluator must not be called when there are no legal moves")
}

func TestWinningMove(t *testing.T) {
	eval := &gametest.Evaluator{}
	root := gametest.NewTree(gametest.Branch(0, gametest.Win(PlayerFirst), gametest.Win(PlayerSecond)), PlayerFirst)
	result, err := Search(root, PlayerFirst, 1, eval, searchers.NewTimer(searchers.Unlimited, threshold), &searchers.Stats{})
	require.NoError(t, err)
	assert.Equal(t, gametest.MoveFor(0), result.Move)
	assert.Equal(t, math.Inf(1), result.Value)

	// Same with the moves in the reverse order.
	root = gametest.NewTree(gametest.Branch(0, gametest.Win(PlayerSecond), gametest.Win(PlayerFirst)), PlayerFirst)
	assert.Equal(t, gametest.MoveFor(1), newSearcher(t, 1, eval).GetMove(root, searchers.Unlimited))
}

func TestTieBreakIsFirstInOrder(t *testing.T) {
	root := gametest.NewTree(gametest.Branch(0, gametest.Leaf(1), gametest.Leaf(1), gametest.Leaf(1)), PlayerFirst)
	mm := newSearcher(t, 1, &gametest.Evaluator{})
	for range 10 {
		assert.Equal(t, gametest.MoveFor(0), mm.GetMove(root, searchers.Unlimited))
	}

	// All moves losing: still the first one, not NoMove.
	root = gametest.NewTree(gametest.Branch(0, gametest.Win(PlayerSecond), gametest.Win(PlayerSecond)), PlayerFirst)
	assert.Equal(t, gametest.MoveFor(0), mm.GetMove(root, searchers.Unlimited))
}

// textbookTree is the classic 2-ply example: the minimizer picks 3, 2 and 2, so the first move is best.
func textbookTree() *gametest.Node {
	return gametest.Branch(0,
		gametest.Branch(0, gametest.Leaf(3), gametest.Leaf(12), gametest.Leaf(8)),
		gametest.Branch(0, gametest.Leaf(2), gametest.Leaf(4), gametest.Leaf(6)),
		gametest.Branch(0, gametest.Leaf(14), gametest.Leaf(5), gametest.Leaf(2)),
	)
}

func TestTwoPlies(t *testing.T) {
	eval := &gametest.Evaluator{}
	stats := &searchers.Stats{}
	root := gametest.NewTree(textbookTree(), PlayerFirst)
	result, err := Search(root, PlayerFirst, 2, eval, searchers.NewTimer(searchers.Unlimited, threshold), stats)
	require.NoError(t, err)
	assert.Equal(t, gametest.MoveFor(0), result.Move)
	assert.Equal(t, 3.0, result.Value)
	assert.Equal(t, 2, result.Depth)
	assert.Equal(t, 12, stats.Nodes)
	assert.Equal(t, 9, stats.Evals)
	assert.Zero(t, stats.Cutoffs)
	assert.Zero(t, stats.Prunes)

	// At depth 1 only the root's children are evaluated, using their own values (0), all of them being cut
	// short of their children.
	eval.Evaluated = nil
	stats = &searchers.Stats{}
	result, err = Search(root, PlayerFirst, 1, eval, searchers.NewTimer(searchers.Unlimited, threshold), stats)
	require.NoError(t, err)
	assert.Equal(t, []string{"r0", "r1", "r2"}, eval.Evaluated)
	assert.Equal(t, gametest.MoveFor(0), result.Move)
	assert.Equal(t, 3, stats.Cutoffs)
}

func TestEvaluatesForSearchingPlayer(t *testing.T) {
	// Values are given for PlayerFirst: PlayerSecond prefers the second move.
	root := gametest.NewTree(gametest.Branch(0, gametest.Leaf(3), gametest.Leaf(-1)), PlayerSecond)
	assert.Equal(t, gametest.MoveFor(1), newSearcher(t, 1, &gametest.Evaluator{}).GetMove(root, searchers.Unlimited))
}

func TestTimeoutReturnsNoMove(t *testing.T) {
	root := gametest.NewTree(textbookTree(), PlayerFirst)
	mm := newSearcher(t, 2, &gametest.Evaluator{})

	// The root check and a few nodes are allowed, but not the whole tree.
	clock := &gametest.CountdownClock{Allowed: 5}
	assert.Equal(t, NoMove, mm.GetMove(root, clock))
	assert.Equal(t, 6, clock.Queries, "search must stop at the first failed check")

	// Cancelled even before the root.
	assert.Equal(t, NoMove, mm.GetMove(root, &gametest.CountdownClock{Allowed: 0}))

	// With enough time it completes.
	assert.Equal(t, gametest.MoveFor(0), mm.GetMove(root, &gametest.CountdownClock{Allowed: 13}))
	assert.Equal(t, 2, mm.Stats().Depth)
}

func TestIsolationEndGame(t *testing.T) {
	// PlayerSecond at (3,3) can only escape through (1,2), which PlayerFirst can take from (2,0).
	b := statetest.BuildBoard(statetest.Layout{
		Width: 4, Height: 4,
		Blocked: []Move{{2, 1}},
		First:   Move{Row: 2, Col: 0},
		Second:  Move{Row: 3, Col: 3},
		Next:    PlayerFirst,
	})
	require.Equal(t, []Move{{0, 1}, {1, 2}, {3, 2}}, b.LegalMoves(PlayerFirst))
	mm, err := New(1, heuristics.Improved, threshold)
	require.NoError(t, err)
	move := mm.GetMove(b, searchers.Unlimited)
	assert.Equal(t, Move{Row: 1, Col: 2}, move)
	next := b.Forecast(move).(*state.Board)
	assert.Equal(t, PlayerFirst, next.Winner())

	// Deeper searches also see the win.
	result, err := Search(b, PlayerFirst, 3, heuristics.Improved, searchers.NewTimer(searchers.Unlimited, threshold), &searchers.Stats{})
	require.NoError(t, err)
	assert.Equal(t, math.Inf(1), result.Value)
}
