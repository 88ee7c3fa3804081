// Package gametest provides synthetic game trees and scripted clocks to test searchers
// independently of any concrete game.
package gametest

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/isolationGo/internal/game"
)

// Node of a synthetic game tree. Build trees with Leaf, Win and Branch, and then wrap the
// root with NewTree.
type Node struct {
	Name     string
	Children []*Node

	// Value is the heuristic value of the node for PlayerFirst. PlayerSecond sees -Value.
	Value float64

	// Winner is set for terminal nodes, PlayerInvalid otherwise.
	Winner game.PlayerNum

	active game.PlayerNum
}

// Leaf creates a non-terminal node without children and the given value for PlayerFirst.
func Leaf(value float64) *Node {
	return &Node{Value: value, Winner: game.PlayerInvalid}
}

// Win creates a terminal node won by the given player.
func Win(winner game.PlayerNum) *Node {
	return &Node{Winner: winner}
}

// Branch creates an inner node. The value is only used if the search is cut short at this node.
func Branch(value float64, children ...*Node) *Node {
	return &Node{Value: value, Children: children, Winner: game.PlayerInvalid}
}

// MoveFor returns the move that leads to the idx-th child of any node.
func MoveFor(idx int) game.Move {
	return game.Move{Row: 0, Col: idx}
}

// State implements game.State over a synthetic tree.
type State struct {
	node *Node
}

// Assert State implements game.State.
var _ game.State = State{}

// NewTree assigns the active player of every node, alternating from first at the root, and names
// the nodes after the path of moves that lead to them.
func NewTree(root *Node, first game.PlayerNum) State {
	var walk func(n *Node, active game.PlayerNum, name string)
	walk = func(n *Node, active game.PlayerNum, name string) {
		n.active = active
		if n.Name == "" {
			n.Name = name
		}
		for ii, child := range n.Children {
			walk(child, active.Opponent(), fmt.Sprintf("%s%d", name, ii))
		}
	}
	walk(root, first, "r")
	return State{node: root}
}

// Node returns the tree node this state represents.
func (s State) Node() *Node { return s.node }

// LegalMoves implements game.State. Only the active player has moves.
func (s State) LegalMoves(player game.PlayerNum) []game.Move {
	if player != s.node.active || s.node.Winner != game.PlayerInvalid {
		return nil
	}
	moves := make([]game.Move, len(s.node.Children))
	for ii := range s.node.Children {
		moves[ii] = MoveFor(ii)
	}
	return moves
}

// Forecast implements game.State.
func (s State) Forecast(move game.Move) game.State {
	if move.Row != 0 || move.Col < 0 || move.Col >= len(s.node.Children) {
		exceptions.Panicf("gametest: move %s not available at node %q", move, s.node.Name)
	}
	return State{node: s.node.Children[move.Col]}
}

// Opponent implements game.State.
func (s State) Opponent(player game.PlayerNum) game.PlayerNum { return player.Opponent() }

// IsWinner implements game.State.
func (s State) IsWinner(player game.PlayerNum) bool {
	return s.node.Winner != game.PlayerInvalid && s.node.Winner == player
}

// IsLoser implements game.State.
func (s State) IsLoser(player game.PlayerNum) bool {
	return s.node.Winner != game.PlayerInvalid && s.node.Winner != player
}

// ActivePlayer implements game.State.
func (s State) ActivePlayer() game.PlayerNum { return s.node.active }

// Evaluator scores synthetic tree nodes and records which nodes were evaluated.
// It implements ai.Evaluator.
type Evaluator struct {
	Evaluated []string
}

// Score returns +Inf/-Inf for terminal nodes and the node value (negated for PlayerSecond) otherwise.
func (e *Evaluator) Score(gs game.State, player game.PlayerNum) float64 {
	s := gs.(State)
	e.Evaluated = append(e.Evaluated, s.node.Name)
	switch {
	case s.IsWinner(player):
		return math.Inf(1)
	case s.IsLoser(player):
		return math.Inf(-1)
	case player == game.PlayerFirst:
		return s.node.Value
	default:
		return -s.node.Value
	}
}

// String implements ai.Evaluator.
func (e *Evaluator) String() string { return "gametest" }

// RandomTree builds a random tree with the given depth and branching factor (each node has between
// 1 and maxBranching children). Leaves are terminal with probability pTerminal.
// Values are small integers, so ties are frequent.
func RandomTree(rng *rand.Rand, depth, maxBranching int, pTerminal float64) *Node {
	if depth == 0 || rng.Float64() < pTerminal/2 {
		if rng.Float64() < pTerminal {
			return Win(game.PlayerNum(rng.IntN(2)))
		}
		return Leaf(float64(rng.IntN(11) - 5))
	}
	numChildren := 1 + rng.IntN(maxBranching)
	children := make([]*Node, numChildren)
	for ii := range children {
		children[ii] = RandomTree(rng, depth-1, maxBranching, pTerminal)
	}
	return Branch(float64(rng.IntN(11)-5), children...)
}

// CountdownClock reports plenty of time for the first Allowed queries, and zero afterwards.
// It implements searchers.Clock.
type CountdownClock struct {
	Allowed int
	Queries int
}

// TimeLeft implements searchers.Clock.
func (c *CountdownClock) TimeLeft() time.Duration {
	c.Queries++
	if c.Queries <= c.Allowed {
		return time.Hour
	}
	return 0
}
