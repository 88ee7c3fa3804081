package players

import (
	. "github.com/janpfeifer/isolationGo/internal/game"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"k8s.io/klog/v2"
)

// SearcherPlayer is the standard set up for an AI: a searcher configured with its evaluator.
// It implements the Player interface.
type SearcherPlayer struct {
	Searcher searchers.Searcher
}

// Assert that SearcherPlayer is a Player.
var _ Player = &SearcherPlayer{}

// NewSearcherPlayer returns a Player that delegates the decisions to searcher.
func NewSearcherPlayer(searcher searchers.Searcher) *SearcherPlayer {
	return &SearcherPlayer{Searcher: searcher}
}

// Play implements the Player interface: it chooses a move for the active player of s.
func (p *SearcherPlayer) Play(s State, clock searchers.Clock) Move {
	move := p.Searcher.GetMove(s, clock)
	if klog.V(1).Enabled() {
		klog.Infof("AI (%s) playing %s for player %s", p.Searcher, move, s.ActivePlayer())
	}
	return move
}

// String implements Player.
func (p *SearcherPlayer) String() string {
	return p.Searcher.String()
}

// Finalize is called at the end of a match.
func (p *SearcherPlayer) Finalize() {
	if klog.V(1).Enabled() {
		klog.Infof("Player (%s) finalized", p.Searcher)
	}
}
