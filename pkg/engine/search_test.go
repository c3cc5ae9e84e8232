package engine

import (
	"testing"

	. "github.com/ChizhovVadim/chesssearch/pkg/common"
)

func TestLateMovePruningCountsQuiets(t *testing.T) {
	const fen = "4k3/8/8/8/8/8/p7/R3K3 w - - 0 1"
	var f = newSplitFixture(t, fen, 2)
	var th = f.master
	var node = searchNode{
		depth:     2,
		height:    1,
		beta:      1,
		improving: true,
		lmp:       3,
	}
	var capture, _ = ParseMoveLAN(th.position, "a1a2")
	var quiet, _ = ParseMoveLAN(th.position, "a1c1")

	var tests = []struct {
		move          Move
		movesSearched int
		quietsSeen    int
		searched      bool
	}{
		{capture, 20, 0, true},
		{quiet, 20, 3, true},
		{quiet, 4, 4, false},
	}
	for _, test := range tests {
		var _, searched = th.searchMove(&node, test.move, 0, 0, test.movesSearched, test.quietsSeen)
		if searched != test.searched {
			t.Errorf("%v moves %v quiets %v: searched %v", test.move, test.movesSearched, test.quietsSeen, searched)
		}
		if th.position.String() != fen {
			t.Fatalf("position changed: %v", th.position)
		}
	}
}
