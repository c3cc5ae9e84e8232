package engine

import (
	"testing"

	. "github.com/ChizhovVadim/chesssearch/pkg/common"
)

var orderingFens = []string{
	InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
}

func iterate(p *Position, history *historyTable, transMove, killer1, killer2 Move) []Move {
	var ml MoveList
	var mi = moveIterator{
		position:  p,
		ml:        &ml,
		history:   history,
		transMove: transMove,
		killer1:   killer1,
		killer2:   killer2,
	}
	mi.Init()
	var result []Move
	for {
		var move = mi.Next()
		if move == MoveEmpty {
			break
		}
		result = append(result, move)
	}
	if !mi.Done() {
		panic("iterator not done")
	}
	return result
}

func TestMoveIteratorKeepsAllMoves(t *testing.T) {
	for _, fen := range orderingFens {
		var p = mustParse(t, fen)
		var generated MoveList
		p.GenerateMoves(&generated)

		var history historyTable
		var quiets []Move
		for _, om := range generated.Moves() {
			if !om.Move.IsCaptureOrPromotion() {
				quiets = append(quiets, om.Move)
			}
		}
		if len(quiets) > 2 {
			history.Update(p.Side, quiets[:3], quiets[2], 10)
		}

		var transMove = generated.Items[generated.Count-1].Move
		var killer1, killer2 Move
		if len(quiets) >= 2 {
			killer1, killer2 = quiets[0], quiets[1]
		}

		var moves = iterate(p, &history, transMove, killer1, killer2)
		if len(moves) != generated.Count {
			t.Fatalf("%v: %v moves, generated %v", fen, len(moves), generated.Count)
		}
		var seen = make(map[Move]bool)
		for _, mv := range moves {
			if seen[mv] || !generated.Contains(mv) {
				t.Fatalf("%v: unexpected move %v", fen, mv)
			}
			seen[mv] = true
		}
		if moves[0] != transMove {
			t.Errorf("%v: first move %v, trans move %v", fen, moves[0], transMove)
		}

		var again = iterate(p, &history, transMove, killer1, killer2)
		for i := range moves {
			if moves[i] != again[i] {
				t.Fatalf("%v: order differs at %v", fen, i)
			}
		}
	}
}

func TestMoveIteratorGoodCapturesFirst(t *testing.T) {
	var p = mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var history historyTable
	var moves = iterate(p, &history, MoveEmpty, MoveEmpty, MoveEmpty)
	var quietSeen = false
	for _, mv := range moves {
		var goodCapture = mv.IsCaptureOrPromotion() && seeGEZero(p, mv)
		if goodCapture && quietSeen {
			t.Errorf("good capture %v after a quiet move", mv)
		}
		if !mv.IsCaptureOrPromotion() {
			quietSeen = true
		}
	}
}

func TestMoveIteratorQS(t *testing.T) {
	for _, fen := range orderingFens {
		var p = mustParse(t, fen)
		var ml MoveList
		var mi = moveIteratorQS{position: p, ml: &ml}
		mi.Init()
		var count = 0
		for move := mi.Next(); move != MoveEmpty; move = mi.Next() {
			if !p.IsCheck() && !move.IsCaptureOrPromotion() {
				t.Errorf("%v: quiet move %v", fen, move)
			}
			count++
		}
		if count != ml.Count || !isSorted(ml.Moves()) {
			t.Errorf("%v: bad quiescence ordering", fen)
		}
	}
}

func TestHistory(t *testing.T) {
	var p = mustParse(t, InitialPositionFen)
	var good, _ = ParseMoveLAN(p, "e2e4")
	var bad, _ = ParseMoveLAN(p, "a2a3")
	var h historyTable
	for i := 0; i < 100; i++ {
		h.Update(SideWhite, []Move{bad, good}, good, 20)
	}
	if v := h.Read(SideWhite, good); v <= 0 || v > historyMax {
		t.Errorf("good move history %v", v)
	}
	if v := h.Read(SideWhite, bad); v >= 0 || v < -historyMax {
		t.Errorf("bad move history %v", v)
	}
	if h.Read(SideBlack, good) != 0 {
		t.Error("history leaked to the other side")
	}
	h.Clear()
	if h.Read(SideWhite, good) != 0 {
		t.Error("clear")
	}
}

func TestMoveIteratorForeignTransMove(t *testing.T) {
	var other = mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var foreign, err = ParseMoveLAN(other, "e2a6")
	if err != nil {
		t.Fatal(err)
	}
	var p = mustParse(t, InitialPositionFen)
	var history historyTable
	var expected = iterate(p, &history, MoveEmpty, MoveEmpty, MoveEmpty)
	for _, transMove := range []Move{foreign, Move(0x3fffff)} {
		var moves = iterate(p, &history, transMove, MoveEmpty, MoveEmpty)
		if len(moves) != len(expected) {
			t.Fatalf("%v: %v moves, expected %v", transMove, len(moves), len(expected))
		}
		for i := range moves {
			if moves[i] == transMove {
				t.Errorf("%v yielded", transMove)
			}
			if moves[i] != expected[i] {
				t.Fatalf("%v: order differs at %v", transMove, i)
			}
		}
	}
}
