package common

import (
	"reflect"
	"sort"
	"testing"

	"github.com/notnil/chess"
	"lukechampine.com/frand"
)

var testFens = []string{
	InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
}

func checkIncremental(t *testing.T, p *Position) {
	t.Helper()
	if p.Key != p.ComputeKey() {
		t.Fatalf("key mismatch %v", p)
	}
	if p.PawnKey != p.ComputePawnKey() {
		t.Fatalf("pawn key mismatch %v", p)
	}
	var material, nonPawn = p.ComputeMaterial()
	if material != p.Material || nonPawn != p.NonPawn {
		t.Fatalf("material mismatch %v", p)
	}
	if p.Checkers != p.computeCheckers() {
		t.Fatalf("checkers mismatch %v", p)
	}
}

func TestMakeUnmakeInverse(t *testing.T) {
	for _, fen := range testFens {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		var ml MoveList
		p.GenerateMoves(&ml)
		for i := 0; i < ml.Count; i++ {
			var mv = ml.Items[i].Move
			var before = p.Clone()
			if p.MakeMove(mv) {
				checkIncremental(t, p)
			}
			p.UnmakeMove()
			if !reflect.DeepEqual(p, before) {
				t.Fatalf("%v %v: position differs after unmake", fen, mv)
			}
		}
		var before = p.Clone()
		if !p.IsCheck() {
			p.MakeNullMove()
			checkIncremental(t, p)
			p.UnmakeNullMove()
			if !reflect.DeepEqual(p, before) {
				t.Fatalf("%v: position differs after null move", fen)
			}
		}
	}
}

func TestUnmakeWithoutMakePanics(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	p.UnmakeMove()
}

func TestUndoTo(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var start = p.Clone()
	for _, lan := range []string{"e2e4", "e7e5", "g1f3"} {
		if err := p.MakeMoveLAN(lan); err != nil {
			t.Fatal(err)
		}
	}
	p.MakeNullMove()
	if p.Ply() != 4 {
		t.Fatal(p.Ply())
	}
	p.UndoTo(0)
	if !reflect.DeepEqual(p, start) {
		t.Error("UndoTo did not restore the start position")
	}
}

func TestRepetition(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var shuffle = []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for _, lan := range shuffle {
		if err := p.MakeMoveLAN(lan); err != nil {
			t.Fatal(err)
		}
	}
	if !p.IsRepetition(0) {
		t.Error("repetition inside search must count once")
	}
	if p.IsRepetition(p.Ply()) {
		t.Error("single repetition in game history must not count")
	}
	for _, lan := range shuffle {
		if err := p.MakeMoveLAN(lan); err != nil {
			t.Fatal(err)
		}
	}
	if !p.IsRepetition(p.Ply()) {
		t.Error("threefold repetition in game history")
	}
}

func TestMirrorPosition(t *testing.T) {
	for _, fen := range testFens {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		var m = MirrorPosition(p)
		checkIncremental(t, m)
		if m.Material != -p.Material {
			t.Error(fen, "mirrored material")
		}
		if len(m.GenerateLegalMoves()) != len(p.GenerateLegalMoves()) {
			t.Error(fen, "mirrored move count")
		}
	}
}

func sortedLegalMoves(p *Position) []string {
	var result []string
	for _, mv := range p.GenerateLegalMoves() {
		result = append(result, mv.String())
	}
	sort.Strings(result)
	return result
}

func sortedOracleMoves(game *chess.Game) []string {
	var result []string
	for _, mv := range game.ValidMoves() {
		result = append(result, chess.UCINotation{}.Encode(game.Position(), mv))
	}
	sort.Strings(result)
	return result
}

func TestLegalMovesAgainstOracle(t *testing.T) {
	var seed [32]byte
	copy(seed[:], "random walks")
	var rng = frand.NewCustom(seed[:], 1024, 12)
	for _, fen := range testFens {
		for walk := 0; walk < 10; walk++ {
			var p, err = NewPositionFromFEN(fen)
			if err != nil {
				t.Fatal(err)
			}
			fenOption, err := chess.FEN(fen)
			if err != nil {
				t.Fatal(err)
			}
			var game = chess.NewGame(fenOption)
			for ply := 0; ply < 80 && game.Outcome() == chess.NoOutcome; ply++ {
				var got = sortedLegalMoves(p)
				var want = sortedOracleMoves(game)
				if !reflect.DeepEqual(got, want) {
					t.Fatalf("%v: got %v want %v", p, got, want)
				}
				if len(got) == 0 {
					break
				}
				var lan = got[rng.Intn(len(got))]
				if err := p.MakeMoveLAN(lan); err != nil {
					t.Fatal(err)
				}
				checkIncremental(t, p)
				var oracleMove, oracleErr = chess.UCINotation{}.Decode(game.Position(), lan)
				if oracleErr != nil {
					t.Fatal(oracleErr)
				}
				if err := game.Move(oracleMove); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
}
