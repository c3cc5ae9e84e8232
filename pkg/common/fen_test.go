package common

import (
	"errors"
	"testing"

	"github.com/notnil/chess"
)

func TestFenRoundTrip(t *testing.T) {
	var fens = []string{
		InitialPositionFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"8/8/8/4k3/8/8/8/4K2Q b - - 99 80",
	}
	for _, fen := range fens {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		if p.String() != fen {
			t.Errorf("got %v want %v", p.String(), fen)
		}
	}
}

func TestFenAgreesWithOracle(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var game = chess.NewGame()
	for _, lan := range []string{"e2e4", "c7c5", "g1f3", "d7d6", "f1b5"} {
		if err := p.MakeMoveLAN(lan); err != nil {
			t.Fatal(err)
		}
		var mv, err = chess.UCINotation{}.Decode(game.Position(), lan)
		if err != nil {
			t.Fatal(err)
		}
		if err := game.Move(mv); err != nil {
			t.Fatal(err)
		}
	}
	if p.String() != game.Position().String() {
		t.Errorf("got %v want %v", p.String(), game.Position().String())
	}
}

func TestFenShortForm(t *testing.T) {
	var p, err = NewPositionFromFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatal(err)
	}
	if p.Rule50 != 0 || p.MoveNumber != 1 {
		t.Error(p.Rule50, p.MoveNumber)
	}
}

func TestMalformedFen(t *testing.T) {
	var tests = []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"},
		{"ranks", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1"},
		{"long rank", "rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"short rank", "rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"piece", "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"no king", "rnbq1bnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQ - 0 1"},
		{"two kings", "rnbqkbnr/pppppppp/8/8/8/4K3/PPPPPPPP/RNBQKBNR w kq - 0 1"},
		{"pawn on back rank", "rnbqkbnP/pppppppp/8/8/8/8/PPPPPPP1/RNBQKBNR w KQq - 0 1"},
		{"side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"castling letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkx - 0 1"},
		{"castling without rook", "rnbqkbn1/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"en passant rank", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e4 0 1"},
		{"en passant pawn", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq e3 0 1"},
		{"rule50", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1"},
		{"move number", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"},
		{"side not to move in check", "4k3/8/8/8/8/8/4r3/4K3 b - - 0 1"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var _, err = NewPositionFromFEN(test.fen)
			if !errors.Is(err, ErrMalformedPosition) {
				t.Errorf("got %v", err)
			}
		})
	}
}
