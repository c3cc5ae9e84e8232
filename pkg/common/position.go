package common

import "fmt"

type Position struct {
	Pieces       [PIECE_NB]uint64
	Colours      [2]uint64
	Side         int
	CastleRights int
	EpSquare     int
	Rule50       int
	MoveNumber   int
	Key          uint64
	PawnKey      uint64
	Checkers     uint64
	// Material is white minus black.
	Material int
	NonPawn  [2]int
	kings    [2]int
	board    [64]int
	history  []undo
}

// undo restores the state a move cannot reconstruct by itself.
type undo struct {
	move         Move
	castleRights int
	epSquare     int
	rule50       int
	checkers     uint64
	key          uint64
	pawnKey      uint64
}

type castleRule struct {
	right            int
	side             int
	kingFrom, kingTo int
	rookFrom, rookTo int
	empty            uint64
	safe             [2]int
}

var castleRules = [...]castleRule{
	{WhiteKingSide, SideWhite, SquareE1, SquareG1, SquareH1, SquareF1,
		squareSet(SquareF1, SquareG1), [2]int{SquareE1, SquareF1}},
	{WhiteQueenSide, SideWhite, SquareE1, SquareC1, SquareA1, SquareD1,
		squareSet(SquareB1, SquareC1, SquareD1), [2]int{SquareE1, SquareD1}},
	{BlackKingSide, SideBlack, SquareE8, SquareG8, SquareH8, SquareF8,
		squareSet(SquareF8, SquareG8), [2]int{SquareE8, SquareF8}},
	{BlackQueenSide, SideBlack, SquareE8, SquareC8, SquareA8, SquareD8,
		squareSet(SquareB8, SquareC8, SquareD8), [2]int{SquareE8, SquareD8}},
}

var castleMask [64]int

func squareSet(squares ...int) uint64 {
	var result uint64
	for _, sq := range squares {
		result |= uint64(1) << uint(sq)
	}
	return result
}

func init() {
	initKeys()
	for i := range castleMask {
		castleMask[i] = AllCastleRights
	}
	for _, cr := range castleRules {
		castleMask[cr.kingFrom] &^= cr.right
		castleMask[cr.rookFrom] &^= cr.right
	}
}

func newPosition() *Position {
	return &Position{
		EpSquare:   SquareNone,
		MoveNumber: 1,
		history:    make([]undo, 0, 64),
	}
}

func makeColouredPiece(piece, side int) int {
	return piece | side<<3
}

// PieceOn returns Empty for an empty square.
func (p *Position) PieceOn(sq int) (piece, side int) {
	var cp = p.board[sq]
	return cp & 7, cp >> 3
}

func (p *Position) WhatPiece(sq int) int {
	return p.board[sq] & 7
}

func (p *Position) PiecesByColor(side int) uint64 {
	return p.Colours[side]
}

func (p *Position) AllPieces() uint64 {
	return p.Colours[SideWhite] | p.Colours[SideBlack]
}

func (p *Position) KingSquare(side int) int {
	return p.kings[side]
}

func (p *Position) IsCheck() bool {
	return p.Checkers != 0
}

// Ply is the number of moves made since the position was created.
func (p *Position) Ply() int {
	return len(p.history)
}

func (p *Position) LastMove() Move {
	if len(p.history) == 0 {
		return MoveEmpty
	}
	return p.history[len(p.history)-1].move
}

func (p *Position) addPiece(piece, side, sq int) {
	var b = SquareMask[sq]
	p.Pieces[piece] |= b
	p.Colours[side] |= b
	p.board[sq] = makeColouredPiece(piece, side)
	var key = PieceSquareKey(piece, side, sq)
	p.Key ^= key
	switch piece {
	case Pawn:
		p.PawnKey ^= key
	case King:
		p.kings[side] = sq
	default:
		p.NonPawn[side] += PieceValues[piece]
	}
	p.Material += let(side == SideWhite, PieceValues[piece], -PieceValues[piece])
}

func (p *Position) removePiece(piece, side, sq int) {
	var b = SquareMask[sq]
	p.Pieces[piece] &^= b
	p.Colours[side] &^= b
	p.board[sq] = Empty
	var key = PieceSquareKey(piece, side, sq)
	p.Key ^= key
	switch piece {
	case Pawn:
		p.PawnKey ^= key
	case King:
	default:
		p.NonPawn[side] -= PieceValues[piece]
	}
	p.Material -= let(side == SideWhite, PieceValues[piece], -PieceValues[piece])
}

func (p *Position) movePiece(piece, side, from, to int) {
	var b = SquareMask[from] ^ SquareMask[to]
	p.Pieces[piece] ^= b
	p.Colours[side] ^= b
	p.board[from] = Empty
	p.board[to] = makeColouredPiece(piece, side)
	var key = PieceSquareKey(piece, side, from) ^ PieceSquareKey(piece, side, to)
	p.Key ^= key
	switch piece {
	case Pawn:
		p.PawnKey ^= key
	case King:
		p.kings[side] = to
	}
}

func (p *Position) pushUndo(move Move) {
	p.history = append(p.history, undo{
		move:         move,
		castleRights: p.CastleRights,
		epSquare:     p.EpSquare,
		rule50:       p.Rule50,
		checkers:     p.Checkers,
		key:          p.Key,
		pawnKey:      p.PawnKey,
	})
}

func (p *Position) popUndo() undo {
	var n = len(p.history)
	if n == 0 {
		panic("common: unmake without make")
	}
	var u = p.history[n-1]
	p.history = p.history[:n-1]
	return u
}

func capturedSquare(move Move) int {
	if move.Flag() == FlagEnPassant {
		return move.To() ^ 8
	}
	return move.To()
}

// MakeMove plays a pseudo-legal move and reports whether the mover's king is safe.
// UnmakeMove must be called in both cases.
func (p *Position) MakeMove(move Move) bool {
	p.pushUndo(move)

	var us = p.Side
	var them = us ^ 1
	var from = move.From()
	var to = move.To()
	var movingPiece = move.MovingPiece()
	var capturedPiece = move.CapturedPiece()

	p.Key ^= sideKey
	if p.EpSquare != SquareNone {
		p.Key ^= enpassantKey[File(p.EpSquare)]
		p.EpSquare = SquareNone
	}

	var cr = p.CastleRights & castleMask[from] & castleMask[to]
	p.Key ^= castlingKey[cr^p.CastleRights]
	p.CastleRights = cr

	if movingPiece == Pawn || capturedPiece != Empty {
		p.Rule50 = 0
	} else {
		p.Rule50++
	}

	if capturedPiece != Empty {
		p.removePiece(capturedPiece, them, capturedSquare(move))
	}
	p.movePiece(movingPiece, us, from, to)

	switch move.Flag() {
	case FlagDoublePush:
		p.EpSquare = (from + to) / 2
		p.Key ^= enpassantKey[File(p.EpSquare)]
	case FlagCastle:
		var rule = findCastleRule(to)
		p.movePiece(Rook, us, rule.rookFrom, rule.rookTo)
	}
	if promotion := move.Promotion(); promotion != Empty {
		p.removePiece(Pawn, us, to)
		p.addPiece(promotion, us, to)
	}

	p.Side = them
	if us == SideBlack {
		p.MoveNumber++
	}

	if p.IsAttacked(p.kings[us], them) {
		return false
	}
	p.Checkers = p.AttackersTo(p.kings[them], p.AllPieces()) & p.Colours[us]
	return true
}

func (p *Position) UnmakeMove() {
	var u = p.popUndo()
	var move = u.move
	if move == MoveEmpty {
		panic("common: UnmakeMove after null move")
	}

	p.Side ^= 1
	if p.Side == SideBlack {
		p.MoveNumber--
	}
	var us = p.Side
	var from = move.From()
	var to = move.To()

	if promotion := move.Promotion(); promotion != Empty {
		p.removePiece(promotion, us, to)
		p.addPiece(Pawn, us, to)
	}
	if move.Flag() == FlagCastle {
		var rule = findCastleRule(to)
		p.movePiece(Rook, us, rule.rookTo, rule.rookFrom)
	}
	p.movePiece(move.MovingPiece(), us, to, from)
	if captured := move.CapturedPiece(); captured != Empty {
		p.addPiece(captured, us^1, capturedSquare(move))
	}

	p.CastleRights = u.castleRights
	p.EpSquare = u.epSquare
	p.Rule50 = u.rule50
	p.Checkers = u.checkers
	p.Key = u.key
	p.PawnKey = u.pawnKey
}

// MakeNullMove must not be called when in check.
func (p *Position) MakeNullMove() {
	p.pushUndo(MoveEmpty)
	p.Key ^= sideKey
	if p.EpSquare != SquareNone {
		p.Key ^= enpassantKey[File(p.EpSquare)]
		p.EpSquare = SquareNone
	}
	p.Rule50++
	if p.Side == SideBlack {
		p.MoveNumber++
	}
	p.Side ^= 1
	p.Checkers = 0
}

func (p *Position) UnmakeNullMove() {
	var u = p.popUndo()
	if u.move != MoveEmpty {
		panic("common: UnmakeNullMove after move")
	}
	p.Side ^= 1
	if p.Side == SideBlack {
		p.MoveNumber--
	}
	p.EpSquare = u.epSquare
	p.Rule50 = u.rule50
	p.Checkers = u.checkers
	p.Key = u.key
}

// UndoTo unmakes moves until Ply() == ply.
func (p *Position) UndoTo(ply int) {
	for len(p.history) > ply {
		if p.LastMove() == MoveEmpty {
			p.UnmakeNullMove()
		} else {
			p.UnmakeMove()
		}
	}
}

func findCastleRule(kingTo int) *castleRule {
	for i := range castleRules {
		if castleRules[i].kingTo == kingTo {
			return &castleRules[i]
		}
	}
	panic(fmt.Errorf("no castle rule for %v", SquareName(kingTo)))
}

func (p *Position) IsAttacked(sq, bySide int) bool {
	var enemy = p.Colours[bySide]
	if (PawnAttacks(sq, bySide^1) & p.Pieces[Pawn] & enemy) != 0 {
		return true
	}
	if (KnightAttacks[sq] & p.Pieces[Knight] & enemy) != 0 {
		return true
	}
	if (KingAttacks[sq] & p.Pieces[King] & enemy) != 0 {
		return true
	}
	var occ = p.AllPieces()
	if (BishopAttacks(sq, occ) & (p.Pieces[Bishop] | p.Pieces[Queen]) & enemy) != 0 {
		return true
	}
	if (RookAttacks(sq, occ) & (p.Pieces[Rook] | p.Pieces[Queen]) & enemy) != 0 {
		return true
	}
	return false
}

// AttackersTo returns attackers of both sides given occupancy occ.
func (p *Position) AttackersTo(sq int, occ uint64) uint64 {
	return (PawnAttacks(sq, SideBlack) & p.Pieces[Pawn] & p.Colours[SideWhite]) |
		(PawnAttacks(sq, SideWhite) & p.Pieces[Pawn] & p.Colours[SideBlack]) |
		(KnightAttacks[sq] & p.Pieces[Knight]) |
		(BishopAttacks(sq, occ) & (p.Pieces[Bishop] | p.Pieces[Queen])) |
		(RookAttacks(sq, occ) & (p.Pieces[Rook] | p.Pieces[Queen])) |
		(KingAttacks[sq] & p.Pieces[King])
}

func (p *Position) computeCheckers() uint64 {
	return p.AttackersTo(p.kings[p.Side], p.AllPieces()) & p.Colours[p.Side^1]
}

// IsRepetition reports a repeated position since the last irreversible move.
// Positions at or after rootPly need one occurrence, earlier ones two.
func (p *Position) IsRepetition(rootPly int) bool {
	if p.Rule50 == 0 || p.LastMove() == MoveEmpty {
		return false
	}
	var n = len(p.history)
	var count = 0
	for i := n - 1; i >= 0 && i >= n-p.Rule50; i-- {
		if p.history[i].move == MoveEmpty {
			break
		}
		if p.history[i].key == p.Key {
			if i >= rootPly {
				return true
			}
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

func (p *Position) IsInsufficientMaterial() bool {
	return (p.Pieces[Pawn]|p.Pieces[Rook]|p.Pieces[Queen]) == 0 &&
		!MoreThanOne(p.Pieces[Knight]|p.Pieces[Bishop])
}

// ComputeMaterial recounts Material and NonPawn from the board.
func (p *Position) ComputeMaterial() (material int, nonPawn [2]int) {
	for piece := Pawn; piece <= King; piece++ {
		var w = PopCount(p.Pieces[piece] & p.Colours[SideWhite])
		var b = PopCount(p.Pieces[piece] & p.Colours[SideBlack])
		material += (w - b) * PieceValues[piece]
		if piece != Pawn && piece != King {
			nonPawn[SideWhite] += w * PieceValues[piece]
			nonPawn[SideBlack] += b * PieceValues[piece]
		}
	}
	return
}

func (p *Position) CopyFrom(src *Position) {
	var history = append(p.history[:0], src.history...)
	*p = *src
	p.history = history
}

func (p *Position) Clone() *Position {
	var result = &Position{}
	result.history = make([]undo, 0, cap(p.history))
	result.CopyFrom(p)
	return result
}

func MirrorPosition(p *Position) *Position {
	var result = newPosition()
	for sq := 0; sq < 64; sq++ {
		var piece, side = p.PieceOn(sq)
		if piece != Empty {
			result.addPiece(piece, side^1, FlipSquare(sq))
		}
	}
	result.Side = p.Side ^ 1
	result.CastleRights = (p.CastleRights >> 2) | ((p.CastleRights & 3) << 2)
	if p.EpSquare != SquareNone {
		result.EpSquare = FlipSquare(p.EpSquare)
	}
	result.Rule50 = p.Rule50
	result.MoveNumber = p.MoveNumber
	result.Key = result.ComputeKey()
	result.Checkers = result.computeCheckers()
	return result
}
