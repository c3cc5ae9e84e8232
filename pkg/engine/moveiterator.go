package engine

import . "github.com/ChizhovVadim/chesssearch/pkg/common"

const sortTableKeyImportant = 100000

type moveIteratorQS struct {
	position *Position
	ml       *MoveList
	index    int
}

func (mi *moveIteratorQS) Init() {
	if mi.position.IsCheck() {
		mi.position.GenerateMoves(mi.ml)
	} else {
		mi.position.GenerateCaptures(mi.ml)
	}

	var moves = mi.ml.Moves()
	for i := range moves {
		var m = moves[i].Move
		if m.IsCaptureOrPromotion() {
			moves[i].Key = 29000 + mvvlva(m)
		} else {
			moves[i].Key = 0
		}
	}

	sortMoves(moves)
	mi.index = 0
}

func (mi *moveIteratorQS) Next() Move {
	if mi.index >= mi.ml.Count {
		return MoveEmpty
	}
	var m = mi.ml.Items[mi.index].Move
	mi.index++
	return m
}

// moveIterator orders: trans move, good captures, killers, quiets by history, bad captures.
type moveIterator struct {
	position  *Position
	ml        *MoveList
	history   *historyTable
	transMove Move
	killer1   Move
	killer2   Move
	index     int
}

func (mi *moveIterator) Init() {
	mi.position.GenerateMoves(mi.ml)
	mi.index = 0

	var side = mi.position.Side
	var moves = mi.ml.Moves()
	for i := range moves {
		var m = moves[i].Move
		var score int
		if m == mi.transMove {
			score = sortTableKeyImportant + 2000
		} else if m.IsCaptureOrPromotion() {
			if seeGEZero(mi.position, m) {
				score = sortTableKeyImportant + 1000 + mvvlva(m)
			} else {
				score = -sortTableKeyImportant + mvvlva(m)
			}
		} else if m == mi.killer1 {
			score = sortTableKeyImportant + 1
		} else if m == mi.killer2 {
			score = sortTableKeyImportant
		} else {
			score = mi.history.Read(side, m)
		}
		moves[i].Key = score
	}
}

func (mi *moveIterator) Next() Move {
	if mi.index >= mi.ml.Count {
		return MoveEmpty
	}
	const SortMovesIndex = 1
	if mi.index <= SortMovesIndex {
		var rest = mi.ml.Items[mi.index:mi.ml.Count]
		if mi.index == SortMovesIndex {
			sortMoves(rest)
		} else {
			moveToTop(rest)
		}
	}
	var m = mi.ml.Items[mi.index].Move
	mi.index++
	return m
}

func (mi *moveIterator) Done() bool {
	return mi.index >= mi.ml.Count
}

var sortPieceValues = [...]int{Empty: 0, Pawn: 1, Knight: 2, Bishop: 3, Rook: 4, Queen: 5, King: 6}

func mvvlva(move Move) int {
	return 8*(sortPieceValues[move.CapturedPiece()]+
		sortPieceValues[move.Promotion()]) -
		sortPieceValues[move.MovingPiece()]
}

// stable insertion sort, descending
func sortMoves(moves []OrderedMove) {
	for i := 1; i < len(moves); i++ {
		j, t := i, moves[i]
		for ; j > 0 && moves[j-1].Key < t.Key; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = t
	}
}

func isSorted(moves []OrderedMove) bool {
	for i := 1; i < len(moves); i++ {
		if moves[i-1].Key < moves[i].Key {
			return false
		}
	}
	return true
}

func moveToTop(ml []OrderedMove) {
	var bestIndex = 0
	for i := 1; i < len(ml); i++ {
		if ml[i].Key > ml[bestIndex].Key {
			bestIndex = i
		}
	}
	if bestIndex != 0 {
		ml[0], ml[bestIndex] = ml[bestIndex], ml[0]
	}
}
