package common

type OrderedMove struct {
	Move Move
	Key  int
}

type MoveList struct {
	Items [MaxMoves]OrderedMove
	Count int
}

func (ml *MoveList) Clear() {
	ml.Count = 0
}

func (ml *MoveList) Add(mv Move) {
	if ml.Count >= MaxMoves {
		panic(ErrMoveListOverflow)
	}
	ml.Items[ml.Count] = OrderedMove{Move: mv}
	ml.Count++
}

func (ml *MoveList) Moves() []OrderedMove {
	return ml.Items[:ml.Count]
}

func (ml *MoveList) Contains(mv Move) bool {
	for i := 0; i < ml.Count; i++ {
		if ml.Items[i].Move == mv {
			return true
		}
	}
	return false
}
