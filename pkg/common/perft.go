package common

// https://www.chessprogramming.org/Perft
func (p *Position) Perft(depth int) int {
	if depth == 0 {
		return 1
	}
	var result = 0
	var ml MoveList
	p.GenerateMoves(&ml)
	for i := 0; i < ml.Count; i++ {
		if p.MakeMove(ml.Items[i].Move) {
			if depth > 1 {
				result += p.Perft(depth - 1)
			} else {
				result++
			}
		}
		p.UnmakeMove()
	}
	return result
}

type PerftEntry struct {
	Move  Move
	Nodes int
}

// Divide returns perft(depth-1) for every legal root move.
func (p *Position) Divide(depth int) []PerftEntry {
	var result []PerftEntry
	for _, mv := range p.GenerateLegalMoves() {
		p.MakeMove(mv)
		result = append(result, PerftEntry{Move: mv, Nodes: p.Perft(depth - 1)})
		p.UnmakeMove()
	}
	return result
}
