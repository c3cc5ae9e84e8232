package engine

import . "github.com/ChizhovVadim/chesssearch/pkg/common"

const historyMax = 1 << 14

// historyTable is keyed by side, from and to.
type historyTable [2][64][64]int16

func (h *historyTable) Read(side int, m Move) int {
	return int(h[side][m.From()][m.To()])
}

// Update rewards bestMove and penalizes the quiets searched before it.
func (h *historyTable) Update(side int, quietsSearched []Move, bestMove Move, depth int) {
	var bonus = Min(depth*depth, 400)
	for _, m := range quietsSearched {
		var good = m == bestMove
		updateHistory(&h[side][m.From()][m.To()], bonus, good)
		if good {
			break
		}
	}
}

// Exponential moving average
func updateHistory(v *int16, bonus int, good bool) {
	var newVal int
	if good {
		newVal = historyMax
	} else {
		newVal = -historyMax
	}
	*v += int16((newVal - int(*v)) * bonus / 512)
}

func (h *historyTable) Clear() {
	*h = historyTable{}
}
