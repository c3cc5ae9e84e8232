package engine

import (
	"math"

	"github.com/ChizhovVadim/chesssearch/pkg/common"
	"github.com/rs/zerolog"
)

type Options struct {
	Hash             int
	Threads          int
	ProgressMinNodes int
	// DrawValue is the score of a draw for the side to move at the root.
	DrawValue int
	// SplitMinDepth is the smallest remaining depth at which a node is shared with idle workers.
	SplitMinDepth int

	AspirationWindows bool
	ReverseFutility   bool
	NullMovePruning   bool
	Lmp               bool
	Futility          bool
	See               bool
	Lmr               bool
	CheckExt          bool
	Quiescence        bool

	Logger     zerolog.Logger
	reductions [64][64]int
}

func NewOptions() Options {
	var result = Options{
		Hash:              16,
		Threads:           1,
		ProgressMinNodes:  1_000_000,
		SplitMinDepth:     4,
		AspirationWindows: true,
		ReverseFutility:   true,
		NullMovePruning:   true,
		Lmp:               true,
		Futility:          true,
		See:               true,
		Lmr:               true,
		CheckExt:          true,
		Quiescence:        true,
		Logger:            zerolog.Nop(),
	}
	result.InitLmr(LmrMult)
	return result
}

// DisableForwardPruning turns the search into plain alpha-beta.
func (o *Options) DisableForwardPruning() {
	o.AspirationWindows = false
	o.ReverseFutility = false
	o.NullMovePruning = false
	o.Lmp = false
	o.Futility = false
	o.See = false
	o.Lmr = false
}

func (o *Options) lmr(d, m int) int {
	return o.reductions[common.Min(d, 63)][common.Min(m, 63)]
}

func (o *Options) InitLmr(f func(d, m float64) float64) {
	initLmr(&o.reductions, f)
}

func initLmr(reductions *[64][64]int,
	f func(d, m float64) float64) {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			var r = f(float64(d), float64(m))
			reductions[d][m] = int(r)
		}
	}
}

func LmrMult(d, m float64) float64 {
	return lirp(math.Log(d)*math.Log(m), math.Log(5)*math.Log(22), math.Log(63)*math.Log(63), 3, 8)
}

func lirp(x, x1, x2, y1, y2 float64) float64 {
	return y1 + (y2-y1)*(x-x1)/(x2-x1)
}
