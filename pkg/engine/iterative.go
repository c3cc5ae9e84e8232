package engine

import (
	"errors"

	. "github.com/ChizhovVadim/chesssearch/pkg/common"
	"golang.org/x/sync/errgroup"
)

var errSearchTimeout = errors.New("search timeout")

func (e *Engine) iterativeDeepening() {
	var t = e.threads[0]
	var rootMoves = t.genRootMoves()
	if len(rootMoves) == 0 {
		var value = t.drawValue()
		if t.position.IsCheck() {
			value = lossIn(0)
		}
		e.mainLine = mainLine{score: value}
		return
	}
	e.mainLine = mainLine{
		depth: 0,
		score: rootMoves[0].Key,
		moves: []Move{rootMoves[0].Move},
	}
	if len(rootMoves) == 1 {
		return
	}

	if len(e.threads) > 1 {
		var g errgroup.Group
		e.pool = newWorkerPool()
		for _, helper := range e.threads[1:] {
			var helper = helper
			g.Go(func() error {
				helper.helperLoop()
				return nil
			})
		}
		defer func() {
			e.stop.Store(true)
			e.pool.shutdown()
			g.Wait()
			e.pool = nil
		}()
	}

	for depth := 1; depth <= maxHeight; depth++ {
		var score, err = t.searchDepth(depth, e.mainLine.score)
		if err != nil {
			if err != errSearchTimeout {
				e.Options.Logger.Warn().Err(err).Int("depth", depth).Msg("search aborted")
			}
			break
		}
		e.onIterationComplete(t, depth, score)
		if e.timeManager.IsDone() {
			break
		}
	}
}

// genRootMoves returns legal root moves ordered by a static one ply evaluation.
func (t *thread) genRootMoves() []OrderedMove {
	var p = t.position
	var ml = &t.stack[0].moveList
	p.GenerateMoves(ml)
	var result []OrderedMove
	for _, om := range ml.Moves() {
		if p.MakeMove(om.Move) {
			result = append(result, OrderedMove{Move: om.Move, Key: -t.evaluate()})
		}
		p.UnmakeMove()
	}
	sortMoves(result)
	return result
}

func (t *thread) searchDepth(depth, prevScore int) (score int, err error) {
	defer func() {
		if r := recover(); r != nil {
			t.position.UndoTo(t.rootPly)
			if r == errSearchTimeout {
				err = errSearchTimeout
				return
			}
			if rerr, ok := r.(error); ok && errors.Is(rerr, ErrMoveListOverflow) {
				err = rerr
				return
			}
			panic(r)
		}
	}()
	t.rootDepth = depth
	return t.aspirationWindow(depth, prevScore), nil
}

func (t *thread) aspirationWindow(depth, prevScore int) int {
	const height = 0
	if !t.engine.Options.AspirationWindows ||
		depth < 5 || prevScore <= valueLoss || prevScore >= valueWin {
		return t.alphaBeta(-valueInfinity, valueInfinity, depth, height)
	}
	var delta = 25
	var alpha = Max(-valueInfinity, prevScore-delta)
	var beta = Min(valueInfinity, prevScore+delta)
	for {
		var score = t.alphaBeta(alpha, beta, depth, height)
		if score <= alpha {
			alpha = Max(-valueInfinity, score-delta)
		} else if score >= beta {
			beta = Min(valueInfinity, score+delta)
		} else {
			return score
		}
		t.engine.Options.Logger.Debug().
			Int("depth", depth).
			Int("score", score).
			Int("alpha", alpha).
			Int("beta", beta).
			Msg("aspiration re-search")
		delta *= 2
	}
}
