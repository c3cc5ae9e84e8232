package engine

import (
	"errors"
	"sync"
	"sync/atomic"

	. "github.com/ChizhovVadim/chesssearch/pkg/common"
	"github.com/samber/lo"
	"lukechampine.com/frand"
)

// https://www.chessprogramming.org/Young_Brothers_Wait_Concept

var errSplitCutoff = errors.New("split point cutoff")

// splitPoint shares the remaining moves of a node with idle workers.
// Fields below mu are guarded by it.
type splitPoint struct {
	parent    *splitPoint
	position  *Position
	node      searchNode
	rootPly   int
	rootDepth int
	cutoff    atomic.Bool
	helpers   sync.WaitGroup

	mu            sync.Mutex
	mi            *moveIterator
	alpha         int
	best          int
	bestMove      Move
	pv            pv
	movesSearched int
	quietsSeen    int
	closed        bool
	aborted       error
}

type workerPool struct {
	mu          sync.Mutex
	cond        *sync.Cond
	splitPoints []*splitPoint
	quit        bool
	idle        atomic.Int32
}

func newWorkerPool() *workerPool {
	var p = &workerPool{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

func (p *workerPool) register(sp *splitPoint) {
	p.mu.Lock()
	p.splitPoints = append(p.splitPoints, sp)
	p.mu.Unlock()
	p.cond.Broadcast()
}

func (p *workerPool) unregister(sp *splitPoint) {
	p.mu.Lock()
	p.splitPoints = lo.Without(p.splitPoints, sp)
	p.mu.Unlock()
}

func (p *workerPool) shutdown() {
	p.mu.Lock()
	p.quit = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

// join blocks until an open split point accepts the caller. It returns nil after shutdown.
func (p *workerPool) join() *splitPoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idle.Add(1)
	defer p.idle.Add(-1)
	for !p.quit {
		var candidates = lo.Filter(p.splitPoints, func(sp *splitPoint, _ int) bool {
			return !sp.cutoff.Load()
		})
		frand.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		for _, sp := range candidates {
			if sp.tryJoin() {
				return sp
			}
		}
		p.cond.Wait()
	}
	return nil
}

func (sp *splitPoint) tryJoin() bool {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if sp.closed || sp.cutoff.Load() || sp.mi.Done() {
		return false
	}
	sp.helpers.Add(1)
	return true
}

func (t *thread) canSplit(depth int, mi *moveIterator) bool {
	var e = t.engine
	return e.pool != nil &&
		depth >= e.Options.SplitMinDepth &&
		e.pool.idle.Load() > 0 &&
		!mi.Done() &&
		!e.stop.Load()
}

// splitSearch searches the remaining moves of node together with idle workers.
func (t *thread) splitSearch(node *searchNode, mi *moveIterator,
	alpha, best int, bestMove Move, movesSearched, quietsSeen int) (int, Move, int) {

	var sp = t.newSplitPoint(node, mi, alpha, best, bestMove, movesSearched, quietsSeen)
	t.engine.pool.register(sp)
	t.runSplit(sp)
	t.stack[node.height].pv = sp.pv
	return sp.best, sp.bestMove, sp.alpha
}

func (t *thread) newSplitPoint(node *searchNode, mi *moveIterator,
	alpha, best int, bestMove Move, movesSearched, quietsSeen int) *splitPoint {
	return &splitPoint{
		parent:        t.split,
		position:      t.position.Clone(),
		node:          *node,
		rootPly:       t.rootPly,
		rootDepth:     t.rootDepth,
		mi:            mi,
		alpha:         alpha,
		best:          best,
		bestMove:      bestMove,
		pv:            t.stack[node.height].pv,
		movesSearched: movesSearched,
		quietsSeen:    quietsSeen,
	}
}

// runSplit works on sp as its master until it is exhausted or cut off.
// It panics with the helper's error when a helper gave up on a move.
func (t *thread) runSplit(sp *splitPoint) {
	var ply = t.position.Ply()
	var savedSplit = t.split
	t.split = sp

	func() {
		defer func() {
			if r := recover(); r != nil {
				if r == errSplitCutoff && sp.cutoff.Load() {
					t.position.UndoTo(ply)
					return
				}
				sp.cutoff.Store(true)
				t.finishSplit(sp, savedSplit)
				panic(r)
			}
		}()
		t.workOn(sp)
	}()

	t.finishSplit(sp, savedSplit)
	if sp.aborted != nil {
		panic(sp.aborted)
	}
}

// abort records that a helper left a move unsearched.
func (sp *splitPoint) abort(err error) {
	sp.mu.Lock()
	if sp.aborted == nil {
		sp.aborted = err
	}
	sp.mu.Unlock()
	sp.cutoff.Store(true)
}

func (t *thread) finishSplit(sp *splitPoint, savedSplit *splitPoint) {
	sp.mu.Lock()
	sp.closed = true
	sp.mu.Unlock()
	t.engine.pool.unregister(sp)
	sp.helpers.Wait()
	t.split = savedSplit
}

// workOn takes moves from sp until none are left or a cutoff is found.
func (t *thread) workOn(sp *splitPoint) {
	var node = &sp.node
	for {
		sp.mu.Lock()
		if sp.cutoff.Load() {
			sp.mu.Unlock()
			return
		}
		var move = sp.mi.Next()
		if move == MoveEmpty {
			sp.mu.Unlock()
			return
		}
		if !move.IsCaptureOrPromotion() {
			sp.quietsSeen++
		}
		var alpha, best, movesSearched, quietsSeen = sp.alpha, sp.best, sp.movesSearched, sp.quietsSeen
		sp.mu.Unlock()

		var score, searched = t.searchMove(node, move, alpha, best, movesSearched, quietsSeen)
		if !searched {
			continue
		}

		sp.mu.Lock()
		sp.movesSearched++
		if score > sp.best {
			sp.best = score
			sp.bestMove = move
		}
		if score > sp.alpha {
			sp.alpha = score
			sp.pv.assign(move, &t.stack[node.height+1].pv)
			if score >= node.beta {
				sp.cutoff.Store(true)
			}
		}
		sp.mu.Unlock()
	}
}

func (t *thread) helperLoop() {
	var pool = t.engine.pool
	for {
		var sp = pool.join()
		if sp == nil {
			return
		}
		t.helpAt(sp)
	}
}

func (t *thread) helpAt(sp *splitPoint) {
	defer sp.helpers.Done()
	defer func() {
		if r := recover(); r != nil {
			if r == errSplitCutoff {
				if !sp.cutoff.Load() {
					// an ancestor was cut off
					sp.abort(errSplitCutoff)
				}
				return
			}
			if r == errSearchTimeout {
				sp.abort(errSearchTimeout)
				return
			}
			if err, ok := r.(error); ok && errors.Is(err, ErrMoveListOverflow) {
				t.engine.Options.Logger.Warn().Err(err).Msg("helper aborted")
				sp.abort(err)
				return
			}
			panic(r)
		}
	}()
	t.position.CopyFrom(sp.position)
	t.rootPly = sp.rootPly
	t.rootDepth = sp.rootDepth
	t.split = sp
	t.workOn(sp)
}
