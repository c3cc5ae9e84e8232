package engine

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	. "github.com/ChizhovVadim/chesssearch/pkg/common"
)

// Evaluator scores a position from the side to move point of view.
type Evaluator interface {
	Evaluate(p *Position) int
}

type EvaluatorFunc func(p *Position) int

func (f EvaluatorFunc) Evaluate(p *Position) int {
	return f(p)
}

type Engine struct {
	Options     Options
	evalBuilder func() Evaluator
	timeManager *timeManager
	transTable  *transTable
	threads     []*thread
	pool        *workerPool
	progress    func(SearchInfo)
	mainLine    mainLine
	rootSide    int
	start       time.Time
	stop        atomic.Bool
}

type thread struct {
	engine    *Engine
	evaluator Evaluator
	position  *Position
	history   historyTable
	nodes     atomic.Int64
	rootPly   int
	rootDepth int
	split     *splitPoint
	stack     [stackSize]struct {
		moveList       MoveList
		mi             moveIterator
		quietsSearched [MaxMoves]Move
		pv             pv
		staticEval     int
		killer1        Move
		killer2        Move
	}
}

type pv struct {
	items [stackSize]Move
	size  int
}

type mainLine struct {
	moves []Move
	score int
	depth int
}

// NewEngine creates one evaluator per search thread with evalBuilder.
func NewEngine(evalBuilder func() Evaluator) *Engine {
	return &Engine{
		Options:     NewOptions(),
		evalBuilder: evalBuilder,
	}
}

func (e *Engine) Prepare() {
	var threads = Max(1, e.Options.Threads)
	if e.transTable == nil || e.transTable.Size() != e.Options.Hash {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = newTransTable(e.Options.Hash)
	}
	if len(e.threads) != threads {
		e.threads = make([]*thread, threads)
		for i := range e.threads {
			e.threads[i] = &thread{
				engine:    e,
				evaluator: e.evalBuilder(),
				position:  &Position{},
			}
		}
	}
}

// Search runs iterative deepening on a copy of searchParams.Position.
func (e *Engine) Search(ctx context.Context, searchParams SearchParams) SearchInfo {
	e.start = time.Now()
	e.Prepare()
	var p = searchParams.Position
	e.timeManager = newTimeManager(ctx, e.start, searchParams.Limits, p.Side)
	defer e.timeManager.Close()
	e.transTable.IncDate()
	e.stop.Store(false)
	e.rootSide = p.Side
	for _, t := range e.threads {
		t.position.CopyFrom(p)
		t.rootPly = p.Ply()
		t.nodes.Store(0)
		t.split = nil
		t.history.Clear()
		for h := range t.stack {
			t.stack[h].killer1 = MoveEmpty
			t.stack[h].killer2 = MoveEmpty
		}
	}
	e.progress = searchParams.Progress
	e.mainLine = mainLine{}
	e.iterativeDeepening()
	return e.currentSearchResult()
}

// Clear forgets everything learned in previous games.
func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
	for _, t := range e.threads {
		t.history.Clear()
	}
}

func (e *Engine) totalNodes() int64 {
	var result int64
	for _, t := range e.threads {
		result += t.nodes.Load()
	}
	return result
}

func (e *Engine) currentSearchResult() SearchInfo {
	return SearchInfo{
		Depth:    e.mainLine.depth,
		MainLine: e.mainLine.moves,
		Score:    newUciScore(e.mainLine.score),
		Value:    e.mainLine.score,
		Nodes:    e.totalNodes(),
		Time:     time.Since(e.start),
	}
}

func (e *Engine) onIterationComplete(t *thread, depth, score int) {
	const height = 0
	e.mainLine = mainLine{
		depth: depth,
		score: score,
		moves: t.stack[height].pv.toSlice(),
	}
	e.timeManager.OnIterationComplete(e.mainLine)
	e.Options.Logger.Debug().
		Int("depth", depth).
		Int("score", score).
		Int64("nodes", e.totalNodes()).
		Str("pv", MovesToString(e.mainLine.moves)).
		Msg("iteration complete")
	if e.progress != nil && e.totalNodes() >= int64(e.Options.ProgressMinNodes) {
		e.progress(e.currentSearchResult())
	}
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child.size > 0 {
		pv.size += child.size
		copy(pv.items[1:], child.items[:child.size])
	}
}

func (pv *pv) toSlice() []Move {
	var result = make([]Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}
