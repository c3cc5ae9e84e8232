package engine

import (
	"context"
	"testing"
	"time"

	. "github.com/ChizhovVadim/chesssearch/pkg/common"
)

type splitFixture struct {
	engine *Engine
	master *thread
	helper *thread
	node   searchNode
}

func newSplitFixture(t *testing.T, fen string, depth int) *splitFixture {
	var e = newTestEngine(func(o *Options) {
		o.Threads = 2
	})
	var p = mustParse(t, fen)
	e.Prepare()
	e.start = time.Now()
	e.timeManager = newTimeManager(context.Background(), e.start, LimitsType{}, p.Side)
	t.Cleanup(e.timeManager.Close)
	e.pool = newWorkerPool()
	e.rootSide = p.Side
	for _, th := range e.threads {
		th.position.CopyFrom(p)
		th.rootPly = p.Ply()
		th.rootDepth = depth
	}
	return &splitFixture{
		engine: e,
		master: e.threads[0],
		helper: e.threads[1],
		node: searchNode{
			depth:    depth,
			beta:     valueInfinity,
			rootNode: true,
			pvNode:   true,
			lmp:      100,
		},
	}
}

func (f *splitFixture) newSplitPoint(parent *splitPoint) *splitPoint {
	var master = f.master
	var mi = &master.stack[0].mi
	*mi = moveIterator{
		position: master.position,
		ml:       &master.stack[0].moveList,
		history:  &master.history,
	}
	mi.Init()
	master.split = parent
	var sp = master.newSplitPoint(&f.node, mi, -valueInfinity, -valueInfinity, MoveEmpty, 0, 0)
	master.split = nil
	return sp
}

func runSplitRecover(th *thread, sp *splitPoint) (r interface{}) {
	defer func() {
		r = recover()
	}()
	th.runSplit(sp)
	return nil
}

func TestSplitPointCompletes(t *testing.T) {
	const fen = "4k3/8/8/8/8/8/8/R3K3 w - - 0 1"
	var f = newSplitFixture(t, fen, 1)
	var sp = f.newSplitPoint(nil)
	if !sp.tryJoin() {
		t.Fatal("split point refused a helper")
	}
	f.helper.helpAt(sp)
	if r := runSplitRecover(f.master, sp); r != nil {
		t.Fatalf("runSplit panicked: %v", r)
	}
	var legal = len(mustParse(t, fen).GenerateLegalMoves())
	if sp.movesSearched != legal || sp.aborted != nil {
		t.Errorf("searched %v of %v moves, aborted %v", sp.movesSearched, legal, sp.aborted)
	}
	if f.master.split != nil {
		t.Error("split chain not restored")
	}
	if f.master.position.String() != fen {
		t.Errorf("position changed: %v", f.master.position)
	}
}

func TestSplitPointHelperAbort(t *testing.T) {
	const fen = "4k3/8/8/8/8/8/8/R3K3 w - - 0 1"

	t.Run("timeout", func(t *testing.T) {
		var f = newSplitFixture(t, fen, 4)
		var sp = f.newSplitPoint(nil)
		if !sp.tryJoin() {
			t.Fatal("split point refused a helper")
		}
		f.engine.stop.Store(true)
		f.helper.nodes.Store(255)
		f.helper.helpAt(sp)
		f.engine.stop.Store(false)

		if !sp.cutoff.Load() || sp.aborted != errSearchTimeout {
			t.Fatalf("cutoff %v aborted %v", sp.cutoff.Load(), sp.aborted)
		}
		if r := runSplitRecover(f.master, sp); r != errSearchTimeout {
			t.Errorf("runSplit: %v", r)
		}
		if f.master.split != nil {
			t.Error("split chain not restored")
		}
	})

	t.Run("ancestor cutoff", func(t *testing.T) {
		var f = newSplitFixture(t, fen, 4)
		var parent = f.newSplitPoint(nil)
		parent.cutoff.Store(true)
		var sp = f.newSplitPoint(parent)
		if !sp.tryJoin() {
			t.Fatal("split point refused a helper")
		}
		f.helper.nodes.Store(255)
		f.helper.helpAt(sp)

		if sp.aborted != errSplitCutoff {
			t.Fatalf("aborted %v", sp.aborted)
		}
		f.master.split = parent
		if r := runSplitRecover(f.master, sp); r != errSplitCutoff {
			t.Errorf("runSplit: %v", r)
		}
		if f.master.split != parent {
			t.Error("split chain not restored")
		}
	})
}

func TestSplitPointOwnCutoffIsResult(t *testing.T) {
	const fen = "4k3/8/8/8/8/8/8/R3K3 w - - 0 1"
	var f = newSplitFixture(t, fen, 1)
	f.node.beta = -valueWin
	var sp = f.newSplitPoint(nil)
	if r := runSplitRecover(f.master, sp); r != nil {
		t.Fatalf("runSplit panicked: %v", r)
	}
	if !sp.cutoff.Load() || sp.aborted != nil || sp.movesSearched != 1 {
		t.Errorf("cutoff %v aborted %v searched %v", sp.cutoff.Load(), sp.aborted, sp.movesSearched)
	}
	if sp.best < f.node.beta || sp.bestMove == MoveEmpty {
		t.Errorf("best %v %v", sp.best, sp.bestMove)
	}
}
