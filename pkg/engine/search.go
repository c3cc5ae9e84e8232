package engine

import (
	. "github.com/ChizhovVadim/chesssearch/pkg/common"
)

const pawnValue = 100

// searchNode is the part of a node state needed to search one of its moves.
// It is shared with the helpers of a split point.
type searchNode struct {
	depth      int
	height     int
	beta       int
	rootNode   bool
	pvNode     bool
	isCheck    bool
	improving  bool
	staticEval int
	killer1    Move
	killer2    Move
	lmp        int
}

// main search method
func (t *thread) alphaBeta(alpha, beta, depth, height int) int {
	var options = &t.engine.Options
	if depth <= 0 {
		if !options.Quiescence {
			return t.leafValue(height)
		}
		return t.quiescence(alpha, beta, height)
	}
	t.clearPV(height)

	var rootNode = height == 0
	var pvNode = beta != alpha+1
	var position = t.position
	var isCheck = position.IsCheck()

	if !rootNode {
		if height >= maxHeight {
			return t.evaluate()
		}
		if t.isRepeat() || isDraw(position) {
			return t.drawValue()
		}
		// mate distance pruning
		if winIn(height+1) <= alpha {
			return alpha
		}
		if lossIn(height+2) >= beta && !isCheck {
			return beta
		}
	}

	// transposition table
	var ttDepth, ttValue, ttBound, ttMove, ttHit = t.engine.transTable.Read(position.Key)
	if ttHit {
		ttValue = valueFromTT(ttValue, height)
		if ttDepth >= depth && !pvNode && !rootNode {
			if ttValue >= beta && (ttBound&boundLower) != 0 {
				if ttMove != MoveEmpty && !ttMove.IsCaptureOrPromotion() {
					t.updateKiller(ttMove, height)
				}
				return ttValue
			}
			if ttValue <= alpha && (ttBound&boundUpper) != 0 {
				return ttValue
			}
		}
	}
	if rootNode && len(t.engine.mainLine.moves) != 0 {
		ttMove = t.engine.mainLine.moves[0]
	}

	var staticEval = t.evaluate()
	t.stack[height].staticEval = staticEval
	var improving = height < 2 || staticEval > t.stack[height-2].staticEval

	if height+2 <= maxHeight {
		t.stack[height+2].killer1 = MoveEmpty
		t.stack[height+2].killer2 = MoveEmpty
	}

	if !rootNode && !pvNode && !isCheck {

		// reverse futility pruning
		if options.ReverseFutility && depth <= 8 {
			var score = staticEval - pawnValue*depth
			if score >= beta {
				return staticEval
			}
		}

		// null-move pruning
		if options.NullMovePruning && depth >= 2 &&
			position.LastMove() != MoveEmpty &&
			beta < valueWin &&
			!(ttHit && ttValue < beta && (ttBound&boundUpper) != 0) &&
			!isLateEndgame(position, position.Side) &&
			staticEval >= beta {
			var reduction = 4 + depth/6 + Min(2, (staticEval-beta)/200)
			t.makeNullMove()
			var score = -t.alphaBeta(-beta, -(beta - 1), depth-reduction, height+1)
			t.unmakeNullMove()
			if score >= beta {
				if score >= valueWin {
					score = beta
				}
				return score
			}
		}
	}

	var node = searchNode{
		depth:      depth,
		height:     height,
		beta:       beta,
		rootNode:   rootNode,
		pvNode:     pvNode,
		isCheck:    isCheck,
		improving:  improving,
		staticEval: staticEval,
		killer1:    t.stack[height].killer1,
		killer2:    t.stack[height].killer2,
		lmp:        5 + (depth-1)*depth,
	}
	if !improving {
		node.lmp /= 2
	}

	var mi = &t.stack[height].mi
	*mi = moveIterator{
		position:  position,
		ml:        &t.stack[height].moveList,
		history:   &t.history,
		transMove: ttMove,
		killer1:   node.killer1,
		killer2:   node.killer2,
	}
	mi.Init()

	var movesSearched = 0
	var quietsSeen = 0
	var quietsSearched = t.stack[height].quietsSearched[:0]
	var bestMove Move
	var best = -valueInfinity
	var oldAlpha = alpha

	for {
		var move = mi.Next()
		if move == MoveEmpty {
			break
		}
		if !move.IsCaptureOrPromotion() {
			quietsSeen++
		}
		var score, searched = t.searchMove(&node, move, alpha, best, movesSearched, quietsSeen)
		if !searched {
			continue
		}
		movesSearched++
		if !move.IsCaptureOrPromotion() {
			quietsSearched = append(quietsSearched, move)
		}

		if score > best {
			best = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}

		if t.canSplit(depth, mi) {
			best, bestMove, alpha = t.splitSearch(&node, mi, alpha, best, bestMove, movesSearched, quietsSeen)
			break
		}
	}

	if movesSearched == 0 {
		if isCheck {
			return lossIn(height)
		}
		return t.drawValue()
	}

	if best >= beta && !bestMove.IsCaptureOrPromotion() {
		t.history.Update(position.Side, quietsSearched, bestMove, depth)
		t.updateKiller(bestMove, height)
	}

	ttBound = 0
	if best > oldAlpha {
		ttBound |= boundLower
	}
	if best < beta {
		ttBound |= boundUpper
	}
	if !(rootNode && ttBound == boundUpper) {
		t.engine.transTable.Update(position.Key, depth, valueToTT(best, height), ttBound, bestMove)
	}

	return best
}

// searchMove searches one move of node. It reports false when the move is illegal or pruned.
// movesSearched counts the legal moves of node searched so far, quietsSeen the quiet moves tried including move.
func (t *thread) searchMove(node *searchNode, move Move, alpha, best, movesSearched, quietsSeen int) (int, bool) {
	var options = &t.engine.Options
	var position = t.position
	var depth = node.depth
	var height = node.height
	var beta = node.beta
	var isNoisy = move.IsCaptureOrPromotion()
	var isKiller = move == node.killer1 || move == node.killer2

	if depth <= 8 && best > valueLoss && movesSearched > 0 && !node.isCheck && !node.rootNode {
		// late-move pruning
		if options.Lmp && !(isNoisy || isKiller) && quietsSeen > node.lmp {
			return 0, false
		}

		// futility pruning
		if options.Futility && !(isNoisy || isKiller) &&
			node.staticEval+100+pawnValue*depth <= alpha {
			return 0, false
		}

		// SEE pruning
		if options.See {
			var seeMargin int
			if isNoisy {
				seeMargin = Max(depth, (node.staticEval+pawnValue-alpha)/pawnValue)
			} else {
				seeMargin = depth / 2
			}
			if !SeeGE(position, move, -seeMargin) {
				return 0, false
			}
		}
	}

	var history = t.history.Read(position.Side, move)

	if !t.makeMove(move) {
		return 0, false
	}
	var moveNumber = movesSearched + 1
	var givesCheck = position.IsCheck()

	var extension, reduction int

	if options.CheckExt && givesCheck && height < 2*t.rootDepth {
		extension = 1
	}

	if options.Lmr && depth >= 3 && moveNumber > 1 && !isNoisy {
		reduction = options.lmr(depth, moveNumber)
		if isKiller {
			reduction--
		}
		if !node.isCheck {
			reduction -= Clamp(history/5000, -2, 2)
			if !node.improving {
				reduction++
			}
		}
		if node.pvNode {
			reduction -= 2
		}
		if node.isCheck || givesCheck {
			reduction--
		}
		reduction = Max(reduction, 0) + extension
		reduction = Max(0, Min(depth-2, reduction))
	}

	var newDepth = depth - 1 + extension

	var score = alpha + 1
	// LMR
	if reduction > 0 {
		score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth-reduction, height+1)
	}
	// PVS
	if score > alpha && node.pvNode && moveNumber > 1 && newDepth > 0 {
		score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth, height+1)
	}
	// full search
	if score > alpha {
		score = -t.alphaBeta(-beta, -alpha, newDepth, height+1)
	}

	t.unmakeMove()
	return score, true
}

func (t *thread) quiescence(alpha, beta, height int) int {
	t.clearPV(height)
	var position = t.position
	if isDraw(position) {
		return t.drawValue()
	}
	if height >= maxHeight {
		return t.evaluate()
	}
	if t.isRepeat() {
		return t.drawValue()
	}

	var _, ttValue, ttBound, _, ttHit = t.engine.transTable.Read(position.Key)
	if ttHit {
		ttValue = valueFromTT(ttValue, height)
		if ttBound == boundExact ||
			ttBound == boundLower && ttValue >= beta ||
			ttBound == boundUpper && ttValue <= alpha {
			return ttValue
		}
	}

	var isCheck = position.IsCheck()
	var best = -valueInfinity
	if !isCheck {
		var eval = t.evaluate()
		best = Max(best, eval)
		if eval > alpha {
			alpha = eval
			if alpha >= beta {
				return alpha
			}
		}
	}
	var mi = moveIteratorQS{
		position: position,
		ml:       &t.stack[height].moveList,
	}
	mi.Init()
	var hasLegalMove = false
	for {
		var move = mi.Next()
		if move == MoveEmpty {
			break
		}
		if !isCheck && !seeGEZero(position, move) {
			continue
		}
		if !t.makeMove(move) {
			continue
		}
		hasLegalMove = true
		var score = -t.quiescence(-beta, -alpha, height+1)
		t.unmakeMove()
		best = Max(best, score)
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}
	if isCheck && !hasLegalMove {
		return lossIn(height)
	}
	return best
}

// leafValue is the horizon score when quiescence is off.
func (t *thread) leafValue(height int) int {
	t.clearPV(height)
	if height > 0 && (t.isRepeat() || isDraw(t.position)) {
		return t.drawValue()
	}
	if !t.position.HasLegalMove() {
		if t.position.IsCheck() {
			return lossIn(height)
		}
		return t.drawValue()
	}
	return t.evaluate()
}

func (t *thread) evaluate() int {
	return t.evaluator.Evaluate(t.position)
}

// drawValue converts Options.DrawValue to the side to move.
func (t *thread) drawValue() int {
	var v = t.engine.Options.DrawValue
	if t.position.Side != t.engine.rootSide {
		return -v
	}
	return v
}

func (t *thread) isRepeat() bool {
	return t.position.IsRepetition(t.rootPly)
}

func (t *thread) incNodes() {
	var nodes = t.nodes.Add(1)
	if nodes&255 == 0 {
		var e = t.engine
		e.timeManager.OnNodesChanged(e.totalNodes())
		if e.stop.Load() || e.timeManager.IsDone() {
			panic(errSearchTimeout)
		}
		for sp := t.split; sp != nil; sp = sp.parent {
			if sp.cutoff.Load() {
				panic(errSplitCutoff)
			}
		}
	}
}

func (t *thread) updateKiller(move Move, height int) {
	if t.stack[height].killer1 != move {
		t.stack[height].killer2 = t.stack[height].killer1
		t.stack[height].killer1 = move
	}
}

func (t *thread) clearPV(height int) {
	t.stack[height].pv.clear()
}

func (t *thread) assignPV(height int, move Move) {
	t.stack[height].pv.assign(move, &t.stack[height+1].pv)
}

// makeMove unmakes an illegal move itself.
func (t *thread) makeMove(move Move) bool {
	if !t.position.MakeMove(move) {
		t.position.UnmakeMove()
		return false
	}
	t.incNodes()
	return true
}

func (t *thread) unmakeMove() {
	t.position.UnmakeMove()
}

func (t *thread) makeNullMove() {
	t.position.MakeNullMove()
	t.incNodes()
}

func (t *thread) unmakeNullMove() {
	t.position.UnmakeNullMove()
}
