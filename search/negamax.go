/*
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package search

import (
	"github.com/mkopp/gopher-search/config"
	. "github.com/mkopp/gopher-search/types"
)

// zugzwangThreshold is the non-pawn-material floor (per side) below which
// null-move pruning is refused to avoid zugzwang blunders in the endgame.
const zugzwangThreshold = Score(1300)

// negamax searches one node of the tree and returns its score from the
// side-to-move's perspective. ctx.isRoot selects root-only bookkeeping
// (s.rootMovesOrder ordering, always recording a legal move even on a draw);
// every other behaviour is shared between root and interior nodes.
func (s *Search) negamax(ctx nodeContext, depth, ply int, alpha, beta Score) Score {
	// 1. periodic abort check
	s.nodesVisited++
	s.statistics.RecordNode(depth)
	if s.nodesVisited&4095 == 0 && s.checkAbort() {
		return 0
	}

	// 2. seldepth update
	if ply > s.statistics.CurrentExtraSearchDepth {
		s.statistics.CurrentExtraSearchDepth = ply
	}
	if ply >= MaxPly {
		return s.b.Evaluate()
	}

	isPV := ctx.isPV
	inCheck := s.b.InCheck()

	// 3. check extension - does not count against the extension budget
	if inCheck {
		depth++
		s.statistics.CheckExtensions++
	}

	// 4. terminal handling
	if depth <= 0 {
		if !config.Settings.Search.UseQuiescence {
			s.statistics.Evaluations++
			return s.b.Evaluate()
		}
		return s.quiescence(s.b, ctx, ply, 0, alpha, beta)
	}

	// 5. draw detection (non-root only)
	if !ctx.isRoot {
		if s.isRepetition(ply) || s.b.IsDrawByRule() {
			return ScoreDraw
		}
	}

	// 5b. mate-distance pruning: no mate shorter than one already forced
	// (or already lost) can be found from this ply, so the window can be
	// clamped before doing any further work.
	if config.Settings.Search.UseMDP {
		if matedScore := MatedIn(ply); matedScore > alpha {
			alpha = matedScore
		}
		if mateScore := MateIn(ply + 1); mateScore < beta {
			beta = mateScore
		}
		if alpha >= beta {
			return alpha
		}
	}

	alphaOrig := alpha
	ttMove := NoMove
	var ttEval Score = EvalNone
	var ttScore Score = ScoreNone
	var ttBound Bound = BoundNone
	ttDepth := 0

	// 6. TT probe
	if config.Settings.Search.UseTT && s.tt != nil {
		s.statistics.TTProbes++
		if e, ok := s.tt.Probe(s.b.Zobrist()); ok {
			s.statistics.TTHits++
			ttMove = e.Move()
			ttEval = e.Eval()
			ttScore = e.Score().FromTT(ply)
			ttBound = e.Bound()
			ttDepth = e.Depth()
			// a singular-verification search must not be cut short by the
			// very TT entry that made this node a singular candidate - it
			// needs to actually search every move excluding ttMove.
			if e.Depth() >= depth && ctx.excluded == NoMove {
				score := e.Score().FromTT(ply)
				if ctx.isRoot {
					switch e.Bound() {
					case BoundLower:
						if score > alpha {
							alpha = score
						}
					case BoundUpper:
						if score < beta {
							beta = score
						}
					}
					if alpha > beta {
						alpha, beta = beta, alpha
					}
				} else {
					switch e.Bound() {
					case BoundExact:
						s.statistics.TTCuts++
						return score
					case BoundLower:
						if score >= beta {
							s.statistics.TTCuts++
							return score
						}
						if score > alpha {
							alpha = score
						}
					case BoundUpper:
						if score <= alpha {
							s.statistics.TTCuts++
							return score
						}
						if score < beta {
							beta = score
						}
					}
				}
			}
		} else {
			s.statistics.TTMisses++
		}
	}

	// 7. static-eval computation
	var staticEval Score
	if inCheck {
		staticEval = EvalNone
	} else if ttEval != EvalNone {
		staticEval = ttEval
	} else {
		staticEval = s.b.Evaluate()
		s.statistics.Evaluations++
	}
	s.stack[ply].staticEval = staticEval
	s.stack[ply].isPV = isPV
	s.stack[ply].zobrist = s.b.Zobrist()
	clearPV(s.stack[:], ply)

	improvingNode := improving(s.stack[:], ply)
	nearMate := alpha.IsMateScore() || beta.IsMateScore()

	// 8. reverse futility pruning
	if config.Settings.Search.UseRFP && !isPV && !ctx.isRoot && depth <= 8 &&
		!inCheck && !nearMate && staticEval != EvalNone {
		margin := rfpMargin(depth)
		if staticEval.Sub(margin) >= beta {
			if depth >= 2 && config.Settings.Search.UseTT && s.tt != nil {
				s.tt.Store(s.b.Zobrist(), NoMove, depth, staticEval.Sub(margin).ToTT(ply), BoundLower, staticEval)
			}
			s.statistics.RfpPrunings[depthBucket(depth)]++
			return staticEval.Sub(margin)
		}
	}

	// 9. null-move pruning
	if config.Settings.Search.UseNullMove && !isPV && !ctx.isRoot && !inCheck && !nearMate &&
		depth >= config.Settings.Search.NmpMinDepth && !s.stack[ply].wasNull &&
		s.b.NonPawnMaterial(s.b.SideToMove()) > zugzwangThreshold {

		r := nullMoveReduction(depth, staticEval, beta)
		undo := s.b.MakeNull()
		s.stack[ply+1].wasNull = true
		nullDepth := depth - 1 - r
		if nullDepth < 0 {
			nullDepth = 0
		}
		score := -s.negamax(ctx.child(false), nullDepth, ply+1, -beta, -beta.Add(1))
		s.stack[ply+1].wasNull = false
		s.b.UnmakeNull(undo)

		if !s.stopFlag.Load() && score >= beta {
			if depth >= config.Settings.Search.NmpVerifyDepth {
				s.statistics.NullMoveVerifications++
				verify := s.negamax(ctx.child(false), depth-r, ply, alpha, beta)
				if verify >= beta {
					s.statistics.NullMoveCuts[depthBucket(depth)]++
					if config.Settings.Search.UseTT && s.tt != nil {
						s.tt.Store(s.b.Zobrist(), NoMove, depth, verify.ToTT(ply), BoundLower, staticEval)
					}
					return verify
				}
			} else {
				s.statistics.NullMoveCuts[depthBucket(depth)]++
				if config.Settings.Search.UseTT && s.tt != nil {
					s.tt.Store(s.b.Zobrist(), NoMove, depth, score.ToTT(ply), BoundLower, staticEval)
				}
				return score
			}
		}
	}

	// 10. razoring
	if config.Settings.Search.UseRazoring && !isPV && !ctx.isRoot && (depth == 1 || depth == 2) &&
		!inCheck && !nearMate && staticEval != EvalNone {
		endgame := s.b.NonPawnMaterial(White) < zugzwangThreshold && s.b.NonPawnMaterial(Black) < zugzwangThreshold
		ttSuggestsHold := ttMove != NoMove && ttEval != EvalNone && ttEval >= beta
		anyWinningCapture := false
		if !endgame && !ttSuggestsHold {
			buf := make([]Move, 0, 16)
			buf = s.b.GenerateCaptures(buf)
			for _, m := range buf {
				if s.b.See(m, 0) {
					anyWinningCapture = true
					break
				}
			}
		}
		if !endgame && !ttSuggestsHold && !anyWinningCapture {
			margin := Score(config.Settings.Search.RazorMargin1)
			if depth == 2 {
				margin = Score(config.Settings.Search.RazorMargin2)
			}
			if staticEval.Add(margin) <= alpha {
				score := s.quiescence(s.b, ctx, ply, 0, alpha.Sub(1), alpha)
				if score <= alpha {
					s.statistics.RazorPrunings[depthBucket(depth)]++
					if config.Settings.Search.UseTT && s.tt != nil {
						s.tt.Store(s.b.Zobrist(), NoMove, depth, score.ToTT(ply), BoundUpper, staticEval)
					}
					return score
				}
			}
		}
	}

	// 11. previous-move recovery
	prevTo := SquareNone
	if ply > 0 && s.stack[ply-1].movePlayed != NoMove {
		prevTo = s.stack[ply-1].movePlayed.To()
	}

	// 11b. internal iterative deepening: a PV node deep enough to matter
	// but lacking a hash move gets a reduced-depth search first, purely to
	// populate the TT with a move to order by.
	if config.Settings.Search.UseIID && isPV && !ctx.isRoot && ttMove == NoMove &&
		depth >= config.Settings.Search.IIDDepth {
		iidDepth := depth - config.Settings.Search.IIDReduction
		if iidDepth < 1 {
			iidDepth = 1
		}
		s.negamax(ctx, iidDepth, ply, alpha, beta)
		if config.Settings.Search.UseTT && s.tt != nil {
			if e, ok := s.tt.Probe(s.b.Zobrist()); ok {
				ttMove = e.Move()
				ttBound = e.Bound()
				ttDepth = e.Depth()
			}
		}
	}

	// singular-extension verification candidate: only meaningful for the
	// TT move, computed once and consulted inside the move loop.
	singularCandidate := NoMove
	if config.Settings.Search.UseSingularExtensions && !ctx.isRoot && ttMove != NoMove &&
		depth >= config.Settings.Search.SingularExtensionDepth && ctx.excluded == NoMove &&
		ttBound == BoundExact && ttDepth >= depth-1 {
		singularCandidate = ttMove
	}

	// ordering only consults the hash move when UseTTMove is enabled; it
	// stays the true TT move everywhere else (TT store, singular
	// verification) regardless of this setting.
	orderingTTMove := NoMove
	if config.Settings.Search.UseTTMove {
		orderingTTMove = ttMove
	}

	// 12. move-picker construction
	var picker *movePicker
	var rootList []Move
	if ctx.isRoot {
		rootList = s.orderedRootMoves()
	} else {
		picker = newMovePicker(s.b, s.history, ply, orderingTTMove, prevTo)
	}

	// 13. main loop over moves
	best := -Inf
	bestMove := NoMove
	moveCount := 0
	quietsTried := make([]Move, 0, 32)
	legalMoves := 0
	rootIdx := 0

	for {
		var m Move
		var rank int
		if ctx.isRoot {
			if rootIdx >= len(rootList) {
				break
			}
			m = rootList[rootIdx]
			rootIdx++
			rank = rootIdx
		} else {
			var ok bool
			m, rank, ok = picker.next()
			if !ok {
				break
			}
		}

		if ctx.excluded != NoMove && m == ctx.excluded {
			continue
		}

		k1, k2 := s.history.Killers.Get(ply)
		isQuiet := !m.IsCapture() && !m.IsPromotion()
		isTTMove := m == orderingTTMove
		isKiller := config.Settings.Search.UseKiller && (m == k1 || m == k2)
		isCounter := prevTo != SquareNone && m == s.history.CounterMove(prevTo)

		// capture SEE gate
		if mode := config.Settings.Search.SeeModeMain; mode != "off" &&
			config.Settings.Search.UseRankAwareGates && !isPV && !ctx.isRoot && depth >= 4 &&
			m.IsCapture() && !isTTMove && rank >= 11 {
			endgame := s.b.NonPawnMaterial(White) < zugzwangThreshold && s.b.NonPawnMaterial(Black) < zugzwangThreshold
			if !s.b.See(m, seeThreshold(mode, depth, endgame)) {
				s.statistics.SeeMainPrunes[depthBucket(depth)]++
				continue
			}
		}

		// compute extension - singular verification must run before the
		// move is played, since it searches the same node with m excluded
		extension := 0
		if m == singularCandidate {
			s.statistics.SingularAttempts++
			if s.verifySingular(ctx, m, depth, ply, ttScore) {
				extension = 1
				s.statistics.SingularExtensions++
			}
		}
		if extension == 0 && s.isRecapture(m, prevTo) && depth <= 10 {
			extension = 1
			s.statistics.RecaptureExtensions++
		}
		budget := s.stack[ply].extensionTotalAlongPath
		if budget >= 2 {
			extension = 0
		}

		mover := s.b.SideToMove()
		undo, ok := s.b.TryMake(m)
		if !ok {
			s.statistics.IllegalPseudo++
			continue
		}
		legalMoves++
		moveCount++
		s.stack[ply].movePlayed = m
		s.stack[ply].gaveCheck = s.b.InCheck()
		s.stack[ply+1].extensionTotalAlongPath = budget + extension
		s.stack[ply+1].extensionAppliedHere = extension

		// move-count pruning
		if config.Settings.Search.UseMoveCountPruning && !isPV && !ctx.isRoot && depth >= 3 &&
			!m.IsCapture() && !m.IsPromotion() && !isKiller && !isCounter && !isTTMove &&
			moveCount > moveCountLimit(depth, improvingNode) {
			s.b.Unmake(m, undo)
			moveCount--
			s.statistics.MoveCountPrunings[depthBucket(depth)]++
			continue
		}

		// futility pruning of quiet moves
		reduction := 0
		if !isPV && !isTTMove && !isKiller && !isCounter && isQuiet && rank >= 2 {
			reduction = s.lmrReduction(depth, rank, isPV, improvingNode, s.stack[ply].gaveCheck, s.history.Get(mover, m))
		}
		effectiveDepth := depth - 1 - reduction + extension
		if config.Settings.Search.UseFutility && !isPV && !ctx.isRoot && isQuiet && !isTTMove && !isKiller && !isCounter &&
			effectiveDepth <= config.Settings.Search.FutilityMaxDepth && !inCheck && staticEval != EvalNone {
			marginDepth := effectiveDepth
			if marginDepth < 1 {
				marginDepth = 1
			}
			margin := futilityMargin(marginDepth)
			if rank > 10 {
				margin = margin.Sub(50)
			}
			if staticEval.Add(margin) <= alpha {
				s.b.Unmake(m, undo)
				s.statistics.FutilityPrunings[depthBucket(depth)]++
				continue
			}
		}

		if isQuiet {
			quietsTried = append(quietsTried, m)
		}

		// principal-variation search with LMR
		var score Score
		isFirstMove := moveCount == 1
		childCtx := ctx.child(isFirstMove)
		if isFirstMove {
			score = -s.negamax(childCtx, depth-1+extension, ply+1, -beta, -alpha)
		} else {
			scoutDepth := depth - 1 - reduction + extension
			if scoutDepth < 1 {
				scoutDepth = 1
			}
			score = -s.negamax(childCtx, scoutDepth, ply+1, -alpha.Add(1), -alpha)
			if score > alpha && reduction > 0 {
				s.statistics.LmrResearches[depthBucket(depth)]++
				score = -s.negamax(childCtx, depth-1+extension, ply+1, -alpha.Add(1), -alpha)
			}
			if score > alpha && score < beta {
				score = -s.negamax(ctx.child(true), depth-1+extension, ply+1, -beta, -alpha)
			}
		}
		if reduction > 0 {
			s.statistics.LmrReductions[depthBucket(depth)]++
		}

		s.b.Unmake(m, undo)

		if s.stopFlag.Load() {
			return 0
		}

		if score > best {
			best = score
			bestMove = m
			if isPV {
				updatePV(s.stack[:], ply, m)
			}
			if ctx.isRoot {
				s.statistics.CurrentBestRootMove = m
				s.statistics.CurrentBestRootMoveValue = score
			}
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			s.statistics.RecordBetaCut(moveCount)
			if isQuiet {
				s.history.Killers.Add(ply, m)
				s.history.Update(s.b.SideToMove(), depth, m, quietsTried)
				if prevTo != SquareNone {
					s.history.SetCounterMove(prevTo, m)
					s.history.UpdateCounterMoveHistory(prevTo, depth, m, quietsTried)
				}
			}
			if config.Settings.Search.UseTT && s.tt != nil {
				s.tt.Store(s.b.Zobrist(), m, depth, best.ToTT(ply), BoundLower, staticEval)
			}
			break
		}
	}

	// 14. mate/stalemate detection
	if legalMoves == 0 {
		if ctx.excluded != NoMove {
			// a singular-verification search with no alternative moves is not
			// a real mate/stalemate - return alpha so the caller's fail-low
			// check behaves correctly.
			return alpha
		}
		if inCheck {
			s.statistics.Checkmates++
			return MatedIn(ply)
		}
		s.statistics.Stalemates++
		return ScoreDraw
	}

	// 15. TT store
	if config.Settings.Search.UseTT && s.tt != nil && alpha < beta && ctx.excluded == NoMove {
		bound := BoundExact
		switch {
		case best <= alphaOrig:
			bound = BoundUpper
		case best >= beta:
			bound = BoundLower
		}
		s.tt.Store(s.b.Zobrist(), bestMove, depth, best.ToTT(ply), bound, staticEval)
	}

	if ctx.isRoot {
		s.rootBestMove = bestMove
	}

	return best
}

// isRepetition reports a two-fold repetition within the current search
// tree's own move trail (the game history before the root is checked
// separately by checkDrawRepAnd50).
func (s *Search) isRepetition(ply int) bool {
	key := s.b.Zobrist()
	count := 0
	for p := ply - 2; p >= 0; p -= 2 {
		if s.stack[p].zobrist == key {
			count++
			if count >= 1 {
				return true
			}
		}
	}
	return false
}

// isRecapture reports whether m recaptures on the square the opponent's
// previous move landed on.
func (s *Search) isRecapture(m Move, prevTo Square) bool {
	return prevTo != SquareNone && m.IsCapture() && m.To() == prevTo
}

// lmrReduction adapts the precomputed log-table base reduction with the
// PV/improving adjustments and rank-aware clamping described for the main
// search loop. A move that gives check or whose history score sits in the
// top quartile of the saturation range is exempted outright, the same as
// captures and promotions.
func (s *Search) lmrReduction(depth, rank int, isPV, improvingNode, gaveCheck bool, historyScore int16) int {
	if !config.Settings.Search.LmrEnabled || depth < config.Settings.Search.LmrMinDepth ||
		rank < config.Settings.Search.LmrMinMoveNumber || gaveCheck ||
		int(historyScore) >= config.Settings.Search.LmrHistoryThreshold {
		return 0
	}
	r := lmrBaseReduction(depth, rank)
	if isPV {
		r -= config.Settings.Search.LmrPvReduction
	}
	if !improvingNode {
		r += config.Settings.Search.LmrNonImprovingBonus
	}
	switch rankBucket(rank) {
	case 0, 1:
		if r > 1 {
			r = 1
		}
	case 3:
		r++
	}
	if r < 0 {
		r = 0
	}
	if r > depth-2 {
		r = depth - 2
	}
	if r < 0 {
		r = 0
	}
	return r
}
