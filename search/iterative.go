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
	"time"

	"github.com/mkopp/gopher-search/config"
	"github.com/mkopp/gopher-search/moveslice"
	"github.com/mkopp/gopher-search/timemanager"
	. "github.com/mkopp/gopher-search/types"
)

// stableScoreWindow is how close two consecutive iterations' scores must
// be to count as "the same score" for stability tracking.
const stableScoreWindow = Score(10)

// orderedRootMoves returns a copy of the current root move order, with the
// previous iteration's best move promoted to the front by promoteRootMove.
func (s *Search) orderedRootMoves() []Move {
	out := make([]Move, len(s.rootMovesOrder))
	copy(out, s.rootMovesOrder)
	return out
}

// iterativeDeepening runs the depth-1-upward loop: the driver stops
// between iterations on the hard-limit guard or the soft-limit/stability
// heuristic, and always returns a usable move once at least one iteration
// has completed.
func (s *Search) iterativeDeepening() *Result {
	if s.checkDrawRepAnd50(3) {
		msg := "Search called on DRAW by Repetition or 50-moves-rule"
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return &Result{BestValue: ScoreDraw}
	}

	buf := make([]Move, 0, 64)
	buf = s.b.GenerateLegal(buf)
	if len(buf) == 0 {
		if s.b.InCheck() {
			s.statistics.Checkmates++
			msg := "Search called on a mate position"
			s.sendInfoStringToUci(msg)
			s.log.Warning(msg)
			return &Result{BestValue: MatedIn(0)}
		}
		s.statistics.Stalemates++
		msg := "Search called on a stalemate position"
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return &Result{BestValue: ScoreDraw}
	}
	// captures-first ahead of the first iteration's own search-driven
	// ordering - there is no TT or history data yet to order by.
	ms := moveslice.MoveSlice(buf)
	ms.SortByScore(func(m Move) int {
		if m.IsCapture() || m.IsPromotion() {
			return captureScore(s.b, m) + 1_000_000
		}
		return 0
	})
	s.rootMovesOrder = []Move(ms)
	emergencyMove := s.rootMovesOrder[0]

	maxDepth := MaxDepth
	if s.searchLimits.Depth > 0 && s.searchLimits.Depth < maxDepth {
		maxDepth = s.searchLimits.Depth
	}

	var lastResult *Result
	var lastIterDuration time.Duration
	ebf := 2.0

	for depth := 1; depth <= maxDepth; depth++ {
		s.statistics.CurrentIterationDepth = depth
		s.statistics.CurrentSearchDepth = depth
		if s.statistics.CurrentExtraSearchDepth < depth {
			s.statistics.CurrentExtraSearchDepth = depth
		}

		iterStart := time.Now()
		nodesBefore := s.nodesVisited

		var value Score
		if config.Settings.Search.UseAspiration && depth > 3 && lastResult != nil && !lastResult.BestValue.IsMateScore() {
			value = s.aspirationSearch(depth, lastResult.BestValue)
		} else {
			value = s.negamax(rootContext(), depth, 0, -Inf, Inf)
		}

		if s.stopFlag.Load() && lastResult != nil {
			break
		}

		pv := pvCopy(s.stack[:], 0)
		bestMove := s.rootBestMove
		if bestMove == NoMove && pv.Len() > 0 {
			bestMove = pv.At(0)
		}
		if bestMove == NoMove {
			bestMove = emergencyMove
		}

		result := &Result{
			BestMove:    bestMove,
			BestValue:   value,
			SearchDepth: depth,
			ExtraDepth:  s.statistics.CurrentExtraSearchDepth,
			Pv:          pv,
		}
		if pv.Len() > 1 {
			result.PonderMove = pv.At(1)
		}
		lastResult = result

		s.updateStability(bestMove, value)
		s.promoteRootMove(bestMove)

		s.sendIterationEndInfoToUci(pv)

		lastIterDuration = time.Since(iterStart)
		nodesThisIter := s.nodesVisited - nodesBefore
		if nodesBefore > 0 && nodesThisIter > 0 {
			ebf = float64(nodesThisIter) / float64(nodesBefore)
			if ebf < 1 {
				ebf = 1
			}
		}

		if s.stopFlag.Load() || (len(buf) <= 1 && !s.searchLimits.Infinite && !s.searchLimits.Ponder) {
			break
		}
		if s.searchLimits.TimedOrMoveTime() && !s.searchLimits.Infinite && !s.searchLimits.Ponder {
			if s.shouldStopBetweenIterations(lastIterDuration, ebf, depth) {
				break
			}
		}
	}

	if lastResult == nil {
		lastResult = &Result{BestMove: emergencyMove, BestValue: ScoreZero}
	}
	return lastResult
}

// shouldStopBetweenIterations implements the hard-limit guard and the
// soft-limit/stability heuristic described for the driver: never start an
// iteration predicted to exceed the hard limit, and stop early on a
// stable position once the soft limit is reached.
func (s *Search) shouldStopBetweenIterations(lastIterDuration time.Duration, ebf float64, depth int) bool {
	elapsed := time.Since(s.startTime)
	predicted := timemanager.Predict(lastIterDuration, ebf, depth)
	stable := s.sameBestStreak >= config.Settings.Search.StabilityThreshold &&
		s.sameValueStreak >= config.Settings.Search.StabilityThreshold

	if elapsed+predicted >= s.limits.Hard {
		return true
	}
	if stable && elapsed >= s.limits.Soft {
		return true
	}
	return timemanager.ShouldStop(elapsed, s.limits, stable)
}

// updateStability maintains the consecutive-same-best-move and
// consecutive-same-score counters the time manager uses to judge how much
// to trust the current iteration's result.
func (s *Search) updateStability(bestMove Move, value Score) {
	if bestMove == s.lastBestMove {
		s.sameBestStreak++
	} else {
		s.sameBestStreak = 0
	}
	diff := value.Sub(s.lastBestValue)
	if diff < 0 {
		diff = -diff
	}
	if s.lastBestValue != ScoreNone && diff <= stableScoreWindow {
		s.sameValueStreak++
	} else {
		s.sameValueStreak = 0
	}
	s.lastBestMove = bestMove
	s.lastBestValue = value
}

// promoteRootMove moves m to the front of the root move order so the next
// iteration searches the previous best first.
func (s *Search) promoteRootMove(m Move) {
	for i, rm := range s.rootMovesOrder {
		if rm == m {
			copy(s.rootMovesOrder[1:i+1], s.rootMovesOrder[:i])
			s.rootMovesOrder[0] = m
			return
		}
	}
}

// aspirationSearch runs the narrow-window/widen-on-fail loop described for
// the driver, growing delta per the configured policy until the score
// lands strictly inside the window or the window has widened to infinite.
func (s *Search) aspirationSearch(depth int, previousValue Score) Score {
	delta := Score(config.Settings.Search.AspirationWindow)
	alpha := previousValue.Sub(delta)
	beta := previousValue.Add(delta)
	fails := 0

	for attempt := 0; attempt < config.Settings.Search.AspirationMaxAttempts; attempt++ {
		if alpha < -Mate {
			alpha = -Inf
		}
		if beta > Mate {
			beta = Inf
		}

		value := s.negamax(rootContext(), depth, 0, alpha, beta)
		if s.stopFlag.Load() {
			return value
		}

		if value <= alpha {
			s.statistics.AspirationFails++
			s.statistics.AspirationResearches++
			s.sendAspirationResearchInfo(BoundUpper, pvCopy(s.stack[:], 0))
			delta = aspirationDelta(delta, fails)
			fails++
			alpha = previousValue.Sub(delta)
			continue
		}
		if value >= beta {
			s.statistics.AspirationFails++
			s.statistics.AspirationResearches++
			s.sendAspirationResearchInfo(BoundLower, pvCopy(s.stack[:], 0))
			delta = aspirationDelta(delta, fails)
			fails++
			beta = previousValue.Add(delta)
			continue
		}
		return value
	}

	return s.negamax(rootContext(), depth, 0, -Inf, Inf)
}
