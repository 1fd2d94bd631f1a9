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
	"github.com/mkopp/gopher-search/board"
	"github.com/mkopp/gopher-search/config"
	. "github.com/mkopp/gopher-search/types"
)

// queenValue is the coarse delta-pruning margin used by the stand-pat cut
// below.
const queenValue = Score(900)

// quiescence resolves the tactical horizon past depth 0: captures (and,
// while in check, evasions) only, no quiet moves, until a quiet position
// is reached or the check/capture limits cut it off.
func (s *Search) quiescence(b board.Board, ctx nodeContext, ply, qply int, alpha, beta Score) Score {
	s.nodesVisited++
	s.qNodesVisited++
	s.statistics.RecordNode(0)

	if s.nodesVisited&4095 == 0 && s.checkAbort() {
		return 0
	}
	if ply > s.statistics.CurrentExtraSearchDepth {
		s.statistics.CurrentExtraSearchDepth = ply
	}
	if ply >= MaxPly {
		return b.Evaluate()
	}
	limit := config.Settings.Search.QSearchNodeLimit
	if limit > 0 && s.qNodesVisited > limit {
		return b.Evaluate()
	}

	alphaOrig := alpha

	if config.Settings.Search.UseQSTT && s.tt != nil {
		s.statistics.TTProbes++
		if e, ok := s.tt.Probe(b.Zobrist()); ok && e.Depth() == 0 {
			s.statistics.TTHits++
			score := e.Score().FromTT(ply)
			switch e.Bound() {
			case BoundExact:
				return score
			case BoundLower:
				if score >= beta {
					return score
				}
				if score > alpha {
					alpha = score
				}
			case BoundUpper:
				if score <= alpha {
					return score
				}
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	inCheck := b.InCheck()
	var bestScore Score
	var bestMove Move = NoMove

	if inCheck {
		buf := make([]Move, 0, 32)
		buf = b.GenerateLegal(buf)
		if len(buf) == 0 {
			return MatedIn(ply)
		}
		bestScore = -Inf
		for _, m := range buf {
			if qply > config.Settings.Search.MaxCheckPly {
				break
			}
			undo, ok := b.TryMake(m)
			if !ok {
				continue
			}
			score := -s.quiescence(b, ctx, ply+1, qply+1, -beta, -alpha)
			b.Unmake(m, undo)
			if s.stopFlag.Load() {
				return 0
			}
			if score > bestScore {
				bestScore = score
				bestMove = m
				if score > alpha {
					alpha = score
				}
			}
			if alpha >= beta {
				break
			}
		}
	} else {
		standPat := b.Evaluate()
		s.statistics.Evaluations++
		bestScore = standPat
		if standPat >= beta {
			s.storeQTT(b, bestMove, standPat, BoundLower, standPat, ply)
			return standPat
		}
		margin := queenValue
		if config.Settings.Search.UseQSStandpat && standPat.Add(margin) < alpha {
			return alpha
		}
		if standPat > alpha {
			alpha = standPat
		}

		buf := make([]Move, 0, 32)
		buf = b.GenerateCaptures(buf)
		captures := make(scoredMove2Slice, 0, len(buf))
		for _, m := range buf {
			captures = append(captures, scoredMove{m, captureScore(b, m)})
		}
		sortScoredDesc(captures)

		maxCaptures := config.Settings.Search.QSearchMaxCaptures
		tried := 0
		for _, sm := range captures {
			m := sm.move
			if maxCaptures > 0 && tried >= maxCaptures {
				break
			}
			victim := b.PieceAt(m.To())
			if standPat.Add(Score(victim.Value())).Add(200) < alpha {
				continue
			}
			if mode := config.Settings.Search.SeeModeQS; mode != "off" {
				endgame := b.NonPawnMaterial(White) < zugzwangThreshold && b.NonPawnMaterial(Black) < zugzwangThreshold
				if !b.See(m, seeThreshold(mode, qply, endgame)) {
					continue
				}
			}
			undo, ok := b.TryMake(m)
			if !ok {
				s.statistics.IllegalPseudo++
				continue
			}
			tried++
			score := -s.quiescence(b, ctx, ply+1, qply+1, -beta, -alpha)
			b.Unmake(m, undo)
			if s.stopFlag.Load() {
				return 0
			}
			if score > bestScore {
				bestScore = score
				bestMove = m
				if score > alpha {
					alpha = score
				}
			}
			if alpha >= beta {
				break
			}
		}
	}

	bound := BoundExact
	switch {
	case bestScore <= alphaOrig:
		bound = BoundUpper
	case bestScore >= beta:
		bound = BoundLower
	}
	s.storeQTT(b, bestMove, bestScore, bound, EvalNone, ply)
	return bestScore
}

func (s *Search) storeQTT(b board.Board, m Move, score Score, bound Bound, eval Score, ply int) {
	if !config.Settings.Search.UseQSTT || s.tt == nil {
		return
	}
	s.statistics.TTStores++
	s.tt.Store(b.Zobrist(), m, 0, score.ToTT(ply), bound, eval)
}
