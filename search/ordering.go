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
	"github.com/mkopp/gopher-search/history"
	. "github.com/mkopp/gopher-search/types"
)

// pickerPhase names one stage of the staged move picker. Phases are tried
// in order; each is only generated lazily, the first time the picker's
// cursor reaches it.
type pickerPhase int

const (
	phaseTT pickerPhase = iota
	phaseGoodCaptures
	phaseKillers
	phaseCounterMove
	phaseQuiets
	phaseLosingCaptures
	phaseDone
)

// scoredMove pairs a move with its ordering score, used only during the
// captures/quiets sort within a phase.
type scoredMove struct {
	move  Move
	score int
}

// movePicker is the explicit state machine implementing the staged
// ordering described for the main search: no language coroutine or
// generator is used, just a {phase, cursor, buffers} struct with a next()
// method. Each picker allocates its own move-list buffers the first time
// a phase needs them.
type movePicker struct {
	b       board.Board
	h       *history.History
	ply     int
	ttMove  Move
	prevTo  Square
	phase   pickerPhase
	cursor  int
	rank    int // 1-based yield index, for rank-aware gates

	captures scoredMove2Slice
	quiets   scoredMove2Slice
	losing   scoredMove2Slice
	killer1  Move
	killer2  Move
	counter  Move

	emitted map[Move]bool
}

type scoredMove2Slice []scoredMove

func newMovePicker(b board.Board, h *history.History, ply int, ttMove Move, prevTo Square) *movePicker {
	k1, k2 := h.Killers.Get(ply)
	mp := &movePicker{
		b:       b,
		h:       h,
		ply:     ply,
		ttMove:  ttMove,
		prevTo:  prevTo,
		killer1: k1,
		killer2: k2,
		counter: h.CounterMove(prevTo),
		emitted: make(map[Move]bool, 32),
	}
	return mp
}

// next returns the next move to try and its 1-based rank, or ok=false
// once every phase is exhausted.
func (mp *movePicker) next() (Move, int, bool) {
	for {
		switch mp.phase {
		case phaseTT:
			mp.phase = phaseGoodCaptures
			if mp.ttMove != NoMove {
				mp.rank++
				mp.emitted[mp.ttMove] = true
				return mp.ttMove, mp.rank, true
			}
		case phaseGoodCaptures:
			if mp.captures == nil {
				mp.generateCaptures()
			}
			if mp.cursor < len(mp.captures) {
				sm := mp.captures[mp.cursor]
				mp.cursor++
				if mp.emitted[sm.move] {
					continue
				}
				mp.emitted[sm.move] = true
				mp.rank++
				return sm.move, mp.rank, true
			}
			mp.cursor = 0
			mp.phase = phaseKillers
		case phaseKillers:
			if config.Settings.Search.UseKiller {
				for _, k := range [2]Move{mp.killer1, mp.killer2} {
					if k != NoMove && !mp.emitted[k] && mp.isPseudoLegalQuiet(k) {
						mp.emitted[k] = true
						mp.rank++
						return k, mp.rank, true
					}
				}
			}
			mp.phase = phaseCounterMove
		case phaseCounterMove:
			mp.phase = phaseQuiets
			if mp.counter != NoMove && !mp.emitted[mp.counter] && mp.isPseudoLegalQuiet(mp.counter) {
				mp.emitted[mp.counter] = true
				mp.rank++
				return mp.counter, mp.rank, true
			}
		case phaseQuiets:
			if mp.quiets == nil {
				mp.generateQuiets()
			}
			if mp.cursor < len(mp.quiets) {
				sm := mp.quiets[mp.cursor]
				mp.cursor++
				if mp.emitted[sm.move] {
					continue
				}
				mp.emitted[sm.move] = true
				mp.rank++
				return sm.move, mp.rank, true
			}
			mp.cursor = 0
			mp.phase = phaseLosingCaptures
		case phaseLosingCaptures:
			if mp.cursor < len(mp.losing) {
				sm := mp.losing[mp.cursor]
				mp.cursor++
				if mp.emitted[sm.move] {
					continue
				}
				mp.emitted[sm.move] = true
				mp.rank++
				return sm.move, mp.rank, true
			}
			mp.phase = phaseDone
		case phaseDone:
			return NoMove, 0, false
		}
	}
}

func (mp *movePicker) isPseudoLegalQuiet(m Move) bool {
	if m.IsCapture() {
		return false
	}
	for _, c := range mp.b.GeneratePseudoLegal(make([]Move, 0, 64)) {
		if c == m {
			return true
		}
	}
	return false
}

// generateCaptures splits pseudo-legal captures into SEE-winning (good)
// and SEE-losing buckets, each scored and sorted by MVV/LVA.
func (mp *movePicker) generateCaptures() {
	buf := make([]Move, 0, 32)
	buf = mp.b.GenerateCaptures(buf)
	good := make(scoredMove2Slice, 0, len(buf))
	bad := make(scoredMove2Slice, 0, len(buf))
	for _, m := range buf {
		sc := captureScore(mp.b, m)
		if mp.b.See(m, 0) {
			good = append(good, scoredMove{m, sc})
		} else {
			bad = append(bad, scoredMove{m, sc})
		}
	}
	if config.Settings.Search.UseRankedMovePicker {
		sortScoredDesc(good)
		sortScoredDesc(bad)
	}
	mp.captures = good
	mp.losing = bad
}

func (mp *movePicker) generateQuiets() {
	buf := make([]Move, 0, 64)
	buf = mp.b.GeneratePseudoLegal(buf)
	out := make(scoredMove2Slice, 0, len(buf))
	weight := config.Settings.Search.CounterMoveHistoryWeight
	bonus := config.Settings.Search.CounterMoveBonus
	for _, m := range buf {
		if m.IsCapture() || m.IsPromotion() {
			continue
		}
		sc := int(mp.h.Get(mp.b.SideToMove(), m))
		if mp.prevTo != SquareNone {
			sc += int(float64(mp.h.CounterMoveHistoryScore(mp.prevTo, m)) * weight)
			if m == mp.counter {
				sc += bonus
			}
		}
		out = append(out, scoredMove{m, sc})
	}
	if config.Settings.Search.UseRankedMovePicker {
		sortScoredDesc(out)
	}
	mp.quiets = out
}

func sortScoredDesc(s scoredMove2Slice) {
	for i := 1; i < len(s); i++ {
		tmp := s[i]
		j := i
		for j > 0 && s[j-1].score < tmp.score {
			s[j] = s[j-1]
			j--
		}
		s[j] = tmp
	}
}

// captureScore implements victim_value - attacker_value plus a promotion
// bonus per promoted piece: queen > rook > knight > bishop.
func captureScore(b board.Board, m Move) int {
	victim := b.PieceAt(m.To())
	attacker := b.PieceAt(m.From())
	score := victim.Value() - attacker.Value()
	if m.IsPromotion() {
		switch m.PromotionType() {
		case Queen:
			score += 20000
		case Rook:
			score += 8000
		case Knight:
			score += 4000
		case Bishop:
			score += 2000
		}
	}
	return score
}
