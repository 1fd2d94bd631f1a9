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

// Package history provides the move-ordering tables updated during search:
// killer moves, the history heuristic, the counter-move table and
// counter-move history. All tables are value members of a single History
// instance owned by one Search - there is no pointer graph and no global
// mutable state, so two searches never share (or race on) these tables.
package history

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	. "github.com/mkopp/gopher-search/types"
)

var out = message.NewPrinter(language.German)

const (
	// historyMax is the saturation bound for history and counter-move
	// history entries.
	historyMax int16 = 8192

	// maxPly bounds the killer table's per-ply dimension.
	maxPly = 128

	// cmhDecayShift implements the local exponential decay applied to a
	// counter-move-history cell before every update: entry -= entry>>6.
	cmhDecayShift = 6
)

// Killers holds, for one ply, the two most recent quiet moves that caused
// a beta cutoff there. New entries push the previous slot-0 move into
// slot 1; duplicates are ignored; captures and promotions are never
// stored here (the node-ordering code enforces that before calling Add).
type Killers struct {
	table [maxPly][2]Move
}

// Add records a new killer at ply, unless it is already the most recent
// killer there.
func (k *Killers) Add(ply int, m Move) {
	if ply < 0 || ply >= maxPly {
		return
	}
	if k.table[ply][0] == m {
		return
	}
	k.table[ply][1] = k.table[ply][0]
	k.table[ply][0] = m
}

// Get returns the two killer moves for ply (NoMove if unset).
func (k *Killers) Get(ply int) (Move, Move) {
	if ply < 0 || ply >= maxPly {
		return NoMove, NoMove
	}
	return k.table[ply][0], k.table[ply][1]
}

// Clear empties the killer table, e.g. between searches.
func (k *Killers) Clear() {
	*k = Killers{}
}

// History is the full set of move-ordering tables updated during a single
// search: the butterfly history heuristic, counter-move table, counter-move
// history, and per-ply killers.
type History struct {
	// table is indexed [color][from][to]; positive entries favor a quiet
	// move being tried earlier in sibling nodes.
	table [2][64][64]int16

	// counterMoves[prevTo] holds the reply that most recently refuted the
	// opponent's move landing on prevTo.
	counterMoves [64]Move

	// counterMoveHistory is indexed [prevTo][from][to].
	counterMoveHistory [64][64][64]int16

	Killers Killers
}

// NewHistory creates a new, empty History instance.
func NewHistory() *History {
	return &History{}
}

// bonus returns the depth-scaled, saturation-capped bonus applied to a
// cutting quiet move (and, negated, the penalty applied to quiets tried
// before it at the same node).
func bonus(depth int) int32 {
	b := int32(depth * depth)
	if b > int32(historyMax) {
		b = int32(historyMax)
	}
	return b
}

func addSaturating(cell *int16, delta int32) {
	v := int32(*cell) + delta
	if v > int32(historyMax) {
		v = int32(historyMax)
	}
	if v < -int32(historyMax) {
		v = -int32(historyMax)
	}
	*cell = int16(v)
}

// Get returns the history score for a quiet move by the given side.
func (h *History) Get(c Color, m Move) int16 {
	return h.table[c][m.From()][m.To()]
}

// Update applies the butterfly history update for a node that produced a
// beta cutoff: the cutting move cutter gets a positive bonus proportional
// to depth^2 (capped), and every quiet move tried before it (quietsTried,
// excluding cutter itself) gets the matching penalty.
func (h *History) Update(c Color, depth int, cutter Move, quietsTried []Move) {
	b := bonus(depth)
	addSaturating(&h.table[c][cutter.From()][cutter.To()], b)
	for _, m := range quietsTried {
		if m == cutter {
			continue
		}
		addSaturating(&h.table[c][m.From()][m.To()], -b)
	}
}

// CounterMove returns the recorded reply to the opponent's move landing on
// prevTo, or NoMove if none recorded.
func (h *History) CounterMove(prevTo Square) Move {
	if prevTo == SquareNone {
		return NoMove
	}
	return h.counterMoves[prevTo]
}

// SetCounterMove records m as the reply that refuted a move landing on
// prevTo.
func (h *History) SetCounterMove(prevTo Square, m Move) {
	if prevTo == SquareNone {
		return
	}
	h.counterMoves[prevTo] = m
}

// CounterMoveHistoryScore returns the counter-move-history score for the
// move m given the opponent's previous move landed on prevTo.
func (h *History) CounterMoveHistoryScore(prevTo Square, m Move) int16 {
	if prevTo == SquareNone {
		return 0
	}
	return h.counterMoveHistory[prevTo][m.From()][m.To()]
}

// UpdateCounterMoveHistory applies the decayed bonus/penalty update: before
// adding the bonus, every touched cell is first reduced by entry>>6 so
// that long searches do not lock values at the saturation bound.
func (h *History) UpdateCounterMoveHistory(prevTo Square, depth int, cutter Move, quietsTried []Move) {
	if prevTo == SquareNone {
		return
	}
	b := bonus(depth)
	cell := &h.counterMoveHistory[prevTo][cutter.From()][cutter.To()]
	*cell -= *cell >> cmhDecayShift
	addSaturating(cell, b)
	for _, m := range quietsTried {
		if m == cutter {
			continue
		}
		c := &h.counterMoveHistory[prevTo][m.From()][m.To()]
		*c -= *c >> cmhDecayShift
		addSaturating(c, -b)
	}
}

// Clear empties every table, e.g. on NewGame.
func (h *History) Clear() {
	h.table = [2][64][64]int16{}
	h.counterMoves = [64]Move{}
	h.counterMoveHistory = [64][64][64]int16{}
	h.Killers.Clear()
}

func (h *History) String() string {
	sb := strings.Builder{}
	for from := Square(0); from < 64; from++ {
		for to := Square(0); to < 64; to++ {
			sb.WriteString(out.Sprintf("Move=%s%s: ", from.String(), to.String()))
			for c := White; c <= Black; c++ {
				sb.WriteString(out.Sprintf("%s=%-7d ", c.String(), h.table[c][from][to]))
			}
			sb.WriteString(out.Sprintf("cm=%s\n", h.counterMoves[to].String()))
		}
	}
	return sb.String()
}
