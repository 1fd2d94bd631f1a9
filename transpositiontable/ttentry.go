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

package transpositiontable

import (
	. "github.com/mkopp/gopher-search/types"
)

// TtEntry is the data structure for each slot in the transposition table.
// Only the low 32 bits of the zobrist key are stored (key32), half the
// storage a full 64-bit key field would cost. The slot index is taken from
// the low bits of the same key, so a probe tells two keys sharing a slot
// apart only by their bits between the index width and bit 31; bits 32-63
// are not checked.
type TtEntry struct {
	key32      uint32
	move       uint16 // Move, stored raw
	score      int32  // search score, mate distance counted from the storing node
	eval       int32  // static eval at store time, or EvalNone
	depthBound uint16 // depth 8 bits | bound 2 bits | generation 6 bits
}

const (
	boundShiftDB     = 8
	generationShiftDB = 10
	depthMaskDB      = uint16(0x00FF)
	boundMaskDB      = uint16(0x3) << boundShiftDB
	generationMaskDB = uint16(0x3F) << generationShiftDB
)

// Key32 returns the stored 32-bit key fragment.
func (e *TtEntry) Key32() uint32 {
	return e.key32
}

// Move returns the packed best/refutation move stored for this position.
func (e *TtEntry) Move() Move {
	return Move(e.move)
}

// Score returns the stored search score, with mate distance counted from
// the storing node (see Score.FromTT).
func (e *TtEntry) Score() Score {
	return Score(e.score)
}

// Eval returns the static eval cached at store time, or EvalNone.
func (e *TtEntry) Eval() Score {
	return Score(e.eval)
}

// Depth returns the search depth the entry was stored at.
func (e *TtEntry) Depth() int {
	return int(e.depthBound & depthMaskDB)
}

// Bound returns the bound type of the stored score.
func (e *TtEntry) Bound() Bound {
	return Bound((e.depthBound & boundMaskDB) >> boundShiftDB)
}

// Generation returns the TT generation this entry was last written in.
func (e *TtEntry) Generation() uint8 {
	return uint8((e.depthBound & generationMaskDB) >> generationShiftDB)
}

// IsEmpty reports whether this slot has never been written (or was wiped
// by Clear).
func (e *TtEntry) IsEmpty() bool {
	return e.depthBound == 0 && e.key32 == 0 && e.move == 0
}

func packDepthBound(depth int, bound Bound, generation uint8) uint16 {
	if depth < 0 {
		depth = 0
	}
	if depth > 0xFF {
		depth = 0xFF
	}
	return uint16(depth) | uint16(bound)<<boundShiftDB | uint16(generation&0x3F)<<generationShiftDB
}
