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
	"github.com/mkopp/gopher-search/moveslice"
	. "github.com/mkopp/gopher-search/types"
)

// MaxPly bounds search recursion and every per-ply scratch array. No
// negamax or quiescence call recurses at a ply at or beyond this value.
const MaxPly = 128

// MaxDepth is the deepest iteration the driver will request.
const MaxDepth = 100

// stackEntry is one ply's worth of per-node bookkeeping, kept in a
// pre-sized array on the Search value so recursion never allocates.
type stackEntry struct {
	zobrist                 uint64
	movePlayed              Move
	staticEval              Score
	gaveCheck               bool
	wasNull                 bool
	excludedMove            Move
	extensionAppliedHere    int
	extensionTotalAlongPath int
	isPV                    bool
	pv                      moveslice.MoveSlice
}

// improving reports whether the static eval at ply is better than the
// static eval two plies earlier (the same side to move), the signal used
// to loosen/tighten several pruning margins.
func improving(stack []stackEntry, ply int) bool {
	if ply < 2 {
		return true
	}
	a, b := stack[ply].staticEval, stack[ply-2].staticEval
	if a == EvalNone || b == EvalNone {
		return true
	}
	return a > b
}
