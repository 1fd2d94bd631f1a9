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

// updatePV writes a new best line into the stack at ply: m followed by the
// child's PV (at ply+1). Only PV nodes maintain this buffer - scout
// children never get one populated, matching the triangular-PV allocation
// rule of only handing a PV buffer to the first legal move of a PV node.
func updatePV(stack []stackEntry, ply int, m Move) {
	row := &stack[ply].pv
	row.Clear()
	row.PushBack(m)
	if ply+1 < len(stack) {
		child := stack[ply+1].pv
		for i := 0; i < child.Len(); i++ {
			row.PushBack(child.At(i))
		}
	}
}

func clearPV(stack []stackEntry, ply int) {
	stack[ply].pv.Clear()
}

// pvCopy returns a defensive copy of the PV row at ply, safe to hand to a
// UCI info line or a Result after the search stack is reused.
func pvCopy(stack []stackEntry, ply int) moveslice.MoveSlice {
	return *stack[ply].pv.Clone()
}
