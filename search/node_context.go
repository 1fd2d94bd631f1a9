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
	. "github.com/mkopp/gopher-search/types"
)

// nodeContext threads root/PV/excluded-move state down one level of
// recursion. It is constructed fresh at entry to each node and never
// stored beyond that call - singular-extension verification uses it to
// hide one move from the move picker without mutating any shared state.
type nodeContext struct {
	isRoot   bool
	isPV     bool
	excluded Move
}

func rootContext() nodeContext {
	return nodeContext{isRoot: true, isPV: true}
}

// child returns the context for a child node: PV status only survives to
// the first legal move of a PV node, matching the "PV child" rule used
// for both PV-buffer allocation and full-window search.
func (c nodeContext) child(isFirstMove bool) nodeContext {
	return nodeContext{isPV: c.isPV && isFirstMove}
}

// withExcluded returns a copy of c with the given move hidden from move
// generation, used for singular-extension verification searches.
func (c nodeContext) withExcluded(m Move) nodeContext {
	c.excluded = m
	return c
}
