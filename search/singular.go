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

// verifySingular asks whether ttMove is the only move at this node that
// keeps the score near ttScore: it searches every other move through a
// narrow null window margin(depth) below ttScore, with ttMove itself
// excluded via ctx.excluded. If every alternative fails low of that
// window, ttMove is "singular" and earns a one-ply extension at the call
// site.
func (s *Search) verifySingular(ctx nodeContext, ttMove Move, depth, ply int, ttScore Score) bool {
	margin := singularMargin(depth)
	window := ttScore.Sub(margin)
	verifyDepth := (depth - 1) / 2
	if verifyDepth < 1 {
		verifyDepth = 1
	}
	excludedCtx := ctx.withExcluded(ttMove)
	score := s.negamax(excludedCtx, verifyDepth, ply, window.Sub(1), window)
	return score < window
}
