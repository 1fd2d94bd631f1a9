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

	"github.com/mkopp/gopher-search/moveslice"
	. "github.com/mkopp/gopher-search/types"
)

// Result stores the outcome of a think() call. If BestMove is not NoMove
// every other field is valid.
type Result struct {
	BestMove    Move
	BestValue   Score
	PonderMove  Move
	SearchTime  time.Duration
	SearchDepth int
	ExtraDepth  int
	Pv          moveslice.MoveSlice
}

func (r *Result) String() string {
	return out.Sprintf("bestmove = %s, value = %s, ponder = %s, search time = %d ms, search depth = %d/%d, pv = %s",
		r.BestMove.String(), r.BestValue.String(), r.PonderMove.String(), r.SearchTime.Milliseconds(),
		r.SearchDepth, r.ExtraDepth, r.Pv.StringUci())
}
