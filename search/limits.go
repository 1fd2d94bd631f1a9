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
)

// Limits holds everything a UCI "go" command can constrain a search by.
// The driver reads these once at the start of a search and derives
// concrete time budgets from them via the time manager.
type Limits struct {
	// no time control
	Infinite bool
	Ponder   bool
	Mate     int

	// extra limits
	Depth int
	Nodes uint64
	Moves moveslice.MoveSlice

	// time control
	TimeControl bool
	WhiteTime   time.Duration
	BlackTime   time.Duration
	WhiteInc    time.Duration
	BlackInc    time.Duration
	MoveTime    time.Duration

	// parameter
	MovesToGo int
}

// NewSearchLimits creates an empty Limits instance.
func NewSearchLimits() *Limits {
	return &Limits{}
}

// TimedOrMoveTime reports whether any clock-derived stopping condition
// applies (as opposed to a pure depth/node/infinite search).
func (l *Limits) TimedOrMoveTime() bool {
	return l.TimeControl || l.MoveTime > 0
}
