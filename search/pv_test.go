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
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/mkopp/gopher-search/types"
)

func Test_updatePV_leaf(t *testing.T) {
	var stack [4]stackEntry
	updatePV(stack[:], 2, Move(42))
	assert.EqualValues(t, 1, stack[2].pv.Len())
	assert.EqualValues(t, 42, stack[2].pv.At(0))
}

func Test_updatePV_prependsChild(t *testing.T) {
	var stack [4]stackEntry
	stack[2].pv.PushBack(Move(7))
	stack[2].pv.PushBack(Move(8))

	updatePV(stack[:], 1, Move(1))

	assert.EqualValues(t, 3, stack[1].pv.Len())
	assert.EqualValues(t, 1, stack[1].pv.At(0))
	assert.EqualValues(t, 7, stack[1].pv.At(1))
	assert.EqualValues(t, 8, stack[1].pv.At(2))
}

func Test_clearPV(t *testing.T) {
	var stack [2]stackEntry
	stack[0].pv.PushBack(Move(1))
	clearPV(stack[:], 0)
	assert.EqualValues(t, 0, stack[0].pv.Len())
}

func Test_pvCopy_isDefensive(t *testing.T) {
	var stack [2]stackEntry
	stack[0].pv.PushBack(Move(5))

	cp := pvCopy(stack[:], 0)
	stack[0].pv.PushBack(Move(6))

	assert.EqualValues(t, 1, cp.Len())
	assert.EqualValues(t, 2, stack[0].pv.Len())
}
