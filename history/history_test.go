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

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/mkopp/gopher-search/types"
)

func TestKillers_Add(t *testing.T) {
	k := Killers{}
	m1 := NewMove(12, 28, FlagQuiet)
	m2 := NewMove(6, 21, FlagQuiet)
	k.Add(3, m1)
	k.Add(3, m2)
	a, b := k.Get(3)
	assert.Equal(t, m2, a)
	assert.Equal(t, m1, b)

	// re-adding the most recent killer must not shift it into slot 1
	k.Add(3, m2)
	a, b = k.Get(3)
	assert.Equal(t, m2, a)
	assert.Equal(t, m1, b)
}

func TestHistory_Update_BonusAndPenalty(t *testing.T) {
	h := NewHistory()
	cutter := NewMove(12, 28, FlagQuiet)
	other := NewMove(6, 21, FlagQuiet)
	h.Update(White, 4, cutter, []Move{other, cutter})
	assert.Greater(t, h.Get(White, cutter), int16(0))
	assert.Less(t, h.Get(White, other), int16(0))
}

func TestHistory_Update_Saturates(t *testing.T) {
	h := NewHistory()
	cutter := NewMove(12, 28, FlagQuiet)
	for i := 0; i < 200; i++ {
		h.Update(White, 20, cutter, nil)
	}
	assert.Equal(t, int16(8192), h.Get(White, cutter))
}

func TestHistory_CounterMove(t *testing.T) {
	h := NewHistory()
	reply := NewMove(12, 28, FlagQuiet)
	h.SetCounterMove(Square(44), reply)
	assert.Equal(t, reply, h.CounterMove(Square(44)))
	assert.Equal(t, NoMove, h.CounterMove(Square(10)))
}

func TestHistory_CounterMoveHistory_Decays(t *testing.T) {
	h := NewHistory()
	cutter := NewMove(12, 28, FlagQuiet)
	h.UpdateCounterMoveHistory(Square(44), 10, cutter, nil)
	first := h.CounterMoveHistoryScore(Square(44), cutter)
	assert.Greater(t, first, int16(0))
	h.UpdateCounterMoveHistory(Square(44), 10, cutter, nil)
	second := h.CounterMoveHistoryScore(Square(44), cutter)
	// decay subtracts entry>>6 before adding the new bonus, so growth
	// is sub-linear rather than doubling.
	assert.Less(t, second, int16(2)*first)
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory()
	m := NewMove(12, 28, FlagQuiet)
	h.Update(White, 4, m, nil)
	h.SetCounterMove(Square(28), m)
	h.Killers.Add(1, m)
	h.Clear()
	assert.Equal(t, int16(0), h.Get(White, m))
	assert.Equal(t, NoMove, h.CounterMove(Square(28)))
	a, b := h.Killers.Get(1)
	assert.Equal(t, NoMove, a)
	assert.Equal(t, NoMove, b)
}
