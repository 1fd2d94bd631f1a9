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
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/mkopp/gopher-search/types"
)

func TestTable_StoreAndProbe(t *testing.T) {
	tt := NewTable(1)
	key := uint64(0x1234567890ABCDEF)
	m := NewMove(12, 28, FlagQuiet)

	tt.Store(key, m, 6, Score(120), BoundExact, Score(100))

	e, ok := tt.Probe(key)
	assert.True(t, ok)
	assert.Equal(t, m, e.Move())
	assert.Equal(t, Score(120), e.Score())
	assert.Equal(t, 6, e.Depth())
	assert.Equal(t, BoundExact, e.Bound())
	assert.Equal(t, Score(100), e.Eval())
}

func TestTable_Probe_Miss(t *testing.T) {
	tt := NewTable(1)
	_, ok := tt.Probe(0xDEADBEEF)
	assert.False(t, ok)
}

func TestTable_Store_KeepsDeeperEntryOnCollision(t *testing.T) {
	tt := NewTable(1)
	// force a same-slot collision by using the mask directly
	key1 := uint64(7)
	key2 := key1 + (tt.hashKeyMask + 1) // same slot, different key32

	tt.Store(key1, NewMove(1, 2, FlagQuiet), 10, Score(50), BoundExact, Score(50))
	tt.Store(key2, NewMove(3, 4, FlagQuiet), 2, Score(10), BoundExact, Score(10))

	e, ok := tt.Probe(key1)
	assert.True(t, ok)
	assert.Equal(t, 10, e.Depth())
	assert.Equal(t, Score(50), e.Score())
}

func TestTable_Store_OverwritesShallowerOnCollision(t *testing.T) {
	tt := NewTable(1)
	key1 := uint64(7)
	key2 := key1 + (tt.hashKeyMask + 1)

	tt.Store(key1, NewMove(1, 2, FlagQuiet), 2, Score(50), BoundExact, Score(50))
	tt.Store(key2, NewMove(3, 4, FlagQuiet), 10, Score(10), BoundExact, Score(10))

	e, ok := tt.Probe(key2)
	assert.True(t, ok)
	assert.Equal(t, 10, e.Depth())
}

func TestTable_NewGame_AllowsReplacingStaleGeneration(t *testing.T) {
	tt := NewTable(1)
	key1 := uint64(7)
	key2 := key1 + (tt.hashKeyMask + 1)

	tt.Store(key1, NewMove(1, 2, FlagQuiet), 10, Score(50), BoundExact, Score(50))
	tt.NewGame()
	tt.Store(key2, NewMove(3, 4, FlagQuiet), 1, Score(10), BoundExact, Score(10))

	e, ok := tt.Probe(key2)
	assert.True(t, ok)
	assert.Equal(t, 1, e.Depth())
}

func TestTable_Clear(t *testing.T) {
	tt := NewTable(1)
	tt.Store(42, NewMove(1, 2, FlagQuiet), 4, Score(1), BoundExact, Score(1))
	assert.Equal(t, uint64(1), tt.Len())
	tt.Clear()
	assert.Equal(t, uint64(0), tt.Len())
	_, ok := tt.Probe(42)
	assert.False(t, ok)
}

func TestTable_Hashfull(t *testing.T) {
	tt := NewTable(1)
	assert.Equal(t, 0, tt.Hashfull())
	for i := uint64(0); i < 100; i++ {
		tt.Store(i, NewMove(1, 2, FlagQuiet), 1, Score(1), BoundExact, Score(1))
	}
	assert.Greater(t, tt.Hashfull(), 0)
}

func TestTable_ZeroSize(t *testing.T) {
	tt := NewTable(0)
	tt.Store(1, NewMove(1, 2, FlagQuiet), 4, Score(1), BoundExact, Score(1))
	_, ok := tt.Probe(1)
	assert.False(t, ok)
	assert.Equal(t, 0, tt.Hashfull())
}

func TestTable_MateScoreRoundTrip(t *testing.T) {
	tt := NewTable(1)
	key := uint64(99)
	ply := 4
	mateScore := MateIn(3)
	stored := mateScore.ToTT(ply)

	tt.Store(key, NewMove(1, 2, FlagQuiet), 8, stored, BoundExact, ScoreNone)

	e, ok := tt.Probe(key)
	assert.True(t, ok)
	recovered := e.Score().FromTT(ply)
	assert.Equal(t, mateScore, recovered)
}
