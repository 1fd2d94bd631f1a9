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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Add_Saturates(t *testing.T) {
	assert.Equal(t, Inf, Inf.Add(100))
	assert.Equal(t, -Inf, (-Inf).Sub(100))
	assert.Equal(t, Score(150), Score(100).Add(50))
}

func TestScore_Negate(t *testing.T) {
	assert.Equal(t, Score(-100), Score(100).Negate())
	assert.Equal(t, Inf, (-Inf).Negate())
}

func TestScore_IsMateScore(t *testing.T) {
	assert.True(t, MateIn(3).IsMateScore())
	assert.True(t, MatedIn(3).IsMateScore())
	assert.False(t, Score(500).IsMateScore())
	assert.False(t, Score(MateBound-1).IsMateScore())
}

func TestScore_String(t *testing.T) {
	assert.Equal(t, "cp 34", Score(34).String())
	assert.Equal(t, "cp -12", Score(-12).String())
	assert.Equal(t, "mate 1", MateIn(1).String())
	assert.Equal(t, "mate -1", MatedIn(1).String())
}

func TestScore_TT_RoundTrip(t *testing.T) {
	s := MateIn(3)
	stored := s.ToTT(5)
	assert.Equal(t, s, stored.FromTT(5))
}
