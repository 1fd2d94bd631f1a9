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

func TestNewMove(t *testing.T) {
	tests := []struct {
		name string
		from Square
		to   Square
		flag MoveFlag
		want string
	}{
		{"e2e4", Square(12), Square(28), FlagDoublePawnPush, "e2e4"},
		{"e1g1 castle", Square(4), Square(6), FlagCastleKingside, "e1g1"},
		{"a7a8Q", Square(48), Square(56), FlagPromoQueen, "a7a8q"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMove(tt.from, tt.to, tt.flag)
			assert.Equal(t, tt.from, m.From())
			assert.Equal(t, tt.to, m.To())
			assert.Equal(t, tt.flag, m.Flag())
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMove_IsCapture(t *testing.T) {
	assert.True(t, NewMove(12, 28, FlagCapture).IsCapture())
	assert.True(t, NewMove(12, 28, FlagEnPassant).IsCapture())
	assert.True(t, NewMove(12, 28, FlagPromoCaptureQueen).IsCapture())
	assert.False(t, NewMove(12, 28, FlagQuiet).IsCapture())
	assert.False(t, NewMove(12, 28, FlagPromoQueen).IsCapture())
}

func TestMove_IsPromotion(t *testing.T) {
	assert.True(t, NewMove(48, 56, FlagPromoKnight).IsPromotion())
	assert.True(t, NewMove(48, 56, FlagPromoCaptureRook).IsPromotion())
	assert.False(t, NewMove(12, 28, FlagQuiet).IsPromotion())
	assert.Equal(t, Knight, NewMove(48, 56, FlagPromoKnight).PromotionType())
	assert.Equal(t, Queen, NewMove(48, 56, FlagPromoCaptureQueen).PromotionType())
}

func TestMove_NoMove(t *testing.T) {
	assert.Equal(t, "0000", NoMove.String())
}
