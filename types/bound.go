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

// Bound tags what a stored score means relative to the window it was
// computed in.
type Bound uint8

const (
	// BoundNone marks an empty transposition-table entry.
	BoundNone Bound = iota
	// BoundExact means the stored score is the true minimax value.
	BoundExact
	// BoundLower means the true value is at least the stored score (a
	// fail-high / beta cutoff was recorded).
	BoundLower
	// BoundUpper means the true value is at most the stored score (every
	// move failed low against alpha).
	BoundUpper
)

func (b Bound) String() string {
	switch b {
	case BoundExact:
		return "exact"
	case BoundLower:
		return "lower"
	case BoundUpper:
		return "upper"
	default:
		return "none"
	}
}
