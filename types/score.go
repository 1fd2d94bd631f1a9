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
	"strconv"
	"strings"
)

// Score is the search's signed evaluation unit, in centipawns from the
// side-to-move's perspective, with reserved mate-distance encodings near
// its extremes. Addition and negation saturate rather than overflow so a
// chain of node returns can never wrap around into a bogus sign.
type Score int32

// Reserved score constants.
const (
	ScoreZero  Score = 0
	ScoreDraw  Score = 0
	Mate       Score = 32_000
	MateBound  Score = 29_000
	Inf        Score = 1_000_000
	ScoreNone  Score = -Inf - 1
	EvalNone   Score = -Inf - 2
)

// IsMateScore reports whether s is a mate announcement (its magnitude is at
// or beyond MateBound but not beyond Mate itself).
func (s Score) IsMateScore() bool {
	a := s
	if a < 0 {
		a = -a
	}
	return a >= MateBound && a <= Mate
}

// Add returns s+o, saturating at +-Inf instead of overflowing.
func (s Score) Add(o Score) Score {
	sum := int64(s) + int64(o)
	return saturate(sum)
}

// Sub returns s-o, saturating at +-Inf instead of overflowing.
func (s Score) Sub(o Score) Score {
	diff := int64(s) - int64(o)
	return saturate(diff)
}

// Negate returns -s, safe even at the saturated extremes (there is no
// two's-complement MinInt32 edge case because the type's usable range is
// clamped well inside int32).
func (s Score) Negate() Score {
	return saturate(-int64(s))
}

func saturate(v int64) Score {
	if v > int64(Inf) {
		return Inf
	}
	if v < -int64(Inf) {
		return -Inf
	}
	return Score(v)
}

// MateIn returns the Score for "mate in n plies" from the mating side's
// perspective (n=0 means mate has already been delivered at this node).
func MateIn(ply int) Score {
	return Mate - Score(ply)
}

// MatedIn returns the Score for "mated in n plies" from the losing side's
// perspective.
func MatedIn(ply int) Score {
	return -Mate + Score(ply)
}

// String renders the score the way a UCI "score" token body would read,
// e.g. "cp 34" or "mate -3".
func (s Score) String() string {
	var sb strings.Builder
	switch {
	case s == ScoreNone:
		sb.WriteString("N/A")
	case s.IsMateScore():
		sb.WriteString("mate ")
		n := Mate - s
		if s < 0 {
			n = Mate + s
			sb.WriteString("-")
		}
		plies := (int(n) + 1) / 2
		sb.WriteString(strconv.Itoa(plies))
	default:
		sb.WriteString("cp ")
		sb.WriteString(strconv.Itoa(int(s)))
	}
	return sb.String()
}

// ToTT converts a search score at the given ply into the form stored in
// the transposition table. Search mate scores count plies from the root
// (see MateIn/MatedIn); the stored form counts them from the storing node,
// so a mate score moves closer to +-Mate by ply.
func (s Score) ToTT(ply int) Score {
	if s >= MateBound {
		return s.Add(Score(ply))
	}
	if s <= -MateBound {
		return s.Sub(Score(ply))
	}
	return s
}

// FromTT converts a score read back out of the transposition table into
// the root-counted form usable at the given ply: the inverse of ToTT.
func (s Score) FromTT(ply int) Score {
	if s == ScoreNone || s == EvalNone {
		return s
	}
	if s >= MateBound {
		return s.Sub(Score(ply))
	}
	if s <= -MateBound {
		return s.Add(Score(ply))
	}
	return s
}
