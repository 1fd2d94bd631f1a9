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
	"math"

	"github.com/mkopp/gopher-search/config"
	. "github.com/mkopp/gopher-search/types"
)

// This file holds pre-computed lookup tables for parameters too irregular
// to express as a single formula inline in the node code.

// lmrTable[depth][moveNumber] is the base late-move reduction before the
// PV/improving/rank-aware adjustments applied at the call site.
var lmrTable [64][64]int

func init() {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			r := config.Settings.Search.LmrBaseReduction +
				math.Log(float64(d))*math.Log(float64(m))/config.Settings.Search.LmrDepthFactor
			if r < 0 {
				r = 0
			}
			lmrTable[d][m] = int(r)
		}
	}
}

// lmrBaseReduction returns the table lookup for depth/moveNumber, clamped
// to the table's bounds for depths/move-numbers beyond its extent.
func lmrBaseReduction(depth, moveNumber int) int {
	if depth >= 64 {
		depth = 63
	}
	if moveNumber >= 64 {
		moveNumber = 63
	}
	if depth < 1 || moveNumber < 1 {
		return 0
	}
	return lmrTable[depth][moveNumber]
}

// rfpMargin grows sub-linearly with depth: steep at first, flattening out,
// so the pruning stays conservative at higher depths.
func rfpMargin(depth int) Score {
	if depth <= 0 {
		return 0
	}
	return Score(85*depth - 5*depth*depth/8)
}

// futilityMargin grows roughly linearly from FutilityBase, rank-aware
// scaling applied separately by the caller.
func futilityMargin(depth int) Score {
	return Score(config.Settings.Search.FutilityBase * depth)
}

// singularMargin is the margin below the TT score at which the singular
// verification window is placed: tighter at higher depth since the TT result is
// more trustworthy there.
func singularMargin(depth int) Score {
	switch {
	case depth < 6:
		return 100
	case depth < 8:
		return 80
	default:
		return 60
	}
}

// seeThreshold returns the static-exchange-evaluation gain a capture must
// clear to survive a SEE gate, by mode and tightened by depth and by how
// far the position has drained into the endgame: conservative only ever
// rejects a clear material loss (and relaxes further in the endgame,
// where material trades matter less than activity), moderate tightens as
// depth grows, aggressive demands an outright material profit throughout.
func seeThreshold(mode string, depth int, endgame bool) Score {
	switch mode {
	case "aggressive":
		t := 50 + 10*depth
		if t > 200 {
			t = 200
		}
		if endgame {
			t -= 50
		}
		return Score(t)
	case "moderate":
		t := 5 * depth
		if t > 80 {
			t = 80
		}
		if endgame {
			t -= 30
		}
		return Score(t)
	default: // conservative
		if endgame {
			return -50
		}
		return 0
	}
}

// rankBucket classifies a 1-based move-picker yield index into the
// {1, 2-5, 6-10, 11+} buckets used by the rank-aware gates.
func rankBucket(rank int) int {
	switch {
	case rank <= 1:
		return 0
	case rank <= 5:
		return 1
	case rank <= 10:
		return 2
	default:
		return 3
	}
}

// moveCountLimit returns the move-count-pruning threshold for depth,
// widened by one full bucket step when the node is improving.
func moveCountLimit(depth int, improving bool) int {
	limits := config.Settings.Search.MoveCountLimits
	idx := depth
	if idx < 0 {
		idx = 0
	}
	if idx >= len(limits) {
		idx = len(limits) - 1
	}
	limit := limits[idx]
	if improving && idx+1 < len(limits) {
		limit = limits[idx+1]
	}
	return limit
}

// nullMoveReduction returns the base null-move reduction R for depth, plus
// one extra ply when the margin by which static eval exceeds beta is
// large (at least a rook's worth of centipawns).
func nullMoveReduction(depth int, staticEval, beta Score) int {
	var r int
	switch {
	case depth < 6:
		r = config.Settings.Search.NmpReductions[0]
	case depth < 12:
		r = config.Settings.Search.NmpReductions[1]
	default:
		r = config.Settings.Search.NmpReductions[2]
	}
	if staticEval.Sub(beta) >= 500 {
		r++
	}
	return r
}

// aspirationDelta grows the previous window half-width per the configured
// growth policy, given how many consecutive fails have occurred so far
// (0-based).
func aspirationDelta(delta Score, fails int) Score {
	switch config.Settings.Search.AspirationGrowth {
	case "linear":
		return Score(float64(delta) * 1.33)
	case "moderate":
		return Score(float64(delta) * 1.5)
	case "adaptive":
		if fails == 0 {
			return Score(float64(delta) * 1.5)
		}
		return delta.Add(delta) // double after the first fail: a stubborn fail sequence widens fast
	default: // exponential
		shift := fails + 1
		if shift > 3 {
			shift = 3
		}
		return delta << uint(shift)
	}
}
