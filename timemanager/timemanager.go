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

// Package timemanager turns a UCI "go" command's clock parameters into
// concrete soft/hard/optimum time budgets, and answers "should the driver
// start another iteration" given elapsed time and a stability signal.
package timemanager

import "time"

// Constants tuned for sudden-death and moves-to-go time controls alike.
const (
	minTimeReserve    = 50 * time.Millisecond
	movesToGoFactor   = 0.8
	suddenDeathFactor = 0.04
	incrementFactor   = 0.75
	softLimitRatio    = 1.0
	hardLimitRatio    = 3.0
	maxTimeFactor     = 0.25

	stablePositionFactor   = 0.7
	unstablePositionFactor = 1.5

	// maxPredictorCap bounds Predict's output so a runaway EBF estimate
	// can never overflow a later duration computation.
	maxPredictorCap = time.Hour
)

// Info is the clock state for one side as received from a UCI "go"
// command.
type Info struct {
	WhiteTime time.Duration
	BlackTime time.Duration
	WhiteInc  time.Duration
	BlackInc  time.Duration
	MoveTime  time.Duration
	MovesToGo int
	Infinite  bool
}

func (ti Info) timeForSide(white bool) time.Duration {
	if white {
		return ti.WhiteTime
	}
	return ti.BlackTime
}

func (ti Info) incForSide(white bool) time.Duration {
	if white {
		return ti.WhiteInc
	}
	return ti.BlackInc
}

// Limits is the calculated set of time budgets for the current move.
type Limits struct {
	Optimum time.Duration
	Soft    time.Duration
	Hard    time.Duration
}

// Calculate derives soft/hard/optimum limits from the clock info and a
// stability factor in [0.5, 1.5] supplied by the driver (1.0 = neutral).
func Calculate(ti Info, whiteToMove bool, stability float64) Limits {
	if ti.Infinite {
		return Limits{Optimum: maxPredictorCap, Soft: maxPredictorCap, Hard: maxPredictorCap}
	}
	if ti.MoveTime > 0 {
		opt := ti.MoveTime - minTimeReserve
		if opt < 0 {
			opt = ti.MoveTime
		}
		return Limits{Optimum: opt, Soft: opt, Hard: ti.MoveTime}
	}

	remaining := ti.timeForSide(whiteToMove)
	if remaining <= 0 {
		return Limits{}
	}
	increment := ti.incForSide(whiteToMove)

	remaining -= minTimeReserve
	if remaining < 0 {
		remaining = 0
	}

	var optimum time.Duration
	if ti.MovesToGo > 0 {
		optimum = time.Duration(float64(remaining) * movesToGoFactor / float64(ti.MovesToGo))
	} else {
		optimum = time.Duration(float64(remaining) * suddenDeathFactor)
	}
	if increment > 0 {
		optimum += time.Duration(float64(increment) * incrementFactor)
	}

	if stability > 0 {
		optimum = time.Duration(float64(optimum) * clamp(stability, 0.5, 1.5))
	}

	maxAllowed := time.Duration(float64(remaining) * maxTimeFactor)
	if optimum > maxAllowed {
		optimum = maxAllowed
	}
	if optimum < time.Millisecond {
		optimum = time.Millisecond
	}

	soft := time.Duration(float64(optimum) * softLimitRatio)
	hard := time.Duration(float64(optimum) * hardLimitRatio)
	maxUsable := remaining
	if hard > maxUsable && maxUsable > 0 {
		hard = maxUsable
	}
	if hard < soft {
		hard = soft
	}

	return Limits{Optimum: optimum, Soft: soft, Hard: hard}
}

// StabilityFactor maps the driver's same-best-move and same-score streak
// counters into the bounded [0.5, 1.5] multiplier Calculate expects.
func StabilityFactor(sameBestStreak, sameScoreStreak, threshold int) float64 {
	stable := sameBestStreak >= threshold && sameScoreStreak >= threshold
	if stable {
		return stablePositionFactor
	}
	return unstablePositionFactor
}

// ShouldStop answers the driver's "begin another iteration?" question
// given elapsed time since the search started and whether the position is
// currently considered stable.
func ShouldStop(elapsed time.Duration, limits Limits, stable bool) bool {
	if elapsed >= limits.Hard {
		return true
	}
	if stable && elapsed >= limits.Soft {
		return true
	}
	if !stable && elapsed >= time.Duration(float64(limits.Hard)*0.8) {
		return true
	}
	return false
}

// Predict estimates the next iteration's wall-clock cost from the last
// iteration's time, an effective-branching-factor estimate, and a mild
// per-depth growth factor, capped at one hour.
func Predict(lastIterTime time.Duration, ebf float64, depth int) time.Duration {
	ebf = clamp(ebf, 1.5, 10.0)
	depthFactor := 1.0 + 0.02*float64(depth)
	predicted := time.Duration(float64(lastIterTime) * ebf * depthFactor * 1.1)
	if predicted > maxPredictorCap {
		predicted = maxPredictorCap
	}
	return predicted
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
