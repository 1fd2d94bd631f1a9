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
	. "github.com/mkopp/gopher-search/types"
)

// depthBucket classifies a remaining-depth value into one of the four
// telemetry buckets {1-3, 4-6, 7-9, 10+} used throughout Statistics.
func depthBucket(depth int) int {
	switch {
	case depth <= 3:
		return 0
	case depth <= 6:
		return 1
	case depth <= 9:
		return 2
	default:
		return 3
	}
}

// Statistics accumulates per-search counters used for the UCI diagnostic
// keys and for tuning. None of these feed back into the search decisions
// themselves - they are observational.
type Statistics struct {
	Nodes            uint64
	QNodes           uint64
	IllegalPseudo    uint64
	Checkmates       uint64
	Stalemates       uint64

	TTProbes  uint64
	TTHits    uint64
	TTMisses  uint64
	TTStores  uint64
	TTCuts    uint64
	TTCollisions uint64

	Evaluations uint64

	BetaCuts    uint64
	BetaCuts1st uint64

	RfpPrunings    [4]uint64
	RazorPrunings  [4]uint64
	FutilityPrunings [4]uint64
	MoveCountPrunings [4]uint64
	NullMoveCuts     [4]uint64
	NullMoveVerifications uint64

	LmrReductions [4]uint64
	LmrResearches [4]uint64

	SeeMainPrunes [4]uint64
	SeeQsPrunes   [4]uint64

	IIDSearches uint64

	SingularAttempts  uint64
	SingularExtensions uint64

	CheckExtensions uint64
	RecaptureExtensions uint64

	AspirationFails     uint64
	AspirationResearches uint64

	MateDistancePrunings uint64

	CurrentIterationDepth   int
	CurrentSearchDepth      int
	CurrentExtraSearchDepth int
	CurrentRootMove         Move
	CurrentRootMoveIndex    int
	CurrentBestRootMove     Move
	CurrentBestRootMoveValue Score
}

// RecordNode bumps the total node counter and, if depth <= 0, the
// quiescence node counter.
func (s *Statistics) RecordNode(depth int) {
	s.Nodes++
	if depth <= 0 {
		s.QNodes++
	}
}

// RecordBetaCut bumps the beta-cutoff counters, crediting a first-move
// cutoff when moveNumber == 1 (1-based), a measure of move-ordering
// quality.
func (s *Statistics) RecordBetaCut(moveNumber int) {
	s.BetaCuts++
	if moveNumber == 1 {
		s.BetaCuts1st++
	}
}

func (s *Statistics) String() string {
	return out.Sprintf("%+v", *s)
}
