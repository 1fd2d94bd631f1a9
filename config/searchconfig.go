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

package config

// searchConfiguration is the flat options record consumed by the search
// core. Every field has a documented default below, set in init() and
// overridable from the TOML config file.
type searchConfiguration struct {
	// Transposition table
	UseTT    bool
	TTSizeMb int
	UseTTMove bool
	UseQSTT  bool

	// Quiescence
	UseQuiescence    bool
	UseQSStandpat    bool
	QSearchNodeLimit uint64
	QSearchMaxCaptures int
	MaxCheckPly      int

	// Move ordering
	UseKiller             bool
	UseRankedMovePicker   bool
	UseRankAwareGates     bool
	CounterMoveBonus      int
	CounterMoveHistoryWeight float64
	SeeModeMain           string // off, conservative, moderate, aggressive
	SeeModeQS             string

	// Internal iterative deepening
	UseIID       bool
	IIDDepth     int
	IIDReduction int

	// Mate-distance pruning
	UseMDP bool

	// Reverse futility pruning
	UseRFP bool

	// Null-move pruning
	UseNullMove        bool
	NmpMinDepth        int
	NmpReductions      [3]int // by depth bucket: <6, 6-11, >=12
	NmpVerifyDepth     int

	// Razoring
	UseRazoring  bool
	RazorMargin1 int
	RazorMargin2 int

	// Futility pruning
	UseFutility       bool
	FutilityBase      int
	FutilityMaxDepth  int

	// Move-count (late-move) pruning
	UseMoveCountPruning bool
	MoveCountLimits     [16]int

	// Late-move reductions
	LmrEnabled            bool
	LmrMinDepth           int
	LmrMinMoveNumber      int
	LmrBaseReduction      float64
	LmrDepthFactor        float64
	LmrHistoryThreshold   int
	LmrPvReduction        int
	LmrNonImprovingBonus  int

	// Singular extensions
	UseSingularExtensions   bool
	SingularExtensionDepth  int

	// Aspiration windows
	UseAspiration         bool
	AspirationWindow      int
	AspirationMaxAttempts int
	AspirationGrowth      string // linear, moderate, exponential, adaptive

	// Time management
	StabilityThreshold int

	// Principal-variation search
	UsePVS bool
}

func init() {
	Settings.Search = searchConfiguration{
		UseTT:     true,
		TTSizeMb:  64,
		UseTTMove: true,
		UseQSTT:   true,

		UseQuiescence:      true,
		UseQSStandpat:      true,
		QSearchNodeLimit:   0, // 0 = unlimited
		QSearchMaxCaptures: 32,
		MaxCheckPly:        6,

		UseKiller:                true,
		UseRankedMovePicker:      true,
		UseRankAwareGates:        true,
		CounterMoveBonus:         2000,
		CounterMoveHistoryWeight: 1.5,
		SeeModeMain:              "moderate",
		SeeModeQS:                "conservative",

		UseIID:       true,
		IIDDepth:     6,
		IIDReduction: 2,

		UseMDP: true,
		UseRFP: true,

		UseNullMove:    true,
		NmpMinDepth:    3,
		NmpReductions:  [3]int{3, 4, 5},
		NmpVerifyDepth: 12,

		UseRazoring:  true,
		RazorMargin1: 240,
		RazorMargin2: 280,

		UseFutility:      true,
		FutilityBase:     85,
		FutilityMaxDepth: 8,

		UseMoveCountPruning: true,
		MoveCountLimits: [16]int{
			0, 5, 8, 13, 18, 23, 29, 35, 42, 49, 57, 65, 74, 83, 92, 102,
		},

		LmrEnabled:           true,
		LmrMinDepth:          3,
		LmrMinMoveNumber:     4,
		LmrBaseReduction:     1.0,
		LmrDepthFactor:       2.25,
		LmrHistoryThreshold:  4000,
		LmrPvReduction:       1,
		LmrNonImprovingBonus: 1,

		UseSingularExtensions:  true,
		SingularExtensionDepth: 8,

		UseAspiration:         true,
		AspirationWindow:      16,
		AspirationMaxAttempts: 5,
		AspirationGrowth:      "exponential",

		StabilityThreshold: 4,

		UsePVS: true,
	}
}

func setupSearch() {
	// Fields are already defaulted by init(); a decoded TOML file has
	// already overwritten any present keys in Settings.Search by the time
	// Setup() calls this - nothing further to normalize today, but the
	// hook stays so range clamping can land here without touching Setup().
}
