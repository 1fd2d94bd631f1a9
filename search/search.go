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

// Package search implements iterative-deepening alpha-beta search over an
// external board.Board collaborator: negamax with PVS, quiescence,
// transposition-table-backed move ordering, and the usual selectivity
// machinery (null-move, LMR, futility, singular extensions). Nothing here
// knows how to represent a chess position - board.Board is the only thing
// search ever touches for rules.
package search

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/op/go-logging"

	"github.com/mkopp/gopher-search/board"
	"github.com/mkopp/gopher-search/config"
	"github.com/mkopp/gopher-search/history"
	myLogging "github.com/mkopp/gopher-search/logging"
	"github.com/mkopp/gopher-search/moveslice"
	"github.com/mkopp/gopher-search/timemanager"
	"github.com/mkopp/gopher-search/transpositiontable"
	. "github.com/mkopp/gopher-search/types"
	"github.com/mkopp/gopher-search/uciInterface"
	"github.com/mkopp/gopher-search/util"
)

var out = message.NewPrinter(language.German)

// Search is the engine's search driver: one instance runs at most one
// search at a time, using isRunning as a binary gate rather than a mutex
// so IsSearching() never blocks.
type Search struct {
	log  *logging.Logger
	slog *logging.Logger

	uciHandlerPtr uciInterface.UciDriver
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	tt      *transpositiontable.Table
	history *history.History

	lastSearchResult *Result

	stopFlag          util.Bool
	startTime         time.Time
	hasResult         bool
	b                 board.Board
	searchLimits      *Limits
	limits            timemanager.Limits
	nodesVisited      uint64
	qNodesVisited     uint64
	stack             [MaxPly + 1]stackEntry
	rootMovesOrder    []Move
	lastUciUpdateTime time.Time
	statistics        Statistics
	rootBestMove      Move

	// history-repetition keys played before the root, used by
	// checkDrawRepAnd50 to detect a draw by repetition at the root;
	// repetitions inside the tree are found from the search stack's own
	// zobrist trail only.
	gameHistory []uint64

	// iteration stability, read by shouldStopBetweenIterations
	lastBestMove    Move
	sameBestStreak  int
	lastBestValue   Score
	sameValueStreak int
}

// NewSearch creates a new Search instance. If no uci handler is set via
// SetUciHandler, diagnostic output goes to the standard log instead.
func NewSearch() *Search {
	return &Search{
		log:           myLogging.GetLog(),
		slog:          myLogging.GetSearchLog(),
		initSemaphore: semaphore.NewWeighted(int64(1)),
		isRunning:     semaphore.NewWeighted(int64(1)),
		history:       history.NewHistory(),
	}
}

// NewGame stops any running search and clears all per-game state: the
// transposition table's generation advances (rather than a full wipe) and
// the history tables are replaced fresh.
func (s *Search) NewGame() {
	s.StopSearch()
	if s.tt != nil {
		s.tt.NewGame()
	}
	s.history = history.NewHistory()
}

// StartSearch starts a search on b under the given limits and history of
// zobrist keys played so far in the game (for repetition detection). It
// returns once the search goroutine has completed its setup; the result is
// delivered asynchronously through the uci handler and can also be polled
// via LastSearchResult after WaitWhileSearching returns.
func (s *Search) StartSearch(b board.Board, sl Limits, gameHistory []uint64) {
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.searchLimits = &sl
	s.gameHistory = gameHistory
	go s.run(b, &sl)
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch stops a running search as quickly as possible and blocks
// until it has actually finished and sent its result.
func (s *Search) StopSearch() {
	s.stopFlag.Store(true)
	s.WaitWhileSearching()
}

// PonderHit activates time control on a running ponder search without
// interrupting it.
func (s *Search) PonderHit() {
	if s.IsSearching() && s.searchLimits.Ponder {
		s.searchLimits.Ponder = false
		s.log.Debug("Ponderhit during search - activating time control")
		return
	}
	s.log.Warning("Ponderhit received while not pondering")
}

// IsSearching reports whether a search is currently running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until the current search (if any) has stopped.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// SetUciHandler sets the callback surface used to push protocol output.
func (s *Search) SetUciHandler(h uciInterface.UciDriver) {
	s.uciHandlerPtr = h
}

// GetUciHandlerPtr returns the currently configured handler, or nil.
func (s *Search) GetUciHandlerPtr() uciInterface.UciDriver {
	return s.uciHandlerPtr
}

// IsReady runs any pending lazy initialization and signals readiness.
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendReadyOk()
	} else {
		s.log.Debug("uci >> readyok")
	}
}

// ClearHash clears the transposition table. Ignored with a warning while
// a search is running.
func (s *Search) ClearHash() {
	if s.IsSearching() {
		msg := "Can't clear hash while searching."
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return
	}
	if s.tt != nil {
		s.tt.Clear()
		s.sendInfoStringToUci("Hash cleared")
	}
}

// ResizeCache drops and re-allocates the transposition table at the size
// currently configured. Ignored with a warning while searching.
func (s *Search) ResizeCache() {
	if s.IsSearching() {
		msg := "Can't resize hash while searching."
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return
	}
	s.tt = nil
	s.initialize()
	s.log.Debug(util.GcWithStats())
	if s.tt != nil {
		s.sendInfoStringToUci(out.Sprintf("Hash resized: %s", s.tt.String()))
	}
}

// LastSearchResult returns a copy of the last completed search's result.
func (s *Search) LastSearchResult() Result {
	if s.lastSearchResult == nil {
		return Result{}
	}
	return *s.lastSearchResult
}

// NodesVisited returns the node count of the search currently running (or
// the last one that ran).
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited
}

// Statistics returns a pointer to the live search statistics.
func (s *Search) Statistics() *Statistics {
	return &s.statistics
}

// //////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////

func (s *Search) initialize() {
	if config.Settings.Search.UseTT && s.tt == nil {
		sizeInMByte := config.Settings.Search.TTSizeMb
		if sizeInMByte == 0 {
			sizeInMByte = 64
		}
		s.tt = transpositiontable.NewTable(sizeInMByte)
	}
	if !config.Settings.Search.UseTT {
		s.log.Info("Transposition Table is disabled in configuration")
	}
}

// run is the search goroutine body started by StartSearch.
func (s *Search) run(b board.Board, sl *Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("Search already running")
		return
	}
	defer s.isRunning.Release(1)

	s.startTime = time.Now()
	s.b = b
	s.stopFlag.Store(false)
	s.hasResult = false
	s.nodesVisited = 0
	s.qNodesVisited = 0
	s.statistics = Statistics{}
	s.lastUciUpdateTime = s.startTime
	s.sameBestStreak = 0
	s.sameValueStreak = 0
	s.lastBestMove = NoMove
	s.lastBestValue = ScoreNone
	for i := range s.stack {
		s.stack[i] = stackEntry{}
	}
	s.initialize()

	s.setupSearchLimits(sl)

	if s.tt != nil {
		s.log.Infof("Transposition Table: Using TT (%s)", s.tt.String())
	} else {
		s.log.Info("Transposition Table: Not using TT")
	}

	s.log.Infof("Search using: PVS=%t Aspiration=%t",
		config.Settings.Search.UsePVS, config.Settings.Search.UseAspiration)

	s.initSemaphore.Release(1)

	result := s.iterativeDeepening()

	result.SearchTime = time.Since(s.startTime)

	s.log.Info(out.Sprintf("Search finished after %s", result.SearchTime))
	s.log.Info(out.Sprintf("Search depth was %d(%d) with %d nodes visited. NPS = %d nps",
		result.SearchDepth, result.ExtraDepth, s.nodesVisited, util.Nps(s.nodesVisited, result.SearchTime)))
	s.log.Debugf("Search stats: %s", s.statistics.String())
	s.log.Infof("Search result: %s", result.String())

	s.lastSearchResult = result
	s.hasResult = true
	s.stopFlag.Store(true)

	s.sendResult(result)
}

// checkAbort is the periodic yield point called from inside negamax and
// quiescence: it re-checks the hard time limit and node limit, and sets
// stopFlag (so every frame on the call stack unwinds promptly) the first
// time either fires.
func (s *Search) checkAbort() bool {
	if s.stopFlag.Load() {
		return true
	}
	if s.searchLimits.Nodes > 0 && s.nodesVisited >= s.searchLimits.Nodes {
		s.stopFlag.Store(true)
		return true
	}
	if s.searchLimits.TimedOrMoveTime() && !s.searchLimits.Infinite && !s.searchLimits.Ponder {
		if time.Since(s.startTime) >= s.limits.Hard {
			s.stopFlag.Store(true)
			return true
		}
	}
	s.sendSearchUpdateToUci()
	return false
}

func (s *Search) setupSearchLimits(sl *Limits) {
	if sl.Infinite {
		s.log.Info("Search mode: Infinite")
	}
	if sl.Ponder {
		s.log.Info("Search mode: Ponder")
	}
	if sl.Mate > 0 {
		s.log.Infof("Search mode: Search for mate in %d", sl.Mate)
	}
	if sl.TimeControl {
		white := s.b.SideToMove() == White
		ti := timemanager.Info{
			WhiteTime: sl.WhiteTime,
			BlackTime: sl.BlackTime,
			WhiteInc:  sl.WhiteInc,
			BlackInc:  sl.BlackInc,
			MoveTime:  sl.MoveTime,
			MovesToGo: sl.MovesToGo,
			Infinite:  sl.Infinite,
		}
		s.limits = timemanager.Calculate(ti, white, 1.0)
		s.log.Info(out.Sprintf("Search mode: Time limit: optimum=%s soft=%s hard=%s",
			s.limits.Optimum, s.limits.Soft, s.limits.Hard))
	} else {
		s.log.Info("Search mode: No time control")
	}
	if sl.Depth > 0 {
		s.log.Debugf("Search mode: Depth limited: %d", sl.Depth)
	}
	if sl.Nodes > 0 {
		s.log.Infof(out.Sprintf("Search mode: Nodes limited: %d", sl.Nodes))
	}
}

// checkDrawRepAnd50 reports whether the current position has already
// repeated at least n times across gameHistory, or is drawn by the
// 50-move rule or insufficient material per the board itself.
func (s *Search) checkDrawRepAnd50(n int) bool {
	if s.b.IsDrawByRule() {
		return true
	}
	key := s.b.Zobrist()
	count := 0
	for _, k := range s.gameHistory {
		if k == key {
			count++
		}
	}
	return count+1 >= n
}

func (s *Search) sendResult(r *Result) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendResult(r.BestMove, r.PonderMove)
	}
}

func (s *Search) sendInfoStringToUci(msg string) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendInfoString(msg)
	} else {
		s.log.Info(msg)
	}
}

// sendSearchUpdateToUci pushes a rate-limited progress update - at most
// once per second - so UCI front-ends see the engine is alive during a
// long-running iteration without flooding the pipe.
func (s *Search) sendSearchUpdateToUci() {
	if time.Since(s.lastUciUpdateTime) <= time.Second {
		return
	}
	s.lastUciUpdateTime = time.Now()
	hashfull := 0
	if s.tt != nil {
		hashfull = s.tt.Hashfull()
	}
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendSearchUpdate(
			s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth,
			s.nodesVisited, s.getNps(), time.Since(s.startTime), hashfull)
		s.uciHandlerPtr.SendCurrentRootMove(s.statistics.CurrentRootMove, s.statistics.CurrentRootMoveIndex)
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d nodes %d nps %d time %d hashfull %d",
			s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth,
			s.nodesVisited, s.getNps(), time.Since(s.startTime).Milliseconds(), hashfull))
	}
}

func (s *Search) sendIterationEndInfoToUci(pv moveslice.MoveSlice) {
	hashfull := 0
	if s.tt != nil {
		hashfull = s.tt.Hashfull()
	}
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendIterationEndInfo(
			s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue, s.nodesVisited, s.getNps(), time.Since(s.startTime), pv)
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d score %s nodes %d nps %d time %d hashfull %d pv %s",
			s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue.String(), s.nodesVisited, s.getNps(),
			time.Since(s.startTime).Milliseconds(), hashfull, pv.StringUci()))
	}
}

func (s *Search) sendAspirationResearchInfo(bound Bound, pv moveslice.MoveSlice) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendAspirationResearchInfo(
			s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue, bound, s.nodesVisited, s.getNps(), time.Since(s.startTime), pv)
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d score %s %s nodes %d nps %d time %d pv %s",
			s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue.String(), bound.String(), s.nodesVisited, s.getNps(),
			time.Since(s.startTime).Milliseconds(), pv.StringUci()))
	}
}

// getNps reports 0 instead of a rate above a 15M nps sanity ceiling, so a
// very short elapsed time cannot report an absurd rate.
func (s *Search) getNps() uint64 {
	nps := util.Nps(s.nodesVisited, time.Since(s.startTime)+time.Millisecond)
	if nps > 15_000_000 {
		nps = 0
	}
	return nps
}
