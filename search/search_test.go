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
	"os"
	"testing"
	"time"

	logging2 "github.com/op/go-logging"
	"github.com/stretchr/testify/assert"

	"github.com/mkopp/gopher-search/board"
	"github.com/mkopp/gopher-search/config"
	"github.com/mkopp/gopher-search/logging"
	. "github.com/mkopp/gopher-search/types"
)

var logTest *logging2.Logger

// Setup the tests.
func TestMain(m *testing.M) {
	config.Setup("")
	logTest = logging.GetTestLog()
	os.Exit(m.Run())
}

// infiniteBoard is a minimal board.Board double with an unbounded game
// tree: one legal quiet move per node, side alternating, never in check
// and never a rule draw. It exists to give a search something to chew on
// for TestIsSearching/TestWaitWhileSearching without scripting every ply
// the way board.FakeBoard's move-path map would require.
type infiniteBoard struct {
	side    Color
	zobrist uint64
	move    Move
}

func newInfiniteBoard() *infiniteBoard {
	return &infiniteBoard{side: White, zobrist: 1, move: NewMove(Square(0), Square(1), FlagQuiet)}
}

func (b *infiniteBoard) Evaluate() Score                       { return ScoreZero }
func (b *infiniteBoard) Unmake(_ Move, _ board.Undo)            {}
func (b *infiniteBoard) MakeNull() board.Undo                   { return nil }
func (b *infiniteBoard) UnmakeNull(_ board.Undo)                {}
func (b *infiniteBoard) Zobrist() uint64                        { return b.zobrist }
func (b *infiniteBoard) InCheck() bool                          { return false }
func (b *infiniteBoard) SideToMove() Color                      { return b.side }
func (b *infiniteBoard) NonPawnMaterial(_ Color) Score          { return 2400 }
func (b *infiniteBoard) IsDrawByRule() bool                     { return false }
func (b *infiniteBoard) GenerateCaptures(buf []Move) []Move     { return buf }
func (b *infiniteBoard) See(_ Move, threshold Score) bool       { return threshold <= 0 }
func (b *infiniteBoard) PieceAt(_ Square) PieceType             { return NoPieceType }

func (b *infiniteBoard) TryMake(_ Move) (board.Undo, bool) {
	b.zobrist++
	b.side = b.side.Flip()
	return nil, true
}

func (b *infiniteBoard) GeneratePseudoLegal(buf []Move) []Move {
	return append(buf, b.move)
}

func (b *infiniteBoard) GenerateLegal(buf []Move) []Move {
	return append(buf, b.move)
}

func TestSearch_IsReady(t *testing.T) {
	search := NewSearch()
	search.IsReady()
}

func TestWaitWhileSearching(t *testing.T) {
	search := NewSearch()
	b := newInfiniteBoard()
	sl := NewSearchLimits()
	sl.Infinite = true
	go func() {
		time.Sleep(2 * time.Second)
		search.StopSearch()
	}()
	start := time.Now()
	search.StartSearch(b, *sl, nil)
	logTest.Debug("Search started...waiting to finish")
	search.WaitWhileSearching()
	logTest.Debug("Search finished")
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed.Milliseconds(), int64(1_500))
}

func TestIsSearching(t *testing.T) {
	search := NewSearch()
	b := newInfiniteBoard()
	sl := NewSearchLimits()
	sl.Infinite = true
	search.StartSearch(b, *sl, nil)
	time.Sleep(500 * time.Millisecond)
	assert.True(t, search.IsSearching())
	search.StopSearch()
	search.WaitWhileSearching()
	assert.False(t, search.IsSearching())
}

func TestMatePosition(t *testing.T) {
	fb := board.NewFakeBoard()
	mateMove := NewMove(Square(12), Square(28), FlagQuiet)
	fb.Nodes[""] = board.FakeNode{Moves: []Move{mateMove}}
	fb.Nodes[mateMove.String()] = board.FakeNode{InCheck: true}

	search := NewSearch()
	sl := NewSearchLimits()
	sl.Depth = 1
	search.StartSearch(fb, *sl, nil)
	search.WaitWhileSearching()

	result := search.LastSearchResult()
	logTest.Debug(result.String())
	assert.True(t, result.BestValue.IsMateScore())
	assert.True(t, result.BestValue > 0)
	assert.EqualValues(t, mateMove, result.BestMove)
}

func TestStalematePosition(t *testing.T) {
	fb := board.NewFakeBoard()
	fb.Nodes[""] = board.FakeNode{}

	search := NewSearch()
	sl := NewSearchLimits()
	search.StartSearch(fb, *sl, nil)
	search.WaitWhileSearching()

	result := search.LastSearchResult()
	logTest.Debug(result.String())
	assert.EqualValues(t, ScoreDraw, result.BestValue)
}

func TestCheckDrawRepAnd50(t *testing.T) {
	fb := board.NewFakeBoard()
	search := NewSearch()
	search.b = fb
	search.gameHistory = []uint64{fb.Zobrist(), fb.Zobrist()}
	assert.True(t, search.checkDrawRepAnd50(3))
	assert.False(t, search.checkDrawRepAnd50(4))
}
