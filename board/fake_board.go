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

package board

import (
	"strings"

	. "github.com/mkopp/gopher-search/types"
)

// FakeNode describes one position in a FakeBoard's scripted game tree: the
// moves available there, a static eval, and whether the side to move is in
// check. It is keyed by the UCI move path that reaches it from the root.
type FakeNode struct {
	Moves   []Move
	Eval    Score
	InCheck bool
	// Captures, if non-nil, overrides which of Moves count as captures for
	// GenerateCaptures; otherwise none of Moves are treated as captures.
	Captures []Move
}

// FakeBoard is a scriptable Board test double. It does not know any chess
// rules: a test builds a tree of FakeNode values keyed by move-path and the
// board replays make/unmake against that script. This lets search package
// tests exercise negamax/quiescence control flow (cutoffs, extensions,
// draw detection, mate detection) without a real move generator.
type FakeBoard struct {
	Nodes map[string]FakeNode
	// Draws, if set, marks move-paths that are a rule draw (50-move /
	// insufficient material) regardless of the node script.
	Draws map[string]bool

	path     []Move
	side     Color
	zobrist  uint64
	material map[Color]Score
}

// NewFakeBoard creates an empty scripted board. Side defaults to White.
func NewFakeBoard() *FakeBoard {
	return &FakeBoard{
		Nodes:    map[string]FakeNode{},
		Draws:    map[string]bool{},
		side:     White,
		zobrist:  0x9E3779B97F4A7C15,
		material: map[Color]Score{White: 2400, Black: 2400},
	}
}

func pathKey(path []Move) string {
	var sb strings.Builder
	for i, m := range path {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}

func (b *FakeBoard) node() FakeNode {
	return b.Nodes[pathKey(b.path)]
}

// Evaluate returns the scripted static eval, from the side-to-move's
// perspective (the script author supplies each node's eval already
// side-relative).
func (b *FakeBoard) Evaluate() Score {
	return b.node().Eval
}

type fakeUndo struct {
	zobrist uint64
	side    Color
}

// TryMake plays m if it is listed for the current scripted node; any move
// not in the script is treated as illegal (leaves own king in check).
func (b *FakeBoard) TryMake(m Move) (Undo, bool) {
	n := b.node()
	legal := false
	for _, cand := range n.Moves {
		if cand == m {
			legal = true
			break
		}
	}
	if !legal {
		return nil, false
	}
	u := fakeUndo{zobrist: b.zobrist, side: b.side}
	b.path = append(b.path, m)
	b.zobrist ^= uint64(m) * 0x2545F4914F6CDD1D
	b.side = b.side.Flip()
	return u, true
}

// Unmake restores the pre-move state captured by undo.
func (b *FakeBoard) Unmake(_ Move, undo Undo) {
	u := undo.(fakeUndo)
	b.path = b.path[:len(b.path)-1]
	b.zobrist = u.zobrist
	b.side = u.side
}

// MakeNull flips the side to move without consuming a scripted move.
func (b *FakeBoard) MakeNull() Undo {
	u := fakeUndo{zobrist: b.zobrist, side: b.side}
	b.zobrist ^= 0xD1B54A32D192ED03
	b.side = b.side.Flip()
	return u
}

// UnmakeNull restores the state from before MakeNull.
func (b *FakeBoard) UnmakeNull(undo Undo) {
	u := undo.(fakeUndo)
	b.zobrist = u.zobrist
	b.side = u.side
}

// Zobrist returns the current synthetic hash key.
func (b *FakeBoard) Zobrist() uint64 {
	return b.zobrist
}

// InCheck reports the scripted in-check flag for the current node.
func (b *FakeBoard) InCheck() bool {
	return b.node().InCheck
}

// SideToMove returns the current side to move.
func (b *FakeBoard) SideToMove() Color {
	return b.side
}

// NonPawnMaterial returns a fixed non-pawn material figure per side,
// overridable by tests via SetMaterial.
func (b *FakeBoard) NonPawnMaterial(c Color) Score {
	return b.material[c]
}

// SetMaterial lets a test configure the zugzwang/endgame-phase gates.
func (b *FakeBoard) SetMaterial(c Color, v Score) {
	b.material[c] = v
}

// IsDrawByRule reports whether the current move-path was marked a draw.
func (b *FakeBoard) IsDrawByRule() bool {
	return b.Draws[pathKey(b.path)]
}

// GeneratePseudoLegal appends the scripted node's moves.
func (b *FakeBoard) GeneratePseudoLegal(buf []Move) []Move {
	return append(buf, b.node().Moves...)
}

// GenerateLegal appends the scripted node's moves (the script only ever
// lists legal moves; TryMake's legality gate covers the rest).
func (b *FakeBoard) GenerateLegal(buf []Move) []Move {
	return append(buf, b.node().Moves...)
}

// GenerateCaptures appends the scripted node's captures subset.
func (b *FakeBoard) GenerateCaptures(buf []Move) []Move {
	return append(buf, b.node().Captures...)
}

// See treats every exchange as break-even: it reports true exactly when
// threshold <= 0. FakeBoard scripts do not model exchanges.
// Tests that need SEE-gated pruning behaviour script it via Captures /
// Eval instead and assert on pruning counters.
func (b *FakeBoard) See(_ Move, threshold Score) bool {
	return threshold <= 0
}

// PieceAt always reports NoPieceType; tests relying on MVV/LVA ordering
// script move lists already in the desired order instead.
func (b *FakeBoard) PieceAt(_ Square) PieceType {
	return NoPieceType
}
