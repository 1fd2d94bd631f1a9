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

// Package board declares the narrow surface the search core consumes from
// a concrete chess position: evaluation, move make/unmake, move generation
// and draw/repetition queries. Nothing in this package implements chess
// rules - a real engine wires in its own position representation behind
// this interface. This mirrors the way uciInterface.UciDriver decouples
// search from its caller: a small consumed interface instead of a
// concrete dependency, so search never imports a concrete board package.
package board

import (
	. "github.com/mkopp/gopher-search/types"
)

// Undo carries whatever state a Board needs to reverse a make/make-null
// call bit-for-bit. Its shape is entirely up to the Board implementation;
// the search core only ever passes it back unexamined.
type Undo interface{}

// Board is the external collaborator the search core depends on. Every
// method here is specified only by its contract - the implementation is
// deliberately out of scope for this module.
type Board interface {
	// Evaluate returns the static evaluation from the side-to-move's
	// perspective.
	Evaluate() Score

	// TryMake plays a pseudo-legal move. It returns ok=false if the move
	// leaves the mover's own king in check, in which case the board is
	// left unchanged. Otherwise the board is mutated to the post-move
	// state and undo can later restore it.
	TryMake(m Move) (undo Undo, ok bool)

	// Unmake restores the exact pre-move state captured by undo.
	Unmake(m Move, undo Undo)

	// MakeNull plays a null move (side flips, en-passant target clears,
	// nothing else changes).
	MakeNull() Undo

	// UnmakeNull restores the state from before MakeNull.
	UnmakeNull(undo Undo)

	// Zobrist returns the current position's hash key.
	Zobrist() uint64

	// InCheck reports whether the side to move is in check.
	InCheck() bool

	// SideToMove returns the color on move.
	SideToMove() Color

	// NonPawnMaterial returns the non-pawn material score for the given
	// color, used by zugzwang and endgame-phase gates.
	NonPawnMaterial(c Color) Score

	// IsDrawByRule reports whether the current position is a draw by the
	// 50-move rule or insufficient material. Repetition within the search
	// tree is the search core's own responsibility (the search stack), not
	// this method's.
	IsDrawByRule() bool

	// GeneratePseudoLegal appends all pseudo-legal moves to buf and
	// returns the extended slice.
	GeneratePseudoLegal(buf []Move) []Move

	// GenerateLegal appends all legal moves to buf and returns the
	// extended slice.
	GenerateLegal(buf []Move) []Move

	// GenerateCaptures appends all pseudo-legal captures and promotions to
	// buf and returns the extended slice.
	GenerateCaptures(buf []Move) []Move

	// See returns true if the static-exchange evaluation of m is at least
	// threshold.
	See(m Move, threshold Score) bool

	// PieceAt returns the piece type occupying sq, or NoPieceType if
	// empty. Used by MVV/LVA scoring.
	PieceAt(sq Square) PieceType
}
