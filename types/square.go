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

// Package types holds the small value types shared across the search core:
// squares, colors, pieces, moves, scores and bound tags. None of it depends
// on board representation or move generation - those are supplied by an
// external collaborator behind the board.Board interface.
package types

import "strings"

// Square is a 0-63 board index, a1=0 .. h8=63, rank by rank (a1, b1, ... h1, a2, ...).
type Square int8

// SquareNone is the sentinel for "no square" (e.g. no en-passant target).
const SquareNone Square = -1

// File returns the 0-7 file (a-h) of the square.
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the 0-7 rank (1-8) of the square.
func (sq Square) Rank() int {
	return int(sq) >> 3
}

var fileChars = "abcdefgh"

// String renders the square in algebraic notation, e.g. "e4".
func (sq Square) String() string {
	if sq == SquareNone {
		return "-"
	}
	var sb strings.Builder
	sb.WriteByte(fileChars[sq.File()])
	sb.WriteByte(byte('1' + sq.Rank()))
	return sb.String()
}

// Color identifies the side to move.
type Color int8

const (
	White Color = iota
	Black
)

// Flip returns the opposite color.
func (c Color) Flip() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is the kind of chess piece, independent of color.
type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Value is the conventional material value of a piece type in centipawns,
// used by MVV/LVA ordering and SEE-adjacent heuristics. King is given a
// value larger than any real exchange, so a capture made by the king gets a
// lower MVV/LVA score than any capture made by another piece.
func (pt PieceType) Value() int {
	switch pt {
	case Pawn:
		return 100
	case Knight:
		return 320
	case Bishop:
		return 330
	case Rook:
		return 500
	case Queen:
		return 900
	case King:
		return 20000
	default:
		return 0
	}
}
