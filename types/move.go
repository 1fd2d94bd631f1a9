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

import "strings"

// Move is a 16-bit packed chess move: bits 0-5 the from-square, bits 6-11
// the to-square, bits 12-15 a move-type flag.
//
//  BITMAP 16-bit
//  1 1 1 1 1 1
//  5 4 3 2 1 0 9 8 7 6 5 4 3 2 1 0
//  -------------------------------
//                      1 1 1 1 1 1  from
//          1 1 1 1 1 1              to
//  1 1 1 1                          flag
type Move uint16

// NoMove is the sentinel for "no move".
const NoMove Move = 0

// MoveFlag is the 4-bit tag on a Move describing its special-move kind.
type MoveFlag uint8

const (
	FlagQuiet MoveFlag = iota
	FlagDoublePawnPush
	FlagCastleKingside
	FlagCastleQueenside
	FlagCapture
	FlagEnPassant
	_
	_
	FlagPromoKnight
	FlagPromoBishop
	FlagPromoRook
	FlagPromoQueen
	FlagPromoCaptureKnight
	FlagPromoCaptureBishop
	FlagPromoCaptureRook
	FlagPromoCaptureQueen
)

const (
	toShift   uint = 6
	flagShift uint = 12
	fromMask  Move = 0x3F
	toMask    Move = 0x3F << toShift
	flagMask  Move = 0xF << flagShift
)

// NewMove packs a from/to/flag triple into a Move.
func NewMove(from, to Square, flag MoveFlag) Move {
	return Move(from) | Move(to)<<toShift | Move(flag)<<flagShift
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & fromMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m & toMask) >> toShift)
}

// Flag returns the move-type tag.
func (m Move) Flag() MoveFlag {
	return MoveFlag((m & flagMask) >> flagShift)
}

// IsCapture reports whether the move removes a piece from the board,
// including en-passant and promotion-captures.
func (m Move) IsCapture() bool {
	switch m.Flag() {
	case FlagCapture, FlagEnPassant,
		FlagPromoCaptureKnight, FlagPromoCaptureBishop, FlagPromoCaptureRook, FlagPromoCaptureQueen:
		return true
	default:
		return false
	}
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	switch m.Flag() {
	case FlagPromoKnight, FlagPromoBishop, FlagPromoRook, FlagPromoQueen,
		FlagPromoCaptureKnight, FlagPromoCaptureBishop, FlagPromoCaptureRook, FlagPromoCaptureQueen:
		return true
	default:
		return false
	}
}

// IsCastle reports whether the move is a castling move.
func (m Move) IsCastle() bool {
	return m.Flag() == FlagCastleKingside || m.Flag() == FlagCastleQueenside
}

// PromotionType returns the piece type promoted to, or NoPieceType if this
// is not a promotion move.
func (m Move) PromotionType() PieceType {
	switch m.Flag() {
	case FlagPromoKnight, FlagPromoCaptureKnight:
		return Knight
	case FlagPromoBishop, FlagPromoCaptureBishop:
		return Bishop
	case FlagPromoRook, FlagPromoCaptureRook:
		return Rook
	case FlagPromoQueen, FlagPromoCaptureQueen:
		return Queen
	default:
		return NoPieceType
	}
}

// String renders the move in UCI long algebraic notation, e.g. "e2e4" or
// "a7a8q" for a promotion.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	var sb strings.Builder
	sb.WriteString(m.From().String())
	sb.WriteString(m.To().String())
	if m.IsPromotion() {
		switch m.PromotionType() {
		case Knight:
			sb.WriteByte('n')
		case Bishop:
			sb.WriteByte('b')
		case Rook:
			sb.WriteByte('r')
		case Queen:
			sb.WriteByte('q')
		}
	}
	return sb.String()
}
