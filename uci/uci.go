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

// Package uci contains the UciHandler data structure and functionality to
// handle the UCI protocol communication between the Chess User Interface
// and the search engine. It formats the engine's bit-exact "info" and
// "bestmove" lines, but owns no chess rules itself: board construction and
// move parsing are supplied by the caller, since this engine's board
// representation and move generator are external collaborators.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	logging2 "github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mkopp/gopher-search/board"
	"github.com/mkopp/gopher-search/logging"
	"github.com/mkopp/gopher-search/moveslice"
	"github.com/mkopp/gopher-search/search"
	. "github.com/mkopp/gopher-search/types"
	"github.com/mkopp/gopher-search/uciInterface"
)

var out = message.NewPrinter(language.German)
var log = logging.GetLog()

// NewBoardFunc builds a fresh board.Board from a FEN string, or the start
// position when fen == "startpos".
type NewBoardFunc func(fen string) board.Board

// MoveFromUciFunc resolves one UCI move token (e.g. "e2e4") against b,
// returning ok=false if the token does not name a legal move there.
type MoveFromUciFunc func(b board.Board, token string) (move Move, ok bool)

// UciHandler handles all communication with the chess ui via UCI
// and controls options and search.
// Create an instance with NewUciHandler().
type UciHandler struct {
	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	newBoard    NewBoardFunc
	moveFromUci MoveFromUciFunc

	mySearch    *search.Search
	myBoard     board.Board
	gameHistory []uint64

	uciLog *logging2.Logger
}

// ///////////////////////////////////////////////////////////
// Public
// ///////////////////////////////////////////////////////////

// NewUciHandler creates a new UciHandler instance. newBoard and
// moveFromUci plug in whatever board representation and move generator
// the caller has wired up; this package never constructs chess rules
// itself.
// Input / Output io can be replaced by changing the instance's InIo and
// OutIo members.
//  Example:
// 		u.InIo = bufio.NewScanner(os.Stdin)
//		u.OutIo = bufio.NewWriter(os.Stdout)
func NewUciHandler(newBoard NewBoardFunc, moveFromUci MoveFromUciFunc) *UciHandler {
	u := &UciHandler{
		InIo:        bufio.NewScanner(os.Stdin),
		OutIo:       bufio.NewWriter(os.Stdout),
		newBoard:    newBoard,
		moveFromUci: moveFromUci,
		mySearch:    search.NewSearch(),
		uciLog:      logging.GetUciLog(),
	}
	u.InIo.Buffer(make([]byte, 1<<20), 1<<20)
	if newBoard != nil {
		u.myBoard = newBoard("startpos")
	}
	var uciDriver uciInterface.UciDriver = u
	u.mySearch.SetUciHandler(uciDriver)
	return u
}

// Loop starts the main loop to receive commands through
// input stream (pipe or user).
func (u *UciHandler) Loop() {
	u.loop()
}

// Command handles a single line of UCI protocol aka command.
// Returns the uci response as string output.
// Mostly useful for debugging and unit testing.
func (u *UciHandler) Command(cmd string) string {
	tmp := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = tmp
	return buffer.String()
}

// SendReadyOk tells the UciDriver to send the uci response "readyok" to the UCI user interface.
func (u *UciHandler) SendReadyOk() {
	u.send("readyok")
}

// SendInfoString sends an arbitrary string to the UCI user interface.
func (u *UciHandler) SendInfoString(info string) {
	u.sendInfoString(info)
}

// SendIterationEndInfo sends the bit-exact "info" line for a completed
// iteration: depth, seldepth, score (side-to-move perspective), nodes,
// nps, time and the principal variation.
func (u *UciHandler) SendIterationEndInfo(depth int, seldepth int, value Score, nodes uint64, nps uint64, t time.Duration, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d seldepth %d score %s nodes %d nps %d time %d pv %s",
		depth, seldepth, value.String(), nodes, nps, t.Milliseconds(), pv.StringUci()))
}

// SendSearchUpdate sends a periodic update about search stats to the UCI ui.
func (u *UciHandler) SendSearchUpdate(depth int, seldepth int, nodes uint64, nps uint64, t time.Duration, hashfull int) {
	u.send(fmt.Sprintf("info depth %d seldepth %d nodes %d nps %d time %d hashfull %d",
		depth, seldepth, nodes, nps, t.Milliseconds(), hashfull))
}

// SendAspirationResearchInfo sends information about an aspiration-window
// re-search: the standard keys plus a free-form "bound" diagnostic key.
func (u *UciHandler) SendAspirationResearchInfo(depth int, seldepth int, value Score, bound Bound, nodes uint64, nps uint64, t time.Duration, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d seldepth %d score %s nodes %d nps %d time %d pv %s bound %s",
		depth, seldepth, value.String(), nodes, nps, t.Milliseconds(), pv.StringUci(), bound.String()))
}

// SendCurrentRootMove sends the currently searched root move to the UCI ui.
func (u *UciHandler) SendCurrentRootMove(currMove Move, moveNumber int) {
	u.send(fmt.Sprintf("info currmove %s currmovenumber %d", currMove.String(), moveNumber))
}

// SendCurrentLine sends a periodic update about the currently searched variation to the UCI ui.
func (u *UciHandler) SendCurrentLine(moveList moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info currline %s", moveList.StringUci()))
}

// SendResult sends the search result to the UCI ui after the search has
// ended or has been stopped.
func (u *UciHandler) SendResult(bestMove Move, ponderMove Move) {
	var resultStr strings.Builder
	resultStr.WriteString("bestmove ")
	resultStr.WriteString(bestMove.String())
	if ponderMove != NoMove {
		resultStr.WriteString(" ponder ")
		resultStr.WriteString(ponderMove.String())
	}
	u.send(resultStr.String())
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

func (u *UciHandler) loop() {
	// infinite loop until "quit" command is received
	for {
		log.Debugf("Waiting for command:")
		for u.InIo.Scan() {
			if u.handleReceivedCommand(u.InIo.Text()) {
				// quit command received
				return
			}
			log.Debugf("Waiting for command:")
		}
	}
}

var regexWhiteSpace = regexp.MustCompile(`\s+`)

func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	if len(cmd) == 0 {
		return false
	}
	log.Debugf("Received command: %s", cmd)
	u.uciLog.Infof("<< %s", cmd)
	tokens := regexWhiteSpace.Split(cmd, -1)
	strings.TrimSpace(tokens[0])
	switch tokens[0] {
	case "quit":
		return true
	case "uci":
		u.uciCommand()
	case "setoption":
		u.setOptionCommand(tokens)
	case "isready":
		u.isReadyCommand()
	case "ucinewgame":
		u.uciNewGameCommand()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.stopCommand()
	case "ponderhit":
		u.ponderHitCommand()
	case "register":
		u.registerCommand()
	case "debug":
		u.debugCommand()
	case "noop":
	default:
		log.Warningf("Error: Unknown command: %s", cmd)
	}
	log.Debugf("Processed command: %s", cmd)
	return false
}

func (u *UciHandler) uciCommand() {
	u.send("id name gopher-search")
	u.send("id author the gopher-search contributors")
	options := uciOptions.GetOptions()
	for _, o := range *options {
		u.send(o)
	}
	u.send("uciok")
}

// setOptionCommand reads the option name and the optional value and
// checks if the uci option exists. If it does, its new value is stored
// and its handler function is called.
func (u *UciHandler) setOptionCommand(tokens []string) {
	name := ""
	value := ""
	if len(tokens) > 1 && tokens[1] == "name" {
		i := 2
		for i < len(tokens) && tokens[i] != "value" {
			name += tokens[i] + " "
			i++
		}
		name = strings.TrimSpace(name)
		if len(tokens) > i && tokens[i] == "value" && len(tokens) > i+1 {
			value += tokens[i+1]
		}
	} else {
		msg := "Command 'setoption' is malformed"
		u.sendInfoString(msg)
		log.Warning(msg)
		return
	}
	o, found := uciOptions[name]
	if found {
		o.CurrentValue = value
		o.HandlerFunc(u, o)
	} else {
		msg := out.Sprintf("Command 'setoption': No such option '%s'", name)
		u.sendInfoString(msg)
		log.Warning(msg)
		return
	}
}

// isReadyCommand requests the isready status from the Search, which in
// turn might initialize itself before replying "readyok".
func (u *UciHandler) isReadyCommand() {
	u.mySearch.IsReady()
}

func (u *UciHandler) ponderHitCommand() {
	u.mySearch.PonderHit()
}

// stopCommand sends a stop signal to a running search.
func (u *UciHandler) stopCommand() {
	u.mySearch.StopSearch()
}

// goCommand starts a search after reading in the search limits provided.
func (u *UciHandler) goCommand(tokens []string) {
	if u.myBoard == nil {
		msg := "Command 'go' received with no board wired in"
		u.sendInfoString(msg)
		log.Warning(msg)
		return
	}
	searchLimits, failed := u.readSearchLimits(tokens)
	if failed {
		return
	}
	u.mySearch.StartSearch(u.myBoard, *searchLimits, u.gameHistory)
}

// positionCommand sets the current position as given by the uci command.
func (u *UciHandler) positionCommand(tokens []string) {
	if u.newBoard == nil || u.moveFromUci == nil {
		msg := "Command 'position' received with no board factory wired in"
		u.sendInfoString(msg)
		log.Warning(msg)
		return
	}

	fen := "startpos"
	i := 1
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var fenb strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			fenb.WriteString(tokens[i])
			fenb.WriteString(" ")
			i++
		}
		fen = strings.TrimSpace(fenb.String())
		if len(fen) > 0 {
			break
		}
		fallthrough
	default:
		msg := out.Sprintf("Command 'position' malformed. %s", tokens)
		u.sendInfoString(msg)
		log.Warning(msg)
		return
	}
	u.myBoard = u.newBoard(fen)
	u.gameHistory = u.gameHistory[:0]

	if i < len(tokens) {
		if tokens[i] == "moves" {
			i++
			for i < len(tokens) {
				move, ok := u.moveFromUci(u.myBoard, tokens[i])
				if !ok {
					msg := out.Sprintf("Command 'position' malformed. Invalid move '%s' (%s)", tokens[i], tokens)
					u.sendInfoString(msg)
					log.Warning(msg)
					return
				}
				u.gameHistory = append(u.gameHistory, u.myBoard.Zobrist())
				if _, ok := u.myBoard.TryMake(move); !ok {
					msg := out.Sprintf("Command 'position' malformed. Illegal move '%s' (%s)", tokens[i], tokens)
					u.sendInfoString(msg)
					log.Warning(msg)
					return
				}
				i++
			}
		} else {
			msg := out.Sprintf("Command 'position' malformed moves. %s", tokens)
			u.sendInfoString(msg)
			log.Warning(msg)
			return
		}
	}
	log.Debugf("New position set from: %s", fen)
}

// uciNewGameCommand signals the search to stop and that a new game should
// be started - resetting all search-related data (hash table generation,
// move-ordering tables).
func (u *UciHandler) uciNewGameCommand() {
	if u.newBoard != nil {
		u.myBoard = u.newBoard("startpos")
	}
	u.gameHistory = nil
	u.mySearch.NewGame()
}

func (u *UciHandler) debugCommand() {
	msg := "Command 'debug' not implemented"
	u.sendInfoString(msg)
	log.Warning(msg)
}

func (u *UciHandler) registerCommand() {
	msg := "Command 'register' not implemented"
	u.sendInfoString(msg)
	log.Warning(msg)
}

func (u *UciHandler) sendInfoString(s string) {
	u.send(out.Sprintf("info string %s", s))
}

func (u *UciHandler) send(s string) {
	u.uciLog.Infof(">> %s", s)
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}

func (u *UciHandler) readSearchLimits(tokens []string) (*search.Limits, bool) {
	searchLimits := search.NewSearchLimits()
	i := 1
	for i < len(tokens) {
		var err error
		switch tokens[i] {
		case "moves":
			i++
			for i < len(tokens) {
				move, ok := u.moveFromUci(u.myBoard, tokens[i])
				if !ok {
					break
				}
				searchLimits.Moves.PushBack(move)
				i++
			}
		case "infinite":
			i++
			searchLimits.Infinite = true
		case "ponder":
			i++
			searchLimits.Ponder = true
		case "depth":
			i++
			searchLimits.Depth, err = strconv.Atoi(tokens[i])
			if err != nil {
				return u.malformedGo("Depth", tokens[i], tokens)
			}
			i++
		case "nodes":
			i++
			n, perr := strconv.ParseInt(tokens[i], 10, 64)
			if perr != nil {
				return u.malformedGo("Nodes", tokens[i], tokens)
			}
			searchLimits.Nodes = uint64(n)
			i++
		case "mate":
			i++
			searchLimits.Mate, err = strconv.Atoi(tokens[i])
			if err != nil {
				return u.malformedGo("Mate", tokens[i], tokens)
			}
			i++
		case "movetime":
			i++
			n, perr := strconv.ParseInt(tokens[i], 10, 64)
			if perr != nil {
				return u.malformedGo("MoveTime", tokens[i], tokens)
			}
			searchLimits.MoveTime = time.Duration(n) * time.Millisecond
			searchLimits.TimeControl = true
			i++
		case "wtime":
			i++
			n, perr := strconv.ParseInt(tokens[i], 10, 64)
			if perr != nil {
				return u.malformedGo("WhiteTime", tokens[i], tokens)
			}
			searchLimits.WhiteTime = time.Duration(n) * time.Millisecond
			searchLimits.TimeControl = true
			i++
		case "btime":
			i++
			n, perr := strconv.ParseInt(tokens[i], 10, 64)
			if perr != nil {
				return u.malformedGo("BlackTime", tokens[i], tokens)
			}
			searchLimits.BlackTime = time.Duration(n) * time.Millisecond
			searchLimits.TimeControl = true
			i++
		case "winc":
			i++
			n, perr := strconv.ParseInt(tokens[i], 10, 64)
			if perr != nil {
				return u.malformedGo("WhiteInc", tokens[i], tokens)
			}
			searchLimits.WhiteInc = time.Duration(n) * time.Millisecond
			i++
		case "binc":
			i++
			n, perr := strconv.ParseInt(tokens[i], 10, 64)
			if perr != nil {
				return u.malformedGo("BlackInc", tokens[i], tokens)
			}
			searchLimits.BlackInc = time.Duration(n) * time.Millisecond
			i++
		case "movestogo":
			i++
			searchLimits.MovesToGo, err = strconv.Atoi(tokens[i])
			if err != nil {
				return u.malformedGo("Movestogo", tokens[i], tokens)
			}
			i++
		default:
			msg := out.Sprintf("UCI command go malformed. Invalid subcommand: %s", tokens[i])
			u.sendInfoString(msg)
			log.Warning(msg)
			return nil, true
		}
	}
	if !(searchLimits.Infinite ||
		searchLimits.Ponder ||
		searchLimits.Depth > 0 ||
		searchLimits.Nodes > 0 ||
		searchLimits.Mate > 0 ||
		searchLimits.TimeControl) {
		msg := out.Sprintf("UCI command go malformed. No effective limits set %s", tokens)
		u.sendInfoString(msg)
		log.Warning(msg)
		return nil, true
	}
	if searchLimits.TimeControl && searchLimits.MoveTime == 0 {
		white := u.myBoard.SideToMove() == White
		if white && searchLimits.WhiteTime == 0 {
			msg := out.Sprintf("UCI command go invalid. White to move but time for white is zero! %s", tokens)
			u.sendInfoString(msg)
			log.Warning(msg)
			return nil, true
		} else if !white && searchLimits.BlackTime == 0 {
			msg := out.Sprintf("UCI command go invalid. Black to move but time for black is zero! %s", tokens)
			u.sendInfoString(msg)
			log.Warning(msg)
			return nil, true
		}
	}
	return searchLimits, false
}

func (u *UciHandler) malformedGo(field, got string, tokens []string) (*search.Limits, bool) {
	msg := out.Sprintf("UCI command go malformed. %s value not a number: %s", field, got)
	u.sendInfoString(msg)
	log.Warning(msg)
	return nil, true
}
