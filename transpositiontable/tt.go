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

// Package transpositiontable implements a transposition table (cache) for a
// chess engine search. The Table type is not thread safe and needs to be
// synchronized externally if used from multiple threads - this is especially
// relevant for Resize and Clear, which must not be called while a search is
// probing or storing concurrently.
package transpositiontable

import (
	"math"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/mkopp/gopher-search/logging"
	. "github.com/mkopp/gopher-search/types"
)

var out = message.NewPrinter(language.German)

const (
	// MaxSizeInMB is the maximum size a table may be resized to.
	MaxSizeInMB = 65_536

	// maxGeneration is the width of the 6-bit generation field; it wraps
	// silently, so an entry written exactly 64 games back carries the
	// current generation again and Store treats it as current.
	maxGeneration = 64
)

// Table is the transposition table itself: a fixed-size, power-of-two
// array of slots addressed by the low bits of the zobrist key. Store
// always writes to the slot its key hashes to; Probe verifies the stored
// key32 fragment actually matches before returning a hit.
type Table struct {
	log                *logging.Logger
	data               []TtEntry
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64
	numberOfEntries    uint64
	generation         uint8
	Stats              Stats
}

// Stats holds cumulative usage counters for a Table.
type Stats struct {
	numberOfStores     uint64
	numberOfCollisions uint64
	numberOfOverwrites uint64
	numberOfUpdates    uint64
	numberOfProbes     uint64
	numberOfHits       uint64
	numberOfMisses     uint64
}

// NewTable creates a new Table sized to fit within sizeInMByte bytes of
// memory. The actual number of entries is rounded down to a power of two
// so slots can be addressed with a bit mask instead of a modulo.
func NewTable(sizeInMByte int) *Table {
	tt := Table{
		log: myLogging.GetLog("tt"),
	}
	tt.Resize(sizeInMByte)
	return &tt
}

// Resize re-allocates the table to fit within sizeInMByte bytes, clearing
// all entries and resetting the generation counter and stats. Must not be
// called concurrently with Probe/Store.
func (tt *Table) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	tt.sizeInByte = uint64(sizeInMByte) * MB
	entrySize := uint64(unsafe.Sizeof(TtEntry{}))
	if tt.sizeInByte < entrySize {
		tt.maxNumberOfEntries = 0
	} else {
		tt.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/entrySize))))
	}
	tt.hashKeyMask = tt.maxNumberOfEntries - 1

	tt.sizeInByte = tt.maxNumberOfEntries * entrySize
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.generation = 0
	tt.Stats = Stats{}

	tt.log.Info(out.Sprintf("TT Size %d MByte, Capacity %d entries (size=%d Byte) (Requested were %d MBytes)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, entrySize, sizeInMByte))
}

// NewGame advances the generation counter so stale entries from the
// previous game are preferred for replacement without having to sweep
// and rewrite every slot.
func (tt *Table) NewGame() {
	tt.generation = (tt.generation + 1) % maxGeneration
	tt.Stats = Stats{}
}

// Probe looks up key and, on a verified hit, returns the entry and true.
// The returned score still counts mate distance from the storing node;
// callers must apply Score.FromTT(ply) before using it.
func (tt *Table) Probe(key uint64) (TtEntry, bool) {
	tt.Stats.numberOfProbes++
	if tt.maxNumberOfEntries == 0 {
		tt.Stats.numberOfMisses++
		return TtEntry{}, false
	}
	e := &tt.data[tt.hash(key)]
	if e.IsEmpty() || e.key32 != uint32(key) {
		tt.Stats.numberOfMisses++
		return TtEntry{}, false
	}
	tt.Stats.numberOfHits++
	return *e, true
}

// Store writes a search result into the table. score must already be
// converted with Score.ToTT(ply) by the caller. The slot is always the one
// key hashes to; replacement follows: empty slot wins outright, otherwise
// an entry from an older generation is replaced, otherwise an entry of the
// same or lower depth is replaced; only a deeper entry from the current
// generation is kept.
func (tt *Table) Store(key uint64, move Move, depth int, score Score, bound Bound, eval Score) {
	if tt.maxNumberOfEntries == 0 {
		return
	}
	tt.Stats.numberOfStores++

	e := &tt.data[tt.hash(key)]
	key32 := uint32(key)

	if e.IsEmpty() {
		tt.numberOfEntries++
		*e = TtEntry{
			key32:      key32,
			move:       uint16(move),
			score:      int32(score),
			eval:       int32(eval),
			depthBound: packDepthBound(depth, bound, tt.generation),
		}
		return
	}

	if e.key32 != key32 {
		tt.Stats.numberOfCollisions++
		if e.Generation() != tt.generation || depth >= e.Depth() {
			tt.Stats.numberOfOverwrites++
			*e = TtEntry{
				key32:      key32,
				move:       uint16(move),
				score:      int32(score),
				eval:       int32(eval),
				depthBound: packDepthBound(depth, bound, tt.generation),
			}
		}
		return
	}

	// same position: refresh, preferring the new move unless none was given
	tt.Stats.numberOfUpdates++
	if move == NoMove {
		move = Move(e.move)
	}
	*e = TtEntry{
		key32:      key32,
		move:       uint16(move),
		score:      int32(score),
		eval:       int32(eval),
		depthBound: packDepthBound(depth, bound, tt.generation),
	}
}

// Prefetch is a documented no-op hint: Go gives no portable intrinsic
// for a cache-line prefetch, and the access pattern here (one slice
// index per probe) is not latency-bound enough for a platform-specific
// assembly stub to be worth the portability cost.
func (tt *Table) Prefetch(key uint64) {
	_ = key
}

// Clear empties all entries, resets the generation counter and stats.
// Must not be called concurrently with Probe/Store.
func (tt *Table) Clear() {
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.generation = 0
	tt.Stats = Stats{}
}

// Hashfull estimates table occupancy in permill as required by the UCI
// "info hashfull" field, sampling only the first 1000 slots rather than
// scanning the whole table.
func (tt *Table) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	sample := uint64(1000)
	if sample > tt.maxNumberOfEntries {
		sample = tt.maxNumberOfEntries
	}
	used := uint64(0)
	for i := uint64(0); i < sample; i++ {
		if !tt.data[i].IsEmpty() {
			used++
		}
	}
	return int((1000 * used) / sample)
}

// Len returns the number of non-empty entries currently in the table.
func (tt *Table) Len() uint64 {
	return tt.numberOfEntries
}

func (tt *Table) String() string {
	return out.Sprintf("TT: size %d MB max entries %d of size %d Bytes entries %d (%d%%) stores %d "+
		"updates %d collisions %d overwrites %d probes %d hits %d (%d%%) misses %d (%d%%)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), tt.numberOfEntries, tt.Hashfull()/10,
		tt.Stats.numberOfStores, tt.Stats.numberOfUpdates, tt.Stats.numberOfCollisions, tt.Stats.numberOfOverwrites,
		tt.Stats.numberOfProbes, tt.Stats.numberOfHits, (tt.Stats.numberOfHits*100)/(1+tt.Stats.numberOfProbes),
		tt.Stats.numberOfMisses, (tt.Stats.numberOfMisses*100)/(1+tt.Stats.numberOfProbes))
}

func (tt *Table) hash(key uint64) uint64 {
	return key & tt.hashKeyMask
}
