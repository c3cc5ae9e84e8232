package engine

import (
	"sync/atomic"

	. "github.com/ChizhovVadim/chesssearch/pkg/common"
)

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

// transEntry stores key^data next to data. A torn write breaks the xor and the entry reads as a miss.
type transEntry struct {
	key  uint64
	data uint64
}

// data layout: move 23 bits, score 16, depth 8, bound 2, date 11.
func packEntry(move Move, score, depth, bound int, date uint16) uint64 {
	return uint64(uint32(move)&0x7fffff) |
		uint64(uint16(int16(score)))<<23 |
		uint64(uint8(int8(depth)))<<39 |
		uint64(bound&3)<<47 |
		uint64(date&0x7ff)<<49
}

func unpackEntry(data uint64) (move Move, score, depth, bound int, date uint16) {
	move = Move(data & 0x7fffff)
	score = int(int16(uint16(data >> 23)))
	depth = int(int8(uint8(data >> 39)))
	bound = int((data >> 47) & 3)
	date = uint16((data >> 49) & 0x7ff)
	return
}

type transTable struct {
	megabytes int
	entries   []transEntry
	date      uint16
	mask      uint64
}

// good test: position fen 8/k7/3p4/p2P1p2/P2P1P2/8/8/K7 w - - 0 1
func newTransTable(megabytes int) *transTable {
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / 16)
	return &transTable{
		megabytes: megabytes,
		entries:   make([]transEntry, size),
		mask:      uint64(size - 1),
	}
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

func (tt *transTable) IncDate() {
	tt.date = (tt.date + 1) & 0x7ff
}

func (tt *transTable) Clear() {
	tt.date = 0
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
}

func (tt *transTable) load(key uint64) (entry *transEntry, data uint64, ok bool) {
	entry = &tt.entries[key&tt.mask]
	var k = atomic.LoadUint64(&entry.key)
	data = atomic.LoadUint64(&entry.data)
	return entry, data, k^data == key && data != 0
}

func (entry *transEntry) store(key, data uint64) {
	atomic.StoreUint64(&entry.data, data)
	atomic.StoreUint64(&entry.key, key^data)
}

func (tt *transTable) Read(key uint64) (depth, score, bound int, move Move, ok bool) {
	var entry, data, found = tt.load(key)
	if !found {
		return
	}
	var date uint16
	move, score, depth, bound, date = unpackEntry(data)
	if bound == 0 {
		return 0, 0, 0, MoveEmpty, false
	}
	if date != tt.date {
		entry.store(key, packEntry(move, score, depth, bound, tt.date))
	}
	ok = true
	return
}

func (tt *transTable) Update(key uint64, depth, score, bound int, move Move) {
	var entry, data, found = tt.load(key)
	var oldMove, _, oldDepth, _, oldDate = unpackEntry(data)
	var replace bool
	if found {
		replace = depth >= oldDepth-3 || bound == boundExact
		if move == MoveEmpty {
			move = oldMove
		}
	} else {
		replace = oldDate != tt.date || depth >= oldDepth
	}
	if replace {
		entry.store(key, packEntry(move, score, depth, bound, tt.date))
	}
}
