// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package evm

import "github.com/holiman/uint256"

// Memory is the EVM's byte-addressable, word-expandable scratch space.
// Expansion is charged quadratically via memoryGasCost.
type Memory struct {
	store []byte
}

func newMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Len() int { return len(m.store) }

// resize grows the backing store to at least size bytes, zero-filled.
// Callers must charge gas for the growth before calling resize.
func (m *Memory) resize(size uint64) {
	if uint64(len(m.store)) < size {
		grown := make([]byte, size)
		copy(grown, m.store)
		m.store = grown
	}
}

func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	m.resize(offset + size)
	copy(m.store[offset:offset+size], value)
}

func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	m.resize(offset + 32)
	b := val.Bytes32()
	copy(m.store[offset:offset+32], b[:])
}

func (m *Memory) GetCopy(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	out := make([]byte, size)
	if offset < uint64(len(m.store)) {
		copy(out, m.store[offset:])
	}
	return out
}

func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// numWords returns the number of 32-byte words needed to cover size bytes.
func numWords(size uint64) uint64 {
	return (size + 31) / 32
}

// memoryGasCost computes the total memory-expansion cost (not the delta) for
// a memory of newSizeWords words, per the Yellow Paper's quadratic formula:
// cost = Gmemory*words + words^2/512.
func memoryGasCost(words uint64) uint64 {
	return MemoryGas*words + (words*words)/QuadCoeffDiv
}

// memoryExpansionCost returns the additional gas required to grow memory
// from its current size to cover [offset, offset+size), or an error if the
// requested range overflows uint64 or the resulting cost does.
func memoryExpansionCost(currentLen uint64, offset, size uint64) (uint64, error) {
	if size == 0 {
		return 0, nil
	}
	end := offset + size
	// Past 0x1FFFFFFFE0 bytes the quadratic term of memoryGasCost would
	// overflow uint64.
	if end < offset || end > 0x1FFFFFFFE0 {
		return 0, ErrGasUintOverflow
	}
	if end <= currentLen {
		return 0, nil
	}
	newWords := numWords(end)
	oldWords := numWords(currentLen)
	return memoryGasCost(newWords) - memoryGasCost(oldWords), nil
}
