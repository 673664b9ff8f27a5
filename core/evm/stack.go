// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package evm

import (
	"math"

	"github.com/holiman/uint256"
)

// Stack is the EVM's 256-bit-word operand stack, capped at MaxStackSize
// elements. It is reused across opcode dispatches within a
// single frame; Trap/Resume never reallocate it.
type Stack struct {
	data []uint256.Int
}

func newStack() *Stack {
	return &Stack{data: make([]uint256.Int, 0, 16)}
}

func (s *Stack) push(v *uint256.Int) {
	s.data = append(s.data, *v)
}

func (s *Stack) pop() uint256.Int {
	n := len(s.data)
	v := s.data[n-1]
	s.data = s.data[:n-1]
	return v
}

func (s *Stack) len() int { return len(s.data) }

// peek returns a pointer to the item n-from-top (0 is the top element)
// without removing it.
func (s *Stack) peek(n int) *uint256.Int {
	return &s.data[len(s.data)-1-n]
}

// swap exchanges the top element with the n-th element below it.
func (s *Stack) swap(n int) {
	top := len(s.data) - 1
	s.data[top], s.data[top-n] = s.data[top-n], s.data[top]
}

// dup pushes a copy of the n-th element below the top (1-indexed, DUP1
// duplicates the top item).
func (s *Stack) dup(n int) {
	v := s.data[len(s.data)-n]
	s.data = append(s.data, v)
}

// popU64 pops the top element as a uint64, the common case for offsets,
// sizes and small counters. A value that does not fit saturates to
// math.MaxUint64, so an out-of-range memory range fails the subsequent gas
// charge with ErrGasUintOverflow before any such offset is ever used, and
// an out-of-range jump target is rejected as invalid.
func (s *Stack) popU64() uint64 {
	v := s.pop()
	if !v.IsUint64() {
		return math.MaxUint64
	}
	return v.Uint64()
}

// popAddress pops the top element and interprets its low 20 bytes as an address.
func (s *Stack) popAddress() [20]byte {
	v := s.pop()
	return v.Bytes20()
}

// popHash pops the top element as a 32-byte word.
func (s *Stack) popHash() [32]byte {
	v := s.pop()
	return v.Bytes32()
}
