// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "github.com/luxfi/geth/common"

type accessListSlot = common.Hash

// accessListLayer is the set of addresses and storage slots touched at one
// call depth. Layers are copy-on-write: a child frame gets its own layer and
// either merges it into the parent (on STOP/RETURN) or drops it (on REVERT)
// without ever mutating the parent's maps in place.
type accessListLayer struct {
	addresses map[common.Address]struct{}
	slots     map[common.Address]map[accessListSlot]struct{}
}

func newAccessListLayer() *accessListLayer {
	return &accessListLayer{
		addresses: make(map[common.Address]struct{}),
		slots:     make(map[common.Address]map[accessListSlot]struct{}),
	}
}

// AccessList tracks which addresses and storage slots have been "touched"
// (made warm) during the current transaction. It is
// created per transaction and discarded at transaction end.
//
// Internally it is a stack of layers indexed by call depth, so a REVERTed
// child frame's accesses never promote the parent's view, while a
// successful child frame's accesses merge up — all without per-opcode
// allocation on the common (same-depth) path.
type AccessList struct {
	enabled bool
	layers  []*accessListLayer
}

// NewAccessList returns a disabled, empty access list. Enable activates
// EIP-2929 warm/cold accounting for the transaction that owns it.
func NewAccessList() *AccessList {
	al := &AccessList{layers: make([]*accessListLayer, 0, 8)}
	al.layers = append(al.layers, newAccessListLayer())
	return al
}

// Enable turns on EIP-2929 accounting. Before Berlin the list stays disabled
// and the interpreter adds no warm/cold surcharge: every access is charged
// the opcode's flat pre-Berlin price.
func (al *AccessList) Enable() { al.enabled = true }

// IsEnabled reports whether EIP-2929 accounting is active for this transaction.
func (al *AccessList) IsEnabled() bool { return al.enabled }

// PushFrame opens a new copy-on-write layer for a child call frame.
func (al *AccessList) PushFrame() {
	al.layers = append(al.layers, newAccessListLayer())
}

// PopFrame discards the top layer's mutations (REVERT) without touching the
// parent layer.
func (al *AccessList) PopFrame() {
	n := len(al.layers)
	if n <= 1 {
		return
	}
	al.layers = al.layers[:n-1]
}

// MergeFrame folds the top layer's mutations into its parent (SUCCESS/STOP)
// and pops it.
func (al *AccessList) MergeFrame() {
	n := len(al.layers)
	if n <= 1 {
		return
	}
	top := al.layers[n-1]
	parent := al.layers[n-2]
	for addr := range top.addresses {
		parent.addresses[addr] = struct{}{}
	}
	for addr, slots := range top.slots {
		dst, ok := parent.slots[addr]
		if !ok {
			dst = make(map[accessListSlot]struct{}, len(slots))
			parent.slots[addr] = dst
		}
		for slot := range slots {
			dst[slot] = struct{}{}
		}
	}
	al.layers = al.layers[:n-1]
}

// ContainsAddress reports whether addr has been touched at any active depth.
func (al *AccessList) ContainsAddress(addr common.Address) bool {
	for i := len(al.layers) - 1; i >= 0; i-- {
		if _, ok := al.layers[i].addresses[addr]; ok {
			return true
		}
	}
	return false
}

// InsertAddress marks addr warm for the remainder of the transaction
// (promoted into the current frame's layer). Returns true if this was the
// first touch (caller charges ColdAccountAccessCost, else WarmStorageReadCost).
func (al *AccessList) InsertAddress(addr common.Address) (firstTouch bool) {
	if al.ContainsAddress(addr) {
		return false
	}
	top := al.layers[len(al.layers)-1]
	top.addresses[addr] = struct{}{}
	return true
}

// ContainsStorageKey reports whether (addr, slot) has been touched at any active depth.
func (al *AccessList) ContainsStorageKey(addr common.Address, slot accessListSlot) bool {
	for i := len(al.layers) - 1; i >= 0; i-- {
		if slots, ok := al.layers[i].slots[addr]; ok {
			if _, ok := slots[slot]; ok {
				return true
			}
		}
	}
	return false
}

// InsertStorageKey marks (addr, slot) warm. Returns true on first touch.
// Inserting a storage key also implicitly warms the address.
func (al *AccessList) InsertStorageKey(addr common.Address, slot accessListSlot) (firstTouch bool) {
	addrFirst := al.InsertAddress(addr)
	if al.ContainsStorageKey(addr, slot) {
		return addrFirst
	}
	top := al.layers[len(al.layers)-1]
	dst, ok := top.slots[addr]
	if !ok {
		dst = make(map[accessListSlot]struct{})
		top.slots[addr] = dst
	}
	dst[slot] = struct{}{}
	return true
}

// Prewarm pre-populates the access list with the sender, the call target
// (if any) and the precompile addresses, as required at Berlin+.
func (al *AccessList) Prewarm(sender common.Address, to *common.Address, precompiles []common.Address) {
	al.InsertAddress(sender)
	if to != nil {
		al.InsertAddress(*to)
	}
	for _, p := range precompiles {
		al.InsertAddress(p)
	}
}
