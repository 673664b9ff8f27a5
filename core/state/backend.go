// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/tracing"
	ethtypes "github.com/luxfi/geth/core/types"
)

// StateBackend adapts *StateDB to the narrow, reason-free StateDB surface
// the transaction executive's interpreter (core/evm) expects, following the
// same adaptation shape as StateUpgradeAdapter, and layers EIP-2929/2930
// warm/cold tracking on top of it via an embedded AccessList instead of the
// wrapped StateDB's own access-list bookkeeping, so the interpreter's
// cold/warm charging actually exercises it.
type StateBackend struct {
	*StateDB
	accessList *AccessList
	getHash    func(number uint64) common.Hash
}

// NewStateBackend wraps db for use by the executive. getHash resolves
// BLOCKHASH lookups against the canonical chain; it may be nil, in which
// case GetBlockHash always returns the zero hash.
func NewStateBackend(db *StateDB, getHash func(uint64) common.Hash) *StateBackend {
	return &StateBackend{
		StateDB:    db,
		accessList: NewAccessList(),
		getHash:    getHash,
	}
}

// AccessList exposes the backend's warm/cold tracker so the executive can
// enable it, prewarm it, and push/merge/pop layers around sub-calls.
func (b *StateBackend) AccessList() *AccessList { return b.accessList }

func (b *StateBackend) AddBalance(addr common.Address, amount *uint256.Int) {
	b.StateDB.AddBalance(addr, amount, tracing.BalanceChangeUnspecified)
}

func (b *StateBackend) SubBalance(addr common.Address, amount *uint256.Int) {
	b.StateDB.SubBalance(addr, amount, tracing.BalanceChangeUnspecified)
}

func (b *StateBackend) SetNonce(addr common.Address, nonce uint64) {
	b.StateDB.SetNonce(addr, nonce, tracing.NonceChangeUnspecified)
}

func (b *StateBackend) SetState(addr common.Address, key, value common.Hash) {
	_ = b.StateDB.SetState(addr, key, value)
}

func (b *StateBackend) SetCode(addr common.Address, code []byte) {
	_ = b.StateDB.SetCode(addr, code)
}

func (b *StateBackend) AddLog(addr common.Address, topics []common.Hash, data []byte) {
	b.StateDB.AddLog(&ethtypes.Log{Address: addr, Topics: topics, Data: data})
}

// AddAddressToAccessList, AddSlotToAccessList, AddressInAccessList and
// SlotInAccessList are routed through the embedded AccessList rather than
// the wrapped StateDB's own implementation, so a call recorded here is a
// call the interpreter's EIP-2929 accounting actually sees.
func (b *StateBackend) AddAddressToAccessList(addr common.Address) bool {
	return b.accessList.InsertAddress(addr)
}

func (b *StateBackend) AddSlotToAccessList(addr common.Address, slot common.Hash) (addrAdded, slotAdded bool) {
	addrAdded = !b.accessList.ContainsAddress(addr)
	slotAdded = b.accessList.InsertStorageKey(addr, slot)
	return addrAdded, slotAdded
}

func (b *StateBackend) AddressInAccessList(addr common.Address) bool {
	return b.accessList.ContainsAddress(addr)
}

func (b *StateBackend) SlotInAccessList(addr common.Address, slot common.Hash) (addrOk, slotOk bool) {
	return b.accessList.ContainsAddress(addr), b.accessList.ContainsStorageKey(addr, slot)
}

// PushFrame, PopFrame and MergeFrame let the executive keep the access list's
// copy-on-write layers in lockstep with the call-frame stack it drives: a
// layer per sub-call, merged up on success and dropped on revert.
func (b *StateBackend) PushFrame()  { b.accessList.PushFrame() }
func (b *StateBackend) PopFrame()   { b.accessList.PopFrame() }
func (b *StateBackend) MergeFrame() { b.accessList.MergeFrame() }

// GetBlockHash implements the BLOCKHASH opcode's backing lookup.
func (b *StateBackend) GetBlockHash(number uint64) common.Hash {
	if b.getHash == nil {
		return common.Hash{}
	}
	return b.getHash(number)
}
