// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package evm

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// CallType distinguishes the EVM operation that produced a Trap.
type CallType int

const (
	CallTypeCall CallType = iota
	CallTypeCallCode
	CallTypeDelegateCall
	CallTypeStaticCall
	CallTypeCreate
	CallTypeCreate2
)

// ActionParams describes one call or create request, whether it is the
// top-level transaction entry or a trapped sub-call.
type ActionParams struct {
	CallType CallType

	Origin   common.Address // transaction signer, constant through the whole call tree
	Sender   common.Address // immediate caller (msg.sender)
	CodeAddr common.Address // address whose code is executing
	RecvAddr common.Address // address whose storage/balance this frame acts on (differs from CodeAddr for CALLCODE/DELEGATECALL)

	Value    *uint256.Int // value attached to CALL/CALLCODE/CREATE; the parent's value, not transferred again, for DELEGATECALL; nil for STATICCALL
	Gas      uint64
	GasPrice *uint256.Int

	Input []byte // calldata for CALL*, init code for CREATE*
	Code  []byte // the code to execute, fetched by the driver before the frame is pushed

	Salt *uint256.Int // CREATE2 only

	IsStatic bool // inherited-or-set STATICCALL context; disallows state mutation
}

// StateDB is the subset of world-state operations the interpreter needs.
// Implemented by core/state.StateBackend; kept narrow and go-ethereum-shaped
// so alternate backends (e.g. for tests) are trivial to stub.
type StateDB interface {
	GetBalance(addr common.Address) *uint256.Int
	AddBalance(addr common.Address, amount *uint256.Int)
	SubBalance(addr common.Address, amount *uint256.Int)

	GetNonce(addr common.Address) uint64
	SetNonce(addr common.Address, nonce uint64)

	GetCode(addr common.Address) []byte
	SetCode(addr common.Address, code []byte)
	GetCodeSize(addr common.Address) int
	GetCodeHash(addr common.Address) common.Hash

	GetState(addr common.Address, key common.Hash) common.Hash
	SetState(addr common.Address, key, value common.Hash)
	GetCommittedState(addr common.Address, key common.Hash) common.Hash

	CreateAccount(addr common.Address)
	Exist(addr common.Address) bool
	Empty(addr common.Address) bool
	SelfDestruct(addr common.Address)
	HasSelfDestructed(addr common.Address) bool

	AddRefund(gas uint64)
	SubRefund(gas uint64)
	GetRefund() uint64

	AddLog(addr common.Address, topics []common.Hash, data []byte)

	AddAddressToAccessList(addr common.Address) bool
	AddSlotToAccessList(addr common.Address, slot common.Hash) (addrAdded, slotAdded bool)
	AddressInAccessList(addr common.Address) bool
	SlotInAccessList(addr common.Address, slot common.Hash) (addrOk, slotOk bool)

	Snapshot() int
	RevertToSnapshot(id int)

	GetBlockHash(number uint64) common.Hash
}

// BlockContext carries the per-block values visible to BLOCKHASH, COINBASE,
// TIMESTAMP, NUMBER, DIFFICULTY/PREVRANDAO, GASLIMIT, CHAINID and BASEFEE.
type BlockContext struct {
	Coinbase    common.Address
	Number      uint64
	Timestamp   uint64
	Difficulty  *uint256.Int
	GasLimit    uint64
	BaseFee     *uint256.Int
	ChainID     *uint256.Int
}

// Frame is one paused or running call/create activation.
// Run executes a Frame until it finishes or traps; on a trap the driver
// runs a child Frame for the sub-call and, once that child resolves,
// invokes Resume to hand the result back without ever recursing into Run
// itself. The driver (the transaction executive) keeps no explicit stack of
// Frames: each paused parent waits in its own recursive Go call of the
// driver while its child runs.
type Frame struct {
	Params   ActionParams
	Depth    int
	Schedule *Schedule
	Block    *BlockContext
	State    StateDB
	ReadOnly bool // static-context enforced for this frame and all its descendants

	pc      uint64
	stack   *Stack
	memory  *Memory
	retData []byte // RETURNDATA from the most recently completed sub-call
	returnStack []uint64 // EIP-2315 subroutine return-PC stack

	gas uint64 // gas remaining, consumed as execution proceeds

	// resumption bookkeeping: set when Run pauses on a trap, consumed by Resume.
	pendingRetOffset uint64
	pendingRetSize   uint64
	pendingOp        OpCode
}

// NewFrame constructs a fresh call/create activation ready for Run.
func NewFrame(p ActionParams, depth int, schedule *Schedule, block *BlockContext, sdb StateDB, readOnly bool) *Frame {
	return &Frame{
		Params:   p,
		Depth:    depth,
		Schedule: schedule,
		Block:    block,
		State:    sdb,
		ReadOnly: readOnly || p.CallType == CallTypeStaticCall,
		stack:    newStack(),
		memory:   newMemory(),
		gas:      p.Gas,
	}
}

// GasLeft reports the gas remaining in this frame.
func (f *Frame) GasLeft() uint64 { return f.gas }

// TrapKind distinguishes a paused Call trap from a paused Create trap.
type TrapKind int

const (
	TrapCall TrapKind = iota
	TrapCreate
)

// Trap is returned by Run/Resume instead of the interpreter recursing into
// itself for CALL/CALLCODE/DELEGATECALL/STATICCALL/CREATE/CREATE2. The
// driver is expected to execute Params as a child Frame and then call
// Resume on the parent with the child's outcome.
type Trap struct {
	Kind   TrapKind
	Params ActionParams
}

// SubCallResult is what the driver feeds back into Resume after running the
// child frame a Trap described.
type SubCallResult struct {
	Success      bool
	ReturnData   []byte
	GasRemaining uint64      // unused gas the child returns to the parent
	CreatedAddr  common.Address // set only for a resolved Create trap
}

// ExecResult is the terminal outcome of a Frame that did not trap.
type ExecResult struct {
	Success     bool
	ReturnData  []byte
	GasLeft     uint64
	CreatedAddr common.Address // valid only for CallTypeCreate/CallTypeCreate2 frames
}
