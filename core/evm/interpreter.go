// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package evm is the trap-driven EVM interpreter. Unlike a
// conventional recursive interpreter, Run never calls back into itself for
// CALL/CALLCODE/DELEGATECALL/STATICCALL/CREATE/CREATE2: it pauses and
// returns a Trap describing the sub-call, leaving the driver (the
// transaction executive) to execute the child frame and hand the outcome
// back via Resume. The interpreter itself never recurses; the driver does:
// it runs each child frame through a recursive Go call of its own (one per
// EVM call depth, at most MaxCallDepth deep) and keeps no separate explicit
// frame stack.
package evm

import (
	"golang.org/x/crypto/sha3"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// Interpreter runs a single Frame's bytecode to completion, to a trap, or to
// an error. It is stateless between frames; all mutable execution state
// (stack, memory, PC, gas) lives on the Frame itself so a driver can park a
// paused Frame indefinitely while a child call executes.
type Interpreter struct{}

// NewInterpreter returns a ready-to-use Interpreter. Interpreters carry no
// state and may be shared across frames and goroutines.
func NewInterpreter() *Interpreter { return &Interpreter{} }

// Run executes f from its current PC (0 for a freshly constructed Frame)
// until STOP/RETURN/REVERT/SELFDESTRUCT, an error, running out of gas, or a
// CALL/CREATE-family opcode, whichever comes first.
func (in *Interpreter) Run(f *Frame) (*ExecResult, *Trap, error) {
	return in.runLoop(f)
}

// Resume continues a Frame previously paused by a Trap, after the driver has
// executed the child call/create and produced res. It writes the child's
// return data into the parent's memory (for CALL-family traps) or pushes the
// created address (for CREATE-family traps), replenishes unused gas, and
// continues runLoop from the instruction after the trap.
func (in *Interpreter) Resume(f *Frame, res SubCallResult) (*ExecResult, *Trap, error) {
	f.gas += res.GasRemaining
	f.retData = res.ReturnData

	switch f.pendingOp {
	case CREATE, CREATE2:
		if res.Success {
			f.stack.push(addressToUint256(res.CreatedAddr))
		} else {
			f.stack.push(new(uint256.Int))
		}
	default: // CALL, CALLCODE, DELEGATECALL, STATICCALL
		if f.pendingRetSize > 0 {
			n := uint64(len(res.ReturnData))
			if n > f.pendingRetSize {
				n = f.pendingRetSize
			}
			f.memory.Set(f.pendingRetOffset, n, res.ReturnData[:n])
		}
		if res.Success {
			f.stack.push(uint256.NewInt(1))
		} else {
			f.stack.push(new(uint256.Int))
		}
	}

	return in.runLoop(f)
}

func addressToUint256(addr common.Address) *uint256.Int {
	return new(uint256.Int).SetBytes(addr.Bytes())
}

func uint256ToAddress(v *uint256.Int) common.Address {
	b := v.Bytes20()
	return common.Address(b)
}

func (in *Interpreter) useGas(f *Frame, amount uint64) error {
	if f.gas < amount {
		f.gas = 0
		return ErrOutOfGas
	}
	f.gas -= amount
	return nil
}

// accessAddressCost returns the EIP-2929 surcharge for touching addr:
// ColdAccountAccessCost minus WarmStorageReadCost on its first touch this
// transaction, zero once it is warm. The opcode's own constant gas supplies
// the WarmStorageReadCost part.
// Before Berlin (Schedule.EIP2929 false) it charges nothing extra here; the
// opcode's own constant gas already reflects the pre-Berlin flat price.
func (in *Interpreter) accessAddressCost(f *Frame, al accessLister, addr common.Address) uint64 {
	if !f.Schedule.EIP2929 {
		return 0
	}
	if al.InsertAddress(addr) {
		return f.Schedule.ColdAccountAccessCost - f.Schedule.WarmStorageReadCost
	}
	return 0
}

func (in *Interpreter) accessSlotCost(f *Frame, al accessLister, addr common.Address, slot common.Hash) uint64 {
	if !f.Schedule.EIP2929 {
		return 0
	}
	if al.InsertStorageKey(addr, slot) {
		return f.Schedule.ColdSloadCost
	}
	return f.Schedule.WarmStorageReadCost
}

// accessLister is the narrow slice of core/state.AccessList the interpreter
// needs; StateDB implementations that embed an AccessList satisfy it via
// thin forwarding methods (AddAddressToAccessList etc. on StateDB proper).
type accessLister interface {
	InsertAddress(addr common.Address) bool
	InsertStorageKey(addr common.Address, slot common.Hash) bool
}

// stateAccessAdapter adapts StateDB's AddAddressToAccessList/AddSlotToAccessList
// (the go-ethereum-shaped StateDB surface) to accessLister.
type stateAccessAdapter struct{ db StateDB }

func (a stateAccessAdapter) InsertAddress(addr common.Address) bool {
	return a.db.AddAddressToAccessList(addr)
}

func (a stateAccessAdapter) InsertStorageKey(addr common.Address, slot common.Hash) bool {
	_, slotAdded := a.db.AddSlotToAccessList(addr, slot)
	return slotAdded
}

func (in *Interpreter) runLoop(f *Frame) (*ExecResult, *Trap, error) {
	if f.stack == nil {
		f.stack = newStack()
	}
	if f.memory == nil {
		f.memory = newMemory()
	}
	al := stateAccessAdapter{f.State}
	code := f.Params.Code

	for {
		if f.stack.len() > MaxStackSize {
			return nil, nil, ErrStackOverflow
		}
		if int(f.pc) >= len(code) {
			return &ExecResult{Success: true, GasLeft: f.gas}, nil, nil
		}
		op := OpCode(code[f.pc])

		switch {
		case op == STOP:
			return &ExecResult{Success: true, GasLeft: f.gas}, nil, nil

		case op == ADD, op == MUL, op == SUB, op == DIV, op == SDIV, op == MOD, op == SMOD:
			if err := in.useGas(f, arithCost(op)); err != nil {
				return nil, nil, err
			}
			if f.stack.len() < 2 {
				return nil, nil, ErrStackUnderflow
			}
			y := f.stack.pop()
			x := f.stack.pop()
			var res uint256.Int
			switch op {
			case ADD:
				res.Add(&x, &y)
			case MUL:
				res.Mul(&x, &y)
			case SUB:
				res.Sub(&x, &y)
			case DIV:
				res.Div(&x, &y)
			case SDIV:
				res.SDiv(&x, &y)
			case MOD:
				res.Mod(&x, &y)
			case SMOD:
				res.SMod(&x, &y)
			}
			f.stack.push(&res)
			f.pc++

		case op == ADDMOD || op == MULMOD:
			if err := in.useGas(f, GasMidStep); err != nil {
				return nil, nil, err
			}
			if f.stack.len() < 3 {
				return nil, nil, ErrStackUnderflow
			}
			z := f.stack.pop()
			y := f.stack.pop()
			x := f.stack.pop()
			var res uint256.Int
			if op == ADDMOD {
				res.AddMod(&x, &y, &z)
			} else {
				res.MulMod(&x, &y, &z)
			}
			f.stack.push(&res)
			f.pc++

		case op == EXP:
			if f.stack.len() < 2 {
				return nil, nil, ErrStackUnderflow
			}
			base := f.stack.pop()
			exp := f.stack.pop()
			byteLen := (exp.BitLen() + 7) / 8
			cost := GasSlowStep + uint64(byteLen)*50
			if err := in.useGas(f, cost); err != nil {
				return nil, nil, err
			}
			var res uint256.Int
			res.Exp(&base, &exp)
			f.stack.push(&res)
			f.pc++

		case op == SIGNEXTEND:
			if err := in.useGas(f, GasFastStep); err != nil {
				return nil, nil, err
			}
			if f.stack.len() < 2 {
				return nil, nil, ErrStackUnderflow
			}
			back := f.stack.pop()
			num := f.stack.pop()
			var res uint256.Int
			res.ExtendSign(&num, &back)
			f.stack.push(&res)
			f.pc++

		case op == LT, op == GT, op == SLT, op == SGT, op == EQ:
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			if f.stack.len() < 2 {
				return nil, nil, ErrStackUnderflow
			}
			y := f.stack.pop()
			x := f.stack.pop()
			var b bool
			switch op {
			case LT:
				b = x.Lt(&y)
			case GT:
				b = x.Gt(&y)
			case SLT:
				b = x.Slt(&y)
			case SGT:
				b = x.Sgt(&y)
			case EQ:
				b = x.Eq(&y)
			}
			f.stack.push(boolToU256(b))
			f.pc++

		case op == ISZERO:
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			if f.stack.len() < 1 {
				return nil, nil, ErrStackUnderflow
			}
			x := f.stack.pop()
			f.stack.push(boolToU256(x.IsZero()))
			f.pc++

		case op == AND, op == OR, op == XOR:
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			if f.stack.len() < 2 {
				return nil, nil, ErrStackUnderflow
			}
			y := f.stack.pop()
			x := f.stack.pop()
			var res uint256.Int
			switch op {
			case AND:
				res.And(&x, &y)
			case OR:
				res.Or(&x, &y)
			case XOR:
				res.Xor(&x, &y)
			}
			f.stack.push(&res)
			f.pc++

		case op == NOT:
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			x := f.stack.pop()
			var res uint256.Int
			res.Not(&x)
			f.stack.push(&res)
			f.pc++

		case op == BYTE:
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			th := f.stack.pop()
			val := f.stack.pop()
			var res uint256.Int
			res.Byte(&th, &val)
			f.stack.push(&res)
			f.pc++

		case op == SHL, op == SHR, op == SAR:
			if !f.Schedule.HasBitwiseShifting {
				return nil, nil, ErrInvalidOpcode
			}
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			shift := f.stack.pop()
			val := f.stack.pop()
			var res uint256.Int
			switch op {
			case SHL:
				res.Lsh(&val, uint(clampShift(&shift)))
			case SHR:
				res.Rsh(&val, uint(clampShift(&shift)))
			case SAR:
				res.SRsh(&val, uint(clampShift(&shift)))
			}
			f.stack.push(&res)
			f.pc++

		case op == SHA3:
			offset := f.stack.pop()
			size := f.stack.pop()
			off, sz := offset.Uint64(), size.Uint64()
			if err := in.chargeMemory(f, off, sz); err != nil {
				return nil, nil, err
			}
			words := numWords(sz)
			if err := in.useGas(f, GasFastStep*6+words*6); err != nil {
				return nil, nil, err
			}
			data := f.memory.GetPtr(off, sz)
			h := sha3.NewLegacyKeccak256()
			h.Write(data)
			var out [32]byte
			h.Sum(out[:0])
			f.stack.push(new(uint256.Int).SetBytes(out[:]))
			f.pc++

		case op == ADDRESS:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(addressToUint256(f.Params.RecvAddr))
			f.pc++

		case op == BALANCE:
			addr := uint256ToAddress(&f.stack.data[len(f.stack.data)-1])
			extra := in.accessAddressCost(f, al, addr)
			base := uint64(400)
			if f.Schedule.EIP1884 {
				base = 700
			}
			if f.Schedule.EIP2929 {
				base = f.Schedule.WarmStorageReadCost
			}
			if err := in.useGas(f, base+extra); err != nil {
				return nil, nil, err
			}
			f.stack.pop()
			f.stack.push(f.State.GetBalance(addr))
			f.pc++

		case op == ORIGIN:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(addressToUint256(f.Params.Origin))
			f.pc++

		case op == CALLER:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(addressToUint256(f.Params.Sender))
			f.pc++

		case op == CALLVALUE:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			v := f.Params.Value
			if v == nil {
				v = new(uint256.Int)
			}
			f.stack.push(v)
			f.pc++

		case op == CALLDATALOAD:
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			x := f.stack.pop()
			off := x.Uint64()
			var buf [32]byte
			if off < uint64(len(f.Params.Input)) {
				copy(buf[:], f.Params.Input[off:])
			}
			f.stack.push(new(uint256.Int).SetBytes(buf[:]))
			f.pc++

		case op == CALLDATASIZE:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(uint256.NewInt(uint64(len(f.Params.Input))))
			f.pc++

		case op == CALLDATACOPY:
			if err := in.copyToMemory(f, f.Params.Input); err != nil {
				return nil, nil, err
			}
			f.pc++

		case op == CODESIZE:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(uint256.NewInt(uint64(len(code))))
			f.pc++

		case op == CODECOPY:
			if err := in.copyToMemory(f, code); err != nil {
				return nil, nil, err
			}
			f.pc++

		case op == GASPRICE:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			p := f.Params.GasPrice
			if p == nil {
				p = new(uint256.Int)
			}
			f.stack.push(p)
			f.pc++

		case op == EXTCODESIZE:
			addr := uint256ToAddress(&f.stack.data[len(f.stack.data)-1])
			extra := in.accessAddressCost(f, al, addr)
			base := uint64(700)
			if f.Schedule.EIP2929 {
				base = f.Schedule.WarmStorageReadCost
			}
			if err := in.useGas(f, base+extra); err != nil {
				return nil, nil, err
			}
			f.stack.pop()
			f.stack.push(uint256.NewInt(uint64(f.State.GetCodeSize(addr))))
			f.pc++

		case op == EXTCODEHASH:
			if !f.Schedule.HasExtCodeHash {
				return nil, nil, ErrInvalidOpcode
			}
			addr := uint256ToAddress(&f.stack.data[len(f.stack.data)-1])
			extra := in.accessAddressCost(f, al, addr)
			base := uint64(400)
			if f.Schedule.EIP1884 {
				base = 700
			}
			if f.Schedule.EIP2929 {
				base = f.Schedule.WarmStorageReadCost
			}
			if err := in.useGas(f, base+extra); err != nil {
				return nil, nil, err
			}
			f.stack.pop()
			if !f.State.Exist(addr) || f.State.Empty(addr) {
				f.stack.push(new(uint256.Int))
			} else {
				f.stack.push(new(uint256.Int).SetBytes(f.State.GetCodeHash(addr).Bytes()))
			}
			f.pc++

		case op == EXTCODECOPY:
			addr := uint256ToAddress(&f.stack.data[len(f.stack.data)-1])
			f.stack.pop()
			extra := in.accessAddressCost(f, al, addr)
			base := uint64(700)
			if f.Schedule.EIP2929 {
				base = f.Schedule.WarmStorageReadCost
			}
			if err := in.useGas(f, base+extra); err != nil {
				return nil, nil, err
			}
			if err := in.copyToMemory(f, f.State.GetCode(addr)); err != nil {
				return nil, nil, err
			}
			f.pc++

		case op == RETURNDATASIZE:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(uint256.NewInt(uint64(len(f.retData))))
			f.pc++

		case op == RETURNDATACOPY:
			if err := in.copyToMemory(f, f.retData); err != nil {
				return nil, nil, err
			}
			f.pc++

		case op == BLOCKHASH:
			if err := in.useGas(f, GasExtStep); err != nil {
				return nil, nil, err
			}
			n := f.stack.pop()
			f.stack.push(new(uint256.Int).SetBytes(f.State.GetBlockHash(n.Uint64()).Bytes()))
			f.pc++

		case op == COINBASE:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(addressToUint256(f.Block.Coinbase))
			f.pc++

		case op == TIMESTAMP:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(uint256.NewInt(f.Block.Timestamp))
			f.pc++

		case op == NUMBER:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(uint256.NewInt(f.Block.Number))
			f.pc++

		case op == DIFFICULTY:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			d := f.Block.Difficulty
			if d == nil {
				d = new(uint256.Int)
			}
			f.stack.push(d)
			f.pc++

		case op == GASLIMIT:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(uint256.NewInt(f.Block.GasLimit))
			f.pc++

		case op == CHAINID:
			if !f.Schedule.HasChainID {
				return nil, nil, ErrInvalidOpcode
			}
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			c := f.Block.ChainID
			if c == nil {
				c = new(uint256.Int)
			}
			f.stack.push(c)
			f.pc++

		case op == SELFBALANCE:
			if !f.Schedule.EIP1884 {
				return nil, nil, ErrInvalidOpcode
			}
			if err := in.useGas(f, GasFastStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(f.State.GetBalance(f.Params.RecvAddr))
			f.pc++

		case op == BASEFEE:
			if !f.Schedule.EIP1559 {
				return nil, nil, ErrInvalidOpcode
			}
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			b := f.Block.BaseFee
			if b == nil {
				b = new(uint256.Int)
			}
			f.stack.push(b)
			f.pc++

		case op == POP:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.pop()
			f.pc++

		case op == MLOAD:
			off := f.stack.popU64()
			if err := in.chargeMemory(f, off, 32); err != nil {
				return nil, nil, err
			}
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(new(uint256.Int).SetBytes(f.memory.GetPtr(off, 32)))
			f.pc++

		case op == MSTORE:
			off := f.stack.popU64()
			val := f.stack.pop()
			if err := in.chargeMemory(f, off, 32); err != nil {
				return nil, nil, err
			}
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			f.memory.Set32(off, &val)
			f.pc++

		case op == MSTORE8:
			off := f.stack.popU64()
			val := f.stack.pop()
			if err := in.chargeMemory(f, off, 1); err != nil {
				return nil, nil, err
			}
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			f.memory.Set(off, 1, []byte{byte(val.Uint64())})
			f.pc++

		case op == SLOAD:
			key := common.Hash(f.stack.data[len(f.stack.data)-1].Bytes32())
			base := uint64(200)
			if f.Schedule.EIP1884 {
				base = 800
			}
			if f.Schedule.EIP2929 {
				base = 0 // fully covered by accessSlotCost below
			}
			cost := base + in.accessSlotCost(f, al, f.Params.RecvAddr, key)
			if err := in.useGas(f, cost); err != nil {
				return nil, nil, err
			}
			f.stack.pop()
			v := f.State.GetState(f.Params.RecvAddr, key)
			f.stack.push(new(uint256.Int).SetBytes(v.Bytes()))
			f.pc++

		case op == SSTORE:
			if f.ReadOnly {
				return nil, nil, ErrWriteProtection
			}
			if f.Schedule.NetSstore && f.gas <= CallStipend {
				return nil, nil, ErrOutOfGas
			}
			key := common.Hash(f.stack.popHash())
			val := f.stack.pop()
			cost, refund := sstoreCost(f, al, key, val)
			if err := in.useGas(f, cost); err != nil {
				return nil, nil, err
			}
			if refund > 0 {
				f.State.AddRefund(uint64(refund))
			} else if refund < 0 {
				f.State.SubRefund(uint64(-refund))
			}
			f.State.SetState(f.Params.RecvAddr, key, common.Hash(val.Bytes32()))
			f.pc++

		case op == JUMP:
			if err := in.useGas(f, GasMidStep); err != nil {
				return nil, nil, err
			}
			dest := f.stack.popU64()
			if !validJumpDest(code, dest) {
				return nil, nil, ErrInvalidJump
			}
			f.pc = dest

		case op == JUMPI:
			if err := in.useGas(f, 10); err != nil {
				return nil, nil, err
			}
			dest := f.stack.pop()
			cond := f.stack.pop()
			if !cond.IsZero() {
				d := dest.Uint64()
				if !validJumpDest(code, d) {
					return nil, nil, ErrInvalidJump
				}
				f.pc = d
			} else {
				f.pc++
			}

		case op == PC:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(uint256.NewInt(f.pc))
			f.pc++

		case op == MSIZE:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(uint256.NewInt(uint64(f.memory.Len())))
			f.pc++

		case op == GAS:
			if err := in.useGas(f, GasQuickStep); err != nil {
				return nil, nil, err
			}
			f.stack.push(uint256.NewInt(f.gas))
			f.pc++

		case op == JUMPDEST:
			if err := in.useGas(f, 1); err != nil {
				return nil, nil, err
			}
			f.pc++

		case op == BEGINSUB:
			if !f.Schedule.EIP2315 {
				return nil, nil, ErrInvalidOpcode
			}
			if err := in.useGas(f, 1); err != nil {
				return nil, nil, err
			}
			f.pc++

		case op == JUMPSUB:
			if !f.Schedule.EIP2315 {
				return nil, nil, ErrInvalidOpcode
			}
			if err := in.useGas(f, GasSlowStep); err != nil {
				return nil, nil, err
			}
			dest := f.stack.popU64()
			if dest >= uint64(len(code)) || OpCode(code[dest]) != BEGINSUB {
				return nil, nil, ErrInvalidSubroutineEntry
			}
			if len(f.returnStack) >= MaxCallDepth {
				return nil, nil, ErrReturnStackOverflow
			}
			f.returnStack = append(f.returnStack, f.pc+1)
			f.pc = dest + 1

		case op == RETURNSUB:
			if !f.Schedule.EIP2315 {
				return nil, nil, ErrInvalidOpcode
			}
			if err := in.useGas(f, GasFastStep); err != nil {
				return nil, nil, err
			}
			n := len(f.returnStack)
			if n == 0 {
				return nil, nil, ErrReturnStackEmpty
			}
			f.pc = f.returnStack[n-1]
			f.returnStack = f.returnStack[:n-1]

		case isPush(op):
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			n := pushSize(op)
			start := int(f.pc) + 1
			end := start + n
			var buf [32]byte
			if start < len(code) {
				e := end
				if e > len(code) {
					e = len(code)
				}
				copy(buf[32-n:], code[start:e])
			}
			f.stack.push(new(uint256.Int).SetBytes(buf[:]))
			f.pc = uint64(end)

		case isDup(op):
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			n := dupN(op)
			if f.stack.len() < n {
				return nil, nil, ErrStackUnderflow
			}
			f.stack.dup(n)
			f.pc++

		case isSwap(op):
			if err := in.useGas(f, GasFastestStep); err != nil {
				return nil, nil, err
			}
			n := swapN(op)
			if f.stack.len() < n+1 {
				return nil, nil, ErrStackUnderflow
			}
			f.stack.swap(n)
			f.pc++

		case isLog(op):
			if f.ReadOnly {
				return nil, nil, ErrWriteProtection
			}
			n := logN(op)
			off := f.stack.popU64()
			size := f.stack.popU64()
			topics := make([]common.Hash, n)
			for i := 0; i < n; i++ {
				t := f.stack.pop()
				topics[i] = common.Hash(t.Bytes32())
			}
			if err := in.chargeMemory(f, off, size); err != nil {
				return nil, nil, err
			}
			cost := LogGas + uint64(n)*LogTopicGas + size*LogDataGas
			if err := in.useGas(f, cost); err != nil {
				return nil, nil, err
			}
			f.State.AddLog(f.Params.RecvAddr, topics, f.memory.GetCopy(off, size))
			f.pc++

		case op == CREATE, op == CREATE2:
			trap, err := in.prepareCreate(f, al, op)
			if err != nil {
				return nil, nil, err
			}
			if trap == nil {
				// Depth limit or insufficient balance: prepareCreate already
				// pushed the failure value.
				f.pc++
				continue
			}
			f.pc++
			f.pendingOp = op
			return nil, trap, nil

		case op == CALL, op == CALLCODE, op == DELEGATECALL, op == STATICCALL:
			trap, err := in.prepareCall(f, al, op)
			if err != nil {
				return nil, nil, err
			}
			if trap == nil {
				// Depth limit: prepareCall already pushed the failure value.
				f.pc++
				continue
			}
			f.pc++
			f.pendingOp = op
			return nil, trap, nil

		case op == RETURN:
			off := f.stack.popU64()
			size := f.stack.popU64()
			if err := in.chargeMemory(f, off, size); err != nil {
				return nil, nil, err
			}
			return &ExecResult{Success: true, ReturnData: f.memory.GetCopy(off, size), GasLeft: f.gas}, nil, nil

		case op == REVERT:
			if !f.Schedule.HasRevert {
				return nil, nil, ErrInvalidOpcode
			}
			off := f.stack.popU64()
			size := f.stack.popU64()
			if err := in.chargeMemory(f, off, size); err != nil {
				return nil, nil, err
			}
			return &ExecResult{Success: false, ReturnData: f.memory.GetCopy(off, size), GasLeft: f.gas}, nil, ErrExecutionReverted

		case op == SELFDESTRUCT:
			if f.ReadOnly {
				return nil, nil, ErrWriteProtection
			}
			beneficiary := uint256ToAddress(&f.stack.data[len(f.stack.data)-1])
			cost := uint64(5000)
			cost += in.accessAddressCost(f, al, beneficiary)
			if !f.State.Exist(beneficiary) && !f.State.GetBalance(f.Params.RecvAddr).IsZero() {
				cost += CallNewAccountGas
			}
			if err := in.useGas(f, cost); err != nil {
				return nil, nil, err
			}
			if !f.Schedule.EIP3529 && !f.State.HasSelfDestructed(f.Params.RecvAddr) {
				f.State.AddRefund(24000)
			}
			f.State.AddBalance(beneficiary, f.State.GetBalance(f.Params.RecvAddr))
			f.State.SelfDestruct(f.Params.RecvAddr)
			return &ExecResult{Success: true, GasLeft: f.gas}, nil, nil

		case op == INVALID:
			return nil, nil, ErrInvalidOpcode

		default:
			return nil, nil, ErrInvalidOpcode
		}
	}
}

func arithCost(op OpCode) uint64 {
	switch op {
	case ADD, SUB:
		return GasFastestStep
	case MUL, DIV, SDIV, MOD, SMOD:
		return GasFastStep
	}
	return GasFastestStep
}

func boolToU256(b bool) *uint256.Int {
	if b {
		return uint256.NewInt(1)
	}
	return new(uint256.Int)
}

func clampShift(v *uint256.Int) uint64 {
	if v.GtUint64(256) || !v.IsUint64() {
		return 257
	}
	return v.Uint64()
}

func validJumpDest(code []byte, dest uint64) bool {
	if dest >= uint64(len(code)) {
		return false
	}
	if OpCode(code[dest]) != JUMPDEST {
		return false
	}
	// A destination inside a PUSH's immediate-data window is not a valid
	// jump target even if the byte value happens to equal JUMPDEST.
	i := 0
	for i < len(code) {
		op := OpCode(code[i])
		if uint64(i) == dest {
			return op == JUMPDEST
		}
		if isPush(op) {
			i += 1 + pushSize(op)
		} else {
			i++
		}
	}
	return false
}

// chargeMemory grows memory to cover [offset, offset+size) and charges the
// incremental quadratic expansion cost.
func (in *Interpreter) chargeMemory(f *Frame, offset, size uint64) error {
	if size == 0 {
		return nil
	}
	cost, err := memoryExpansionCost(uint64(f.memory.Len()), offset, size)
	if err != nil {
		return err
	}
	if err := in.useGas(f, cost); err != nil {
		return err
	}
	f.memory.resize(offset + size)
	return nil
}

// copyToMemory implements the *COPY opcode family: pop destOffset,
// srcOffset, size; charge base + word copy cost + memory expansion; copy
// from src (zero-padded past its end) into memory.
func (in *Interpreter) copyToMemory(f *Frame, src []byte) error {
	destOff := f.stack.popU64()
	srcOff := f.stack.popU64()
	size := f.stack.popU64()
	if err := in.chargeMemory(f, destOff, size); err != nil {
		return err
	}
	if err := in.useGas(f, GasFastestStep+numWords(size)*3); err != nil {
		return err
	}
	buf := make([]byte, size)
	if srcOff < uint64(len(src)) {
		copy(buf, src[srcOff:])
	}
	f.memory.Set(destOff, size, buf)
	return nil
}

// sstoreCost implements the EIP-1283/2200/3529 net-metered SSTORE cost and
// refund calculation when NetSstore is active, and the flat Frontier-style
// cost otherwise. refund may be negative (a previously granted refund being
// clawed back), matching the original's signed counter semantics even though
// StateDB.GetRefund surfaces only the clamped non-negative total.
func sstoreCost(f *Frame, al accessLister, key common.Hash, val uint256.Int) (cost uint64, refund int64) {
	warmExtra := uint64(0)
	if f.Schedule.EIP2929 {
		if al.InsertStorageKey(f.Params.RecvAddr, key) {
			warmExtra = f.Schedule.ColdSloadCost
		}
	}

	if !f.Schedule.NetSstore {
		current := f.State.GetState(f.Params.RecvAddr, key)
		isZeroVal := val.IsZero()
		if common.Hash(val.Bytes32()) != (common.Hash{}) {
			isZeroVal = false
		}
		if current == (common.Hash{}) && !isZeroVal {
			return f.Schedule.SstoreSetGas + warmExtra, 0
		}
		if current != (common.Hash{}) && isZeroVal {
			return f.Schedule.SstoreResetGas + warmExtra, int64(f.Schedule.SstoreRefundGas)
		}
		return f.Schedule.SstoreResetGas + warmExtra, 0
	}

	current := f.State.GetState(f.Params.RecvAddr, key)
	original := f.State.GetCommittedState(f.Params.RecvAddr, key)
	newVal := common.Hash(val.Bytes32())

	clearRefund := int64(SstoreRefundGas)
	if f.Schedule.EIP3529 {
		clearRefund = int64(SstoreClearRefund)
	}

	if current == newVal {
		return f.Schedule.WarmStorageReadCost + warmExtra, 0
	}
	if original == current {
		if original == (common.Hash{}) {
			return f.Schedule.SstoreSetGas + warmExtra, 0
		}
		if newVal == (common.Hash{}) {
			return f.Schedule.SstoreResetGas + warmExtra, clearRefund
		}
		return f.Schedule.SstoreResetGas + warmExtra, 0
	}
	// Dirty slot, current != original: only refund bookkeeping changes.
	if original != (common.Hash{}) {
		if current == (common.Hash{}) {
			refund -= clearRefund
		}
		if newVal == (common.Hash{}) {
			refund += clearRefund
		}
	}
	if original == newVal {
		if original == (common.Hash{}) {
			refund += int64(f.Schedule.SstoreSetGas - f.Schedule.WarmStorageReadCost)
		} else {
			refund += int64(f.Schedule.SstoreResetGas - f.Schedule.WarmStorageReadCost)
		}
	}
	return f.Schedule.WarmStorageReadCost + warmExtra, refund
}
