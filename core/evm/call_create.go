// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package evm

import (
	"golang.org/x/crypto/sha3"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/rlp"
)

// keccak256 hashes data with Keccak-256 (not NIST SHA3, per Ethereum's
// pre-standardization choice) — the same primitive the SHA3 opcode uses.
func keccak256(data ...[]byte) common.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out common.Hash
	h.Sum(out[:0])
	return out
}

// createAddress computes the CREATE address: the low 20 bytes of
// keccak256(rlp([sender, nonce])).
func createAddress(sender common.Address, nonce uint64) common.Address {
	enc, _ := rlp.EncodeToBytes([]interface{}{sender, nonce})
	return common.BytesToAddress(keccak256(enc).Bytes())
}

// ContractAddress is createAddress exported for the transaction executive,
// which needs to know a CREATE's target address before the interpreter ever
// runs (to check for address collisions and transfer value into it).
func ContractAddress(sender common.Address, nonce uint64) common.Address {
	return createAddress(sender, nonce)
}

// create2Address computes the CREATE2 address per EIP-1014: the low 20
// bytes of keccak256(0xff ++ sender ++ salt ++ keccak256(initcode)).
func create2Address(sender common.Address, salt [32]byte, initCode []byte) common.Address {
	codeHash := keccak256(initCode)
	return common.BytesToAddress(keccak256([]byte{0xff}, sender.Bytes(), salt[:], codeHash.Bytes()).Bytes())
}

// prepareCall pops CALL/CALLCODE/DELEGATECALL/STATICCALL's arguments,
// charges the static and access-list portions of gas, and returns a Trap
// describing the child activation for the driver to execute. The call's own
// dynamic value-transfer/new-account surcharges and the 63/64ths gas cap are
// applied here; the actual sub-execution never happens inside this frame.
func (in *Interpreter) prepareCall(f *Frame, al accessLister, op OpCode) (*Trap, error) {
	gasArg := f.stack.pop()
	addrWord := f.stack.pop()
	addr := uint256ToAddress(&addrWord)

	var value uint256.Int
	if op == CALL || op == CALLCODE {
		value = f.stack.pop()
	}

	inOff := f.stack.popU64()
	inSize := f.stack.popU64()
	retOff := f.stack.popU64()
	retSize := f.stack.popU64()

	if op == CALL && f.ReadOnly && !value.IsZero() {
		return nil, ErrWriteProtection
	}

	if err := in.chargeMemory(f, inOff, inSize); err != nil {
		return nil, err
	}
	if err := in.chargeMemory(f, retOff, retSize); err != nil {
		return nil, err
	}

	accessExtra := in.accessAddressCost(f, al, addr)
	transferCost := uint64(0)
	if (op == CALL || op == CALLCODE) && !value.IsZero() {
		transferCost = CallValueTransferGas
	}
	newAccountCost := uint64(0)
	if op == CALL && !value.IsZero() && !f.State.Exist(addr) {
		newAccountCost = CallNewAccountGas
	}

	base := uint64(700)
	if f.Schedule.EIP2929 {
		base = f.Schedule.WarmStorageReadCost
	}
	staticCost := base + accessExtra + transferCost + newAccountCost
	if err := in.useGas(f, staticCost); err != nil {
		return nil, err
	}

	// EIP-150: forward at most gas - gas/64, capped by the requested amount.
	available := f.gas - f.gas/64
	callGas := gasArg.Uint64()
	if !gasArg.IsUint64() || callGas > available {
		callGas = available
	}
	if transferCost > 0 {
		callGas += CallStipend
	}
	if err := in.useGas(f, callGas); err != nil {
		return nil, err
	}

	if f.Depth+1 > MaxCallDepth {
		// A depth-exceeded call fails (pushes 0, no return data written)
		// rather than aborting the parent frame.
		f.gas += callGas
		f.stack.push(new(uint256.Int))
		return nil, nil
	}

	input := f.memory.GetCopy(inOff, inSize)
	f.pendingRetOffset, f.pendingRetSize = retOff, retSize

	params := ActionParams{
		Gas:      callGas,
		Input:    input,
		Code:     f.State.GetCode(addr),
		Origin:   f.Params.Origin,
		GasPrice: f.Params.GasPrice,
	}

	switch op {
	case CALL:
		params.CallType = CallTypeCall
		params.Sender = f.Params.RecvAddr
		params.CodeAddr = addr
		params.RecvAddr = addr
		v := value
		params.Value = &v
	case CALLCODE:
		params.CallType = CallTypeCallCode
		params.Sender = f.Params.RecvAddr
		params.CodeAddr = addr
		params.RecvAddr = f.Params.RecvAddr
		v := value
		params.Value = &v
	case DELEGATECALL:
		params.CallType = CallTypeDelegateCall
		params.Sender = f.Params.Sender
		params.CodeAddr = addr
		params.RecvAddr = f.Params.RecvAddr
		params.Value = f.Params.Value
	case STATICCALL:
		params.CallType = CallTypeStaticCall
		params.Sender = f.Params.RecvAddr
		params.CodeAddr = addr
		params.RecvAddr = addr
		params.IsStatic = true
	}

	return &Trap{Kind: TrapCall, Params: params}, nil
}

// prepareCreate pops CREATE/CREATE2's arguments, computes the new contract's
// address, and returns a Trap describing the init-code execution.
func (in *Interpreter) prepareCreate(f *Frame, al accessLister, op OpCode) (*Trap, error) {
	if f.ReadOnly {
		return nil, ErrWriteProtection
	}
	value := f.stack.pop()
	off := f.stack.popU64()
	size := f.stack.popU64()

	var salt uint256.Int
	if op == CREATE2 {
		salt = f.stack.pop()
	}

	if op == CREATE2 && !f.Schedule.HasCreate2 {
		return nil, ErrInvalidOpcode
	}

	if err := in.chargeMemory(f, off, size); err != nil {
		return nil, err
	}

	baseCost := CreateGas
	if op == CREATE2 {
		baseCost = Create2Gas + numWords(size)*6
	}
	if err := in.useGas(f, baseCost); err != nil {
		return nil, err
	}

	if f.Depth+1 > MaxCallDepth || f.State.GetBalance(f.Params.RecvAddr).Lt(&value) {
		f.stack.push(new(uint256.Int))
		return nil, nil
	}

	initCode := f.memory.GetCopy(off, size)

	var addr common.Address
	if op == CREATE2 {
		addr = create2Address(f.Params.RecvAddr, salt.Bytes32(), initCode)
	} else {
		addr = createAddress(f.Params.RecvAddr, f.State.GetNonce(f.Params.RecvAddr))
	}
	al.InsertAddress(addr)

	available := f.gas - f.gas/64
	if err := in.useGas(f, available); err != nil {
		return nil, err
	}

	params := ActionParams{
		CallType: CallTypeCreate,
		Origin:   f.Params.Origin,
		Sender:   f.Params.RecvAddr,
		CodeAddr: addr,
		RecvAddr: addr,
		Value:    &value,
		Gas:      available,
		Input:    nil,
		Code:     initCode,
		GasPrice: f.Params.GasPrice,
	}
	if op == CREATE2 {
		params.CallType = CallTypeCreate2
		s := salt
		params.Salt = &s
	}

	return &Trap{Kind: TrapCreate, Params: params}, nil
}
