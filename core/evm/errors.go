// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package evm

import "errors"

// VM-level errors. These are captured by the transaction driver as a
// failed-receipt outcome, never propagated as a fatal process error.
var (
	ErrOutOfGas                 = errors.New("out of gas")
	ErrStackUnderflow            = errors.New("stack underflow")
	ErrStackOverflow             = errors.New("stack overflow")
	ErrReturnStackOverflow       = errors.New("return stack overflow (EIP-2315 subroutine depth)")
	ErrInvalidSubroutineEntry    = errors.New("invalid subroutine entry: target is not a BEGINSUB")
	ErrReturnStackEmpty          = errors.New("RETURNSUB with empty return stack")
	ErrInvalidJump               = errors.New("invalid jump destination")
	ErrInvalidOpcode             = errors.New("invalid opcode")
	ErrExecutionReverted         = errors.New("execution reverted")
	ErrMutableCallInStaticContext = errors.New("mutable call in static context")
	ErrInvalidCode               = errors.New("invalid code: deployed code begins with 0xEF (EIP-3541)")
	ErrMaxCodeSizeExceeded       = errors.New("max code size exceeded")
	ErrDepth                     = errors.New("max call depth exceeded")
	ErrInsufficientBalance       = errors.New("insufficient balance for transfer")
	ErrContractAddressCollision  = errors.New("contract address collision")
	ErrNonceUintOverflow         = errors.New("nonce uint64 overflow")
	ErrGasUintOverflow           = errors.New("gas uint64 overflow")
	ErrWriteProtection           = errors.New("write protection")
)

// IsRevert reports whether err is the sentinel used for REVERT, which
// unlike other VM errors returns unconsumed gas to the caller.
func IsRevert(err error) bool { return err == ErrExecutionReverted }
