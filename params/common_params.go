// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package params

// BlockNumber is a 64-bit block height. A zero value used as a transition
// marker in CommonParams is ambiguous with "active from genesis"; the
// convention here (and in CommonParams) is that a nil *BlockNumber, not a
// zero one, means "never active". Concrete transition fields therefore use
// *uint64 so "never" is representable distinctly from "at genesis".
type BlockNumber = uint64

// CommonParams mirrors the chain-spec-level protocol switches a full node
// needs to reproduce consensus. It is produced by parsing a chain-spec
// document (out of scope here, per SPEC_FULL.md) and consumed as a plain
// value by the execution, verification and filtering components.
//
// A nil transition pointer means the rule never activates; a non-nil one
// gives the first block number at which it is active.
type CommonParams struct {
	EIP150Transition  *uint64
	EIP155Transition  *uint64
	EIP158Transition  *uint64
	EIP161abcTransition *uint64
	EIP161dTransition *uint64

	EIP140Transition *uint64 // REVERT
	EIP145Transition *uint64 // shifts
	EIP1014Transition *uint64 // CREATE2
	EIP1052Transition *uint64 // EXTCODEHASH

	EIP1283Transition        *uint64 // net sstore
	EIP1283DisableTransition *uint64
	EIP1283ReenableTransition *uint64

	EIP1344Transition *uint64 // CHAINID
	EIP1706Transition *uint64 // sstore stipend
	EIP1884Transition *uint64 // repricing
	EIP2028Transition *uint64 // calldata
	EIP2315Transition *uint64 // subroutines
	EIP2929Transition *uint64 // cold/warm
	EIP2930Transition *uint64 // access lists
	EIP3198Transition *uint64 // BASEFEE
	EIP3529Transition *uint64 // refund cap
	EIP3541Transition *uint64 // 0xEF prefix
	EIP3607Transition *uint64 // no-contract senders

	EIP1559Transition                   *uint64
	EIP1559BaseFeeInitialValue           uint64
	EIP1559BaseFeeMaxChangeDenominator   uint64
	EIP1559BaseFeeMinValue               uint64
	EIP1559BaseFeeMinValueTransition     *uint64
	EIP1559ElasticityMultiplier          uint64
	EIP1559FeeCollector                  *[20]byte
	EIP1559FeeCollectorTransition        *uint64

	MaxCodeSize           uint64
	MaxCodeSizeTransition *uint64

	TransactionPermissionContract           *[20]byte
	TransactionPermissionContractTransition *uint64

	ValidateServiceTransactionsTransition *uint64

	WasmActivationTransition *uint64
	WasmDisableTransition    *uint64

	DustProtectionTransition *uint64
	RemoveDustContracts      bool

	GasLimitBoundDivisor uint64
	MaxUncleAge          uint64
}

// DefaultCommonParams returns a CommonParams with the gas-limit bound
// divisor and uncle age set to their mainnet values and every EIP
// transition unset (never active); callers activate the rules they need.
func DefaultCommonParams() *CommonParams {
	return &CommonParams{
		GasLimitBoundDivisor:                1024,
		MaxUncleAge:                         6,
		MaxCodeSize:                         24576,
		EIP1559BaseFeeMaxChangeDenominator:  8,
		EIP1559ElasticityMultiplier:         2,
	}
}

func activeAt(transition *uint64, number uint64) bool {
	return transition != nil && number >= *transition
}

// IsEIP2929 reports whether Berlin-style warm/cold access-list accounting
// is active at the given block number.
func (p *CommonParams) IsEIP2929(number uint64) bool { return activeAt(p.EIP2929Transition, number) }

// IsEIP2930 reports whether typed access-list transactions are accepted.
func (p *CommonParams) IsEIP2930(number uint64) bool { return activeAt(p.EIP2930Transition, number) }

// IsEIP1559 reports whether the block carries a base fee.
func (p *CommonParams) IsEIP1559(number uint64) bool { return activeAt(p.EIP1559Transition, number) }

// IsEIP3529 reports whether the refund quotient is capped at gas_used/5.
func (p *CommonParams) IsEIP3529(number uint64) bool { return activeAt(p.EIP3529Transition, number) }

// IsEIP3541 reports whether CREATE*-deployed code starting with 0xEF is rejected.
func (p *CommonParams) IsEIP3541(number uint64) bool { return activeAt(p.EIP3541Transition, number) }

// IsEIP3607 reports whether senders with deployed code are rejected (no-contract senders).
func (p *CommonParams) IsEIP3607(number uint64) bool { return activeAt(p.EIP3607Transition, number) }

// IsEIP155 reports whether chain-id replay protection is enforced.
func (p *CommonParams) IsEIP155(number uint64) bool { return activeAt(p.EIP155Transition, number) }

// IsEIP158 reports whether empty-account pruning (state clearing) is active.
func (p *CommonParams) IsEIP158(number uint64) bool { return activeAt(p.EIP158Transition, number) }

// MaxCodeSizeAt returns the max deployed code size active at number, or 0 if
// MaxCodeSizeTransition has not yet activated and MaxCodeSize is the only
// value configured (treated as always active when the transition is nil).
func (p *CommonParams) MaxCodeSizeAt(number uint64) uint64 {
	if p.MaxCodeSizeTransition == nil || number >= *p.MaxCodeSizeTransition {
		return p.MaxCodeSize
	}
	return 0
}

// HasBaseFee reports whether block `number` must carry a base_fee field.
func (p *CommonParams) HasBaseFee(number uint64) bool {
	return activeAt(p.EIP1559Transition, number)
}
