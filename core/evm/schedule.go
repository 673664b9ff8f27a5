// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package evm

import "github.com/luxfi/corechain/params"

// Gas costs below Berlin's cold/warm split come from the Yellow Paper; the
// cold/warm figures are EIP-2929's.
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20

	ColdAccountAccessCost uint64 = 2600
	ColdSloadCost         uint64 = 2100
	WarmStorageReadCost   uint64 = 100

	SstoreSetGas    uint64 = 20000
	SstoreResetGas  uint64 = 5000
	SstoreRefundGas uint64 = 15000
	SstoreClearRefund uint64 = 4800 // post-EIP-3529, net-metered clear refund

	CreateDataGas uint64 = 200
	CreateGas     uint64 = 32000
	Create2Gas    uint64 = 32000

	CallValueTransferGas uint64 = 9000
	CallNewAccountGas    uint64 = 25000
	CallStipend          uint64 = 2300

	LogGas     uint64 = 375
	LogDataGas uint64 = 8
	LogTopicGas uint64 = 375

	MemoryGas      uint64 = 3
	QuadCoeffDiv   uint64 = 512

	TxGas           uint64 = 21000
	TxGasContractCreation uint64 = 53000
	TxDataZeroGas   uint64 = 4
	TxDataNonZeroGasFrontier uint64 = 68
	TxDataNonZeroGasIstanbul uint64 = 16 // EIP-2028

	TxAccessListAddressGas uint64 = 2400
	TxAccessListStorageKeyGas uint64 = 1900
)

// RefundQuotient bounds how much of gas_used may be refunded at transaction
// end: gas_used/2 pre-London, gas_used/5 post (EIP-3529).
const (
	RefundQuotientPreLondon  uint64 = 2
	RefundQuotientPostLondon uint64 = 5
)

// MaxCallDepth bounds both the ordinary call-frame stack and, independently,
// the EIP-2315 return-stack.
const MaxCallDepth = 1024

// MaxStackSize is the maximum number of U256 elements on the EVM stack.
const MaxStackSize = 1024

// Schedule holds the gas costs and feature flags active for one block. It
// is derived once per block via UpdateSchedule and then threaded read-only
// through every frame the interpreter runs for that block.
type Schedule struct {
	BlockNumber uint64

	// EIP-2929 warm/cold accounting.
	EIP2929 bool
	// EIP-2930 access-list transactions accepted.
	EIP2930 bool
	// EIP-1559 base fee market active (also implies BASEFEE opcode via EIP-3198).
	EIP1559 bool
	// EIP-3529 caps refunds at gas_used/5 and removes SELFDESTRUCT refund.
	EIP3529 bool
	// EIP-3541 rejects deployed code starting with 0xEF.
	EIP3541 bool
	// EIP-2315 subroutine opcodes (BEGINSUB/JUMPSUB/RETURNSUB) enabled.
	EIP2315 bool
	// EIP-1283/1706 net-metered SSTORE with stipend check.
	NetSstore bool
	// EIP-1884 reprices SLOAD/BALANCE/EXTCODEHASH and adds SELFBALANCE.
	EIP1884 bool
	// EIP-2028 reduces non-zero calldata byte cost to 16.
	EIP2028 bool
	// EIP-1014 CREATE2.
	HasCreate2 bool
	// EIP-1052 EXTCODEHASH.
	HasExtCodeHash bool
	// EIP-145 SHL/SHR/SAR.
	HasBitwiseShifting bool
	// EIP-1344 CHAINID.
	HasChainID bool
	// EIP-140 REVERT.
	HasRevert bool

	MaxCodeSize uint64

	RefundQuotient uint64

	SstoreSetGas      uint64
	SstoreResetGas    uint64
	SstoreRefundGas   uint64
	ColdSloadCost     uint64
	ColdAccountAccessCost uint64
	WarmStorageReadCost   uint64

	TxDataZeroGas    uint64
	TxDataNonZeroGas uint64
}

// UpdateSchedule derives the gas schedule and feature flags active for the
// block identified by number, following CommonParams' transitions.
func UpdateSchedule(p *params.CommonParams, number uint64, schedule *Schedule) {
	*schedule = Schedule{
		BlockNumber:           number,
		MaxCodeSize:           p.MaxCodeSizeAt(number),
		RefundQuotient:        RefundQuotientPreLondon,
		SstoreSetGas:          SstoreSetGas,
		SstoreResetGas:        SstoreResetGas,
		SstoreRefundGas:       SstoreRefundGas,
		ColdSloadCost:         ColdSloadCost,
		ColdAccountAccessCost: ColdAccountAccessCost,
		WarmStorageReadCost:   WarmStorageReadCost,
		TxDataZeroGas:         TxDataZeroGas,
		TxDataNonZeroGas:      TxDataNonZeroGasFrontier,
	}

	activeAt := func(t *uint64) bool { return t != nil && number >= *t }

	schedule.HasRevert = activeAt(p.EIP140Transition)
	schedule.HasBitwiseShifting = activeAt(p.EIP145Transition)
	schedule.HasCreate2 = activeAt(p.EIP1014Transition)
	schedule.HasExtCodeHash = activeAt(p.EIP1052Transition)
	schedule.HasChainID = activeAt(p.EIP1344Transition)
	schedule.EIP2315 = activeAt(p.EIP2315Transition)
	schedule.EIP1884 = activeAt(p.EIP1884Transition)

	if activeAt(p.EIP2028Transition) {
		schedule.EIP2028 = true
		schedule.TxDataNonZeroGas = TxDataNonZeroGasIstanbul
	}

	if activeAt(p.EIP1283Transition) && !activeAt(p.EIP1283DisableTransition) {
		schedule.NetSstore = true
	}
	if activeAt(p.EIP1283ReenableTransition) {
		schedule.NetSstore = true
	}

	if p.IsEIP2929(number) {
		schedule.EIP2929 = true
	}
	if activeAt(p.EIP2930Transition) {
		schedule.EIP2930 = true
	}
	if p.IsEIP1559(number) {
		schedule.EIP1559 = true
	}
	if p.IsEIP3529(number) {
		schedule.EIP3529 = true
		schedule.RefundQuotient = RefundQuotientPostLondon
	}
	if p.IsEIP3541(number) {
		schedule.EIP3541 = true
	}
}
