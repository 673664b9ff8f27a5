// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"errors"
	"math"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	gethparams "github.com/luxfi/geth/params"

	"github.com/luxfi/geth/consensus/misc/eip4844"

	evmpkg "github.com/luxfi/corechain/core/evm"
	"github.com/luxfi/corechain/core/state"
	cparams "github.com/luxfi/corechain/params"
)

// Errors returned while applying a Message, before execution has even
// started; these abort the transaction with no gas charged at all (unlike
// an error during execution, which consumes all gas and returns a failed
// receipt).
var (
	ErrNonceTooLow        = errors.New("nonce too low")
	ErrNonceTooHigh       = errors.New("nonce too high")
	ErrSenderNoEOA        = errors.New("sender not an eoa (EIP-3607)")
	ErrInsufficientFunds  = errors.New("insufficient funds for gas * price + value")
	ErrGasLimitReached    = errors.New("gas limit reached")
	ErrIntrinsicGas       = errors.New("intrinsic gas too low")
	ErrMaxInitCodeSizeExceeded = errors.New("max initcode size exceeded")
)

// ExecutionContext bundles the per-block values the executive needs to run
// messages, without depending on go-ethereum's vm.EVM concrete type: the
// block context and gas schedule it computes once are shared by every
// transaction in the block.
type ExecutionContext struct {
	Block    *evmpkg.BlockContext
	Backend  *state.StateBackend
	Schedule *evmpkg.Schedule

	// EIP3607 rejects transactions whose sender account has deployed code,
	// once active; recorded separately from Schedule, which only tracks
	// flags the interpreter itself needs.
	EIP3607 bool

	// BlobBaseFee is EIP-4844's per-block blob base fee, carried only for
	// receipt construction (core/evm has no blob-carrying opcodes).
	BlobBaseFee *big.Int
}

// NewExecutionContext derives the block context and gas schedule active at
// header from chainConfig, and enables backend's access list if EIP-2929 is
// active, exactly once per block. The list is reset and prewarmed for each
// message by ApplyMessage.
func NewExecutionContext(header *types.Header, chainConfig *gethparams.ChainConfig, backend *state.StateBackend) *ExecutionContext {
	rules := chainConfig.Rules(header.Number, cparams.IsMergeTODO, header.Time)
	cp := commonParamsFromRules(rules)

	sched := &evmpkg.Schedule{}
	evmpkg.UpdateSchedule(cp, 0, sched)

	var baseFee *uint256.Int
	if header.BaseFee != nil {
		baseFee, _ = uint256.FromBig(header.BaseFee)
	}
	var difficulty *uint256.Int
	if header.Difficulty != nil {
		difficulty, _ = uint256.FromBig(header.Difficulty)
	} else {
		difficulty = new(uint256.Int)
	}
	var chainID *uint256.Int
	if chainConfig.ChainID != nil {
		chainID, _ = uint256.FromBig(chainConfig.ChainID)
	}

	if sched.EIP2929 {
		backend.AccessList().Enable()
	}

	var blobBaseFee *big.Int
	if rules.IsCancun {
		blobBaseFee = eip4844.CalcBlobFee(chainConfig, header)
	}

	return &ExecutionContext{
		Block: &evmpkg.BlockContext{
			Coinbase:   header.Coinbase,
			Number:     header.Number.Uint64(),
			Timestamp:  header.Time,
			Difficulty: difficulty,
			GasLimit:   header.GasLimit,
			BaseFee:    baseFee,
			ChainID:    chainID,
		},
		Backend:     backend,
		Schedule:    sched,
		EIP3607:     rules.IsLondon,
		BlobBaseFee: blobBaseFee,
	}
}

// commonParamsFromRules flattens a go-ethereum Rules activation snapshot
// (computed for the exact block being processed) into a CommonParams whose
// transitions are either "active from block zero" or "never" — the
// executive only ever evaluates a schedule at the current block, so there is
// no need to carry the real historical transition numbers through.
func commonParamsFromRules(rules gethparams.Rules) *cparams.CommonParams {
	p := cparams.DefaultCommonParams()
	genesis := uint64(0)
	at := func(active bool) *uint64 {
		if active {
			return &genesis
		}
		return nil
	}
	p.EIP150Transition = at(rules.IsEIP150)
	p.EIP155Transition = at(rules.IsEIP155)
	p.EIP158Transition = at(rules.IsEIP158)
	p.EIP161abcTransition = at(rules.IsEIP158)
	p.EIP161dTransition = at(rules.IsEIP158)
	p.EIP140Transition = at(rules.IsByzantium)
	p.EIP145Transition = at(rules.IsConstantinople)
	p.EIP1014Transition = at(rules.IsConstantinople)
	p.EIP1052Transition = at(rules.IsConstantinople)
	p.EIP1283Transition = at(rules.IsConstantinople)
	p.EIP1283DisableTransition = at(rules.IsPetersburg && !rules.IsIstanbul)
	p.EIP1283ReenableTransition = at(rules.IsIstanbul)
	p.EIP1344Transition = at(rules.IsIstanbul)
	p.EIP1706Transition = at(rules.IsIstanbul)
	p.EIP1884Transition = at(rules.IsIstanbul)
	p.EIP2028Transition = at(rules.IsIstanbul)
	p.EIP2929Transition = at(rules.IsBerlin)
	p.EIP2930Transition = at(rules.IsBerlin)
	p.EIP3198Transition = at(rules.IsLondon)
	p.EIP3529Transition = at(rules.IsLondon)
	p.EIP3541Transition = at(rules.IsLondon)
	p.EIP3607Transition = at(rules.IsLondon)
	p.EIP1559Transition = at(rules.IsLondon)
	return p
}

// ExecutionResult is the terminal outcome of applying one Message.
type ExecutionResult struct {
	UsedGas     uint64
	Err         error
	ReturnData  []byte
	ContractAddr common.Address
}

// Failed reports whether execution reverted or errored (as opposed to the
// message being rejected before any gas was spent, which ApplyMessage
// returns as a plain error instead).
func (r *ExecutionResult) Failed() bool { return r.Err != nil }

// Return is the data RETURNed by a successful call, or nil for a failed one.
func (r *ExecutionResult) Return() []byte {
	if r.Err != nil {
		return nil
	}
	return r.ReturnData
}

// Revert is the data REVERTed by a reverted call, or nil otherwise.
func (r *ExecutionResult) Revert() []byte {
	if r.Err != evmpkg.ErrExecutionReverted {
		return nil
	}
	return r.ReturnData
}

// executive drives a single Message's execution: it is the transaction
// executive the interpreter (core/evm, C2) and the access list (core/state,
// C4) are built to be driven by. It calls core/evm.Interpreter.Run/Resume at
// each level and resolves CALL/CREATE traps itself. It keeps no explicit
// frame stack: runFrame recurses once per EVM call depth.
type executive struct {
	ctx *ExecutionContext
	msg *Message
	gp  *GasPool

	interp *evmpkg.Interpreter
}

// ApplyMessage computes the state transition caused by msg against ctx,
// charging gp for the gas it uses. It is the sole entry point through which
// block and transaction processing reach the interpreter; TransactionToMessage
// plus ApplyMessage is this module's replacement for a monolithic EVM.Call.
func ApplyMessage(ctx *ExecutionContext, msg *Message, gp *GasPool) (*ExecutionResult, error) {
	ex := &executive{ctx: ctx, msg: msg, gp: gp, interp: evmpkg.NewInterpreter()}
	return ex.execute()
}

func (ex *executive) execute() (*ExecutionResult, error) {
	msg, st := ex.msg, ex.ctx.Backend

	if !msg.SkipAccountChecks {
		stNonce := st.GetNonce(msg.From)
		if stNonce < msg.Nonce {
			return nil, ErrNonceTooHigh
		} else if stNonce > msg.Nonce {
			return nil, ErrNonceTooLow
		}
		if ex.ctx.EIP3607 && len(st.GetCode(msg.From)) > 0 {
			return nil, ErrSenderNoEOA
		}
	}

	isCreate := msg.To == nil
	intrinsic, err := IntrinsicGas(msg.Data, msg.AccessList, isCreate, ex.ctx.Schedule)
	if err != nil {
		return nil, err
	}
	if msg.GasLimit < intrinsic {
		return nil, ErrIntrinsicGas
	}

	gasRemaining, err := ex.buyGas()
	if err != nil {
		return nil, err
	}
	gasRemaining -= intrinsic

	if !msg.SkipAccountChecks {
		st.SetNonce(msg.From, msg.Nonce+1)
	}

	if ex.ctx.Schedule.EIP2929 {
		// Warmth never carries over from an earlier message in the block.
		al := st.AccessList()
		*al = *state.NewAccessList()
		al.Enable()
		al.Prewarm(msg.From, msg.To, nil)
	}

	msgValue := msg.Value
	if msgValue == nil {
		msgValue = new(big.Int)
	}
	value, overflow := uint256.FromBig(msgValue)
	if overflow {
		return nil, errors.New("message value overflows 256 bits")
	}
	gasPrice, _ := uint256.FromBig(msg.GasPrice)

	var (
		res         *evmpkg.ExecResult
		contractAddr common.Address
	)
	snap := st.Snapshot()
	if isCreate {
		sender := msg.From
		nonce := st.GetNonce(sender)
		if nonce > 0 {
			nonce--
		}
		contractAddr = common.Address{}
		params := evmpkg.ActionParams{
			CallType: evmpkg.CallTypeCreate,
			Origin:   msg.From,
			Sender:   msg.From,
			Value:    value,
			Gas:      gasRemaining,
			Code:     msg.Data,
			GasPrice: gasPrice,
		}
		addr := contractCreateAddress(sender, nonce)
		params.CodeAddr, params.RecvAddr = addr, addr
		res, err = ex.runTop(params, 0)
		contractAddr = addr
	} else {
		params := evmpkg.ActionParams{
			CallType: evmpkg.CallTypeCall,
			Origin:   msg.From,
			Sender:   msg.From,
			CodeAddr: *msg.To,
			RecvAddr: *msg.To,
			Value:    value,
			Gas:      gasRemaining,
			Input:    msg.Data,
			Code:     st.GetCode(*msg.To),
			GasPrice: gasPrice,
		}
		res, err = ex.runTop(params, 0)
	}
	if err != nil || !res.Success {
		// A failed or reverted transaction keeps only the nonce bump and the
		// gas purchase made above.
		st.RevertToSnapshot(snap)
	}

	var execErr error
	var gasLeft uint64
	var returnData []byte
	if err != nil {
		execErr = err
		gasLeft = 0
	} else if !res.Success {
		execErr = evmpkg.ErrExecutionReverted
		gasLeft = res.GasLeft
		returnData = res.ReturnData
	} else {
		gasLeft = res.GasLeft
		returnData = res.ReturnData
	}

	used := ex.refundGas(gasLeft)

	return &ExecutionResult{
		UsedGas:      used,
		Err:          execErr,
		ReturnData:   returnData,
		ContractAddr: contractAddr,
	}, nil
}

// runTop executes the top-level call/create frame of a transaction,
// including value transfer into the callee and (for CREATE) code-deposit
// charging — the pieces a real geth-shaped EVM.Call/Create performs around
// the interpreter, which core/evm deliberately does not do itself.
func (ex *executive) runTop(params evmpkg.ActionParams, depth int) (*evmpkg.ExecResult, error) {
	st := ex.ctx.Backend
	if !params.Value.IsZero() {
		if st.GetBalance(params.Sender).Lt(params.Value) {
			return &evmpkg.ExecResult{Success: false}, nil
		}
	}
	if params.CallType == evmpkg.CallTypeCreate || params.CallType == evmpkg.CallTypeCreate2 {
		if st.GetNonce(params.RecvAddr) != 0 || len(st.GetCode(params.RecvAddr)) != 0 {
			return &evmpkg.ExecResult{Success: false}, nil
		}
		st.CreateAccount(params.RecvAddr)
		st.SetNonce(params.RecvAddr, 1)
	}
	if !params.Value.IsZero() {
		st.SubBalance(params.Sender, params.Value)
		st.AddBalance(params.RecvAddr, params.Value)
	}

	frame := evmpkg.NewFrame(params, depth, ex.ctx.Schedule, ex.ctx.Block, st, params.CallType == evmpkg.CallTypeStaticCall)
	res, err := ex.runFrame(frame)
	if err != nil {
		return nil, err
	}

	if res.Success && (params.CallType == evmpkg.CallTypeCreate || params.CallType == evmpkg.CallTypeCreate2) {
		return ex.finalizeCreate(params.RecvAddr, res)
	}
	return res, nil
}

// finalizeCreate charges the EIP-170/EIP-3541-checked code-deposit cost for
// a successful CREATE/CREATE2 and installs the returned code, or fails the
// whole create (out of gas / oversize / 0xEF prefix) without installing it.
func (ex *executive) finalizeCreate(addr common.Address, res *evmpkg.ExecResult) (*evmpkg.ExecResult, error) {
	code := res.ReturnData
	if ex.ctx.Schedule.EIP3541 && len(code) > 0 && code[0] == 0xEF {
		return &evmpkg.ExecResult{Success: false, GasLeft: 0}, nil
	}
	if ex.ctx.Schedule.MaxCodeSize > 0 && uint64(len(code)) > ex.ctx.Schedule.MaxCodeSize {
		return &evmpkg.ExecResult{Success: false, GasLeft: 0}, nil
	}
	depositCost := uint64(len(code)) * evmpkg.CreateDataGas
	if res.GasLeft < depositCost {
		return &evmpkg.ExecResult{Success: false, GasLeft: 0}, nil
	}
	ex.ctx.Backend.SetCode(addr, code)
	return &evmpkg.ExecResult{
		Success:     true,
		GasLeft:     res.GasLeft - depositCost,
		CreatedAddr: addr,
	}, nil
}

// runFrame runs f to completion, resolving any Trap it returns by executing
// the child frame described and calling Resume with the outcome — the loop
// that replaces a recursive EVM.Call/Create chain. Native Go recursion here
// is bounded by EVM call depth (at most evmpkg.MaxCallDepth), exactly as
// deep as a conventional interpreter would recurse; what differs is that
// core/evm.Interpreter itself never recurses; only this driver loop does,
// one Go frame per EVM call-stack frame.
func (ex *executive) runFrame(f *evmpkg.Frame) (*evmpkg.ExecResult, error) {
	st := ex.ctx.Backend
	res, trap, err := ex.interp.Run(f)
	for trap != nil && err == nil {
		st.PushFrame()
		snap := st.Snapshot()

		childParams := trap.Params
		var childRes *evmpkg.ExecResult
		var childErr error
		var createdAddr common.Address
		succeeded := false

		if trap.Kind == evmpkg.TrapCreate {
			childRes, childErr = ex.runTop(childParams, f.Depth+1)
			if childErr == nil && childRes.Success {
				succeeded = true
				createdAddr = childRes.CreatedAddr
			}
		} else {
			// DELEGATECALL carries the parent's value for CALLVALUE but moves no funds.
			transfers := childParams.Value != nil && !childParams.Value.IsZero() && childParams.CallType != evmpkg.CallTypeDelegateCall
			if transfers {
				if st.GetBalance(childParams.Sender).Lt(childParams.Value) {
					childRes = &evmpkg.ExecResult{Success: false}
				}
			}
			if childRes == nil {
				if transfers {
					st.SubBalance(childParams.Sender, childParams.Value)
					st.AddBalance(childParams.RecvAddr, childParams.Value)
				}
				child := evmpkg.NewFrame(childParams, f.Depth+1, f.Schedule, f.Block, st, f.ReadOnly || childParams.IsStatic)
				childRes, childErr = ex.runFrame(child)
				if childErr == nil && childRes.Success {
					succeeded = true
				}
			}
		}

		if childErr != nil {
			// A VM error fails only the sub-call: the parent resumes with a
			// zero result and gets none of the child's gas back.
			childRes, childErr = &evmpkg.ExecResult{Success: false}, nil
		}
		if succeeded {
			st.MergeFrame()
		} else {
			// Discard every state change the child made, including the value
			// transfer applied above.
			st.RevertToSnapshot(snap)
			st.PopFrame()
		}

		var sub evmpkg.SubCallResult
		if childRes == nil {
			sub = evmpkg.SubCallResult{Success: false}
		} else {
			sub = evmpkg.SubCallResult{
				Success:      childRes.Success,
				ReturnData:   childRes.ReturnData,
				GasRemaining: childRes.GasLeft,
				CreatedAddr:  createdAddr,
			}
		}
		res, trap, err = ex.interp.Resume(f, sub)
	}
	if err != nil {
		if evmpkg.IsRevert(err) && res != nil {
			// REVERT fails the frame but keeps its unused gas and return data.
			return res, nil
		}
		return nil, err
	}
	return res, nil
}

func contractCreateAddress(sender common.Address, nonce uint64) common.Address {
	return evmpkg.ContractAddress(sender, nonce)
}

// buyGas charges msg.From for the full gas limit up front, at msg.GasPrice,
// and reserves that much gas out of the block's pool.
func (ex *executive) buyGas() (uint64, error) {
	st := ex.ctx.Backend
	cost := new(big.Int).Mul(new(big.Int).SetUint64(ex.msg.GasLimit), ex.msg.GasPrice)
	if ex.msg.Value != nil {
		// Balance must additionally cover the value being sent; checked here
		// so an underfunded sender is rejected before any gas is spent.
		need := new(big.Int).Add(cost, ex.msg.Value)
		if st.GetBalance(ex.msg.From).ToBig().Cmp(need) < 0 {
			return 0, ErrInsufficientFunds
		}
	} else if st.GetBalance(ex.msg.From).ToBig().Cmp(cost) < 0 {
		return 0, ErrInsufficientFunds
	}
	if err := ex.gp.SubGas(ex.msg.GasLimit); err != nil {
		return 0, err
	}
	amount, _ := uint256.FromBig(cost)
	st.SubBalance(ex.msg.From, amount)
	return ex.msg.GasLimit, nil
}

// refundGas returns the capped unused-gas refund to msg.From, replenishes
// the block's gas pool with whatever gas ends up unspent, and returns the
// gas actually used by the transaction.
func (ex *executive) refundGas(gasRemaining uint64) uint64 {
	st := ex.ctx.Backend
	refund := st.GetRefund()
	cap := (ex.msg.GasLimit - gasRemaining) / ex.ctx.Schedule.RefundQuotient
	if refund > cap {
		refund = cap
	}
	gasRemaining += refund

	repay := new(big.Int).Mul(new(big.Int).SetUint64(gasRemaining), ex.msg.GasPrice)
	amount, _ := uint256.FromBig(repay)
	st.AddBalance(ex.msg.From, amount)
	ex.gp.AddGas(gasRemaining)

	return ex.msg.GasLimit - gasRemaining
}

// IntrinsicGas computes the gas a message is charged before any of its code
// runs: the flat per-transaction cost, calldata byte costs (EIP-2028 once
// active), and EIP-2930 access-list entry costs.
func IntrinsicGas(data []byte, accessList types.AccessList, isContractCreation bool, sched *evmpkg.Schedule) (uint64, error) {
	gas := evmpkg.TxGas
	if isContractCreation {
		gas = evmpkg.TxGasContractCreation
	}
	if len(data) > 0 {
		var nz uint64
		for _, b := range data {
			if b != 0 {
				nz++
			}
		}
		nonZeroGas := evmpkg.TxDataNonZeroGasFrontier
		if sched.EIP2028 {
			nonZeroGas = evmpkg.TxDataNonZeroGasIstanbul
		}
		if (math.MaxUint64-gas)/nonZeroGas < nz {
			return 0, evmpkg.ErrGasUintOverflow
		}
		gas += nz * nonZeroGas

		z := uint64(len(data)) - nz
		if (math.MaxUint64-gas)/evmpkg.TxDataZeroGas < z {
			return 0, evmpkg.ErrGasUintOverflow
		}
		gas += z * evmpkg.TxDataZeroGas
	}
	if accessList != nil {
		gas += uint64(len(accessList)) * evmpkg.TxAccessListAddressGas
		for _, entry := range accessList {
			gas += uint64(len(entry.StorageKeys)) * evmpkg.TxAccessListStorageKeyGas
		}
	}
	return gas, nil
}
