// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
//
// This file is a derived work, based on the go-ethereum library whose original
// notices appear below.
//
// It is distributed under a license compatible with the licensing terms of the
// original code from which it is derived.
//
// Much love to the original authors for their work.
// **********
// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package core

import (
	"context"
	"fmt"
	"math/big"

	"github.com/luxfi/corechain/consensus"
	"github.com/luxfi/corechain/core/state"
	"github.com/luxfi/corechain/params"
	"github.com/luxfi/corechain/params/extras"
	"github.com/luxfi/corechain/predicate"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/geth/core/vm"
	ethparams "github.com/luxfi/geth/params"
	log "github.com/luxfi/log"
)

// StateProcessor is a basic Processor, which takes care of transitioning
// state from one point to another.
//
// StateProcessor implements Processor.
type StateProcessor struct {
	config *params.ChainConfig // Chain configuration options
	bc     *BlockChain         // Canonical block chain
	engine consensus.Engine    // Consensus engine used for block rewards
}

// NewStateProcessor initialises a new StateProcessor.
func NewStateProcessor(config *params.ChainConfig, bc *BlockChain, engine consensus.Engine) *StateProcessor {
	return &StateProcessor{
		config: config,
		bc:     bc,
		engine: engine,
	}
}

// Process processes the state changes according to the Ethereum rules by running
// the transaction messages using the statedb and applying any rewards to both
// the processor (coinbase) and any included uncles.
//
// Process returns the receipts and logs accumulated during the process and
// returns the amount of gas that was used in the process. If any of the
// transactions failed to execute due to insufficient gas it will return an error.
func (p *StateProcessor) Process(block *types.Block, parent *types.Header, statedb *state.StateDB, cfg vm.Config) (types.Receipts, []*types.Log, uint64, error) {
	var (
		receipts    types.Receipts
		usedGas     = new(uint64)
		header      = block.Header()
		blockHash   = block.Hash()
		blockNumber = block.Number()
		allLogs     []*types.Log
		gp          = new(GasPool).AddGas(block.GasLimit())
	)

	// Configure any upgrades that should go into effect during this block.
	blockContext := NewBlockContext(block.Number(), block.Time())
	err := ApplyUpgrades(p.config, &parent.Time, blockContext, statedb)
	if err != nil {
		log.Error("failed to configure precompiles processing block", "hash", block.Hash(), "number", block.NumberU64(), "timestamp", block.Time(), "err", err)
		return nil, nil, 0, err
	}

	var (
		context = NewEVMBlockContext(header, p.bc, nil)
		signer  = types.MakeSigner(p.config, header.Number, header.Time)
	)
	backend := state.NewStateBackend(statedb, GetHashFn(header, p.bc))
	execCtx := NewExecutionContext(header, p.config, backend)
	// Get rules for predicate storage slot computation
	rules := p.config.Rules(header.Number, params.IsMergeTODO, header.Time)
	rulesExtra := params.GetRulesExtra(rules)

	// Parse predicate results from block header extra data
	var predicateResults *predicate.Results
	if rulesExtra.PredicatersExist {
		var parseErr error
		predicateResults, parseErr = predicate.ParseResultsFromHeaderExtra(header.Extra)
		if parseErr != nil {
			log.Debug("failed to parse predicate results from header", "hash", block.Hash(), "err", parseErr)
		}
	}

	// Set up initial stateful precompile hook with consensus context from blockchain
	// TODO: StatefulPrecompileHook disabled - type not available in luxfi/geth
	// cfg.StatefulPrecompileHook = NewStatefulPrecompileHookFull(p.config, nil, p.bc.ConsensusContext(), nil, predicateResults)
	_ = predicateResults // Suppress unused warning until StatefulPrecompileHook is re-enabled
	vmenv := vm.NewEVM(context, statedb, p.config, cfg)
	// Debug: Check if statedb is nil
	if statedb == nil {
		log.Error("StateDB is nil in Process!")
	}
	if beaconRoot := block.BeaconRoot(); beaconRoot != nil {
		ProcessBeaconBlockRoot(*beaconRoot, vmenv, statedb)
	}
	// Iterate over and process the individual transactions
	for i, tx := range block.Transactions() {
		msg, err := TransactionToMessage(tx, signer, header.BaseFee)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("could not apply tx %d [%v]: %w", i, tx.Hash().Hex(), err)
		}
		statedb.SetTxContext(tx.Hash(), i)

		// Compute predicate storage slots for this transaction and update the hook
		var predicateStorageSlots map[common.Address][][]byte
		if rulesExtra.PredicatersExist {
			extrasRules := &extras.Rules{
				Predicaters: rulesExtra.Predicaters,
				LuxRules:    rulesExtra.LuxRules,
			}
			predicateStorageSlots = predicate.PreparePredicateStorageSlots(extrasRules, tx.AccessList())
		}
		// TODO: StatefulPrecompileHook disabled - type not available in luxfi/geth
		// vmenv.Config.StatefulPrecompileHook = NewStatefulPrecompileHookFull(p.config, nil, p.bc.ConsensusContext(), predicateStorageSlots, predicateResults)
		_ = predicateStorageSlots // Suppress unused warning until StatefulPrecompileHook is re-enabled

		receipt, err := applyTransaction(msg, execCtx, p.config, gp, statedb, blockNumber, blockHash, header.Time, tx, usedGas)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("could not apply tx %d [%v]: %w", i, tx.Hash().Hex(), err)
		}
		receipts = append(receipts, receipt)
		allLogs = append(allLogs, receipt.Logs...)
	}
	// Finalize the block, applying any consensus engine specific extras (e.g. block rewards)
	if err := p.engine.Finalize(p.bc, block, parent, statedb, receipts); err != nil {
		return nil, nil, 0, fmt.Errorf("engine finalization check failed: %w", err)
	}

	return receipts, allLogs, *usedGas, nil
}

func applyTransaction(msg *Message, execCtx *ExecutionContext, config *params.ChainConfig, gp *GasPool, statedb *state.StateDB, blockNumber *big.Int, blockHash common.Hash, blockTime uint64, tx *types.Transaction, usedGas *uint64) (*types.Receipt, error) {
	// Apply the transaction to the current state via the transaction
	// executive (core/evm's trap-driven interpreter, driven here instead of
	// go-ethereum's recursive vm.EVM.Call/Create).
	result, err := ApplyMessage(execCtx, msg, gp)
	if err != nil {
		return nil, err
	}

	// Update the state with pending changes.
	var root []byte
	if config.IsByzantium(blockNumber) {
		statedb.Finalise(true)
	} else {
		root = statedb.IntermediateRoot(config.IsEIP158(blockNumber)).Bytes()
	}
	*usedGas += result.UsedGas

	// Create a new receipt for the transaction, storing the intermediate root and gas used
	// by the tx.
	receipt := &types.Receipt{Type: tx.Type(), PostState: root, CumulativeGasUsed: *usedGas}
	if result.Failed() {
		receipt.Status = types.ReceiptStatusFailed
	} else {
		receipt.Status = types.ReceiptStatusSuccessful
	}
	receipt.TxHash = tx.Hash()
	receipt.GasUsed = result.UsedGas

	if tx.Type() == types.BlobTxType {
		receipt.BlobGasUsed = uint64(len(tx.BlobHashes()) * ethparams.BlobTxBlobGasPerBlob)
		receipt.BlobGasPrice = execCtx.BlobBaseFee
	}

	// If the transaction created a contract, store the creation address in the receipt.
	if msg.To == nil {
		receipt.ContractAddress = result.ContractAddr
	}

	// Set the receipt logs and create the bloom filter.
	receipt.Logs = statedb.GetLogs(tx.Hash(), blockNumber.Uint64(), blockHash, blockTime)
	receipt.Bloom = types.CreateBloom(receipt)
	receipt.BlockHash = blockHash
	receipt.BlockNumber = blockNumber
	receipt.TransactionIndex = uint(statedb.TxIndex())
	return receipt, nil
}

// ApplyTransaction attempts to apply a transaction to the given state database
// and uses the input parameters for its environment. It returns the receipt
// for the transaction, gas used and an error if the transaction failed,
// indicating the block was invalid.
func ApplyTransaction(config *params.ChainConfig, bc ChainContext, blockContext vm.BlockContext, gp *GasPool, statedb *state.StateDB, header *types.Header, tx *types.Transaction, usedGas *uint64, cfg vm.Config) (*types.Receipt, error) {
	return ApplyTransactionWithResults(config, bc, blockContext, gp, statedb, header, tx, usedGas, cfg, nil)
}

// ApplyTransactionWithResults is like ApplyTransaction but accepts pre-computed predicate results.
// This is used by the miner when it has already verified predicates.
func ApplyTransactionWithResults(config *params.ChainConfig, bc ChainContext, blockContext vm.BlockContext, gp *GasPool, statedb *state.StateDB, header *types.Header, tx *types.Transaction, usedGas *uint64, cfg vm.Config, predicateResults *predicate.Results) (*types.Receipt, error) {
	msg, err := TransactionToMessage(tx, types.MakeSigner(config, header.Number, header.Time), header.BaseFee)
	if err != nil {
		return nil, err
	}

	// Compute predicate storage slots from the transaction's access list
	rules := config.Rules(header.Number, params.IsMergeTODO, header.Time)
	rulesExtra := params.GetRulesExtra(rules)
	var predicateStorageSlots map[common.Address][][]byte
	if rulesExtra.PredicatersExist {
		extrasRules := &extras.Rules{
			Predicaters: rulesExtra.Predicaters,
			LuxRules:    rulesExtra.LuxRules,
		}
		predicateStorageSlots = predicate.PreparePredicateStorageSlots(extrasRules, tx.AccessList())
	}

	// Set up the stateful precompile hook with consensus context from chain
	// bc can be nil in test contexts (e.g., AddTxWithVMConfig)
	var consensusCtx context.Context
	if bc != nil {
		consensusCtx = bc.ConsensusContext()
	}
	// TODO: StatefulPrecompileHook disabled - type not available in luxfi/geth
	// cfg.StatefulPrecompileHook = NewStatefulPrecompileHookFull(config, nil, consensusCtx, predicateStorageSlots, predicateResults)
	_ = consensusCtx          // Suppress unused warning until StatefulPrecompileHook is re-enabled
	_ = predicateStorageSlots // Suppress unused warning until StatefulPrecompileHook is re-enabled

	backend := state.NewStateBackend(statedb, blockContext.GetHash)
	execCtx := NewExecutionContext(header, config, backend)
	return applyTransaction(msg, execCtx, config, gp, statedb, header.Number, header.Hash(), header.Time, tx, usedGas)
}

// ProcessBeaconBlockRoot applies the EIP-4788 system call to the beacon block root
// contract. This method is exported to be used in tests.
func ProcessBeaconBlockRoot(beaconRoot common.Hash, vmenv *vm.EVM, statedb *state.StateDB) {
	// If EIP-4788 is enabled, we need to invoke the beaconroot storage contract with
	// the new root
	msg := &Message{
		From:      ethparams.SystemAddress,
		GasLimit:  30_000_000,
		GasPrice:  common.Big0,
		GasFeeCap: common.Big0,
		GasTipCap: common.Big0,
		To:        &ethparams.BeaconRootsAddress,
		Data:      beaconRoot[:],
	}
	vmenv.SetTxContext(NewEVMTxContext(msg))
	statedb.AddAddressToAccessList(ethparams.BeaconRootsAddress)
	_, _, _ = vmenv.Call(msg.From, *msg.To, msg.Data, 30_000_000, common.U2560)
	statedb.Finalise(true)
}
