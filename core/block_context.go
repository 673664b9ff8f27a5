// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"math/big"

	"github.com/luxfi/corechain/core/state"
	"github.com/luxfi/corechain/params"
)

// precompileBlockContext carries the values ApplyUpgrades needs to decide
// which precompile-activating network upgrades have gone into effect for
// the block currently being processed.
type precompileBlockContext struct {
	number *big.Int
	time   uint64
}

// NewBlockContext builds the minimal context ApplyUpgrades needs from a
// block's number and timestamp.
func NewBlockContext(number *big.Int, time uint64) *precompileBlockContext {
	return &precompileBlockContext{number: number, time: time}
}

func (b *precompileBlockContext) Number() *big.Int { return b.number }
func (b *precompileBlockContext) Timestamp() uint64 { return b.time }

// ApplyUpgrades evaluates the chain-config rule set for the block described
// by blockContext and discards it: it changes no state and always returns
// nil, so it neither activates upgrades nor rejects a bad upgrade schedule.
// Precompile modules configure their own genesis state via their
// StatefulPrecompiledContract's Configure hook when the stateful precompile
// dispatcher processes the block (see LuxPrecompileOverrider).
func ApplyUpgrades(config *params.ChainConfig, lastTimestamp *uint64, blockContext *precompileBlockContext, statedb *state.StateDB) error {
	_ = config.Rules(blockContext.number, params.IsMergeTODO, blockContext.time)
	_ = lastTimestamp
	_ = statedb
	return nil
}
