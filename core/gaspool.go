// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import "fmt"

// GasPool tracks the gas available for execution within one block. The
// zero value holds no gas; callers initialize it with AddGas(block.GasLimit()).
type GasPool uint64

const maxGasPool = uint64(1<<64 - 1)

// AddGas makes gas available for execution.
func (gp *GasPool) AddGas(amount uint64) *GasPool {
	if uint64(*gp) > maxGasPool-amount {
		panic("gas pool pushed above uint64")
	}
	*gp += GasPool(amount)
	return gp
}

// SubGas deducts the requested amount from the pool, failing if the pool
// does not have enough gas remaining.
func (gp *GasPool) SubGas(amount uint64) error {
	if uint64(*gp) < amount {
		return ErrGasLimitReached
	}
	*gp -= GasPool(amount)
	return nil
}

// Gas returns the amount of gas remaining in the pool.
func (gp *GasPool) Gas() uint64 {
	return uint64(*gp)
}

func (gp *GasPool) String() string {
	return fmt.Sprintf("%d", uint64(*gp))
}
