// (c) 2019-2024, Lux Industries, Inc.
// All rights reserved.
// See the file LICENSE for licensing terms.

package header

import (
	"math/big"

	"github.com/luxfi/corechain/core/types"
	"github.com/luxfi/corechain/commontype"
	"github.com/luxfi/corechain/params"
	"github.com/luxfi/corechain/params/extras"
)

// VerifyGasUsed verifies that the gas used is valid
func VerifyGasUsed(config *extras.ChainConfig, feeConfig commontype.FeeConfig, parent *types.Header, header *types.Header) error {
	// TODO: Implement gas used verification
	return nil
}

// VerifyGasLimit verifies that the gas limit is valid
func VerifyGasLimit(config *extras.ChainConfig, feeConfig commontype.FeeConfig, parent *types.Header, header *types.Header) error {
	// TODO: Implement gas limit verification
	return nil
}

// GasLimit calculates the gas limit for a new block
func GasLimit(config *extras.ChainConfig, feeConfig commontype.FeeConfig, parent *types.Header, timestamp uint64) (uint64, error) {
	// TODO: Implement proper gas limit calculation
	// For now, return a constant value
	return feeConfig.GasLimit.Uint64(), nil
}

// VerifyExtraPrefix verifies the extra data prefix
func VerifyExtraPrefix(config *extras.ChainConfig, parent *types.Header, header *types.Header) error {
	// TODO: Implement extra prefix verification
	return nil
}

// BaseFee calculates the expected base fee
func BaseFee(config *extras.ChainConfig, feeConfig commontype.FeeConfig, parent *types.Header, timestamp uint64) (*big.Int, error) {
	// TODO: Implement base fee calculation
	// For now, return a minimal base fee
	return big.NewInt(params.GWei), nil
}

// BlockGasCost calculates the block gas cost
func BlockGasCost(config *extras.ChainConfig, feeConfig commontype.FeeConfig, parent *types.Header, timestamp uint64) *big.Int {
	// TODO: Implement block gas cost calculation
	return big.NewInt(0)
}

// VerifyExtra verifies the extra data
func VerifyExtra(rules params.Rules, extra []byte) error {
	// TODO: Implement extra data verification
	return nil
}

// ExtraPrefix returns the extra data prefix
func ExtraPrefix(config *extras.ChainConfig, parent *types.Header, header *types.Header) ([]byte, error) {
	// TODO: Implement extra prefix generation
	return []byte{}, nil
}

// EstimateNextBaseFee estimates what the base fee will be for the next block
func EstimateNextBaseFee(config *params.ChainConfig, parent *types.Header, timestamp uint64) (*big.Int, error) {
	// If no base fee in parent, no base fee in next block
	if parent.BaseFee == nil {
		return nil, nil
	}
	
	// TODO: Implement proper base fee calculation based on EIP-1559
	// For now, return the parent's base fee
	return new(big.Int).Set(parent.BaseFee), nil
}

// EstimateRequiredTip estimates the minimum tip required for inclusion
func EstimateRequiredTip(config *params.ChainConfig, header *types.Header) (*big.Int, error) {
	// TODO: Implement proper tip estimation
	// For now, return a minimal tip
	return big.NewInt(params.GWei), nil
}