// Copyright 2025 Lux Industries, Inc.
// This file contains gas cost constants used by the VM.

package vmerrs

const (
	// AssetBalanceApricot is the gas cost for querying native asset balance
	AssetBalanceApricot uint64 = 2474

	// AssetCallApricot is the gas cost for calling native asset transfer
	AssetCallApricot uint64 = 9000
)