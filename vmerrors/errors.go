// (c) 2019-2024, Lux Industries, Inc.
// All rights reserved.
// See the file LICENSE for licensing terms.

package vmerrors

import "errors"

// Common consensus errors
var (
	ErrInvalidCoinbase = errors.New("invalid coinbase")
)