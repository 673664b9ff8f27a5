// (c) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lp176

// MinGasPrice is the minimum gas price for LP176
const MinGasPrice = 225_000_000_000

// MinTargetPerSecond is the minimum gas target per second
const MinTargetPerSecond = 15_000_000