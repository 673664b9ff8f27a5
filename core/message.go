// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"math/big"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
)

// Message is the fully resolved form of a transaction the executive runs:
// sender already recovered and the effective gas price already computed
// against the block's base fee, so nothing downstream needs the signature
// or the raw fee-cap/tip-cap pair again.
type Message struct {
	To         *common.Address
	From       common.Address
	Nonce      uint64
	Value      *big.Int
	GasLimit   uint64
	GasPrice   *big.Int
	GasFeeCap  *big.Int
	GasTipCap  *big.Int
	Data       []byte
	AccessList types.AccessList

	BlobHashes    []common.Hash
	BlobGasFeeCap *big.Int

	// SkipAccountChecks disables the nonce and EOA-sender checks, for
	// system/internal calls that do not originate from a signed transaction.
	SkipAccountChecks bool
}

// TransactionToMessage derives a Message from a signed transaction, the
// signer that recovers its sender, and the block's base fee (nil before
// EIP-1559 activation).
func TransactionToMessage(tx *types.Transaction, s types.Signer, baseFee *big.Int) (*Message, error) {
	from, err := types.Sender(s, tx)
	if err != nil {
		return nil, err
	}
	msg := &Message{
		To:            tx.To(),
		From:          from,
		Nonce:         tx.Nonce(),
		Value:         tx.Value(),
		GasLimit:      tx.Gas(),
		Data:          tx.Data(),
		AccessList:    tx.AccessList(),
		GasFeeCap:     tx.GasFeeCap(),
		GasTipCap:     tx.GasTipCap(),
		BlobHashes:    tx.BlobHashes(),
		GasPrice:      new(big.Int).Set(tx.GasPrice()),
	}
	if baseFee != nil {
		msg.GasPrice = bigMin(new(big.Int).Add(msg.GasTipCap, baseFee), msg.GasFeeCap)
	}
	if bf := tx.BlobGasFeeCap(); bf != nil {
		msg.BlobGasFeeCap = new(big.Int).Set(bf)
	}
	return msg, nil
}

func bigMin(a, b *big.Int) *big.Int {
	if a.Cmp(b) > 0 {
		return b
	}
	return a
}
