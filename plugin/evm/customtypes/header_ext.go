// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package customtypes

import (
	"io"
	"math/big"
	"sync"

	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/common/hexutil"
	ethtypes "github.com/luxfi/geth/core/types"
	"github.com/luxfi/geth/rlp"
)

// Hash-based storage for header extras to survive RLP encoding/decoding.
// Using header hash as key ensures extras are preserved when blocks are
// serialized and deserialized (which creates new header pointers).
var (
	headerExtrasByHash = make(map[common.Hash]*HeaderExtra)
	headerExtrasMutex  sync.RWMutex
)

// GetHeaderExtra returns the [HeaderExtra] from the given [Header].
// Looks up by header hash to survive RLP round-trips.
func GetHeaderExtra(h *ethtypes.Header) *HeaderExtra {
	if h == nil {
		return nil
	}
	hash := h.Hash()
	headerExtrasMutex.RLock()
	defer headerExtrasMutex.RUnlock()
	extra := headerExtrasByHash[hash]
	if extra == nil {
		// Return a default HeaderExtra with BlockGasCost set to nil
		// This matches the expected behavior for blocks without gas cost set
		return &HeaderExtra{BlockGasCost: nil}
	}
	return extra
}

// SetHeaderExtra sets the given [HeaderExtra] on the [Header].
// Stores by header hash to survive RLP round-trips.
func SetHeaderExtra(h *ethtypes.Header, extra *HeaderExtra) {
	if h == nil {
		return
	}
	hash := h.Hash()
	headerExtrasMutex.Lock()
	defer headerExtrasMutex.Unlock()
	headerExtrasByHash[hash] = extra
}

// WithHeaderExtra sets the given [HeaderExtra] on the [Header]
// and returns the [Header] for chaining.
func WithHeaderExtra(h *ethtypes.Header, extra *HeaderExtra) *ethtypes.Header {
	SetHeaderExtra(h, extra)
	return h
}

// HeaderExtra is a struct that contains extra fields used by Subnet-EVM
// in the block header.
// This type uses [HeaderSerializable] to encode and decode the extra fields
// along with the upstream type for compatibility with existing network blocks.
type HeaderExtra struct {
	BlockGasCost *big.Int
}

// EncodeRLP RLP encodes the given [ethtypes.Header] and [HeaderExtra] together
// to the `writer`. It does merge both structs into a single [HeaderSerializable].
func (h *HeaderExtra) EncodeRLP(eth *ethtypes.Header, writer io.Writer) error {
	temp := new(HeaderSerializable)

	temp.updateFromEth(eth)
	temp.updateFromExtras(h)

	return rlp.Encode(writer, temp)
}

// DecodeRLP RLP decodes from the [*rlp.Stream] and writes the output to both the
// [ethtypes.Header] passed as argument and to the receiver [HeaderExtra].
func (h *HeaderExtra) DecodeRLP(eth *ethtypes.Header, stream *rlp.Stream) error {
	temp := new(HeaderSerializable)
	if err := stream.Decode(temp); err != nil {
		return err
	}

	temp.updateToEth(eth)
	temp.updateToExtras(h)

	return nil
}

// EncodeJSON JSON encodes the given [ethtypes.Header] and [HeaderExtra] together
// to the `writer`. It does merge both structs into a single [HeaderSerializable].
func (h *HeaderExtra) EncodeJSON(eth *ethtypes.Header) ([]byte, error) {
	temp := new(HeaderSerializable)

	temp.updateFromEth(eth)
	temp.updateFromExtras(h)

	return temp.MarshalJSON()
}

// DecodeJSON JSON decodes from the `input` bytes and writes the output to both the
// [ethtypes.Header] passed as argument and to the receiver [HeaderExtra].
func (h *HeaderExtra) DecodeJSON(eth *ethtypes.Header, input []byte) error {
	temp := new(HeaderSerializable)
	if err := temp.UnmarshalJSON(input); err != nil {
		return err
	}

	temp.updateToEth(eth)
	temp.updateToExtras(h)

	return nil
}

func (h *HeaderExtra) PostCopy(dst *ethtypes.Header) {
	cp := &HeaderExtra{}
	if h.BlockGasCost != nil {
		cp.BlockGasCost = new(big.Int).Set(h.BlockGasCost)
	}
	SetHeaderExtra(dst, cp)
}

// CopyHeaderWithExtra wraps geth's CopyHeader and ensures HeaderExtra is copied via PostCopy.
// Use this instead of types.CopyHeader when you need HeaderExtra to be preserved.
func CopyHeaderWithExtra(src *ethtypes.Header) *ethtypes.Header {
	dst := ethtypes.CopyHeader(src)
	if extra := GetHeaderExtra(src); extra != nil {
		extra.PostCopy(dst)
	}
	return dst
}

func (h *HeaderSerializable) updateFromEth(eth *ethtypes.Header) {
	h.ParentHash = eth.ParentHash
	h.UncleHash = eth.UncleHash
	h.Coinbase = eth.Coinbase
	h.Root = eth.Root
	h.TxHash = eth.TxHash
	h.ReceiptHash = eth.ReceiptHash
	h.Bloom = eth.Bloom
	h.Difficulty = eth.Difficulty
	h.Number = eth.Number
	h.GasLimit = eth.GasLimit
	h.GasUsed = eth.GasUsed
	h.Time = eth.Time
	h.Extra = eth.Extra
	h.MixDigest = eth.MixDigest
	h.Nonce = eth.Nonce
	h.BaseFee = eth.BaseFee
	h.ExtDataHash = eth.ExtDataHash
	h.ExtDataGasUsed = eth.ExtDataGasUsed
	h.BlockGasCost = eth.BlockGasCost
	h.BlobGasUsed = eth.BlobGasUsed
	h.ExcessBlobGas = eth.ExcessBlobGas
	h.ParentBeaconRoot = eth.ParentBeaconRoot
	h.RequestsHash = eth.RequestsHash
}

func (h *HeaderSerializable) updateToEth(eth *ethtypes.Header) {
	eth.ParentHash = h.ParentHash
	eth.UncleHash = h.UncleHash
	eth.Coinbase = h.Coinbase
	eth.Root = h.Root
	eth.TxHash = h.TxHash
	eth.ReceiptHash = h.ReceiptHash
	eth.Bloom = h.Bloom
	eth.Difficulty = h.Difficulty
	eth.Number = h.Number
	eth.GasLimit = h.GasLimit
	eth.GasUsed = h.GasUsed
	eth.Time = h.Time
	eth.Extra = h.Extra
	eth.MixDigest = h.MixDigest
	eth.Nonce = h.Nonce
	eth.BaseFee = h.BaseFee
	eth.ExtDataHash = h.ExtDataHash
	eth.ExtDataGasUsed = h.ExtDataGasUsed
	eth.BlockGasCost = h.BlockGasCost
	eth.BlobGasUsed = h.BlobGasUsed
	eth.ExcessBlobGas = h.ExcessBlobGas
	eth.ParentBeaconRoot = h.ParentBeaconRoot
	eth.RequestsHash = h.RequestsHash
}

func (h *HeaderSerializable) updateFromExtras(extras *HeaderExtra) {
	h.BlockGasCost = extras.BlockGasCost
}

func (h *HeaderSerializable) updateToExtras(extras *HeaderExtra) {
	extras.BlockGasCost = h.BlockGasCost
}

//go:generate go run github.com/fjl/gencodec -type HeaderSerializable -field-override headerMarshaling -out gen_header_serializable_json.go
//go:generate go run github.com/luxfi/geth/rlp/rlpgen@739ba847f6f407f63fd6a24175b24e56fea583a1 -type HeaderSerializable -out gen_header_serializable_rlp.go

// HeaderSerializable defines the header of a block in the Ethereum blockchain,
// as it is to be serialized into RLP and JSON. Note it must be exported so that
// rlpgen can generate the serialization code from it.
type HeaderSerializable struct {
	ParentHash  common.Hash         `json:"parentHash"       gencodec:"required"`
	UncleHash   common.Hash         `json:"sha3Uncles"       gencodec:"required"`
	Coinbase    common.Address      `json:"miner"            gencodec:"required"`
	Root        common.Hash         `json:"stateRoot"        gencodec:"required"`
	TxHash      common.Hash         `json:"transactionsRoot" gencodec:"required"`
	ReceiptHash common.Hash         `json:"receiptsRoot"     gencodec:"required"`
	Bloom       ethtypes.Bloom      `json:"logsBloom"        gencodec:"required"`
	Difficulty  *big.Int            `json:"difficulty"       gencodec:"required"`
	Number      *big.Int            `json:"number"           gencodec:"required"`
	GasLimit    uint64              `json:"gasLimit"         gencodec:"required"`
	GasUsed     uint64              `json:"gasUsed"          gencodec:"required"`
	Time        uint64              `json:"timestamp"        gencodec:"required"`
	Extra       []byte              `json:"extraData"        gencodec:"required"`
	MixDigest   common.Hash         `json:"mixHash"`
	Nonce       ethtypes.BlockNonce `json:"nonce"`

	// BaseFee was added by EIP-1559 and is ignored in legacy headers.
	BaseFee *big.Int `json:"baseFeePerGas" rlp:"optional"`

	// BlockGasCost was added by SubnetEVM and is ignored in legacy
	// headers.
	BlockGasCost *big.Int `json:"blockGasCost" rlp:"optional"`

	// BlobGasUsed was added by EIP-4844 and is ignored in legacy headers.
	BlobGasUsed *uint64 `json:"blobGasUsed" rlp:"optional"`

	// ExcessBlobGas was added by EIP-4844 and is ignored in legacy headers.
	ExcessBlobGas *uint64 `json:"excessBlobGas" rlp:"optional"`

	// ParentBeaconRoot was added by EIP-4788 and is ignored in legacy headers.
	ParentBeaconRoot *common.Hash `json:"parentBeaconBlockRoot" rlp:"optional"`

	// RequestsHash was added by EIP-7685 and is ignored in legacy headers.
	RequestsHash *common.Hash `json:"requestsHash" rlp:"optional"`

	// ExtDataHash was added by Lux for cross-chain data and is ignored in legacy headers.
	// Placed at end for RLP backward compatibility with existing subnet-evm blocks.
	ExtDataHash *common.Hash `json:"extDataHash" rlp:"optional"`

	// ExtDataGasUsed was added by Lux for cross-chain gas accounting and is ignored in legacy headers.
	// Placed at end for RLP backward compatibility with existing subnet-evm blocks.
	ExtDataGasUsed *big.Int `json:"extDataGasUsed" rlp:"optional"`
}

// field type overrides for gencodec
type headerMarshaling struct {
	Difficulty     *hexutil.Big
	Number         *hexutil.Big
	GasLimit       hexutil.Uint64
	GasUsed        hexutil.Uint64
	Time           hexutil.Uint64
	Extra          hexutil.Bytes
	BaseFee        *hexutil.Big
	ExtDataGasUsed *hexutil.Big
	BlockGasCost   *hexutil.Big
	Hash           common.Hash `json:"hash"` // adds call to Hash() in MarshalJSON
	BlobGasUsed    *hexutil.Uint64
	ExcessBlobGas  *hexutil.Uint64
}

// Hash returns the block hash of the header, which is simply the keccak256 hash of its
// RLP encoding.
// This function MUST be exported and is used in [HeaderSerializable.EncodeJSON] which is
// generated to the file gen_header_json.go.
func (h *HeaderSerializable) Hash() common.Hash {
	return rlpHash(h)
}

// rlpHash encodes x and hashes the encoded bytes.
func rlpHash(x interface{}) (h common.Hash) {
	hw := crypto.NewKeccakState()
	_ = rlp.Encode(hw, x)
	hw.Sum(h[:0])
	return h
}
