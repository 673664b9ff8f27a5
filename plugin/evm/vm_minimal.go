// (c) 2019-2024, Lux Industries, Inc.
// All rights reserved.
// See the file LICENSE for licensing terms.

//go:build minimal
// +build minimal

package evm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	
	"github.com/luxfi/node/api/health"
	"github.com/luxfi/node/consensus"
	"github.com/luxfi/node/consensus/engine/core"
	"github.com/luxfi/node/consensus/engine/linear/block"
	"github.com/luxfi/node/consensus/linear"
	"github.com/luxfi/node/database"
	"github.com/luxfi/node/ids"
	"github.com/luxfi/node/utils/hashing"
	"github.com/luxfi/node/version"
)

var (
	_ core.VM                     = (*MinimalVM)(nil)
	_ block.ChainVM              = (*MinimalVM)(nil)
	
	errNotImplemented = errors.New("not implemented")
)

// MinimalVM implements a minimal Ethereum Virtual Machine for the Lux network.
type MinimalVM struct {
	vmLock       sync.RWMutex
	ctx          *consensus.Context
	db           database.Database
	chainID      ids.ID
	networkID    uint32
	initialized  bool
}

// Initialize implements the core.VM interface
func (vm *MinimalVM) Initialize(
	ctx context.Context,
	consensusCtx *consensus.Context,
	db database.Database,
	genesisBytes []byte,
	upgradeBytes []byte,
	configBytes []byte,
	msgChan chan<- core.Message,
	fxs []*core.Fx,
	appSender core.AppSender,
) error {
	vm.ctx = consensusCtx
	vm.db = db
	vm.chainID = consensusCtx.ChainID
	vm.networkID = consensusCtx.NetworkID
	vm.initialized = true
	
	// Log initialization
	consensusCtx.Log.Info("Minimal EVM initialized",
		"chainID", vm.chainID,
		"networkID", vm.networkID,
		"version", Version,
	)
	
	return nil
}

// SetState implements the core.VM interface
func (vm *MinimalVM) SetState(ctx context.Context, state linear.State) error {
	return nil
}

// Shutdown implements the core.VM interface
func (vm *MinimalVM) Shutdown(context.Context) error {
	vm.vmLock.Lock()
	defer vm.vmLock.Unlock()
	
	vm.initialized = false
	return nil
}

// Version implements the core.VM interface
func (vm *MinimalVM) Version(context.Context) (string, error) {
	return Version, nil
}

// CreateHandlers implements the core.VM interface
func (vm *MinimalVM) CreateHandlers(context.Context) (map[string]core.Handler, error) {
	return map[string]core.Handler{}, nil
}

// HealthCheck implements health.Checker
func (vm *MinimalVM) HealthCheck(context.Context) (interface{}, error) {
	vm.vmLock.RLock()
	defer vm.vmLock.RUnlock()
	
	if !vm.initialized {
		return nil, errors.New("VM not initialized")
	}
	
	return map[string]interface{}{
		"initialized": true,
		"chainID":     vm.chainID.String(),
		"networkID":   vm.networkID,
		"version":     Version,
	}, nil
}

// BuildBlock implements block.ChainVM
func (vm *MinimalVM) BuildBlock(context.Context) (linear.Block, error) {
	return nil, errNotImplemented
}

// ParseBlock implements block.ChainVM
func (vm *MinimalVM) ParseBlock(ctx context.Context, blockBytes []byte) (linear.Block, error) {
	return nil, errNotImplemented
}

// GetBlock implements block.ChainVM
func (vm *MinimalVM) GetBlock(ctx context.Context, blkID ids.ID) (linear.Block, error) {
	return nil, errNotImplemented
}

// SetPreference implements block.ChainVM
func (vm *MinimalVM) SetPreference(ctx context.Context, blkID ids.ID) error {
	return nil
}

// LastAccepted implements block.ChainVM
func (vm *MinimalVM) LastAccepted(context.Context) (ids.ID, error) {
	// Return empty ID for genesis
	return ids.Empty, nil
}

// GetBlockIDAtHeight implements block.HeightIndexedChainVM
func (vm *MinimalVM) GetBlockIDAtHeight(ctx context.Context, height uint64) (ids.ID, error) {
	return ids.Empty, errNotImplemented
}

// VerifyHeightIndex implements block.HeightIndexedChainVM
func (vm *MinimalVM) VerifyHeightIndex(context.Context) error {
	return nil
}