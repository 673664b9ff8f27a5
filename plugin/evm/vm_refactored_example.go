// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// This file shows how to refactor vm.go to use interfaces instead of direct node imports

package evm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	
	// Use interfaces instead of direct node imports
	"github.com/luxfi/corechain/interfaces"
	"github.com/luxfi/corechain/adapter"
	
	// EVM-specific imports
	"github.com/luxfi/corechain/commontype"
	"github.com/luxfi/corechain/constants"
	"github.com/luxfi/corechain/core"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/corechain/core/rawdb"
	"github.com/luxfi/corechain/core/txpool"
	"github.com/luxfi/corechain/core/types"
	"github.com/luxfi/geth/eth"
	"github.com/luxfi/geth/eth/ethconfig"
	"github.com/luxfi/geth/metrics"
	evmPrometheus "github.com/luxfi/corechain/metrics/prometheus"
	"github.com/luxfi/corechain/miner"
	"github.com/luxfi/geth/node"
	"github.com/luxfi/corechain/params"
	"github.com/luxfi/corechain/peer"
	"github.com/luxfi/corechain/plugin/evm/message"
	"github.com/luxfi/corechain/rpc"
	statesyncclient "github.com/luxfi/corechain/sync/client"
	"github.com/luxfi/corechain/sync/client/stats"
	"github.com/luxfi/geth/trie"
	"github.com/luxfi/corechain/warp"
	warpValidators "github.com/luxfi/corechain/warp/validators"
	
	// Force-load tracer engines
	_ "github.com/luxfi/geth/eth/tracers/js"
	_ "github.com/luxfi/geth/eth/tracers/native"
	
	// Force-load precompiles
	_ "github.com/luxfi/corechain/precompile/registry"
	
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/ethdb"
	"github.com/luxfi/geth/log"
	"github.com/luxfi/geth/rlp"
	luxRPC "github.com/gorilla/rpc/v2"
)

// VMRefactored shows the refactored VM implementation using interfaces
type VMRefactored struct {
	// Use interface types instead of direct node types
	ctx        interfaces.ChainContext
	vmLock     sync.RWMutex
	cancel     context.CancelFunc
	chainState interfaces.ChainState
	
	config config.Config
	
	networkID   uint64
	genesisHash common.Hash
	chainConfig *params.ChainConfig
	ethConfig   ethconfig.Config
	
	// Ethereum components
	eth        *eth.Ethereum
	txPool     *txpool.TxPool
	blockChain *core.BlockChain
	miner      *miner.Miner
	
	// Use interface database types
	versiondb       interfaces.VersionDB
	db              interfaces.Database
	metadataDB      interfaces.Database
	chaindb         ethdb.Database
	acceptedBlockDB interfaces.Database
	warpDB          interfaces.Database
	validatorsDB    interfaces.Database
	
	// Use interface types for consensus
	toEngine                chan<- interfaces.EngineMessage
	syntacticBlockValidator interfaces.BlockValidator
	builder                 *blockBuilder
	clock                   interfaces.Clock
	
	shutdownChan chan struct{}
	shutdownWg   sync.WaitGroup
	
	// Use interface for profiler
	profiler interfaces.Profiler
	
	// Network interfaces
	network      interfaces.Network
	client       interfaces.P2PClient
	networkCodec interfaces.Codec
	p2pSender    interfaces.AppSender
	
	// Metrics
	multiGatherer interfaces.MetricsGatherer
	sdkMetrics    *prometheus.Registry
	
	// State
	bootstrapped interfaces.AtomicBool
	logger       interfaces.Logger
	
	// State sync
	stateSyncServer interfaces.StateSyncServer
	stateSyncClient interfaces.StateSyncClient
	
	// Warp backend
	warpBackend interfaces.WarpBackend
	
	// Validators
	validatorsManager interfaces.ValidatorManager
	
	chainAlias string
	rpcHandlers []interface{ Stop() }
}

// Initialize implements the ChainVM interface using interface types
func (vm *VMRefactored) Initialize(
	_ context.Context,
	chainCtx interfaces.ChainContext,
	db interfaces.Database,
	genesisBytes []byte,
	upgradeBytes []byte,
	configBytes []byte,
	fxs []interfaces.Fx,
	appSender interfaces.AppSender,
) error {
	// Parse config
	vm.config.SetDefaults(defaultTxPoolConfig)
	if len(configBytes) > 0 {
		if err := json.Unmarshal(configBytes, &vm.config); err != nil {
			return fmt.Errorf("failed to unmarshal config %s: %w", string(configBytes), err)
		}
	}
	if err := vm.config.Validate(); err != nil {
		return err
	}
	
	// Set context using interface
	vm.ctx = chainCtx
	
	// Initialize logger using interface
	vm.logger = interfaces.NewLogger(chainCtx.ChainID.String(), vm.config.LogLevel)
	
	// Set database using interface
	vm.db = db
	
	// Initialize other components...
	return nil
}

// Example of using adapted types
func (vm *VMRefactored) initializeWithAdapters(
	nodeCtx *nodeinterfaces.ChainContext, // Original node type
	nodeDB nodedb.Database,          // Original node type
) error {
	// Create adapter factory
	factory := adapter.NewFactory()
	
	// Convert node types to interface types
	chainCtx := factory.AdaptChainContext(nodeCtx)
	db := factory.AdaptDatabase(nodeDB)
	
	// Now use the interface types
	return vm.Initialize(
		context.Background(),
		chainCtx,
		db,
		nil, // genesisBytes
		nil, // upgradeBytes
		nil, // configBytes
		nil, // fxs
		nil, // appSender
	)
}

// BuildBlock uses interface types
func (vm *VMRefactored) BuildBlock(ctx context.Context) (interfaces.NodeBlock, error) {
	// Implementation using interfaces
	return nil, errors.New("not implemented")
}

// SetPreference uses interface types
func (vm *VMRefactored) SetPreference(ctx context.Context, blkID interfaces.BlockID) error {
	// Implementation using interfaces
	return nil
}

// LastAccepted uses interface types
func (vm *VMRefactored) LastAccepted(ctx context.Context) (interfaces.BlockID, error) {
	// Implementation using interfaces
	return interfaces.BlockID{}, nil
}

// Helper functions to convert between types
func convertToNodeID(id interfaces.BlockID) nodeinterfaces.ID {
	var nodeID nodeinterfaces.ID
	copy(nodeID[:], id[:])
	return nodeID
}

func convertFromNodeID(id nodeinterfaces.ID) interfaces.BlockID {
	var blockID interfaces.BlockID
	copy(blockID[:], id[:])
	return blockID
}