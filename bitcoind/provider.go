// Package bitcoind is a thin client of the JSON-RPC interface of a Bitcoin
// Core full node. It answers the chain queries btcdash serves and aggregates.
package bitcoind

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockgen -destination mock_bitcoind/provider.go github.com/harmony-one/btcdash/bitcoind Provider

// Provider is the set of node queries used by btcdash. Every call may fail
// independently.
type Provider interface {
	GetBlockCount(ctx context.Context) (uint64, error)
	GetBlockStats(ctx context.Context, target BlockTarget) (*BlockStats, error)
	GetChainTxStats(ctx context.Context, args ChainTxStatsArgs) (*ChainTxStats, error)
	GetDifficulty(ctx context.Context) (float64, error)
	GetNetworkHashPS(ctx context.Context, args NetworkHashPSArgs) (float64, error)
	GetBlockHash(ctx context.Context, height uint64) (string, error)
	GetBlock(ctx context.Context, hash string, verbosity *Verbosity) (json.RawMessage, error)
	GetTxOutSetInfo(ctx context.Context) (*TxOutSetInfo, error)
}

// BlockHashLength is the length of a hex encoded block hash.
const BlockHashLength = 64

// BlockTarget identifies a block either by height or by hash. Exactly one
// of the two is set.
type BlockTarget struct {
	height uint64
	hash   string
	isHash bool
}

// HeightTarget returns the target of the block at the given height.
func HeightTarget(height uint64) BlockTarget {
	return BlockTarget{height: height}
}

// HashTarget returns the target of the block with the given hash.
func HashTarget(hash string) BlockTarget {
	return BlockTarget{hash: hash, isHash: true}
}

// Height returns the height of the target, if the target is a height.
func (t BlockTarget) Height() (uint64, bool) {
	return t.height, !t.isHash
}

// Hash returns the hash of the target, if the target is a hash.
func (t BlockTarget) Hash() (string, bool) {
	return t.hash, t.isHash
}

func (t BlockTarget) String() string {
	if t.isHash {
		return t.hash
	}
	return fmt.Sprintf("%d", t.height)
}

// param is the JSON-RPC representation of the target.
func (t BlockTarget) param() interface{} {
	if t.isHash {
		return t.hash
	}
	return t.height
}

// Verbosity selects the detail level of getblock.
type Verbosity int

// Verbosity levels
const (
	// VerbositySerialized returns the serialized block as hex data.
	VerbositySerialized Verbosity = 0
	// VerbosityBlock returns the block as an object with transaction ids.
	VerbosityBlock Verbosity = 1
	// VerbosityBlockWithTxs returns the block as an object with full transactions.
	VerbosityBlockWithTxs Verbosity = 2
)

func (v Verbosity) String() string {
	switch v {
	case VerbositySerialized:
		return "serialized"
	case VerbosityBlock:
		return "block"
	case VerbosityBlockWithTxs:
		return "block_with_txs"
	default:
		return fmt.Sprintf("unknown(%d)", int(v))
	}
}

// ChainTxStatsArgs are the optional arguments of getchaintxstats. Unset
// fields fall back to the node defaults (one month of blocks, chain tip).
type ChainTxStatsArgs struct {
	NBlocks   *uint64
	BlockHash *string
}

func (a ChainTxStatsArgs) params() []interface{} {
	var nBlocks, blockHash interface{}
	if a.NBlocks != nil {
		nBlocks = *a.NBlocks
	}
	if a.BlockHash != nil {
		blockHash = *a.BlockHash
	}
	return trimParams(nBlocks, blockHash)
}

// NetworkHashPSArgs are the optional arguments of getnetworkhashps. Unset
// fields fall back to the node defaults (120 blocks, chain tip).
type NetworkHashPSArgs struct {
	NBlocks *int64
	Height  *int64
}

func (a NetworkHashPSArgs) params() []interface{} {
	var nBlocks, height interface{}
	if a.NBlocks != nil {
		nBlocks = *a.NBlocks
	}
	if a.Height != nil {
		height = *a.Height
	}
	return trimParams(nBlocks, height)
}

// trimParams drops trailing unset positional parameters; inner unset ones are
// sent as null so the node applies its default.
func trimParams(params ...interface{}) []interface{} {
	end := len(params)
	for end > 0 && params[end-1] == nil {
		end--
	}
	return params[:end]
}
