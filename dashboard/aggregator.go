// Package dashboard aggregates several bitcoind queries into one snapshot of
// the chain state.
package dashboard

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/harmony-one/btcdash/bitcoind"
	"github.com/harmony-one/btcdash/internal/apierr"
	"github.com/harmony-one/btcdash/internal/utils"
)

// hashRateWindow is the number of trailing blocks of the hash rate estimate.
const hashRateWindow int64 = BlocksPerDifficultyPeriod

// Snapshot is the dashboard view of the chain at one block height.
type Snapshot struct {
	Price                              float64 `json:"price"`
	BlockCount                         uint64  `json:"block_count"`
	TotalMoneySupply                   float64 `json:"total_money_supply"`
	TimeOfLastBlock                    uint64  `json:"time_of_last_block"`
	TotalTransactionsCount             uint64  `json:"total_transactions_count"`
	TPS30Days                          float64 `json:"tps_30days"`
	Difficulty                         float64 `json:"difficulty"`
	CurrentDifficultyEpoch             uint64  `json:"current_difficulty_epoch"`
	BlocksUntilRetarget                float64 `json:"blocks_until_retarget"`
	AverageSecondsPerBlockForEpoch     uint64  `json:"average_seconds_per_block_for_current_epoch"`
	EstimatedSecondsUntilRetarget      float64 `json:"estimated_seconds_until_retarget"`
	EstimatedHashRateForLast2016Blocks float64 `json:"estimated_hash_rate_for_last_2016_blocks"`
	SubsidyInSatsAtCurrentBlockHeight  uint64  `json:"subsidy_in_sats_at_current_block_height"`
}

// Aggregator computes dashboard snapshots. It keeps no state between
// snapshots and is safe for concurrent use.
type Aggregator struct {
	provider bitcoind.Provider
	market   MarketSource
}

// NewAggregator creates an aggregator over the given node and market data.
func NewAggregator(provider bitcoind.Provider, market MarketSource) *Aggregator {
	return &Aggregator{provider: provider, market: market}
}

// observations are the raw query results a snapshot is computed from.
type observations struct {
	height     uint64
	tipStats   *bitcoind.BlockStats
	adjStats   *bitcoind.BlockStats
	txStats    *bitcoind.ChainTxStats
	difficulty float64
	hashPS     float64
	market     Market
}

// Snapshot queries the node and computes a fresh snapshot. Any failed query
// fails the whole snapshot and cancels the queries still in flight.
func (a *Aggregator) Snapshot(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	obs, err := a.observe(ctx)
	if err == nil {
		var snapshot *Snapshot
		if snapshot, err = obs.snapshot(); err == nil {
			observeSnapshot(nil, time.Since(start))
			utils.Logger().Debug().
				Uint64("height", snapshot.BlockCount).
				Dur("took", time.Since(start)).
				Msg("dashboard snapshot computed")
			return snapshot, nil
		}
	}
	observeSnapshot(err, time.Since(start))
	return nil, err
}

func (a *Aggregator) observe(ctx context.Context) (*observations, error) {
	var obs observations
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		height, err := a.provider.GetBlockCount(ctx)
		if err != nil {
			return wrapQuery(err, "cannot get block count")
		}
		obs.height = height
		return a.observeEpochBlocks(ctx, &obs)
	})
	g.Go(func() error {
		stats, err := a.provider.GetChainTxStats(ctx, bitcoind.ChainTxStatsArgs{})
		if err != nil {
			return wrapQuery(err, "cannot get chain tx stats")
		}
		obs.txStats = stats
		return nil
	})
	g.Go(func() error {
		difficulty, err := a.provider.GetDifficulty(ctx)
		if err != nil {
			return wrapQuery(err, "cannot get difficulty")
		}
		obs.difficulty = difficulty
		return nil
	})
	g.Go(func() error {
		nBlocks := hashRateWindow
		hashPS, err := a.provider.GetNetworkHashPS(ctx, bitcoind.NetworkHashPSArgs{NBlocks: &nBlocks})
		if err != nil {
			return wrapQuery(err, "cannot get network hash rate")
		}
		obs.hashPS = hashPS
		return nil
	})
	g.Go(func() error {
		market, err := a.market.CurrentMarket(ctx)
		if err != nil {
			return wrapQuery(err, "cannot get market data")
		}
		obs.market = market
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &obs, nil
}

// observeEpochBlocks fetches the stats of the tip and of the first block of
// its epoch, both at the already observed height.
func (a *Aggregator) observeEpochBlocks(ctx context.Context, obs *observations) error {
	epoch := NewEpoch(obs.height)
	if epoch.IsStart() {
		stats, err := a.provider.GetBlockStats(ctx, bitcoind.HeightTarget(obs.height))
		if err != nil {
			return wrapQuery(err, "cannot get block stats at %d", obs.height)
		}
		obs.tipStats, obs.adjStats = stats, stats
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := a.provider.GetBlockStats(ctx, bitcoind.HeightTarget(obs.height))
		if err != nil {
			return wrapQuery(err, "cannot get block stats at %d", obs.height)
		}
		obs.tipStats = stats
		return nil
	})
	g.Go(func() error {
		stats, err := a.provider.GetBlockStats(ctx, bitcoind.HeightTarget(epoch.LastAdjustmentHeight))
		if err != nil {
			return wrapQuery(err, "cannot get block stats at %d", epoch.LastAdjustmentHeight)
		}
		obs.adjStats = stats
		return nil
	})
	return g.Wait()
}

func (obs *observations) snapshot() (*Snapshot, error) {
	lastBlockTime, ok := obs.tipStats.Time()
	if !ok {
		return nil, apierr.Newf(apierr.UpstreamDataMissing, "block stats at %d lack time", obs.height)
	}
	subsidy, ok := obs.tipStats.Subsidy()
	if !ok {
		return nil, apierr.Newf(apierr.UpstreamDataMissing, "block stats at %d lack subsidy", obs.height)
	}
	epoch := NewEpoch(obs.height)
	adjustmentTime, ok := obs.adjStats.Time()
	if !ok {
		return nil, apierr.Newf(apierr.UpstreamDataMissing, "block stats at %d lack time", epoch.LastAdjustmentHeight)
	}
	tps, err := transactionsPerSecond(obs.txStats)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Price:                              obs.market.Price,
		BlockCount:                         obs.height,
		TotalMoneySupply:                   obs.market.TotalMoneySupply,
		TimeOfLastBlock:                    lastBlockTime,
		TotalTransactionsCount:             obs.txStats.TxCount,
		TPS30Days:                          tps,
		Difficulty:                         obs.difficulty,
		CurrentDifficultyEpoch:             epoch.Number,
		BlocksUntilRetarget:                epoch.BlocksUntilRetarget,
		AverageSecondsPerBlockForEpoch:     epoch.AverageSecondsPerBlock(lastBlockTime, adjustmentTime),
		EstimatedSecondsUntilRetarget:      epoch.EstimatedSecondsUntilRetarget(),
		EstimatedHashRateForLast2016Blocks: obs.hashPS,
		SubsidyInSatsAtCurrentBlockHeight:  subsidy,
	}, nil
}

// wrapQuery annotates a failed node query. The dashboard takes no arguments,
// so an argument the node rejects is an upstream failure, not a client error.
func wrapQuery(err error, format string, args ...interface{}) error {
	if apierr.Is(err, apierr.InvalidArgument) {
		return apierr.Wrapf(apierr.UpstreamUnavailable, err, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}

// transactionsPerSecond is the mean throughput over the tx stats window.
func transactionsPerSecond(stats *bitcoind.ChainTxStats) (float64, error) {
	if stats.WindowTxCount == nil || stats.WindowInterval == nil {
		return 0, apierr.New(apierr.UpstreamDataMissing, "chain tx stats lack window")
	}
	if *stats.WindowInterval == 0 {
		return 0, nil
	}
	return float64(*stats.WindowTxCount) / float64(*stats.WindowInterval), nil
}
