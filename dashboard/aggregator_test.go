package dashboard

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/harmony-one/btcdash/bitcoind"
	"github.com/harmony-one/btcdash/bitcoind/mock_bitcoind"
	"github.com/harmony-one/btcdash/internal/apierr"
)

const (
	testTipTime = 1631333672
	testAdjTime = testTipTime - 270000
	testSubsidy = 625000000
)

var testMarket = StaticMarket{Price: 22122.0, TotalMoneySupply: 70000.1}

func u64p(v uint64) *uint64 { return &v }

func selectiveStats(time, subsidy *uint64) *bitcoind.BlockStats {
	return &bitcoind.BlockStats{Selective: &bitcoind.SelectiveStats{Time: time, Subsidy: subsidy}}
}

func testTxStats() *bitcoind.ChainTxStats {
	return &bitcoind.ChainTxStats{
		TxCount:          665000000,
		WindowBlockCount: 4320,
		WindowTxCount:    u64p(5000000),
		WindowInterval:   u64p(2592000),
	}
}

func hashRateArgs() bitcoind.NetworkHashPSArgs {
	n := int64(BlocksPerDifficultyPeriod)
	return bitcoind.NetworkHashPSArgs{NBlocks: &n}
}

// expectNode sets up a node at height 700000 answering every query.
func expectNode(p *mock_bitcoind.MockProvider) {
	p.EXPECT().GetBlockCount(gomock.Any()).Return(uint64(700000), nil)
	p.EXPECT().GetBlockStats(gomock.Any(), bitcoind.HeightTarget(700000)).
		Return(selectiveStats(u64p(testTipTime), u64p(testSubsidy)), nil)
	p.EXPECT().GetBlockStats(gomock.Any(), bitcoind.HeightTarget(699552)).
		Return(selectiveStats(u64p(testAdjTime), u64p(testSubsidy)), nil)
	p.EXPECT().GetChainTxStats(gomock.Any(), bitcoind.ChainTxStatsArgs{}).Return(testTxStats(), nil)
	p.EXPECT().GetDifficulty(gomock.Any()).Return(1.3e13, nil)
	p.EXPECT().GetNetworkHashPS(gomock.Any(), hashRateArgs()).Return(1.5e20, nil)
}

func TestAggregator_Snapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	p := mock_bitcoind.NewMockProvider(ctrl)
	expectNode(p)

	s, err := NewAggregator(p, testMarket).Snapshot(context.Background())
	require.NoError(t, err)

	require.Equal(t, 22122.0, s.Price)
	require.Equal(t, 70000.1, s.TotalMoneySupply)
	require.Equal(t, uint64(700000), s.BlockCount)
	require.Equal(t, uint64(testTipTime), s.TimeOfLastBlock)
	require.Equal(t, uint64(665000000), s.TotalTransactionsCount)
	require.InDelta(t, 1.929, s.TPS30Days, 1e-3)
	require.Equal(t, 1.3e13, s.Difficulty)
	require.Equal(t, uint64(348), s.CurrentDifficultyEpoch)
	require.InDelta(t, 1568, s.BlocksUntilRetarget, 1e-6)
	require.Equal(t, uint64(602), s.AverageSecondsPerBlockForEpoch)
	require.InDelta(t, 1568*600, s.EstimatedSecondsUntilRetarget, 1e-3)
	require.Equal(t, 1.5e20, s.EstimatedHashRateForLast2016Blocks)
	require.Equal(t, uint64(testSubsidy), s.SubsidyInSatsAtCurrentBlockHeight)
}

func TestAggregator_SnapshotAllStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	p := mock_bitcoind.NewMockProvider(ctrl)
	p.EXPECT().GetBlockCount(gomock.Any()).Return(uint64(700000), nil)
	p.EXPECT().GetBlockStats(gomock.Any(), bitcoind.HeightTarget(700000)).
		Return(&bitcoind.BlockStats{All: &bitcoind.AllStats{Height: 700000, Time: testTipTime, Subsidy: testSubsidy}}, nil)
	p.EXPECT().GetBlockStats(gomock.Any(), bitcoind.HeightTarget(699552)).
		Return(&bitcoind.BlockStats{All: &bitcoind.AllStats{Height: 699552, Time: testAdjTime}}, nil)
	p.EXPECT().GetChainTxStats(gomock.Any(), gomock.Any()).Return(testTxStats(), nil)
	p.EXPECT().GetDifficulty(gomock.Any()).Return(1.3e13, nil)
	p.EXPECT().GetNetworkHashPS(gomock.Any(), gomock.Any()).Return(1.5e20, nil)

	s, err := NewAggregator(p, testMarket).Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(testTipTime), s.TimeOfLastBlock)
	require.Equal(t, uint64(602), s.AverageSecondsPerBlockForEpoch)
}

func TestAggregator_SnapshotAtEpochStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	p := mock_bitcoind.NewMockProvider(ctrl)
	p.EXPECT().GetBlockCount(gomock.Any()).Return(uint64(699552), nil)
	p.EXPECT().GetBlockStats(gomock.Any(), bitcoind.HeightTarget(699552)).
		Return(selectiveStats(u64p(testAdjTime), u64p(testSubsidy)), nil).Times(1)
	p.EXPECT().GetChainTxStats(gomock.Any(), gomock.Any()).Return(testTxStats(), nil)
	p.EXPECT().GetDifficulty(gomock.Any()).Return(1.3e13, nil)
	p.EXPECT().GetNetworkHashPS(gomock.Any(), gomock.Any()).Return(1.5e20, nil)

	s, err := NewAggregator(p, testMarket).Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(348), s.CurrentDifficultyEpoch)
	require.Zero(t, s.AverageSecondsPerBlockForEpoch)
	require.InDelta(t, 2016, s.BlocksUntilRetarget, 1e-6)
	require.InDelta(t, 2016*600, s.EstimatedSecondsUntilRetarget, 1e-3)
}

func TestAggregator_SnapshotDataMissing(t *testing.T) {
	tests := []struct {
		name    string
		tip     *bitcoind.BlockStats
		adj     *bitcoind.BlockStats
		txStats *bitcoind.ChainTxStats
	}{
		{
			name:    "tip time",
			tip:     selectiveStats(nil, u64p(testSubsidy)),
			adj:     selectiveStats(u64p(testAdjTime), nil),
			txStats: testTxStats(),
		},
		{
			name:    "tip subsidy",
			tip:     selectiveStats(u64p(testTipTime), nil),
			adj:     selectiveStats(u64p(testAdjTime), nil),
			txStats: testTxStats(),
		},
		{
			name:    "adjustment time",
			tip:     selectiveStats(u64p(testTipTime), u64p(testSubsidy)),
			adj:     selectiveStats(nil, u64p(testSubsidy)),
			txStats: testTxStats(),
		},
		{
			name:    "tx window",
			tip:     selectiveStats(u64p(testTipTime), u64p(testSubsidy)),
			adj:     selectiveStats(u64p(testAdjTime), nil),
			txStats: &bitcoind.ChainTxStats{TxCount: 1},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			p := mock_bitcoind.NewMockProvider(ctrl)
			p.EXPECT().GetBlockCount(gomock.Any()).Return(uint64(700000), nil)
			p.EXPECT().GetBlockStats(gomock.Any(), bitcoind.HeightTarget(700000)).Return(test.tip, nil)
			p.EXPECT().GetBlockStats(gomock.Any(), bitcoind.HeightTarget(699552)).Return(test.adj, nil)
			p.EXPECT().GetChainTxStats(gomock.Any(), gomock.Any()).Return(test.txStats, nil)
			p.EXPECT().GetDifficulty(gomock.Any()).Return(1.3e13, nil)
			p.EXPECT().GetNetworkHashPS(gomock.Any(), gomock.Any()).Return(1.5e20, nil)

			s, err := NewAggregator(p, testMarket).Snapshot(context.Background())
			require.Error(t, err)
			require.Nil(t, s)
			require.Equal(t, apierr.UpstreamDataMissing, apierr.KindOf(err))
		})
	}
}

func TestAggregator_SnapshotZeroWindow(t *testing.T) {
	tps, err := transactionsPerSecond(&bitcoind.ChainTxStats{WindowTxCount: u64p(10), WindowInterval: u64p(0)})
	require.NoError(t, err)
	require.Zero(t, tps)
}

func TestAggregator_SnapshotQueryFails(t *testing.T) {
	unavailable := apierr.New(apierr.UpstreamUnavailable, "connection refused")
	invalid := apierr.New(apierr.InvalidArgument, "Block height out of range")

	tests := []struct {
		name  string
		setup func(p *mock_bitcoind.MockProviderMockRecorder)
		kind  apierr.Kind
	}{
		{
			name: "block count",
			setup: func(p *mock_bitcoind.MockProviderMockRecorder) {
				p.GetBlockCount(gomock.Any()).Return(uint64(0), unavailable)
			},
			kind: apierr.UpstreamUnavailable,
		},
		{
			name: "tip stats",
			setup: func(p *mock_bitcoind.MockProviderMockRecorder) {
				p.GetBlockCount(gomock.Any()).Return(uint64(700000), nil)
				p.GetBlockStats(gomock.Any(), bitcoind.HeightTarget(700000)).Return(nil, invalid)
			},
			// a rejected internal query is not the client's fault
			kind: apierr.UpstreamUnavailable,
		},
		{
			name: "difficulty rejected",
			setup: func(p *mock_bitcoind.MockProviderMockRecorder) {
				p.GetDifficulty(gomock.Any()).Return(0.0, invalid)
			},
			kind: apierr.UpstreamUnavailable,
		},
		{
			name: "adjustment stats",
			setup: func(p *mock_bitcoind.MockProviderMockRecorder) {
				p.GetBlockCount(gomock.Any()).Return(uint64(700000), nil)
				p.GetBlockStats(gomock.Any(), bitcoind.HeightTarget(699552)).Return(nil, unavailable)
			},
			kind: apierr.UpstreamUnavailable,
		},
		{
			name: "chain tx stats",
			setup: func(p *mock_bitcoind.MockProviderMockRecorder) {
				p.GetChainTxStats(gomock.Any(), gomock.Any()).Return(nil, unavailable)
			},
			kind: apierr.UpstreamUnavailable,
		},
		{
			name: "difficulty",
			setup: func(p *mock_bitcoind.MockProviderMockRecorder) {
				p.GetDifficulty(gomock.Any()).Return(0.0, unavailable)
			},
			kind: apierr.UpstreamUnavailable,
		},
		{
			name: "hash rate",
			setup: func(p *mock_bitcoind.MockProviderMockRecorder) {
				p.GetNetworkHashPS(gomock.Any(), gomock.Any()).Return(0.0, unavailable)
			},
			kind: apierr.UpstreamUnavailable,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			p := mock_bitcoind.NewMockProvider(ctrl)
			test.setup(p.EXPECT())
			// the remaining queries may or may not run before the failure
			p.EXPECT().GetBlockCount(gomock.Any()).Return(uint64(700000), nil).AnyTimes()
			p.EXPECT().GetBlockStats(gomock.Any(), gomock.Any()).
				Return(selectiveStats(u64p(testTipTime), u64p(testSubsidy)), nil).AnyTimes()
			p.EXPECT().GetChainTxStats(gomock.Any(), gomock.Any()).Return(testTxStats(), nil).AnyTimes()
			p.EXPECT().GetDifficulty(gomock.Any()).Return(1.3e13, nil).AnyTimes()
			p.EXPECT().GetNetworkHashPS(gomock.Any(), gomock.Any()).Return(1.5e20, nil).AnyTimes()

			s, err := NewAggregator(p, testMarket).Snapshot(context.Background())
			require.Error(t, err)
			require.Nil(t, s)
			require.Equal(t, test.kind, apierr.KindOf(err))
		})
	}
}

func TestAggregator_SnapshotCancelsInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	p := mock_bitcoind.NewMockProvider(ctrl)
	p.EXPECT().GetDifficulty(gomock.Any()).Return(0.0, apierr.New(apierr.UpstreamUnavailable, "down"))
	blocked := func(ctx context.Context) error {
		<-ctx.Done()
		return apierr.Wrap(apierr.UpstreamUnavailable, ctx.Err(), "canceled")
	}
	p.EXPECT().GetBlockCount(gomock.Any()).DoAndReturn(func(ctx context.Context) (uint64, error) {
		return 0, blocked(ctx)
	})
	p.EXPECT().GetChainTxStats(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ bitcoind.ChainTxStatsArgs) (*bitcoind.ChainTxStats, error) {
			return nil, blocked(ctx)
		})
	p.EXPECT().GetNetworkHashPS(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ bitcoind.NetworkHashPSArgs) (float64, error) {
			return 0, blocked(ctx)
		})

	_, err := NewAggregator(p, testMarket).Snapshot(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "difficulty")
}

func TestAggregator_SnapshotMarketFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	p := mock_bitcoind.NewMockProvider(ctrl)
	expectNode(p)
	p.EXPECT().GetTxOutSetInfo(gomock.Any()).Return(nil, apierr.New(apierr.UpstreamUnavailable, "timeout"))

	_, err := NewAggregator(p, &UTXOSetMarket{Price: 1, Provider: p}).Snapshot(context.Background())
	require.Error(t, err)
	require.Equal(t, apierr.UpstreamUnavailable, apierr.KindOf(err))
}

func TestSnapshot_Rows(t *testing.T) {
	s := &Snapshot{Price: 22122, BlockCount: 700000, TPS30Days: 1.929}
	b, err := json.Marshal(s)
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &fields))

	rows := s.Rows()
	require.Len(t, rows, 13)
	require.Len(t, fields, 13)
	for _, row := range rows {
		require.Contains(t, fields, row[0])
	}
	require.Equal(t, []string{"price", "22122"}, rows[0])
	require.Equal(t, []string{"block_count", "700000"}, rows[1])
	require.Equal(t, []string{"tps_30days", "1.929"}, rows[5])
}
