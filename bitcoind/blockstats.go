package bitcoind

import (
	"github.com/pkg/errors"
)

// AllStats is a getblockstats result carrying every statistic.
type AllStats struct {
	AvgFee             uint64   `json:"avgfee"`
	AvgFeeRate         uint64   `json:"avgfeerate"`
	AvgTxSize          uint64   `json:"avgtxsize"`
	BlockHash          string   `json:"blockhash"`
	FeeRatePercentiles []uint64 `json:"feerate_percentiles"`
	Height             uint64   `json:"height"`
	Ins                uint64   `json:"ins"`
	MaxFee             uint64   `json:"maxfee"`
	MaxFeeRate         uint64   `json:"maxfeerate"`
	MaxTxSize          uint64   `json:"maxtxsize"`
	MedianFee          uint64   `json:"medianfee"`
	MedianTime         uint64   `json:"mediantime"`
	MedianTxSize       uint64   `json:"mediantxsize"`
	MinFee             uint64   `json:"minfee"`
	MinFeeRate         uint64   `json:"minfeerate"`
	MinTxSize          uint64   `json:"mintxsize"`
	Outs               uint64   `json:"outs"`
	Subsidy            uint64   `json:"subsidy"`
	SwTotalSize        uint64   `json:"swtotal_size"`
	SwTotalWeight      uint64   `json:"swtotal_weight"`
	SwTxs              uint64   `json:"swtxs"`
	Time               uint64   `json:"time"`
	TotalOut           uint64   `json:"total_out"`
	TotalSize          uint64   `json:"total_size"`
	TotalWeight        uint64   `json:"total_weight"`
	TotalFee           uint64   `json:"totalfee"`
	Txs                uint64   `json:"txs"`
	UTXOIncrease       int64    `json:"utxo_increase"`
	UTXOSizeInc        int64    `json:"utxo_size_inc"`
	UTXOIncreaseActual *int64   `json:"utxo_increase_actual,omitempty"`
	UTXOSizeIncActual  *int64   `json:"utxo_size_inc_actual,omitempty"`
}

// SelectiveStats is a getblockstats result carrying only the requested
// statistics. Absent statistics are nil.
type SelectiveStats struct {
	AvgFee             *uint64  `json:"avgfee,omitempty"`
	AvgFeeRate         *uint64  `json:"avgfeerate,omitempty"`
	AvgTxSize          *uint64  `json:"avgtxsize,omitempty"`
	BlockHash          *string  `json:"blockhash,omitempty"`
	FeeRatePercentiles []uint64 `json:"feerate_percentiles,omitempty"`
	Height             *uint64  `json:"height,omitempty"`
	Ins                *uint64  `json:"ins,omitempty"`
	MaxFee             *uint64  `json:"maxfee,omitempty"`
	MaxFeeRate         *uint64  `json:"maxfeerate,omitempty"`
	MaxTxSize          *uint64  `json:"maxtxsize,omitempty"`
	MedianFee          *uint64  `json:"medianfee,omitempty"`
	MedianTime         *uint64  `json:"mediantime,omitempty"`
	MedianTxSize       *uint64  `json:"mediantxsize,omitempty"`
	MinFee             *uint64  `json:"minfee,omitempty"`
	MinFeeRate         *uint64  `json:"minfeerate,omitempty"`
	MinTxSize          *uint64  `json:"mintxsize,omitempty"`
	Outs               *uint64  `json:"outs,omitempty"`
	Subsidy            *uint64  `json:"subsidy,omitempty"`
	SwTotalSize        *uint64  `json:"swtotal_size,omitempty"`
	SwTotalWeight      *uint64  `json:"swtotal_weight,omitempty"`
	SwTxs              *uint64  `json:"swtxs,omitempty"`
	Time               *uint64  `json:"time,omitempty"`
	TotalOut           *uint64  `json:"total_out,omitempty"`
	TotalSize          *uint64  `json:"total_size,omitempty"`
	TotalWeight        *uint64  `json:"total_weight,omitempty"`
	TotalFee           *uint64  `json:"totalfee,omitempty"`
	Txs                *uint64  `json:"txs,omitempty"`
	UTXOIncrease       *int64   `json:"utxo_increase,omitempty"`
	UTXOSizeInc        *int64   `json:"utxo_size_inc,omitempty"`
	UTXOIncreaseActual *int64   `json:"utxo_increase_actual,omitempty"`
	UTXOSizeIncActual  *int64   `json:"utxo_size_inc_actual,omitempty"`
}

// BlockStats is the result of getblockstats. Exactly one of All and
// Selective is set: All when the node returned every statistic, Selective
// otherwise.
type BlockStats struct {
	All       *AllStats
	Selective *SelectiveStats
}

// Time returns the block timestamp.
func (bs *BlockStats) Time() (uint64, bool) {
	switch {
	case bs.All != nil:
		return bs.All.Time, true
	case bs.Selective != nil:
		return deref(bs.Selective.Time)
	}
	return 0, false
}

// Subsidy returns the block subsidy in satoshis.
func (bs *BlockStats) Subsidy() (uint64, bool) {
	switch {
	case bs.All != nil:
		return bs.All.Subsidy, true
	case bs.Selective != nil:
		return deref(bs.Selective.Subsidy)
	}
	return 0, false
}

// Height returns the block height.
func (bs *BlockStats) Height() (uint64, bool) {
	switch {
	case bs.All != nil:
		return bs.All.Height, true
	case bs.Selective != nil:
		return deref(bs.Selective.Height)
	}
	return 0, false
}

// BlockHash returns the block hash.
func (bs *BlockStats) BlockHash() (string, bool) {
	switch {
	case bs.All != nil:
		return bs.All.BlockHash, true
	case bs.Selective != nil && bs.Selective.BlockHash != nil:
		return *bs.Selective.BlockHash, true
	}
	return "", false
}

func deref(v *uint64) (uint64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// MarshalJSON encodes the populated variant.
func (bs BlockStats) MarshalJSON() ([]byte, error) {
	switch {
	case bs.All != nil:
		return jsonIter.Marshal(bs.All)
	case bs.Selective != nil:
		return jsonIter.Marshal(bs.Selective)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes a getblockstats result, choosing AllStats when every
// statistic is present.
func (bs *BlockStats) UnmarshalJSON(b []byte) error {
	var s SelectiveStats
	if err := jsonIter.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "cannot decode block stats")
	}
	if all, ok := s.complete(); ok {
		bs.All, bs.Selective = all, nil
		return nil
	}
	bs.All, bs.Selective = nil, &s
	return nil
}

// complete converts s to AllStats if no mandatory statistic is missing.
func (s *SelectiveStats) complete() (*AllStats, bool) {
	u64 := []*uint64{
		s.AvgFee, s.AvgFeeRate, s.AvgTxSize, s.Height, s.Ins, s.MaxFee, s.MaxFeeRate,
		s.MaxTxSize, s.MedianFee, s.MedianTime, s.MedianTxSize, s.MinFee, s.MinFeeRate,
		s.MinTxSize, s.Outs, s.Subsidy, s.SwTotalSize, s.SwTotalWeight, s.SwTxs, s.Time,
		s.TotalOut, s.TotalSize, s.TotalWeight, s.TotalFee, s.Txs,
	}
	for _, v := range u64 {
		if v == nil {
			return nil, false
		}
	}
	if s.BlockHash == nil || s.FeeRatePercentiles == nil || s.UTXOIncrease == nil || s.UTXOSizeInc == nil {
		return nil, false
	}
	return &AllStats{
		AvgFee:             *s.AvgFee,
		AvgFeeRate:         *s.AvgFeeRate,
		AvgTxSize:          *s.AvgTxSize,
		BlockHash:          *s.BlockHash,
		FeeRatePercentiles: s.FeeRatePercentiles,
		Height:             *s.Height,
		Ins:                *s.Ins,
		MaxFee:             *s.MaxFee,
		MaxFeeRate:         *s.MaxFeeRate,
		MaxTxSize:          *s.MaxTxSize,
		MedianFee:          *s.MedianFee,
		MedianTime:         *s.MedianTime,
		MedianTxSize:       *s.MedianTxSize,
		MinFee:             *s.MinFee,
		MinFeeRate:         *s.MinFeeRate,
		MinTxSize:          *s.MinTxSize,
		Outs:               *s.Outs,
		Subsidy:            *s.Subsidy,
		SwTotalSize:        *s.SwTotalSize,
		SwTotalWeight:      *s.SwTotalWeight,
		SwTxs:              *s.SwTxs,
		Time:               *s.Time,
		TotalOut:           *s.TotalOut,
		TotalSize:          *s.TotalSize,
		TotalWeight:        *s.TotalWeight,
		TotalFee:           *s.TotalFee,
		Txs:                *s.Txs,
		UTXOIncrease:       *s.UTXOIncrease,
		UTXOSizeInc:        *s.UTXOSizeInc,
		UTXOIncreaseActual: s.UTXOIncreaseActual,
		UTXOSizeIncActual:  s.UTXOSizeIncActual,
	}, true
}
