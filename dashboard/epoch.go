package dashboard

import (
	"math"
	"time"
)

const (
	// BlocksPerDifficultyPeriod is the number of blocks between two
	// difficulty adjustments. It is a protocol constant.
	BlocksPerDifficultyPeriod = 2016
	// TargetBlockInterval is the nominal time between two blocks.
	TargetBlockInterval = 600 * time.Second
)

// Epoch is the position of a block height within its difficulty epoch.
type Epoch struct {
	Height uint64
	// Number is the 1-based index of the epoch.
	Number uint64
	// LastAdjustmentHeight is the height of the first block of the epoch.
	LastAdjustmentHeight uint64
	// PercentComplete is the fraction of the epoch already mined, in [0, 1).
	PercentComplete     float64
	BlocksUntilRetarget float64
	BlocksSinceRetarget float64
}

// NewEpoch computes the epoch position of height.
func NewEpoch(height uint64) Epoch {
	number := height/BlocksPerDifficultyPeriod + 1
	complete := math.Mod(float64(height)/BlocksPerDifficultyPeriod, 1.0)
	until := (1.0 - complete) * BlocksPerDifficultyPeriod
	return Epoch{
		Height:               height,
		Number:               number,
		LastAdjustmentHeight: (number - 1) * BlocksPerDifficultyPeriod,
		PercentComplete:      complete,
		BlocksUntilRetarget:  until,
		BlocksSinceRetarget:  BlocksPerDifficultyPeriod - until,
	}
}

// IsStart reports whether Height is the first block of the epoch.
func (e Epoch) IsStart() bool {
	return e.Height%BlocksPerDifficultyPeriod == 0
}

// EstimatedSecondsUntilRetarget assumes every remaining block takes the
// target interval.
func (e Epoch) EstimatedSecondsUntilRetarget() float64 {
	return TargetBlockInterval.Seconds() * e.BlocksUntilRetarget
}

// AverageSecondsPerBlock returns the integer average block interval since
// the last adjustment, given the timestamps of the block at Height and of
// the block at LastAdjustmentHeight. It is 0 for the first block of an epoch
// and when the timestamps are not ordered.
func (e Epoch) AverageSecondsPerBlock(lastBlockTime, adjustmentBlockTime uint64) uint64 {
	// Exact integer count; floor(2016 - BlocksUntilRetarget) in float64 is often one short.
	blocks := e.Height % BlocksPerDifficultyPeriod
	if blocks == 0 || lastBlockTime <= adjustmentBlockTime {
		return 0
	}
	return (lastBlockTime - adjustmentBlockTime) / blocks
}
