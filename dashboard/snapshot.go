package dashboard

import (
	"strconv"
)

// Rows returns the snapshot as name/value pairs, named and ordered as its
// JSON encoding.
func (s *Snapshot) Rows() [][]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	u := func(v uint64) string { return strconv.FormatUint(v, 10) }
	return [][]string{
		{"price", f(s.Price)},
		{"block_count", u(s.BlockCount)},
		{"total_money_supply", f(s.TotalMoneySupply)},
		{"time_of_last_block", u(s.TimeOfLastBlock)},
		{"total_transactions_count", u(s.TotalTransactionsCount)},
		{"tps_30days", f(s.TPS30Days)},
		{"difficulty", f(s.Difficulty)},
		{"current_difficulty_epoch", u(s.CurrentDifficultyEpoch)},
		{"blocks_until_retarget", f(s.BlocksUntilRetarget)},
		{"average_seconds_per_block_for_current_epoch", u(s.AverageSecondsPerBlockForEpoch)},
		{"estimated_seconds_until_retarget", f(s.EstimatedSecondsUntilRetarget)},
		{"estimated_hash_rate_for_last_2016_blocks", f(s.EstimatedHashRateForLast2016Blocks)},
		{"subsidy_in_sats_at_current_block_height", u(s.SubsidyInSatsAtCurrentBlockHeight)},
	}
}
