package bitcoind

// ChainTxStats is the result of getchaintxstats.
type ChainTxStats struct {
	Time                   int64    `json:"time"`
	TxCount                uint64   `json:"txcount"`
	WindowFinalBlockHash   string   `json:"window_final_block_hash"`
	WindowFinalBlockHeight uint64   `json:"window_final_block_height"`
	WindowBlockCount       uint64   `json:"window_block_count"`
	WindowTxCount          *uint64  `json:"window_tx_count,omitempty"` // absent if window_block_count is 0
	WindowInterval         *uint64  `json:"window_interval,omitempty"` // seconds, absent if window_block_count is 0
	TxRate                 *float64 `json:"txrate,omitempty"`
}

// TxOutSetInfo is the result of gettxoutsetinfo. Hash fields depend on the
// node version and the requested hash type.
type TxOutSetInfo struct {
	Height                 uint64   `json:"height"`
	BestBlock              string   `json:"bestblock"`
	TxOuts                 uint64   `json:"txouts"`
	BogoSize               uint64   `json:"bogosize"`
	HashSerialized2        *string  `json:"hash_serialized_2,omitempty"`
	HashSerialized3        *string  `json:"hash_serialized_3,omitempty"`
	MuHash                 *string  `json:"muhash,omitempty"`
	Transactions           *uint64  `json:"transactions,omitempty"`
	DiskSize               *uint64  `json:"disk_size,omitempty"`
	TotalAmount            float64  `json:"total_amount"`
	TotalUnspendableAmount *float64 `json:"total_unspendable_amount,omitempty"`
}
