package bitcoind

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/ratelimit"

	"github.com/harmony-one/btcdash/internal/utils"
)

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultTimeout bounds a single node call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Config is the connection config of a bitcoind node.
type Config struct {
	URL      string
	Username string
	Password string
	// Timeout bounds every single call to the node.
	Timeout time.Duration
	// RequestsPerSecond paces calls to the node. Zero disables pacing.
	RequestsPerSecond int
}

// Client talks to a bitcoind node over JSON-RPC. It is safe for concurrent use.
type Client struct {
	c       *rpc.Client
	timeout time.Duration
	limiter ratelimit.Limiter
}

// Dial connects a client to the node at config.URL.
func Dial(config Config) (*Client, error) {
	if config.URL == "" {
		return nil, errors.New("empty bitcoind url")
	}
	c, err := rpc.DialHTTPWithClient(config.URL, &http.Client{})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot dial bitcoind at %v", config.URL)
	}
	if config.Username != "" || config.Password != "" {
		c.SetHeader("Authorization", basicAuth(config.Username, config.Password))
	}
	var limiter ratelimit.Limiter
	if config.RequestsPerSecond > 0 {
		limiter = ratelimit.New(config.RequestsPerSecond)
	}
	return NewClient(c, config.Timeout, limiter), nil
}

// NewClient creates a client with an existing rpc client. A nil limiter
// disables pacing.
func NewClient(c *rpc.Client, timeout time.Duration, limiter ratelimit.Limiter) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{c: c, timeout: timeout, limiter: limiter}
}

// Close closes the underlying rpc client.
func (c *Client) Close() {
	c.c.Close()
}

func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// GetBlockCount returns the height of the most-work fully-validated chain.
func (c *Client) GetBlockCount(ctx context.Context) (uint64, error) {
	var count uint64
	if err := c.call(ctx, &count, "getblockcount"); err != nil {
		return 0, err
	}
	return count, nil
}

// GetBlockStats returns every statistic of the target block.
func (c *Client) GetBlockStats(ctx context.Context, target BlockTarget) (*BlockStats, error) {
	var stats BlockStats
	if err := c.call(ctx, &stats, "getblockstats", target.param()); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetChainTxStats returns statistics about the total number and rate of
// transactions in the chain.
func (c *Client) GetChainTxStats(ctx context.Context, args ChainTxStatsArgs) (*ChainTxStats, error) {
	var stats ChainTxStats
	if err := c.call(ctx, &stats, "getchaintxstats", args.params()...); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetDifficulty returns the proof-of-work difficulty as a multiple of the
// minimum difficulty.
func (c *Client) GetDifficulty(ctx context.Context) (float64, error) {
	var difficulty float64
	if err := c.call(ctx, &difficulty, "getdifficulty"); err != nil {
		return 0, err
	}
	return difficulty, nil
}

// GetNetworkHashPS returns the estimated network hashes per second.
func (c *Client) GetNetworkHashPS(ctx context.Context, args NetworkHashPSArgs) (float64, error) {
	var hashPS float64
	if err := c.call(ctx, &hashPS, "getnetworkhashps", args.params()...); err != nil {
		return 0, err
	}
	return hashPS, nil
}

// GetBlockHash returns the hash of the block at height in the best chain.
func (c *Client) GetBlockHash(ctx context.Context, height uint64) (string, error) {
	var hash string
	if err := c.call(ctx, &hash, "getblockhash", height); err != nil {
		return "", err
	}
	return hash, nil
}

// GetBlock returns the block with the given hash, verbatim. A nil verbosity
// uses the node default.
func (c *Client) GetBlock(ctx context.Context, hash string, verbosity *Verbosity) (json.RawMessage, error) {
	params := []interface{}{hash}
	if verbosity != nil {
		params = append(params, int(*verbosity))
	}
	var block json.RawMessage
	if err := c.call(ctx, &block, "getblock", params...); err != nil {
		return nil, err
	}
	return block, nil
}

// GetTxOutSetInfo returns statistics about the unspent transaction output
// set. The call can take minutes on nodes without coinstatsindex.
func (c *Client) GetTxOutSetInfo(ctx context.Context) (*TxOutSetInfo, error) {
	var info TxOutSetInfo
	if err := c.call(ctx, &info, "gettxoutsetinfo"); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.takeSlot(ctx)
	if err == nil {
		start := time.Now()
		err = c.c.CallContext(ctx, result, method, args...)
		observeCall(method, err, time.Since(start))
	}
	if err != nil {
		err = classifyError(ctx, method, err)
		utils.Logger().Warn().Err(err).Str("method", method).Msg("bitcoind call failed")
		return err
	}
	return nil
}

// takeSlot waits for the pacing limiter. The wait counts against the call
// timeout and ends early when ctx is done; the abandoned slot is still taken.
func (c *Client) takeSlot(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	taken := make(chan struct{})
	go func() {
		c.limiter.Take()
		close(taken)
	}()
	select {
	case <-taken:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
