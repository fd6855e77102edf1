package gateway

import (
	"encoding/hex"
	"net/url"
	"strconv"

	"github.com/harmony-one/btcdash/bitcoind"
	"github.com/harmony-one/btcdash/internal/apierr"
)

// Request parameter names.
const (
	paramHashOrHeight = "hash_or_height"
	paramStats        = "stats"
	paramHashType     = "hash_type"
	paramNBlocks      = "n_blocks"
	paramBlockHash    = "blockhash"
	paramHeight       = "height"
	paramVerbosity    = "verbosity"
)

// ParseBlockTarget classifies s as a block hash if it has the length of one,
// and as a block height otherwise.
func ParseBlockTarget(s string) (bitcoind.BlockTarget, error) {
	if len(s) == bitcoind.BlockHashLength {
		hash, err := ParseBlockHash(s)
		if err != nil {
			return bitcoind.BlockTarget{}, err
		}
		return bitcoind.HashTarget(hash), nil
	}
	height, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return bitcoind.BlockTarget{}, apierr.Newf(apierr.InvalidArgument, "invalid block height or hash %q", s)
	}
	return bitcoind.HeightTarget(height), nil
}

// ParseBlockHash checks that s is a hex encoded block hash.
func ParseBlockHash(s string) (string, error) {
	if len(s) != bitcoind.BlockHashLength {
		return "", apierr.Newf(apierr.InvalidArgument, "block hash must have %d characters, got %d", bitcoind.BlockHashLength, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", apierr.Newf(apierr.InvalidArgument, "block hash %q is not hex", s)
	}
	return s, nil
}

// ParseVerbosity maps the getblock verbosity argument. An empty string
// selects the node default and yields nil.
func ParseVerbosity(s string) (*bitcoind.Verbosity, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, apierr.Newf(apierr.InvalidArgument, "invalid verbosity %q", s)
	}
	v := bitcoind.Verbosity(n)
	switch v {
	case bitcoind.VerbositySerialized, bitcoind.VerbosityBlock, bitcoind.VerbosityBlockWithTxs:
		return &v, nil
	default:
		return nil, apierr.Newf(apierr.InvalidArgument, "unsupported verbosity %d", n)
	}
}

func requiredParam(q url.Values, name string) (string, error) {
	v := q.Get(name)
	if v == "" {
		return "", apierr.Newf(apierr.InvalidArgument, "missing parameter %v", name)
	}
	return v, nil
}

func requiredUint64(q url.Values, name string) (uint64, error) {
	s, err := requiredParam(q, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, apierr.Newf(apierr.InvalidArgument, "invalid %v %q", name, s)
	}
	return v, nil
}

// notImplementedParam fails if the caller set a parameter which is accepted
// but not honored yet.
func notImplementedParam(q url.Values, name string) error {
	if _, ok := q[name]; ok {
		return apierr.Newf(apierr.NotImplemented, "parameter %v is not implemented", name)
	}
	return nil
}

func optionalUint64(q url.Values, name string) (*uint64, error) {
	s := q.Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, apierr.Newf(apierr.InvalidArgument, "invalid %v %q", name, s)
	}
	return &v, nil
}

func optionalInt64(q url.Values, name string) (*int64, error) {
	s := q.Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, apierr.Newf(apierr.InvalidArgument, "invalid %v %q", name, s)
	}
	return &v, nil
}

func optionalBlockHash(q url.Values, name string) (*string, error) {
	s := q.Get(name)
	if s == "" {
		return nil, nil
	}
	hash, err := ParseBlockHash(s)
	if err != nil {
		return nil, err
	}
	return &hash, nil
}

// chainTxStatsArgs normalizes the arguments of getchaintxstats. A block hash
// in the path takes precedence over the query.
func chainTxStatsArgs(q url.Values, pathHash string) (bitcoind.ChainTxStatsArgs, error) {
	var (
		args bitcoind.ChainTxStatsArgs
		err  error
	)
	if args.NBlocks, err = optionalUint64(q, paramNBlocks); err != nil {
		return args, err
	}
	if pathHash != "" {
		hash, err := ParseBlockHash(pathHash)
		if err != nil {
			return args, err
		}
		args.BlockHash = &hash
		return args, nil
	}
	args.BlockHash, err = optionalBlockHash(q, paramBlockHash)
	return args, err
}

func networkHashPSArgs(q url.Values) (bitcoind.NetworkHashPSArgs, error) {
	var (
		args bitcoind.NetworkHashPSArgs
		err  error
	)
	if args.NBlocks, err = optionalInt64(q, paramNBlocks); err != nil {
		return args, err
	}
	args.Height, err = optionalInt64(q, paramHeight)
	return args, err
}
