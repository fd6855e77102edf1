package bitcoind

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/harmony-one/btcdash/internal/apierr"
)

// Bitcoin Core RPC error codes which denote a bad argument rather than a
// failing node.
const (
	rpcTypeError        = -3
	rpcInvalidAddrOrKey = -5
	rpcInvalidParameter = -8
	rpcInvalidParams    = -32602
)

// NodeError is an error reported by the node itself.
type NodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *NodeError) Error() string {
	return e.Message
}

// ErrorCode returns the node error code.
func (e *NodeError) ErrorCode() int {
	return e.Code
}

// classifyError tags a failed call with the api error kind it surfaces as.
func classifyError(ctx context.Context, method string, err error) error {
	if ctx.Err() == context.DeadlineExceeded || errors.Is(err, context.DeadlineExceeded) {
		return apierr.Wrapf(apierr.UpstreamUnavailable, err, "%v timed out", method)
	}
	if errors.Is(err, context.Canceled) {
		return apierr.Wrapf(apierr.UpstreamUnavailable, err, "%v canceled", method)
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		if nodeErr := parseNodeError(httpErr.Body); nodeErr != nil {
			return classifyNodeError(method, nodeErr)
		}
		if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
			return apierr.Wrapf(apierr.UpstreamUnavailable, err, "%v: bitcoind rejected credentials", method)
		}
		return apierr.Wrapf(apierr.UpstreamUnavailable, err, "%v", method)
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return classifyNodeError(method, &NodeError{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()})
	}
	return apierr.Wrapf(apierr.UpstreamUnavailable, err, "%v", method)
}

func classifyNodeError(method string, nodeErr *NodeError) error {
	switch nodeErr.Code {
	case rpcTypeError, rpcInvalidAddrOrKey, rpcInvalidParameter, rpcInvalidParams:
		return apierr.Wrapf(apierr.InvalidArgument, nodeErr, "%v", method)
	default:
		return apierr.Wrapf(apierr.UpstreamUnavailable, nodeErr, "%v", method)
	}
}

// parseNodeError extracts the error object of a JSON-RPC response body.
// Nodes answering in JSON-RPC 1.0 style report errors with a non-2xx status.
func parseNodeError(body []byte) *NodeError {
	if len(body) == 0 {
		return nil
	}
	var resp struct {
		Error *NodeError `json:"error"`
	}
	if err := jsonIter.Unmarshal(body, &resp); err != nil || resp.Error == nil {
		return nil
	}
	return resp.Error
}
