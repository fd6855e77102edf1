package bitcoind

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeNode impersonates the JSON-RPC endpoint of a bitcoind node.
type fakeNode struct {
	t        *testing.T
	username string
	password string
	// legacy answers node errors with HTTP 500, as JSON-RPC 1.0 nodes do.
	legacy bool
	delay  time.Duration

	handlers map[string]func(params []json.RawMessage) (interface{}, *NodeError)

	lock  sync.Mutex
	calls map[string][]json.RawMessage
}

func newFakeNode(t *testing.T) *fakeNode {
	return &fakeNode{
		t:        t,
		handlers: make(map[string]func(params []json.RawMessage) (interface{}, *NodeError)),
		calls:    make(map[string][]json.RawMessage),
	}
}

func (n *fakeNode) handle(method string, f func(params []json.RawMessage) (interface{}, *NodeError)) {
	n.handlers[method] = f
}

func (n *fakeNode) result(method string, res interface{}) {
	n.handle(method, func([]json.RawMessage) (interface{}, *NodeError) { return res, nil })
}

func (n *fakeNode) lastParams(method string) []json.RawMessage {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.calls[method]
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if n.username != "" {
		user, pass, ok := r.BasicAuth()
		if !ok || user != n.username || pass != n.password {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
	}
	if n.delay > 0 {
		select {
		case <-time.After(n.delay):
		case <-r.Context().Done():
			return
		}
	}
	var req struct {
		ID     json.RawMessage   `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	require.NoError(n.t, json.NewDecoder(r.Body).Decode(&req))

	n.lock.Lock()
	n.calls[req.Method] = req.Params
	n.lock.Unlock()

	resp := map[string]interface{}{"id": req.ID}
	status := http.StatusOK
	h, ok := n.handlers[req.Method]
	if !ok {
		resp["result"] = nil
		resp["error"] = &NodeError{Code: -32601, Message: "Method not found"}
		status = http.StatusNotFound
	} else if res, nodeErr := h(req.Params); nodeErr != nil {
		resp["result"] = nil
		resp["error"] = nodeErr
		if n.legacy {
			status = http.StatusInternalServerError
		}
	} else {
		resp["result"] = res
		resp["error"] = nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(n.t, json.NewEncoder(w).Encode(resp))
}

func (n *fakeNode) start() (*Client, func()) {
	srv := httptest.NewServer(n)
	c, err := Dial(Config{
		URL:      srv.URL,
		Username: n.username,
		Password: n.password,
		Timeout:  time.Second,
	})
	require.NoError(n.t, err)
	return c, func() {
		c.Close()
		srv.Close()
	}
}
