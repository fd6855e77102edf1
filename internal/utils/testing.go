package utils

import (
	"bytes"
	"sync"
	"testing"
)

// TestLogRedirector is an io.Writer that forwards the global logger to the
// testing object. It is useful when debugging, because it surfaces
// application log messages, which are otherwise printed on stderr mixed
// with the output of other tests.
//
// Typical usage:
//
//	func TestMyFunc(t *testing.T) {
//		lrd := utils.NewTestLogRedirector(t)
//		defer lrd.Close()
//
//		// Everything sent to utils.Logger() is printed onto the test log
//		// until lrd.Close() is called at the end of the function.
//		utils.Logger().Info().Str("audience", "world").Msg("hello")
//	}
type TestLogRedirector struct {
	lock sync.Mutex
	t    *testing.T
}

// NewTestLogRedirector returns a new testing log redirector. Caller shall
// ensure Close() is called when the redirector is no longer needed.
func NewTestLogRedirector(t *testing.T) *TestLogRedirector {
	r := &TestLogRedirector{t: t}
	setLogOutput(r)
	return r
}

// Write logs one zerolog record into the testing object.
func (redirector *TestLogRedirector) Write(p []byte) (int, error) {
	redirector.lock.Lock()
	defer redirector.lock.Unlock()
	if redirector.t != nil {
		redirector.t.Log(string(bytes.TrimRight(p, "\n")))
	}
	return len(p), nil
}

// Close restores the console writer of the global logger.
func (redirector *TestLogRedirector) Close() error {
	redirector.lock.Lock()
	defer redirector.lock.Unlock()
	if redirector.t != nil {
		setLogOutput(nil)
		redirector.t = nil
	}
	return nil
}
