package mock

import (
	"time"
)

type adapterConfig struct {
	elapsed    time.Duration
	size       int
	failEvery  int
	connectErr error
	// opFailures holds operations that always fail
	opFailures map[string]error
}

type AdapterOption func(*adapterConfig)

// AdapterWithElapsed sets the elapsed time reported by every call.
func AdapterWithElapsed(d time.Duration) AdapterOption {
	return func(c *adapterConfig) {
		c.elapsed = d
	}
}

// AdapterWithResponseSize sets the body size reported by successful calls.
func AdapterWithResponseSize(size int) AdapterOption {
	return func(c *adapterConfig) {
		c.size = size
	}
}

// AdapterWithFailEvery makes every n-th call of a driver fail, counting
// from the first call after Connect.
func AdapterWithFailEvery(n int) AdapterOption {
	return func(c *adapterConfig) {
		c.failEvery = n
	}
}

// AdapterWithConnectError makes Connect fail.
func AdapterWithConnectError(err error) AdapterOption {
	return func(c *adapterConfig) {
		c.connectErr = err
	}
}

// AdapterWithOperationError makes every call of the named operation fail.
func AdapterWithOperationError(operation string, err error) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.opFailures[operation]
		if ok {
			panic("error already registered for operation: " + operation)
		}

		c.opFailures[operation] = err
	}
}
