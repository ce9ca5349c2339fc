package adapters

import (
	"time"

	"github.com/kndndrj/sparqlbench/core"
)

const (
	DefaultEndpoint = "http://localhost:8890/sparql"
	DefaultPoolSize = 10
)

// Timeout defaults differ per library: a single 30s deadline, 5s to connect
// and 25s to read, or 5s to connect within 30s overall. They are close but
// not identical; set them per library in the config file to equalize.
var defaultTimeouts = map[string]struct {
	connect, read, total time.Duration
}{
	"nethttp":       {total: 30 * time.Second},
	"nethttp_async": {total: 30 * time.Second},
	"retryablehttp": {connect: 5 * time.Second, read: 25 * time.Second},
	"resty":         {connect: 5 * time.Second, read: 25 * time.Second},
	"fasthttp":      {connect: 5 * time.Second, total: 30 * time.Second},
}

// DefaultParams returns the default client parameters of a library.
func DefaultParams(library string) *core.ClientParams {
	p := &core.ClientParams{
		Library:  library,
		Endpoint: DefaultEndpoint,
		PoolSize: DefaultPoolSize,
	}

	if name, err := Canonical(library); err == nil {
		p.Library = name
	}

	if t, ok := defaultTimeouts[p.Library]; ok {
		p.ConnectTimeout = t.connect
		p.ReadTimeout = t.read
		p.TotalTimeout = t.total
	} else {
		p.TotalTimeout = 30 * time.Second
	}

	return p
}
