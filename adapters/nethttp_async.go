package adapters

import (
	"net/http"

	"github.com/kndndrj/sparqlbench/core"
)

// Register client
func init() {
	_ = register(&NetHTTPAsync{}, "nethttp_async", "async")
}

var _ core.Adapter = (*NetHTTPAsync)(nil)

// NetHTTPAsync hands every call to a long-lived worker goroutine and waits
// for its reply, the way an event loop client is driven from blocking code.
// Calls are still issued one at a time.
type NetHTTPAsync struct{}

func (*NetHTTPAsync) Connect(params *core.ClientParams) (core.Driver, error) {
	transport := newTransport(params)

	d := &asyncDriver{
		client: &http.Client{
			Transport: transport,
			Timeout:   params.TotalTimeout,
		},
		transport: transport,
		endpoint:  params.Endpoint,
		jobs:      make(chan asyncJob),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go d.loop()

	return d, nil
}
