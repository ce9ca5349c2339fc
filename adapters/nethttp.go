package adapters

import (
	"net/http"

	"github.com/kndndrj/sparqlbench/core"
)

// Register client
func init() {
	_ = register(&NetHTTP{}, "nethttp", "net/http", "http")
}

var _ core.Adapter = (*NetHTTP)(nil)

// NetHTTP is the standard library client.
type NetHTTP struct{}

func (*NetHTTP) Connect(params *core.ClientParams) (core.Driver, error) {
	transport := newTransport(params)

	return &netHTTPDriver{
		client: &http.Client{
			Transport: transport,
			Timeout:   params.TotalTimeout,
		},
		transport: transport,
		endpoint:  params.Endpoint,
	}, nil
}
