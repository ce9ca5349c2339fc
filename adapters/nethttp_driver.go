package adapters

import (
	"context"
	"net/http"

	"github.com/kndndrj/sparqlbench/core"
)

var _ core.Driver = (*netHTTPDriver)(nil)

type netHTTPDriver struct {
	client    *http.Client
	transport *http.Transport
	endpoint  string
}

func (d *netHTTPDriver) Execute(ctx context.Context, op *core.Operation) core.Result {
	req, err := core.NewRequest(d.endpoint, op)
	if err != nil {
		return core.Failed(0, 0, err)
	}

	return doHTTP(ctx, d.client, op, req)
}

func (d *netHTTPDriver) Close() {
	d.transport.CloseIdleConnections()
}
