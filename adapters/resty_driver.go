package adapters

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kndndrj/sparqlbench/core"
)

var _ core.Driver = (*restyDriver)(nil)

type restyDriver struct {
	client    *resty.Client
	transport *http.Transport
	endpoint  string
}

func (d *restyDriver) Execute(ctx context.Context, op *core.Operation) core.Result {
	req, err := core.NewRequest(d.endpoint, op)
	if err != nil {
		return core.Failed(0, 0, err)
	}

	r := d.client.R().
		SetContext(ctx).
		SetHeaders(req.Header)
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	start := time.Now()
	resp, err := r.Execute(req.Method, req.URL)
	elapsed := time.Since(start)
	if err != nil {
		status := 0
		if resp != nil && resp.RawResponse != nil {
			status = resp.StatusCode()
		}
		return core.Failed(elapsed, status, err)
	}

	return finish(op, elapsed, resp.StatusCode(), resp.Body())
}

func (d *restyDriver) Close() {
	d.transport.CloseIdleConnections()
}
