package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/kndndrj/sparqlbench/core"
)

var _ core.Driver = (*retryableDriver)(nil)

type retryableDriver struct {
	client    *retryablehttp.Client
	transport *http.Transport
	endpoint  string
}

func (d *retryableDriver) Execute(ctx context.Context, op *core.Operation) core.Result {
	req, err := core.NewRequest(d.endpoint, op)
	if err != nil {
		return core.Failed(0, 0, err)
	}

	var body any
	if req.Body != nil {
		body = req.Body
	}

	rr, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return core.Failed(0, 0, fmt.Errorf("retryablehttp.NewRequestWithContext: %w", err))
	}
	for k, v := range req.Header {
		rr.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := d.client.Do(rr)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
			_ = resp.Body.Close()
		}
		return core.Failed(time.Since(start), status, err)
	}

	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	elapsed := time.Since(start)
	if err != nil {
		return core.Failed(elapsed, resp.StatusCode, fmt.Errorf("io.ReadAll: %w", err))
	}

	return finish(op, elapsed, resp.StatusCode, data)
}

func (d *retryableDriver) Close() {
	d.transport.CloseIdleConnections()
}
