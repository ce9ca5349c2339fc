package adapters

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/kndndrj/sparqlbench/core"
)

var _ core.Driver = (*fastHTTPDriver)(nil)

type fastHTTPDriver struct {
	client   *fasthttp.Client
	timeout  time.Duration
	endpoint string
}

// Execute honours the context deadline but can not abort a call that is
// already in flight; fasthttp has no context support.
func (d *fastHTTPDriver) Execute(ctx context.Context, op *core.Operation) core.Result {
	if err := ctx.Err(); err != nil {
		return core.Failed(0, 0, err)
	}

	r, err := core.NewRequest(d.endpoint, op)
	if err != nil {
		return core.Failed(0, 0, err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.URL)
	req.Header.SetMethod(r.Method)
	for k, v := range r.Header {
		req.Header.Set(k, v)
	}
	if r.Body != nil {
		req.SetBodyRaw(r.Body)
	}

	timeout := d.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); timeout == 0 || left < timeout {
			timeout = left
		}
	}

	start := time.Now()
	if timeout > 0 {
		err = d.client.DoTimeout(req, resp, timeout)
	} else {
		err = d.client.Do(req, resp)
	}
	elapsed := time.Since(start)
	if err != nil {
		return core.Failed(elapsed, 0, err)
	}

	return finish(op, elapsed, resp.StatusCode(), resp.Body())
}

func (d *fastHTTPDriver) Close() {
	d.client.CloseIdleConnections()
}
