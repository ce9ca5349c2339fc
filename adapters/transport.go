package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/kndndrj/sparqlbench/core"
)

// newTransport returns the pooled transport shared by all net/http based
// libraries, so they differ only in what they add on top of it.
func newTransport(p *core.ClientParams) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   p.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          p.PoolSize,
		MaxIdleConnsPerHost:   p.PoolSize,
		MaxConnsPerHost:       p.PoolSize,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: p.ReadTimeout,
		ForceAttemptHTTP2:     true,
	}
}

func newHTTPRequest(ctx context.Context, req *core.Request) (*http.Request, error) {
	var body io.Reader = http.NoBody
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	for k, v := range req.Header {
		hr.Header.Set(k, v)
	}

	return hr, nil
}

// doHTTP sends the request with a net/http client and reads the whole body
// before the clock stops.
func doHTTP(ctx context.Context, client *http.Client, op *core.Operation, req *core.Request) core.Result {
	hr, err := newHTTPRequest(ctx, req)
	if err != nil {
		return core.Failed(0, 0, err)
	}

	start := time.Now()
	resp, err := client.Do(hr)
	if err != nil {
		return core.Failed(time.Since(start), 0, err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	elapsed := time.Since(start)
	if err != nil {
		return core.Failed(elapsed, resp.StatusCode, fmt.Errorf("io.ReadAll: %w", err))
	}

	return finish(op, elapsed, resp.StatusCode, body)
}

// finish turns a received response into a result.
func finish(op *core.Operation, elapsed time.Duration, status int, body []byte) core.Result {
	if err := core.CheckResponse(op, status, body); err != nil {
		return core.Failed(elapsed, status, err)
	}

	return core.Result{
		Success: true,
		Elapsed: elapsed,
		Status:  status,
		Size:    len(body),
	}
}
