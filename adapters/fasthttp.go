package adapters

import (
	"net"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/kndndrj/sparqlbench/core"
)

// Register client
func init() {
	_ = register(&FastHTTP{}, "fasthttp")
}

var _ core.Adapter = (*FastHTTP)(nil)

// FastHTTP is valyala's client with its own connection pool and zero
// allocation request/response objects.
type FastHTTP struct{}

func (*FastHTTP) Connect(params *core.ClientParams) (core.Driver, error) {
	dial := fasthttp.Dial
	if params.ConnectTimeout > 0 {
		timeout := params.ConnectTimeout
		dial = func(addr string) (net.Conn, error) {
			return fasthttp.DialTimeout(addr, timeout)
		}
	}

	client := &fasthttp.Client{
		Name:                params.Library,
		MaxConnsPerHost:     params.PoolSize,
		MaxIdleConnDuration: 90 * time.Second,
		ReadTimeout:         params.ReadTimeout,
		WriteTimeout:        params.ReadTimeout,
		Dial:                dial,
	}

	return &fastHTTPDriver{
		client:   client,
		timeout:  params.TotalTimeout,
		endpoint: params.Endpoint,
	}, nil
}
