package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"
)

var ErrInvalidEndpoint = errors.New("invalid endpoint")

type (
	// Adapter builds drivers for one HTTP client library.
	Adapter interface {
		Connect(params *ClientParams) (Driver, error)
	}

	// Driver owns one pooled client of a specific library. Execute never
	// returns an error: transport failures are reported in the Result.
	Driver interface {
		Execute(ctx context.Context, op *Operation) Result
		Close()
	}
)

// Result is the outcome of a single timed call.
type Result struct {
	Success bool
	Elapsed time.Duration
	// Status is the HTTP status code, zero if no response was received
	Status int
	// Size is the response body length in bytes
	Size int
	Err  error
}

// Failed returns an unsuccessful result.
func Failed(elapsed time.Duration, status int, err error) Result {
	return Result{
		Elapsed: elapsed,
		Status:  status,
		Err:     err,
	}
}

// ClientParams configure pooling and timeouts of a driver.
type ClientParams struct {
	Library  string
	Endpoint string

	// ConnectTimeout bounds dialing a new connection
	ConnectTimeout time.Duration
	// ReadTimeout bounds waiting for the response
	ReadTimeout time.Duration
	// TotalTimeout bounds the whole call
	TotalTimeout time.Duration

	// PoolSize is the maximum number of kept-alive connections per host
	PoolSize int
	// Retries is only honoured by libraries with retry support
	Retries int
}

// Expand returns a copy of the parameters with the endpoint template
// expanded.
func (p *ClientParams) Expand() *ClientParams {
	c := *p
	c.Endpoint = expandOrDefault(p.Endpoint)
	return &c
}

// Validate checks the parameters are usable by any adapter.
func (p *ClientParams) Validate() error {
	u, err := url.Parse(p.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidEndpoint)
	}
	if p.PoolSize < 1 {
		return fmt.Errorf("pool size must be positive, got %d", p.PoolSize)
	}
	if p.TotalTimeout < 0 || p.ConnectTimeout < 0 || p.ReadTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}

	return nil
}

func (p *ClientParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Library        string `json:"library"`
		Endpoint       string `json:"endpoint"`
		ConnectTimeout string `json:"connect_timeout"`
		ReadTimeout    string `json:"read_timeout"`
		TotalTimeout   string `json:"total_timeout"`
		PoolSize       int    `json:"pool_size"`
		Retries        int    `json:"retries"`
	}{
		Library:        p.Library,
		Endpoint:       p.Endpoint,
		ConnectTimeout: p.ConnectTimeout.String(),
		ReadTimeout:    p.ReadTimeout.String(),
		TotalTimeout:   p.TotalTimeout.String(),
		PoolSize:       p.PoolSize,
		Retries:        p.Retries,
	})
}
