package adapters

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/kndndrj/sparqlbench/core"
)

// Register client
func init() {
	_ = register(&RetryableHTTP{}, "retryablehttp", "go-retryablehttp")
}

var _ core.Adapter = (*RetryableHTTP)(nil)

// RetryableHTTP is hashicorp's retrying wrapper around net/http. Retries
// are off unless params.Retries is set, so a failed call stays failed.
type RetryableHTTP struct{}

func (*RetryableHTTP) Connect(params *core.ClientParams) (core.Driver, error) {
	transport := newTransport(params)

	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   params.TotalTimeout,
	}
	client.RetryMax = params.Retries
	if params.Retries == 0 {
		// the default policy marks 5xx as retryable and the client drops its
		// idle connections when it gives up
		client.CheckRetry = neverRetry
	}
	// hand back the last response instead of a "giving up" error
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = slog.Default().With(slog.String("library", params.Library))

	return &retryableDriver{
		client:    client,
		transport: transport,
		endpoint:  params.Endpoint,
	}, nil
}

func neverRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return false, nil
}
