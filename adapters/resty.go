package adapters

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/kndndrj/sparqlbench/core"
)

// Register client
func init() {
	_ = register(&Resty{}, "resty", "go-resty")
}

var _ core.Adapter = (*Resty)(nil)

// Resty is the go-resty request builder on top of a net/http transport.
type Resty struct{}

func (*Resty) Connect(params *core.ClientParams) (core.Driver, error) {
	transport := newTransport(params)

	client := resty.NewWithClient(&http.Client{
		Transport: transport,
		Timeout:   params.TotalTimeout,
	})
	client.SetRetryCount(params.Retries)
	client.SetLogger(&restyLogger{log: slog.Default().With(slog.String("library", params.Library))})

	return &restyDriver{
		client:    client,
		transport: transport,
		endpoint:  params.Endpoint,
	}, nil
}

var _ resty.Logger = (*restyLogger)(nil)

// restyLogger forwards resty's printf style logging to slog.
type restyLogger struct {
	log *slog.Logger
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.log.Warn(fmt.Sprintf(format, v...))
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...))
}
