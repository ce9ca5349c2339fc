package adapters

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/kndndrj/sparqlbench/core"
)

var errDriverClosed = errors.New("driver closed")

var _ core.Driver = (*asyncDriver)(nil)

type asyncJob struct {
	ctx   context.Context
	op    *core.Operation
	req   *core.Request
	reply chan core.Result
}

type asyncDriver struct {
	client    *http.Client
	transport *http.Transport
	endpoint  string

	jobs      chan asyncJob
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func (d *asyncDriver) loop() {
	defer close(d.done)

	for {
		select {
		case job := <-d.jobs:
			job.reply <- doHTTP(job.ctx, d.client, job.op, job.req)
		case <-d.quit:
			return
		}
	}
}

// Execute blocks until the worker has answered. The elapsed time covers the
// hand-off to and from the worker as well as the call itself.
func (d *asyncDriver) Execute(ctx context.Context, op *core.Operation) core.Result {
	req, err := core.NewRequest(d.endpoint, op)
	if err != nil {
		return core.Failed(0, 0, err)
	}

	job := asyncJob{
		ctx:   ctx,
		op:    op,
		req:   req,
		reply: make(chan core.Result, 1),
	}

	start := time.Now()
	select {
	case d.jobs <- job:
	case <-d.quit:
		return core.Failed(0, 0, errDriverClosed)
	case <-ctx.Done():
		return core.Failed(time.Since(start), 0, ctx.Err())
	}

	res := <-job.reply
	res.Elapsed = time.Since(start)

	return res
}

func (d *asyncDriver) Close() {
	d.closeOnce.Do(func() {
		close(d.quit)
		<-d.done
		d.transport.CloseIdleConnections()
	})
}
