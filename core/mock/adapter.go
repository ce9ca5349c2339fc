package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/kndndrj/sparqlbench/core"
)

var ErrInjected = errors.New("injected failure")

var _ core.Driver = (*Driver)(nil)

// Driver is a fake driver that records every operation it receives.
type Driver struct {
	config *adapterConfig

	mu     sync.Mutex
	calls  int
	ops    []string
	closed bool
}

func (d *Driver) Execute(ctx context.Context, op *core.Operation) core.Result {
	d.mu.Lock()
	d.calls++
	call := d.calls
	d.ops = append(d.ops, op.Name)
	d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return core.Failed(0, 0, err)
	}

	if err, ok := d.config.opFailures[op.Name]; ok {
		return core.Failed(d.config.elapsed, 500, err)
	}

	if d.config.failEvery > 0 && call%d.config.failEvery == 0 {
		return core.Failed(d.config.elapsed, 500, ErrInjected)
	}

	return core.Result{
		Success: true,
		Elapsed: d.config.elapsed,
		Status:  200,
		Size:    d.config.size,
	}
}

func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

// Operations returns the names of all executed operations in call order.
func (d *Driver) Operations() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, len(d.ops))
	copy(out, d.ops)
	return out
}

func (d *Driver) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

var _ core.Adapter = (*Adapter)(nil)

type Adapter struct {
	config *adapterConfig

	mu      sync.Mutex
	drivers []*Driver
}

func NewAdapter(opts ...AdapterOption) *Adapter {
	config := &adapterConfig{
		opFailures: make(map[string]error),
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Adapter{
		config: config,
	}
}

func (a *Adapter) Connect(_ *core.ClientParams) (core.Driver, error) {
	if a.config.connectErr != nil {
		return nil, a.config.connectErr
	}

	d := &Driver{config: a.config}

	a.mu.Lock()
	a.drivers = append(a.drivers, d)
	a.mu.Unlock()

	return d, nil
}

// Drivers returns every driver built by the adapter.
func (a *Adapter) Drivers() []*Driver {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]*Driver, len(a.drivers))
	copy(out, a.drivers)
	return out
}
