package orchestrator

import (
	"context"
	"sync"

	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/pubsub"
	"github.com/zjrosen/relens/internal/render"
	"github.com/zjrosen/relens/internal/service"
)

// Driver runs the orchestrator without a UI: edits are debounced on a
// Debouncer, requests run on their own goroutines, and every applied state is
// published on a broker.
type Driver struct {
	orch      *Orchestrator
	client    service.Client
	renderer  *render.Renderer
	broker    *pubsub.Broker[render.State]
	debouncer *Debouncer

	mu     sync.Mutex
	ticket Ticket
	wg     sync.WaitGroup
}

// NewDriver wires an orchestrator to a client and renderer.
func NewDriver(orch *Orchestrator, client service.Client, renderer *render.Renderer) *Driver {
	return &Driver{
		orch:      orch,
		client:    client,
		renderer:  renderer,
		broker:    pubsub.NewBroker[render.State](),
		debouncer: NewDebouncer(orch.Delay()),
	}
}

// Subscribe returns applied and discarded states until ctx is done.
func (d *Driver) Subscribe(ctx context.Context) <-chan pubsub.Event[render.State] {
	return d.broker.Subscribe(ctx)
}

// Edit records a new snapshot; a request follows once edits settle.
func (d *Driver) Edit(s service.Snapshot) {
	t := d.orch.Edit(s)
	d.mu.Lock()
	d.ticket = t
	d.mu.Unlock()
	d.debouncer.Trigger()
}

// RunOnce issues s immediately and waits for its response. The returned
// state is also published. ok is false when the response was discarded.
func (d *Driver) RunOnce(ctx context.Context, s service.Snapshot) (render.State, bool) {
	req := d.orch.Run(s)
	return d.complete(ctx, req)
}

// Run processes settled edits until ctx is done, then waits for requests
// still in flight.
func (d *Driver) Run(ctx context.Context) error {
	go d.debouncer.Run(ctx)
	defer d.broker.Close()

	for {
		select {
		case <-d.debouncer.C():
			d.mu.Lock()
			t := d.ticket
			d.mu.Unlock()

			req, ok := d.orch.Fire(t)
			if !ok {
				continue
			}
			d.wg.Add(1)
			go func() {
				defer d.wg.Done()
				d.complete(ctx, req)
			}()

		case <-ctx.Done():
			d.wg.Wait()
			return nil
		}
	}
}

func (d *Driver) complete(ctx context.Context, req Request) (render.State, bool) {
	res := d.client.Run(ctx, req.Snapshot)

	res, ok := d.orch.Complete(req, res)
	if !ok {
		log.Debug(log.CatOrch, "response discarded", "seq", req.Seq)
		d.broker.Publish(pubsub.DiscardedEvent, render.State{})
		return render.State{}, false
	}

	state := d.renderer.Apply(res, req.Snapshot.Text)
	d.broker.Publish(pubsub.AppliedEvent, state)
	return state, true
}
