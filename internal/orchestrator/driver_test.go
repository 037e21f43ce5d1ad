package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/relens/internal/pubsub"
	"github.com/zjrosen/relens/internal/render"
	"github.com/zjrosen/relens/internal/service"
)

// recordingClient records every snapshot it is asked to run.
type recordingClient struct {
	mu    sync.Mutex
	calls []service.Snapshot
	hold  map[string]chan struct{}
}

func (c *recordingClient) Run(_ context.Context, s service.Snapshot) service.Result {
	c.mu.Lock()
	c.calls = append(c.calls, s)
	wait := c.hold[s.Pattern]
	c.mu.Unlock()
	if wait != nil {
		<-wait
	}
	return service.Result{Translated: s.Pattern, Accepted: []service.Acceptance{{Line: s.Text, OK: true}}}
}

func (c *recordingClient) snapshots() []service.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]service.Snapshot(nil), c.calls...)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDebouncer(30 * time.Millisecond)
	go d.Run(ctx)

	for range 5 {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-d.C():
	case <-time.After(time.Second):
		t.Fatal("debouncer never fired")
	}

	select {
	case <-d.C():
		t.Fatal("burst produced more than one signal")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestDriver_DebouncedEditsIssueOneCall(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &recordingClient{}
	orch := New(Options{Delay: 30 * time.Millisecond, Sequencing: true})
	d := NewDriver(orch, client, render.New(render.Options{}))
	events := d.Subscribe(ctx)

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	for _, p := range []string{"a", "ab", "abc"} {
		d.Edit(service.Snapshot{Pattern: p, Text: "line"})
	}

	select {
	case ev := <-events:
		require.Equal(t, pubsub.AppliedEvent, ev.Type)
		require.Equal(t, "abc", ev.Payload.Translated.Raw)
		require.Len(t, ev.Payload.Table.Rows, 1)
	case <-time.After(time.Second):
		t.Fatal("no state published")
	}

	// Give a stray second request time to show up.
	time.Sleep(80 * time.Millisecond)
	calls := client.snapshots()
	require.Len(t, calls, 1)
	require.Equal(t, "abc", calls[0].Pattern)

	cancel()
	require.NoError(t, <-done)
}

func TestDriver_RunOnceDiscardsStaleOverlap(t *testing.T) {
	release := make(chan struct{})
	client := &recordingClient{hold: map[string]chan struct{}{"slow": release}}
	orch := New(Options{Sequencing: true})
	d := NewDriver(orch, client, render.New(render.Options{}))

	type outcome struct {
		state render.State
		ok    bool
	}
	slow := make(chan outcome, 1)
	go func() {
		s, ok := d.RunOnce(context.Background(), service.Snapshot{Pattern: "slow"})
		slow <- outcome{s, ok}
	}()

	require.Eventually(t, func() bool { return len(client.snapshots()) == 1 }, time.Second, time.Millisecond)

	fast, ok := d.RunOnce(context.Background(), service.Snapshot{Pattern: "fast"})
	require.True(t, ok)
	require.Equal(t, "fast", fast.Translated.Raw)

	close(release)
	got := <-slow
	require.False(t, got.ok, "slow response was issued first and must be discarded")
}
