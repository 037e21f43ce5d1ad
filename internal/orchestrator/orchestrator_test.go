package orchestrator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/relens/internal/service"
)

func snap(p string) service.Snapshot {
	return service.Snapshot{Pattern: p}
}

func TestOrchestrator_Defaults(t *testing.T) {
	o := New(Options{})
	require.Equal(t, DefaultDelay, o.Delay())
	require.Equal(t, Idle, o.State())
	require.Equal(t, Idle, o.Outcome())
	require.Zero(t, o.InFlight())
}

func TestOrchestrator_DebounceCoalescesToLastSnapshot(t *testing.T) {
	o := New(Options{Sequencing: true})

	var tickets []Ticket
	for _, p := range []string{"a", "ab", "abc", "abcd"} {
		tickets = append(tickets, o.Edit(snap(p)))
		require.Equal(t, PendingDebounce, o.State())
	}

	// Every earlier window expires without issuing anything.
	issued := 0
	var last Request
	for _, tk := range tickets {
		if req, ok := o.Fire(tk); ok {
			issued++
			last = req
		}
	}

	require.Equal(t, 1, issued)
	require.Equal(t, "abcd", last.Snapshot.Pattern)
	require.False(t, last.Manual)
	require.Equal(t, InFlight, o.State())
	require.Equal(t, 1, o.InFlight())
}

func TestOrchestrator_FireTwiceIssuesOnce(t *testing.T) {
	o := New(Options{})
	tk := o.Edit(snap("a"))

	_, ok := o.Fire(tk)
	require.True(t, ok)
	_, ok = o.Fire(tk)
	require.False(t, ok)
}

func TestOrchestrator_CompleteTransitions(t *testing.T) {
	o := New(Options{})
	req, _ := o.Fire(o.Edit(snap("a")))

	res, ok := o.Complete(req, service.Result{Translated: "a"})
	require.True(t, ok)
	require.Equal(t, "a", res.Translated)
	require.Equal(t, Idle, o.State())
	require.Equal(t, Applied, o.Outcome())

	req = o.Run(snap("("))
	_, ok = o.Complete(req, service.Result{Error: "bad pattern"})
	require.True(t, ok)
	require.Equal(t, Failed, o.Outcome())
}

func TestOrchestrator_RunCancelsPendingWindow(t *testing.T) {
	o := New(Options{})
	tk := o.Edit(snap("a"))

	req := o.Run(snap("ab"))
	require.True(t, req.Manual)
	require.Equal(t, "ab", req.Snapshot.Pattern)

	_, ok := o.Fire(tk)
	require.False(t, ok, "pending window was cancelled by the manual run")
}

func TestOrchestrator_RunDoesNotCancelInFlight(t *testing.T) {
	o := New(Options{})
	first := o.Run(snap("a"))
	second := o.Run(snap("b"))

	require.Equal(t, 2, o.InFlight())
	require.Less(t, first.Seq, second.Seq)

	_, ok := o.Complete(second, service.Result{})
	require.True(t, ok)
	require.Equal(t, InFlight, o.State(), "first request is still outstanding")
}

func TestOrchestrator_SequencingDiscardsStale(t *testing.T) {
	o := New(Options{Sequencing: true})
	older := o.Run(snap("a"))
	newer := o.Run(snap("ab"))

	_, ok := o.Complete(newer, service.Result{Translated: "ab"})
	require.True(t, ok)

	_, ok = o.Complete(older, service.Result{Translated: "a"})
	require.False(t, ok, "older response must not overwrite newer state")
	require.Zero(t, o.InFlight())
	require.Equal(t, Idle, o.State())
}

func TestOrchestrator_LastResponseWinsWithoutSequencing(t *testing.T) {
	o := New(Options{Sequencing: false})
	older := o.Run(snap("a"))
	newer := o.Run(snap("ab"))

	_, ok := o.Complete(newer, service.Result{})
	require.True(t, ok)
	_, ok = o.Complete(older, service.Result{})
	require.True(t, ok, "late response is applied when sequencing is off")
}

func TestOrchestrator_ClearCancelsWindowAndStaleResponses(t *testing.T) {
	o := New(Options{Sequencing: true})
	inflight := o.Run(snap("a"))
	tk := o.Edit(snap("ab"))

	o.Clear()

	_, ok := o.Fire(tk)
	require.False(t, ok)
	_, ok = o.Complete(inflight, service.Result{Translated: "a"})
	require.False(t, ok, "responses issued before clear are dropped")
	require.Equal(t, Idle, o.Outcome())

	next := o.Run(snap("b"))
	_, ok = o.Complete(next, service.Result{})
	require.True(t, ok)
}

func TestOrchestrator_SnapshotIsCaptured(t *testing.T) {
	o := New(Options{})
	s := service.Snapshot{Pattern: "a", Text: "x"}
	tk := o.Edit(s)
	s.Pattern = "changed"

	req, ok := o.Fire(tk)
	require.True(t, ok)
	require.Equal(t, "a", req.Snapshot.Pattern)
}

func TestOrchestrator_IssuedAtUsesClock(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	o := New(Options{Now: func() time.Time { return at }, Delay: time.Second})
	require.Equal(t, time.Second, o.Delay())
	require.Equal(t, at, o.Run(snap("a")).IssuedAt)
}

func TestState_String(t *testing.T) {
	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "pending", PendingDebounce.String())
	require.Equal(t, "in flight", InFlight.String())
	require.Equal(t, "applied", Applied.String())
	require.Equal(t, "failed", Failed.String())
	require.Equal(t, "unknown", State(42).String())
}
