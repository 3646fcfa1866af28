package worker_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tranvictor/nftmeta/metadata"
	"github.com/tranvictor/nftmeta/worker"
)

func nextEvent(t *testing.T, w *worker.Worker, timeout time.Duration) worker.Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(timeout):
		t.Fatalf("no event within %s", timeout)
		return worker.Event{}
	}
}

// collectSession drains events until a terminal one and returns everything
// received, terminal event included.
func collectSession(t *testing.T, w *worker.Worker, timeout time.Duration) []worker.Event {
	t.Helper()
	deadline := time.Now().Add(timeout)
	events := []worker.Event{}
	for {
		remaining := time.Until(deadline)
		require.Positive(t, remaining, "session did not finish within %s", timeout)
		ev := nextEvent(t, w, remaining)
		events = append(events, ev)
		if ev.Kind == worker.EventCompleted || ev.Kind == worker.EventFatal {
			return events
		}
	}
}

func TestTemplateSessionEndToEnd(t *testing.T) {
	var callsToken2 int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/0":
			fmt.Fprintf(w, `{"name":"Token 0"}`)
		case "/1":
			w.WriteHeader(http.StatusNotFound)
		case "/2":
			// transient trouble, works on the third try
			if atomic.AddInt64(&callsToken2, 1) <= 2 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			fmt.Fprintf(w, `{"name":"Token 2"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	w := worker.NewWorker(nil, metadata.NewFetcher(nil))
	session := w.Start(worker.TemplateSource(server.URL+"/", 0, 3))

	events := collectSession(t, w, 30*time.Second)
	final := events[len(events)-1]
	require.Equal(t, worker.EventCompleted, final.Kind)
	require.Equal(t, session, final.Session)
	require.Equal(t, 2, final.Stats.Resolved)
	require.Equal(t, 1, final.Stats.Failed)
	require.True(t, final.Stats.TotalKnown)
	require.Equal(t, uint64(3), final.Stats.Total)

	resolved := map[uint64]string{}
	failed := map[uint64]string{}
	for _, ev := range events[:len(events)-1] {
		require.Equal(t, session, ev.Session, "every event carries the session id")
		switch ev.Kind {
		case worker.EventProgress:
			resolved[ev.Token.ID] = ev.Token.Name
		case worker.EventProgressFailed:
			failed[ev.TokenID] = ev.Reason
		default:
			t.Fatalf("unexpected event kind %s", ev.Kind)
		}
	}
	require.Equal(t, map[uint64]string{0: "Token 0", 2: "Token 2"}, resolved)
	require.Equal(t, map[uint64]string{1: "not found"}, failed)
	require.Equal(t, worker.StateCompleted, w.State())
}

func TestCancelStopsDelivery(t *testing.T) {
	gate := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
		fmt.Fprintf(w, `{"name":"late"}`)
	}))
	defer server.Close()
	defer close(gate)

	w := worker.NewWorker(nil, metadata.NewFetcher(nil))
	w.Start(worker.TemplateSource(server.URL+"/", 0, 20))

	// all fetches are parked on the gate, so nothing is delivered yet
	time.Sleep(100 * time.Millisecond)
	w.Cancel()
	require.Equal(t, worker.StateCancelled, w.State())

	select {
	case ev := <-w.Events():
		t.Fatalf("no event may arrive after Cancel returns, got %s", ev.Kind)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestCancelDropsBufferedEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"name":"ok"}`)
	}))
	defer server.Close()

	w := worker.NewWorker(nil, metadata.NewFetcher(nil))
	w.Start(worker.TemplateSource(server.URL+"/", 0, 200))

	// nobody reads, so the session fills its event buffer and the control
	// loop ends up blocked on a full send
	time.Sleep(500 * time.Millisecond)
	w.Cancel()
	require.Equal(t, worker.StateCancelled, w.State())

	select {
	case ev := <-w.Events():
		t.Fatalf("event %s delivered after Cancel returned", ev.Kind)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestStartCancelsPreviousSession(t *testing.T) {
	gate := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
		fmt.Fprintf(w, `{"name":"slow"}`)
	}))
	defer slow.Close()
	defer close(gate)

	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"name":"fast"}`)
	}))
	defer fast.Close()

	w := worker.NewWorker(nil, metadata.NewFetcher(nil))
	first := w.Start(worker.TemplateSource(slow.URL+"/", 0, 20))
	second := w.Start(worker.TemplateSource(fast.URL+"/", 0, 2))
	require.NotEqual(t, first, second)

	events := collectSession(t, w, 10*time.Second)
	for _, ev := range events {
		require.Equal(t, second, ev.Session, "events of the replaced session must never surface")
	}
	require.Equal(t, worker.EventCompleted, events[len(events)-1].Kind)
	require.Equal(t, 2, events[len(events)-1].Stats.Resolved)
}

func TestContractSourceWithoutResolverIsFatal(t *testing.T) {
	w := worker.NewWorker(nil, metadata.NewFetcher(nil))
	session := w.Start(worker.ContractSource("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"))

	ev := nextEvent(t, w, 5*time.Second)
	require.Equal(t, worker.EventFatal, ev.Kind)
	require.Equal(t, session, ev.Session)
	require.Error(t, ev.Err)
	require.Equal(t, worker.StateFatal, w.State())
}

func TestUnknownSourceKindIsFatal(t *testing.T) {
	w := worker.NewWorker(nil, metadata.NewFetcher(nil))
	w.Start(worker.Source{Kind: worker.SourceKind(99)})

	ev := nextEvent(t, w, 5*time.Second)
	require.Equal(t, worker.EventFatal, ev.Kind)
}
