// Package worker runs resolution sessions off the caller's goroutine and
// streams results back over a channel instead of returning them in bulk.
// At most one session is active per worker; starting a new one cancels the
// previous. Each session owns its event channel, and Cancel detaches the
// channel from the worker, so nothing a cancelled session produced, buffered
// or in flight, is ever delivered afterwards.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tranvictor/nftmeta/collection"
	"github.com/tranvictor/nftmeta/common"
	"github.com/tranvictor/nftmeta/config"
	"github.com/tranvictor/nftmeta/metadata"
	"github.com/tranvictor/nftmeta/resolver"
)

type State int

const (
	StateIdle State = iota
	StateResolving
	StateEnumerating
	StateFetching
	StateCompleted
	StateFatal
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateEnumerating:
		return "enumerating"
	case StateFetching:
		return "fetching"
	case StateCompleted:
		return "completed"
	case StateFatal:
		return "fatal"
	default:
		return "cancelled"
	}
}

const eventBuffer = 64

type session struct {
	id     uuid.UUID
	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
}

type Worker struct {
	resolver    *resolver.Resolver
	fetcher     *metadata.Fetcher
	concurrency int
	logger      *zap.Logger

	events chan Event

	mu      sync.Mutex
	current *session
	state   State
}

// NewWorker builds a worker. resolver may be nil when only url-template
// sources will be resolved.
func NewWorker(rs *resolver.Resolver, f *metadata.Fetcher) *Worker {
	concurrency := config.FetchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Worker{
		resolver:    rs,
		fetcher:     f,
		concurrency: concurrency,
		logger:      common.Logger(),
		events:      make(chan Event),
		state:       StateIdle,
	}
}

// Events is the outbound message stream of the active session. Delivery
// order is the order the worker produced the events. After Cancel the
// returned channel never delivers; call Events again after the next Start.
func (w *Worker) Events() <-chan Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.events
}

func (w *Worker) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Start begins resolving source, implicitly cancelling any session already
// running, and returns the new session's id.
func (w *Worker) Start(source Source) uuid.UUID {
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		id:     uuid.New(),
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, eventBuffer),
	}

	w.mu.Lock()
	if w.current != nil {
		w.current.cancel()
	}
	w.current = s
	w.events = s.events
	w.state = StateResolving
	w.mu.Unlock()

	w.logger.Info("resolution session started",
		zap.String("session", s.id.String()),
		zap.String("address", source.Address),
		zap.String("template", source.Template))

	go w.run(ctx, s, source)
	return s.id
}

// Cancel stops the active session, if any. By the time Cancel returns no
// further events for that session will be delivered, even if in-flight
// fetches complete later: the session's channel is detached here, buffered
// events included, and Events hands out a fresh silent channel instead.
func (w *Worker) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return
	}
	w.logger.Info("resolution session cancelled", zap.String("session", w.current.id.String()))
	w.current.cancel()
	w.current = nil
	w.events = make(chan Event)
	w.state = StateCancelled
}

// emit delivers ev on the session's own channel. A cancelled session's
// channel is already detached from Events, so anything sent, or still
// buffered, after cancellation is unreachable; the ctx arm keeps the control
// loop from blocking forever on a full buffer nobody reads anymore.
func (w *Worker) emit(s *session, ev Event) {
	ev.Session = s.id
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

func (w *Worker) setState(s *session, state State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current != s {
		return
	}
	w.state = state
}

type fetchResult struct {
	tokenID uint64
	token   *metadata.TokenMetadata
	err     error
}

func (w *Worker) run(ctx context.Context, s *session, source Source) {
	seq, fetch, stats, err := w.prepare(ctx, s, source)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.setState(s, StateFatal)
		w.emit(s, Event{Kind: EventFatal, Err: err})
		return
	}

	w.setState(s, StateFetching)

	// Bounded fan-out: at most concurrency fetches in flight. The results
	// channel is buffered to that bound so in-flight goroutines can always
	// deposit their result and exit even after the session is abandoned.
	results := make(chan fetchResult, w.concurrency)
	inflight := 0
	exhausted := false

	for {
		for inflight < w.concurrency && !exhausted {
			id, ok := seq.Next()
			if !ok {
				exhausted = true
				break
			}
			inflight++
			go func(tokenID uint64) {
				token, err := fetch(ctx, tokenID)
				results <- fetchResult{tokenID: tokenID, token: token, err: err}
			}(id)
		}
		if exhausted && inflight == 0 {
			break
		}

		select {
		case <-ctx.Done():
			return
		case res := <-results:
			inflight--
			if res.err == nil {
				seq.RecordHit()
				stats.Resolved++
				w.emit(s, Event{Kind: EventProgress, Token: res.token, Stats: stats})
				continue
			}
			kind := classify(res.err)
			if kind == metadata.FailNotFound {
				seq.RecordMiss()
			} else {
				seq.RecordHit()
			}
			stats.Failed++
			w.emit(s, Event{
				Kind:    EventProgressFailed,
				TokenID: res.tokenID,
				Reason:  kind.String(),
				Stats:   stats,
			})
		}
	}

	w.setState(s, StateCompleted)
	w.logger.Info("resolution session completed",
		zap.String("session", s.id.String()),
		zap.Int("resolved", stats.Resolved),
		zap.Int("failed", stats.Failed))
	w.emit(s, Event{Kind: EventCompleted, Stats: stats})
}

type fetchFunc func(ctx context.Context, tokenID uint64) (*metadata.TokenMetadata, error)

// prepare resolves the contract interface (for contract sources) and
// builds the id sequence and fetch function of the session. Interface
// resolution failures are fatal: no partial interface is ever used.
func (w *Worker) prepare(ctx context.Context, s *session, source Source) (*resolver.Sequence, fetchFunc, collection.Stats, error) {
	stats := collection.Stats{}

	switch source.Kind {
	case SourceContract:
		if w.resolver == nil {
			return nil, nil, stats, fmt.Errorf("worker has no resolver configured for contract sources")
		}
		iface, err := w.resolver.Resolve(ctx, source.Address)
		if err != nil {
			return nil, nil, stats, err
		}
		w.setState(s, StateEnumerating)
		w.emit(s, Event{Kind: EventResolved, Iface: iface})

		seq := resolver.NewSequence(iface)
		if total, known := seq.Total(); known {
			stats.Total = total
			stats.TotalKnown = true
		}
		fetch := func(ctx context.Context, tokenID uint64) (*metadata.TokenMetadata, error) {
			return w.fetcher.FetchContractToken(ctx, iface, tokenID)
		}
		return seq, fetch, stats, nil

	case SourceMetadataURL:
		w.setState(s, StateEnumerating)
		seq := resolver.NewTemplateSequence(source.StartToken, source.Supply)
		if total, known := seq.Total(); known {
			stats.Total = total
			stats.TotalKnown = true
		}
		fetch := func(ctx context.Context, tokenID uint64) (*metadata.TokenMetadata, error) {
			return w.fetcher.FetchTemplateToken(ctx, source.Template, tokenID)
		}
		return seq, fetch, stats, nil

	default:
		return nil, nil, stats, fmt.Errorf("unknown source kind %d", source.Kind)
	}
}

func classify(err error) metadata.FailKind {
	var fe *metadata.FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return metadata.FailTransient
}
