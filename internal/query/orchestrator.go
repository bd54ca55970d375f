package query

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/five82/stories/internal/catalog"
	"github.com/five82/stories/internal/results"
)

// Dispatcher is the part of *results.Store the orchestrator drives.
type Dispatcher interface {
	Dispatch(a results.Action) error
	State() results.State
}

// Orchestrator drives the result store through fetch cycles. Each cycle is
// one FetchStart, one network call and one completion.
type Orchestrator struct {
	store  Dispatcher
	client catalog.Fetcher
	logger *zap.Logger
	seq    atomic.Uint64
}

// NewOrchestrator wires a store to a fetcher. A nil logger discards logs.
func NewOrchestrator(store Dispatcher, client catalog.Fetcher, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{store: store, client: client, logger: logger}
}

// Cycle is a started fetch waiting for its network call.
type Cycle struct {
	Seq    uint64
	URL    string
	client catalog.Fetcher
}

// Result is the outcome of Cycle.Do.
type Result struct {
	Seq     uint64
	URL     string
	Records []catalog.Record
	Err     error
	Elapsed time.Duration
}

// Start allocates the next sequence number and dispatches FetchStart before
// returning. Identical URLs are not deduplicated.
func (o *Orchestrator) Start(url string) Cycle {
	seq := o.seq.Add(1)
	o.Dispatch(results.FetchStart{Seq: seq, URL: url})
	o.logger.Debug("fetch started", zap.Uint64("seq", seq), zap.String("url", url))
	return Cycle{Seq: seq, URL: url, client: o.client}
}

// Do performs the network call. It never touches the store, so it is safe
// to run off the UI goroutine.
func (c Cycle) Do(ctx context.Context) Result {
	begin := time.Now()
	res := Result{Seq: c.Seq, URL: c.URL}
	res.Records, res.Err = c.client.Fetch(ctx, c.URL)
	res.Elapsed = time.Since(begin)
	return res
}

// Complete dispatches the completion for r. Completions of superseded
// cycles are dispatched too; the reducer discards them.
func (o *Orchestrator) Complete(r Result) {
	if r.Err != nil {
		o.logger.Warn("fetch failed",
			zap.Uint64("seq", r.Seq),
			zap.String("url", r.URL),
			zap.Duration("elapsed", r.Elapsed),
			zap.Error(r.Err))
		o.Dispatch(results.FetchFailure{Seq: r.Seq, Err: r.Err})
		return
	}
	o.logger.Info("fetch succeeded",
		zap.Uint64("seq", r.Seq),
		zap.String("url", r.URL),
		zap.Int("records", len(r.Records)),
		zap.Duration("elapsed", r.Elapsed))
	o.Dispatch(results.FetchSuccess{Seq: r.Seq, Payload: r.Records})
}

// Fetch runs a whole cycle and blocks until it completes. The returned
// error is the fetch error, already recorded as a failure in the store.
func (o *Orchestrator) Fetch(ctx context.Context, url string) error {
	res := o.Start(url).Do(ctx)
	o.Complete(res)
	return res.Err
}

// Remove drops a record from the displayed set. Nothing is sent to the
// server.
func (o *Orchestrator) Remove(r catalog.Record) {
	o.Dispatch(results.RemoveItem{Record: r})
}

// Dispatch forwards a to the store. A rejected action is a programming
// defect and is reported at DPanic level. That panics when logging at debug
// level (see logging.New) and is an error-level entry otherwise.
func (o *Orchestrator) Dispatch(a results.Action) {
	before := o.store.State()
	if results.Stale(before, a) {
		o.logger.Info("discarding stale completion", zap.String("action", actionName(a)), zap.Uint64("latest", before.Seq))
	}
	if err := o.store.Dispatch(a); err != nil {
		o.logger.DPanic("dispatch rejected", zap.String("action", actionName(a)), zap.Error(err))
	}
}

func actionName(a results.Action) string {
	switch a.(type) {
	case results.FetchStart:
		return "fetchStart"
	case results.FetchSuccess:
		return "fetchSuccess"
	case results.FetchFailure:
		return "fetchFailure"
	case results.RemoveItem:
		return "removeItem"
	default:
		return "unknown"
	}
}
