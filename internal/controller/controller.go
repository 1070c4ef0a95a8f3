// Package controller implements the dashboard query controller: it owns the
// current query, the request state and the displayed answer, drives one round
// trip to the AI service per accepted query, and keeps a read-through copy of
// the user's history.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"askai/client/internal/backend"
	app_errors "askai/client/internal/errors"
	"askai/client/internal/metrics"
	"askai/client/internal/model"
	"askai/client/internal/session"
)

// User-visible error messages.
const (
	MessageUnreachable = "Could not connect to the AI server."
	MessageMalformed   = "Received an invalid response from the AI server."
	MessageGeneric     = "Something went wrong."
)

// Backend is the part of the AI service the dashboard talks to.
type Backend interface {
	Ask(ctx context.Context, token, prompt string) (*model.AskResponse, error)
	History(ctx context.Context, token string) ([]model.HistoryEntry, error)
}

// HistoryItem is a history entry as listed on the dashboard.
type HistoryItem struct {
	ID       string `json:"id"`
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
	Label    string `json:"label"`
}

// Snapshot is a consistent copy of the dashboard state.
type Snapshot struct {
	Mounted  bool            `json:"mounted"`
	State    State           `json:"state"`
	Query    string          `json:"query"`
	Exchange *model.Exchange `json:"exchange,omitempty"`
	Error    string          `json:"error,omitempty"`
	History  []HistoryItem   `json:"history"`
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// Controller is safe for concurrent use. Round trips and history fetches run
// on their own goroutines; their results are applied under the controller's
// lock and only when they still belong to the current query (generation) or
// the current mount (epoch).
type Controller struct {
	backend Backend
	guard   *session.Guard
	logger  *slog.Logger
	metrics *metrics.Metrics

	baseCtx context.Context
	stop    context.CancelFunc

	mu             sync.Mutex
	closed         bool
	pending        int
	settled        chan struct{}
	mounted        bool
	mountedToken   string
	epoch          uint64
	generation     uint64
	cancelInFlight context.CancelFunc
	state          State
	query          string
	exchange       *model.Exchange
	errMsg         string
	history        []model.HistoryEntry
	lastExternal   string

	subMu   sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int
}

func New(b Backend, guard *session.Guard, opts ...Option) *Controller {
	ctx, stop := context.WithCancel(context.Background())
	c := &Controller{
		backend: b,
		guard:   guard,
		logger:  slog.Default(),
		baseCtx: ctx,
		stop:    stop,
		subs:    make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "controller")
	return c
}

// Mount runs the session guard for a dashboard entry. On the first successful
// entry the view starts fresh and history is fetched; entering an already
// mounted view with the same credential does nothing more. A failed guard
// unmounts the view and returns false after the redirect.
func (c *Controller) Mount(ctx context.Context) bool {
	token, ok := c.guard.Enter(ctx)
	if !ok {
		c.unmount()
		return false
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	if c.mounted && c.mountedToken == token {
		c.mu.Unlock()
		return true
	}
	c.resetLocked()
	c.mounted = true
	c.mountedToken = token
	epoch := c.epoch
	c.mu.Unlock()

	c.notify()
	c.fetchHistory(token, epoch)
	return true
}

// Submit accepts a typed query. Empty or whitespace-only text is ignored.
// Otherwise the controller enters Loading for the new query, superseding any
// round trip still outstanding, and issues exactly one Ask call. Without a
// credential it redirects to login instead. It reports whether a round trip
// was issued.
func (c *Controller) Submit(ctx context.Context, text string) bool {
	prompt := strings.TrimSpace(text)
	if prompt == "" {
		return false
	}

	token, ok := c.guard.Authorize(ctx)
	if !ok {
		c.unmount()
		return false
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.generation++
	gen := c.generation
	c.cancelLocked()
	rtCtx, cancel := context.WithCancel(c.baseCtx)
	c.cancelInFlight = cancel
	c.state = StateLoading
	c.query = prompt
	c.errMsg = ""
	c.exchange = &model.Exchange{ID: uuid.NewString(), Query: prompt, CreatedAt: time.Now().UTC()}
	epoch := c.epoch
	c.beginLocked()
	c.mu.Unlock()

	c.logger.Debug("Issuing round trip", "generation", gen)
	c.notify()
	go c.roundTrip(rtCtx, cancel, gen, epoch, token, prompt)
	return true
}

// ObserveExternal reconciles the query carried by navigation. A value equal to
// the last one observed is ignored; a changed value is submitted like typed
// input.
func (c *Controller) ObserveExternal(ctx context.Context, query string) bool {
	c.mu.Lock()
	if query == c.lastExternal {
		c.mu.Unlock()
		return false
	}
	c.lastExternal = query
	c.mu.Unlock()

	return c.Submit(ctx, query)
}

// SelectHistory displays a stored answer without a round trip. Any outstanding
// round trip is superseded. It reports whether id was found.
func (c *Controller) SelectHistory(id string) bool {
	c.mu.Lock()
	var found *model.HistoryEntry
	for i := range c.history {
		if c.history[i].ID == id {
			found = &c.history[i]
			break
		}
	}
	if found == nil {
		c.mu.Unlock()
		return false
	}
	c.generation++
	c.cancelLocked()
	c.state = StateSuccess
	c.query = found.Prompt
	c.errMsg = ""
	c.exchange = &model.Exchange{ID: found.ID, Query: found.Prompt, Response: found.Response}
	c.mu.Unlock()

	c.notify()
	return true
}

// NewChat returns to Idle, clearing the query, the answer and any error.
// History is kept.
func (c *Controller) NewChat() {
	c.mu.Lock()
	c.generation++
	c.cancelLocked()
	c.state = StateIdle
	c.query = ""
	c.errMsg = ""
	c.exchange = nil
	c.mu.Unlock()

	c.notify()
}

// Logout clears the credential and redirects immediately. Outstanding calls
// are abandoned; their results are discarded.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.guard.Logout(ctx)
	c.unmount()
	return err
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Mounted: c.mounted,
		State:   c.state,
		Query:   c.query,
		Error:   c.errMsg,
		History: make([]HistoryItem, 0, len(c.history)),
	}
	if c.exchange != nil {
		ex := *c.exchange
		snap.Exchange = &ex
	}
	for _, e := range c.history {
		snap.History = append(snap.History, HistoryItem{ID: e.ID, Prompt: e.Prompt, Response: e.Response, Label: e.Label()})
	}
	return snap
}

// Subscribe returns a channel receiving the latest snapshot after each change.
// A slow reader only ever sees the most recent one. The returned function
// unsubscribes and closes the channel.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan Snapshot, 1)
	if c.subs == nil {
		close(ch)
		return ch, func() {}
	}
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subMu.Lock()
			defer c.subMu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// Settled returns a channel that is closed once no round trip or history
// fetch is outstanding. Work started after the channel closes gets a new one.
func (c *Controller) Settled() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == 0 {
		return closedChan
	}
	return c.settled
}

// Wait blocks until every round trip and history fetch started so far, and
// any history fetch they trigger, has finished. It may be called from any
// number of goroutines while work is being started.
func (c *Controller) Wait() {
	<-c.Settled()
}

// Close abandons outstanding work, waits for it to stop, and closes all
// subscriptions.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.generation++
	c.epoch++
	c.cancelLocked()
	c.mu.Unlock()

	c.stop()
	c.Wait()

	c.subMu.Lock()
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.subs = nil
	c.subMu.Unlock()
}

func (c *Controller) roundTrip(ctx context.Context, cancel context.CancelFunc, gen, epoch uint64, token, prompt string) {
	defer c.end()
	defer cancel()

	start := time.Now()
	resp, err := c.backend.Ask(ctx, token, prompt)
	elapsed := time.Since(start)
	if err == nil && resp == nil {
		err = app_errors.ErrMalformedResponse
	}

	// A 401 for a credential that was already replaced falls through and is
	// reported like any other failure.
	if errors.Is(err, app_errors.ErrUnauthenticated) && c.handleUnauthorized(token) {
		c.metrics.RecordRoundTrip(metrics.OutcomeUnauthorized, elapsed)
		return
	}

	c.mu.Lock()
	if gen != c.generation {
		// The answer is not shown, but the service stored it.
		refresh := err == nil && epoch == c.epoch
		c.mu.Unlock()
		c.logger.Debug("Discarding superseded round trip", "generation", gen)
		c.metrics.RecordRoundTrip(metrics.OutcomeSuperseded, elapsed)
		if refresh {
			c.fetchHistory(token, epoch)
		}
		return
	}
	c.cancelInFlight = nil

	if err != nil {
		c.state = StateError
		c.errMsg = errorMessage(err)
		c.mu.Unlock()
		c.logger.Warn("Round trip failed", "generation", gen, "error", err)
		c.metrics.RecordRoundTrip(metrics.OutcomeError, elapsed)
		c.notify()
		return
	}

	c.state = StateSuccess
	ex := *c.exchange
	ex.Response = resp.Response
	c.exchange = &ex
	c.mu.Unlock()

	c.logger.Debug("Round trip resolved", "generation", gen, "duration", elapsed)
	c.metrics.RecordRoundTrip(metrics.OutcomeSuccess, elapsed)
	c.notify()
	c.fetchHistory(token, epoch)
}

// fetchHistory refreshes the history snapshot in the background. The last
// fetch to complete wins; a failure leaves the previous snapshot and the
// request state untouched.
func (c *Controller) fetchHistory(token string, epoch uint64) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.beginLocked()
	c.mu.Unlock()

	go func() {
		defer c.end()

		entries, err := c.backend.History(c.baseCtx, token)
		if errors.Is(err, app_errors.ErrUnauthenticated) {
			c.metrics.RecordHistoryFetch(metrics.OutcomeUnauthorized)
			c.handleUnauthorized(token)
			return
		}
		if err != nil {
			c.logger.Warn("Failed to fetch history", "error", err)
			c.metrics.RecordHistoryFetch(metrics.OutcomeError)
			return
		}

		c.mu.Lock()
		if epoch != c.epoch {
			c.mu.Unlock()
			return
		}
		c.history = entries
		c.mu.Unlock()

		c.metrics.RecordHistoryFetch(metrics.OutcomeSuccess)
		c.notify()
	}()
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// beginLocked registers one outstanding goroutine. c.mu must be held.
func (c *Controller) beginLocked() {
	if c.pending == 0 {
		c.settled = make(chan struct{})
	}
	c.pending++
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending--
	if c.pending == 0 {
		close(c.settled)
		c.settled = nil
	}
}

func (c *Controller) handleUnauthorized(token string) bool {
	if !c.guard.Invalidate(context.Background(), token) {
		return false
	}
	c.unmount()
	return true
}

// unmount ends the current mount: state is reset and late results dropped.
func (c *Controller) unmount() {
	c.mu.Lock()
	if !c.mounted && c.exchange == nil && c.cancelInFlight == nil {
		c.mu.Unlock()
		return
	}
	c.resetLocked()
	c.mounted = false
	c.mountedToken = ""
	c.mu.Unlock()

	c.notify()
}

func (c *Controller) resetLocked() {
	c.epoch++
	c.generation++
	c.cancelLocked()
	c.state = StateIdle
	c.query = ""
	c.errMsg = ""
	c.exchange = nil
	c.history = nil
	c.lastExternal = ""
}

func (c *Controller) cancelLocked() {
	if c.cancelInFlight != nil {
		c.cancelInFlight()
		c.cancelInFlight = nil
	}
}

func (c *Controller) notify() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if len(c.subs) == 0 {
		return
	}

	snap := c.Snapshot()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func errorMessage(err error) string {
	if detail := backend.DetailOf(err); detail != "" {
		return detail
	}
	switch {
	case errors.Is(err, app_errors.ErrUnreachable):
		return MessageUnreachable
	case errors.Is(err, app_errors.ErrMalformedResponse):
		return MessageMalformed
	default:
		return MessageGeneric
	}
}
