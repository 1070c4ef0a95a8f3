package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"askai/client/internal/backend"
	"askai/client/internal/controller"
	"askai/client/internal/metrics"
	"askai/client/internal/navigation"
	"askai/client/internal/repository"
	"askai/client/internal/session"
)

// View is the dashboard state held for one browser view.
type View struct {
	ID         string
	Session    *session.Session
	Guard      *session.Guard
	Nav        *navigation.Recorder
	Controller *controller.Controller

	mu       sync.Mutex
	lastSeen time.Time
}

func (v *View) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *View) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// ViewService keeps one View per view id. Credentials live in the store,
// keyed by view id, so an evicted view comes back signed in.
type ViewService struct {
	backend backend.Client
	store   repository.CredentialRepository
	metrics *metrics.Metrics
	idleTTL time.Duration
	now     func() time.Time

	mu    sync.Mutex
	views map[string]*View
}

func NewViewService(b backend.Client, store repository.CredentialRepository, m *metrics.Metrics, idleTTL time.Duration) *ViewService {
	return &ViewService{
		backend: b,
		store:   store,
		metrics: m,
		idleTTL: idleTTL,
		now:     time.Now,
		views:   make(map[string]*View),
	}
}

// Get returns the view for id, creating it on first use, and marks it active.
func (s *ViewService) Get(id string) *View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.views[id]; ok {
		v.touch(s.now())
		return v
	}

	sess := session.New(s.store, id)
	rec := navigation.NewRecorder()
	guard := session.NewGuard(sess, rec, s.metrics)
	v := &View{
		ID:      id,
		Session: sess,
		Guard:   guard,
		Nav:     rec,
		Controller: controller.New(s.backend, guard,
			controller.WithLogger(slog.Default().With("view", id)),
			controller.WithMetrics(s.metrics)),
		lastSeen: s.now(),
	}
	s.views[id] = v
	s.metrics.SetViewsActive(len(s.views))
	slog.Debug("Created view", "view", id)
	return v
}

// Len returns the number of live views.
func (s *ViewService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Sweep evicts views idle for longer than the configured TTL and returns how
// many were removed.
func (s *ViewService) Sweep() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	var evicted []*View
	for id, v := range s.views {
		if v.idleSince().Before(cutoff) {
			evicted = append(evicted, v)
			delete(s.views, id)
		}
	}
	s.metrics.SetViewsActive(len(s.views))
	s.mu.Unlock()

	for _, v := range evicted {
		v.Controller.Close()
	}
	if len(evicted) > 0 {
		slog.Info("Evicted idle views", "count", len(evicted))
	}
	return len(evicted)
}

// Run sweeps on every tick until ctx is cancelled.
func (s *ViewService) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Close shuts down every view.
func (s *ViewService) Close() {
	s.mu.Lock()
	views := s.views
	s.views = make(map[string]*View)
	s.metrics.SetViewsActive(0)
	s.mu.Unlock()

	for _, v := range views {
		v.Controller.Close()
	}
}
