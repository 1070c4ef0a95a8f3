// Package navigation models the two destinations the dashboard moves between
// and the query parameter that carries a landing-page question into the
// dashboard.
package navigation

import (
	"net/url"
	"strings"
	"sync"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"

	// QueryParam is the URL parameter carrying the external query signal.
	QueryParam = "q"
)

// Route is a navigation target.
type Route struct {
	Path  string
	Query string
}

// Login is the unauthenticated entry point.
func Login() Route { return Route{Path: LoginPath} }

// Dashboard returns the dashboard route, carrying query when it is non-empty.
func Dashboard(query string) Route { return Route{Path: DashboardPath, Query: query} }

// String encodes the route as a relative URL.
func (r Route) String() string {
	if r.Query == "" {
		return r.Path
	}
	v := url.Values{}
	v.Set(QueryParam, r.Query)
	return r.Path + "?" + v.Encode()
}

// QueryFromURL extracts the external query signal from a URL or a bare query
// string ("q=..."). Malformed input yields an empty query.
func QueryFromURL(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return ""
	}
	return values.Get(QueryParam)
}

// Navigator performs a page transition.
type Navigator interface {
	Navigate(Route)
}

// Func adapts a plain function to the Navigator interface.
type Func func(Route)

func (f Func) Navigate(r Route) { f(r) }

// Recorder remembers the most recent transition until it is taken. The web
// client uses it to turn transitions into redirect fields and SSE events.
type Recorder struct {
	mu      sync.Mutex
	pending *Route
	count   int
	notify  chan struct{}
}

func NewRecorder() *Recorder {
	return &Recorder{notify: make(chan struct{}, 1)}
}

func (r *Recorder) Navigate(route Route) {
	r.mu.Lock()
	r.pending = &route
	r.count++
	r.mu.Unlock()

	select {
	case r.notify <- struct{}{}:
	default:
	}
}

// Take returns and clears the pending transition.
func (r *Recorder) Take() (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		return Route{}, false
	}
	route := *r.pending
	r.pending = nil
	return route, true
}

// Count is the number of transitions recorded so far.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Notify receives a value after each transition. Bursts are coalesced.
func (r *Recorder) Notify() <-chan struct{} { return r.notify }
