package mockroute

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type route struct {
	pattern  Pattern
	handlers Handlers
}

// Call records one request answered by a route.
type Call struct {
	Method  string
	Path    string
	Pattern string
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithLogger sets the logger. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registrar) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTestingT reports failed checks to t.
func WithTestingT(t assert.TestingT) Option {
	return func(r *Registrar) {
		r.t = t
	}
}

// WithFallback sets the handler ServeHTTP uses for unmatched requests.
// Default: http.NotFoundHandler.
func WithFallback(h http.Handler) Option {
	return func(r *Registrar) {
		if h != nil {
			r.fallback = h
		}
	}
}

// Registrar holds the route table for one test.
//
// Usage:
//
//	routes := mockroute.NewForTest(t)
//	routes.MustInstall(fixtures.Menu(), fixtures.Franchises())
//	routes.Hijack(page)
type Registrar struct {
	mu       sync.RWMutex
	root     *node
	routes   map[string]*route // canonical pattern -> route
	calls    []Call
	misses   []Call
	closers  []func() error
	closed   bool
	logger   *zap.Logger
	t        assert.TestingT
	fallback http.Handler
}

// New creates an empty registrar.
func New(opts ...Option) *Registrar {
	r := &Registrar{
		root:     &node{},
		routes:   make(map[string]*route),
		logger:   zap.NewNop(),
		fallback: http.NotFoundHandler(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewForTest creates a registrar scoped to t: failed checks fail t, logs go
// to t, and the registrar is closed when t finishes.
func NewForTest(t testing.TB, opts ...Option) *Registrar {
	t.Helper()
	base := []Option{WithTestingT(t), WithLogger(zaptest.NewLogger(t))}
	r := New(append(base, opts...)...)
	t.Cleanup(func() {
		if err := r.Close(); err != nil {
			t.Errorf("close mock routes: %v", err)
		}
	})
	return r
}

// Register installs handlers for pattern, replacing any route with the same
// canonical pattern.
func (r *Registrar) Register(pattern string, handlers Handlers) error {
	p, err := ParsePattern(pattern)
	if err != nil {
		return err
	}
	if len(handlers) == 0 {
		return fmt.Errorf("%w for %s", ErrNoHandlers, pattern)
	}

	hs := make(Handlers, len(handlers))
	for method, h := range handlers {
		if h == nil {
			return fmt.Errorf("%w for %s %s", ErrNoHandlers, strings.ToUpper(method), pattern)
		}
		hs[strings.ToUpper(method)] = h
	}
	rt := &route{pattern: p, handlers: hs}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	replaced := r.root.insert(rt) != nil
	r.routes[p.String()] = rt

	r.logger.Debug("route registered",
		zap.String("pattern", p.String()),
		zap.Strings("methods", methods(hs)),
		zap.Bool("replaced", replaced))
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registrar) MustRegister(pattern string, handlers Handlers) *Registrar {
	if err := r.Register(pattern, handlers); err != nil {
		panic(err)
	}
	return r
}

// Install registers specs in order and stops at the first error.
func (r *Registrar) Install(specs ...Spec) error {
	for _, s := range specs {
		if err := r.Register(s.Pattern, s.Handlers); err != nil {
			return err
		}
	}
	return nil
}

// MustInstall is like Install but panics on error.
func (r *Registrar) MustInstall(specs ...Spec) *Registrar {
	if err := r.Install(specs...); err != nil {
		panic(err)
	}
	return r
}

// Unregister removes the route for pattern and reports whether one existed.
func (r *Registrar) Unregister(pattern string) bool {
	p, err := ParsePattern(pattern)
	if err != nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.root.remove(p.segments) {
		return false
	}
	delete(r.routes, p.String())
	return true
}

// Routes returns the canonical patterns, most specific first.
func (r *Registrar) Routes() []string {
	r.mu.RLock()
	rts := make([]*route, 0, len(r.routes))
	for _, rt := range r.routes {
		rts = append(rts, rt)
	}
	r.mu.RUnlock()

	sort.Slice(rts, func(i, j int) bool {
		if c := compareSpecificity(rts[i].pattern, rts[j].pattern); c != 0 {
			return c < 0
		}
		return rts[i].pattern.String() < rts[j].pattern.String()
	})
	out := make([]string, len(rts))
	for i, rt := range rts {
		out[i] = rt.pattern.String()
	}
	return out
}

// Calls returns the requests answered so far, oldest first. Rejected and
// unmatched requests are not included.
func (r *Registrar) Calls() []Call {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Call(nil), r.calls...)
}

// Misses returns the requests no route answered, oldest first. They were let
// through to the network.
func (r *Registrar) Misses() []Call {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Call(nil), r.misses...)
}

// Handle answers req from the most specific route matching its path that
// has a handler for its method. It returns ErrNoRoute when none does.
// Handler errors are reported to the bound test before being returned.
func (r *Registrar) Handle(req *Request) (*Response, error) {
	req.Method = strings.ToUpper(req.Method)
	path := req.Path()

	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return nil, ErrClosed
	}
	var (
		handler Handler
		matched match
	)
	for _, m := range r.root.lookup(path) {
		if h, ok := m.route.handlers[req.Method]; ok {
			handler, matched = h, m
			break
		}
	}
	r.mu.RUnlock()

	if handler == nil {
		r.logger.Debug("no route", zap.String("method", req.Method), zap.String("path", path))
		r.mu.Lock()
		r.misses = append(r.misses, Call{Method: req.Method, Path: path})
		r.mu.Unlock()
		return nil, ErrNoRoute
	}

	req.bind(matched.route, matched.values)

	resp, err := handler(req)
	if err == nil && resp == nil {
		err = errors.New("handler returned no response")
	}
	if err != nil {
		err = &CheckError{Method: req.Method, Path: path, Pattern: req.Pattern, Err: err}
		r.logger.Error("mock route rejected request", zap.Error(err))
		if r.t != nil {
			r.t.Errorf("%v", err)
		}
		return nil, err
	}
	r.record(Call{Method: req.Method, Path: path, Pattern: req.Pattern})

	r.logger.Debug("mock route served",
		zap.String("method", req.Method),
		zap.String("path", path),
		zap.String("pattern", req.Pattern),
		zap.Int("status", resp.status()))
	return resp, nil
}

// Close detaches every transport the registrar was attached to and empties
// the route table. Closing twice is a no-op.
func (r *Registrar) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	closers := r.closers
	r.closers = nil
	r.root = &node{}
	r.routes = make(map[string]*route)
	r.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registrar) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

// onClose registers fn to run on Close. It reports false if the registrar is
// already closed, in which case fn is not kept.
func (r *Registrar) onClose(fn func() error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	r.closers = append(r.closers, fn)
	return true
}

func methods(hs Handlers) []string {
	out := make([]string, 0, len(hs))
	for m := range hs {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
