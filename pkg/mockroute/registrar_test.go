package mockroute

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// recordingT captures Errorf calls so tests can assert that a rejected
// request would have failed the enclosing test.
type recordingT struct {
	mu     sync.Mutex
	errors []string
}

func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

func newRequest(t *testing.T, method, rawURL, body string) *Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	req := &Request{Method: method, URL: u, Header: http.Header{}}
	if body != "" {
		req.Body = []byte(body)
	}
	return req
}

func tagged(tag string) Handler {
	return Stub(map[string]string{"route": tag})
}

func servedBy(t *testing.T, r *Registrar, method, rawURL string) string {
	t.Helper()
	resp, err := r.Handle(newRequest(t, method, rawURL, ""))
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	return body["route"]
}

func TestRegistrar_MostSpecificRouteWins(t *testing.T) {
	r := New(WithLogger(zaptest.NewLogger(t)))

	// Registered least specific first; order must not matter.
	r.MustRegister("*/**/api/franchise/**", Handlers{http.MethodGet: tagged("glob")})
	r.MustRegister("/api/franchise/*/store", Handlers{http.MethodPost: tagged("store")})
	r.MustRegister("/api/franchise/:id", Handlers{http.MethodGet: tagged("one"), http.MethodDelete: tagged("close")})
	r.MustRegister("/api/franchise", Handlers{http.MethodGet: tagged("list")})

	assert.Equal(t, "list", servedBy(t, r, http.MethodGet, "http://localhost:3000/api/franchise"))
	assert.Equal(t, "one", servedBy(t, r, http.MethodGet, "http://localhost:3000/api/franchise/3"))
	assert.Equal(t, "close", servedBy(t, r, http.MethodDelete, "http://localhost:3000/api/franchise/3"))
	assert.Equal(t, "store", servedBy(t, r, http.MethodPost, "http://localhost:3000/api/franchise/3/store"))
	assert.Equal(t, "glob", servedBy(t, r, http.MethodGet, "http://localhost:3000/api/franchise/3/store/9"))
}

func TestRegistrar_FallsBackToLessSpecificRouteForMethod(t *testing.T) {
	r := New()
	r.MustRegister("/api/franchise/:id", Handlers{http.MethodDelete: tagged("close")})
	r.MustRegister("/api/**", Handlers{http.MethodGet: tagged("catch-all")})

	assert.Equal(t, "catch-all", servedBy(t, r, http.MethodGet, "/api/franchise/3"))
	assert.Equal(t, "close", servedBy(t, r, http.MethodDelete, "/api/franchise/3"))
}

func TestRegistrar_LaterRegistrationSupersedes(t *testing.T) {
	r := New()
	r.MustRegister("/api/franchise/:id", Handlers{http.MethodGet: tagged("first")})
	r.MustRegister("/api/franchise/*", Handlers{http.MethodGet: tagged("second")})

	assert.Equal(t, "second", servedBy(t, r, http.MethodGet, "/api/franchise/3"))
	assert.Equal(t, []string{"/api/franchise/*"}, r.Routes())

	// The replaced route's methods are gone too.
	r.MustRegister("/api/franchise/*", Handlers{http.MethodDelete: tagged("third")})
	_, err := r.Handle(newRequest(t, http.MethodGet, "/api/franchise/3", ""))
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestRegistrar_NoRouteFailsOpen(t *testing.T) {
	rec := &recordingT{}
	r := New(WithTestingT(rec))
	r.MustRegister("/api/auth", Handlers{http.MethodPut: tagged("login")})

	_, err := r.Handle(newRequest(t, http.MethodGet, "/api/order/menu", ""))
	assert.ErrorIs(t, err, ErrNoRoute)

	_, err = r.Handle(newRequest(t, http.MethodPost, "/api/auth", ""))
	assert.ErrorIs(t, err, ErrNoRoute, "pattern matches but method is not mocked")

	assert.Empty(t, rec.failures(), "unmatched requests are not test failures")
	assert.Empty(t, r.Calls())
	assert.Equal(t, []Call{
		{Method: http.MethodGet, Path: "/api/order/menu"},
		{Method: http.MethodPost, Path: "/api/auth"},
	}, r.Misses())
}

func TestRegistrar_ValidateThenStub(t *testing.T) {
	rec := &recordingT{}
	r := New(WithTestingT(rec))
	r.MustRegister("*/**/api/auth", Handlers{
		http.MethodPut: Stub(map[string]any{"token": "abcdef"},
			ExpectMethod(http.MethodPut),
			ExpectBody(map[string]any{"email": "a@jwt.com", "password": "admin"}),
		),
	})

	t.Run("matching request is stubbed", func(t *testing.T) {
		resp, err := r.Handle(newRequest(t, "put", "/api/auth", `{"email":"a@jwt.com","password":"admin"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"token":"abcdef"}`, string(resp.Body))
		assert.Empty(t, rec.failures())
	})

	t.Run("malformed request fails the test and is not stubbed", func(t *testing.T) {
		resp, err := r.Handle(newRequest(t, http.MethodPut, "/api/auth", `{"email":"a@jwt.com","password":"wrong"}`))
		assert.Nil(t, resp)

		var checkErr *CheckError
		require.ErrorAs(t, err, &checkErr)
		assert.Equal(t, http.MethodPut, checkErr.Method)
		assert.Equal(t, "/api/auth", checkErr.Path)
		assert.Equal(t, "/**/api/auth", checkErr.Pattern)
		assert.Contains(t, err.Error(), "$.password")

		failures := rec.failures()
		require.Len(t, failures, 1)
		assert.Contains(t, failures[0], "$.password")
		assert.Len(t, r.Calls(), 1, "only the stubbed request is recorded")
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := r.Handle(newRequest(t, http.MethodPut, "/api/auth", ""))
		assert.ErrorContains(t, err, "body: empty")
	})
}

func TestRegistrar_HandlerWithoutResponse(t *testing.T) {
	rec := &recordingT{}
	r := New(WithTestingT(rec))
	r.MustRegister("/api/order", Handlers{
		http.MethodPost: func(*Request) (*Response, error) { return nil, nil },
	})

	_, err := r.Handle(newRequest(t, http.MethodPost, "/api/order", "{}"))
	assert.ErrorContains(t, err, "handler returned no response")
	assert.Len(t, rec.failures(), 1)
	assert.Empty(t, r.Calls())
}

func TestRegistrar_Params(t *testing.T) {
	r := New()
	var got *Request
	r.MustRegister("/api/franchise/:franchiseID/store/:storeID", Handlers{
		http.MethodDelete: func(req *Request) (*Response, error) {
			got = req
			return Fulfill(map[string]string{"message": "store deleted"})
		},
	})

	_, err := r.Handle(newRequest(t, http.MethodDelete, "/api/franchise/2/store/4", ""))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2", got.Param("franchiseID"))
	assert.Equal(t, "4", got.Param("storeID"))
	assert.Equal(t, "", got.Param("missing"))
	assert.Equal(t, "/api/franchise/*/store/*", got.Pattern)
}

func TestRegistrar_RegisterErrors(t *testing.T) {
	r := New()

	assert.ErrorIs(t, r.Register("/api/fr*", Handlers{http.MethodGet: tagged("x")}), ErrInvalidPattern)
	assert.ErrorIs(t, r.Register("/api/auth", nil), ErrNoHandlers)
	assert.ErrorIs(t, r.Register("/api/auth", Handlers{http.MethodGet: nil}), ErrNoHandlers)

	err := r.Install(
		Spec{Pattern: "/api/order/menu", Handlers: Handlers{http.MethodGet: tagged("menu")}},
		Spec{Pattern: "", Handlers: Handlers{http.MethodGet: tagged("bad")}},
		Spec{Pattern: "/api/order", Handlers: Handlers{http.MethodPost: tagged("order")}},
	)
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Equal(t, []string{"/api/order/menu"}, r.Routes(), "install stops at the first error")

	assert.Panics(t, func() { r.MustInstall(Spec{Pattern: "/x"}) })
}

func TestRegistrar_Unregister(t *testing.T) {
	r := New()
	r.MustRegister("/api/franchise/*/store", Handlers{http.MethodPost: tagged("store")})
	r.MustRegister("/api/franchise/*", Handlers{http.MethodGet: tagged("one")})

	assert.True(t, r.Unregister("/api/franchise/:id/store"))
	assert.False(t, r.Unregister("/api/franchise/*/store"))
	assert.False(t, r.Unregister("/api/fr*"))

	_, err := r.Handle(newRequest(t, http.MethodPost, "/api/franchise/2/store", "{}"))
	assert.ErrorIs(t, err, ErrNoRoute)
	assert.Equal(t, "one", servedBy(t, r, http.MethodGet, "/api/franchise/2"))
}

func TestRegistrar_Routes(t *testing.T) {
	r := New()
	for _, p := range []string{"**/api/auth", "/api/franchise/*", "/api/franchise", "/api/franchise/*/store"} {
		r.MustRegister(p, Handlers{http.MethodGet: tagged(p)})
	}
	assert.Equal(t, []string{
		"/api/franchise/*/store",
		"/api/franchise/*",
		"/api/franchise",
		"/**/api/auth",
	}, r.Routes())
}

func TestRegistrar_Calls(t *testing.T) {
	r := New()
	r.MustRegister("*/**/api/auth", Handlers{http.MethodDelete: Stub(map[string]string{"message": "logout successful"})})

	for i := 0; i < 2; i++ {
		_, err := r.Handle(newRequest(t, http.MethodDelete, "http://localhost:3000/api/auth", ""))
		require.NoError(t, err)
	}
	assert.Equal(t, []Call{
		{Method: http.MethodDelete, Path: "/api/auth", Pattern: "/**/api/auth"},
		{Method: http.MethodDelete, Path: "/api/auth", Pattern: "/**/api/auth"},
	}, r.Calls())
}

func TestRegistrar_Close(t *testing.T) {
	r := New()
	r.MustRegister("/api/auth", Handlers{http.MethodPut: tagged("login")})

	var closed []string
	require.True(t, r.onClose(func() error { closed = append(closed, "first"); return nil }))
	require.True(t, r.onClose(func() error { closed = append(closed, "second"); return errors.New("boom") }))

	err := r.Close()
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"second", "first"}, closed)

	assert.NoError(t, r.Close(), "second close is a no-op")
	assert.Empty(t, r.Routes())
	assert.False(t, r.onClose(func() error { return nil }))

	_, err = r.Handle(newRequest(t, http.MethodPut, "/api/auth", ""))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, r.Register("/api/auth", Handlers{http.MethodPut: tagged("login")}), ErrClosed)
}

func TestNewForTest_ClosesOnCleanup(t *testing.T) {
	var r *Registrar
	t.Run("inner", func(t *testing.T) {
		r = NewForTest(t)
		r.MustRegister("/api/auth", Handlers{http.MethodPut: tagged("login")})
	})
	_, err := r.Handle(newRequest(t, http.MethodPut, "/api/auth", ""))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRegistrar_ConcurrentHandle(t *testing.T) {
	r := New()
	r.MustRegister("/api/order/menu", Handlers{http.MethodGet: tagged("menu")})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				resp, err := r.Handle(&Request{Method: http.MethodGet, URL: &url.URL{Path: "/api/order/menu"}})
				if assert.NoError(t, err) {
					assert.Equal(t, http.StatusOK, resp.Status)
				}
			}
		}()
	}
	// Re-registering while requests are in flight must be safe.
	for i := 0; i < 10; i++ {
		r.MustRegister("/api/order/menu", Handlers{http.MethodGet: tagged("menu")})
	}
	wg.Wait()
	assert.Len(t, r.Calls(), 16*50)
}
