//go:build e2e

package e2e

import (
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/thesyncim/pizzae2e/pkg/browser"
	"github.com/thesyncim/pizzae2e/pkg/mockroute"
	"github.com/thesyncim/pizzae2e/pkg/storefront"
)

var (
	browserOnce sync.Once
	sharedB     *browser.Client
	browserErr  error

	reachOnce sync.Once
	reachErr  error
)

// session is one test's view of the storefront: a fresh incognito page and
// the route table answering its backend calls.
type session struct {
	*storefront.Page
	routes *mockroute.Registrar
}

// newSession opens the storefront in a new page with specs installed.
// It skips the test when the storefront is not running.
func newSession(t *testing.T, specs ...mockroute.Spec) *session {
	t.Helper()
	requireStorefront(t)

	client := sharedBrowser(t)
	page, closePage, err := client.NewPage()
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := closePage(); err != nil {
			t.Logf("close page: %v", err)
		}
	})

	routes := mockroute.NewForTest(t)
	routes.MustInstall(specs...)
	routes.Hijack(page)

	return &session{
		Page:   storefront.New(t, page, runConfig.HostURL, runConfig.Timeout),
		routes: routes,
	}
}

// install adds specs mid-test, superseding routes with the same pattern.
func (s *session) install(t *testing.T, specs ...mockroute.Spec) {
	t.Helper()
	require.NoError(t, s.routes.Install(specs...))
}

// called reports whether a request for method was answered by pattern.
func (s *session) called(method, pattern string) bool {
	return calledWith(s.routes, method, pattern)
}

// waitMiss waits until a method request to a path ending in suffix went
// past the route table to the network.
func (s *session) waitMiss(t *testing.T, method, suffix string) {
	t.Helper()
	require.Eventually(t, func() bool {
		for _, c := range s.routes.Misses() {
			if c.Method == method && strings.HasSuffix(c.Path, suffix) {
				return true
			}
		}
		return false
	}, runConfig.Timeout, 50*time.Millisecond, "no unmocked %s ...%s request", method, suffix)
}

func calledWith(routes *mockroute.Registrar, method, pattern string) bool {
	want := mockroute.MustParsePattern(pattern).String()
	for _, c := range routes.Calls() {
		if c.Method == method && c.Pattern == want {
			return true
		}
	}
	return false
}

func requireStorefront(t *testing.T) {
	t.Helper()
	reachOnce.Do(func() {
		client := http.Client{Timeout: 2 * time.Second}
		resp, err := client.Get(runConfig.HostURL)
		if err != nil {
			reachErr = err
			return
		}
		resp.Body.Close()
	})
	if reachErr != nil {
		t.Skipf("storefront not reachable at %s: %v", runConfig.HostURL, reachErr)
	}
}

func sharedBrowser(t *testing.T) *browser.Client {
	t.Helper()
	browserOnce.Do(func() {
		logger := zap.NewNop()
		if testing.Verbose() {
			logger, _ = zap.NewDevelopment()
		}
		sharedB, browserErr = browser.NewClient(browser.FromRunConfig(runConfig), logger)
	})
	require.NoError(t, browserErr, "launch browser")
	return sharedB
}

func closeSharedBrowser() {
	if sharedB != nil {
		sharedB.Close()
	}
}
