//go:build e2e

// Package e2e drives the JWT Pizza storefront in a real browser with the
// backend mocked through pkg/mockroute.
//
// These tests are isolated from the standard test suite via build tags.
// They require a running storefront (PIZZA_HOST_URL, default
// http://localhost:5173) and a Chrome browser (auto-downloaded by Rod if
// not present). Tests skip when the storefront is not reachable.
//
// Running E2E tests:
//
//	npm run dev &   # in the storefront checkout
//	go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// E2E tests use:
//   - Rod for browser automation (Chrome DevTools Protocol)
//   - mockroute.Registrar.Hijack to answer backend calls
//   - pkg/fixtures for the canned backend data
//   - pkg/storefront for page interactions
//
// Test isolation:
// One Chrome process is shared by the whole run. Each test gets its own
// incognito page and its own route table, so tests can run in parallel.
package e2e
