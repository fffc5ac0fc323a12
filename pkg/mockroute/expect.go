package mockroute

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/assert"
)

// Handler produces the response for an intercepted request. A non-nil error
// fails the enclosing test and aborts the request.
type Handler func(req *Request) (*Response, error)

// Handlers maps an HTTP method to its handler.
type Handlers map[string]Handler

// Spec is a pattern together with its handlers, ready for Install.
type Spec struct {
	Pattern  string
	Handlers Handlers
}

// Check validates an intercepted request before it is stubbed.
type Check func(req *Request) error

// Stub returns a handler that runs checks and then fulfills with payload.
func Stub(payload any, checks ...Check) Handler {
	return StubFunc(func(*Request) (any, error) { return payload, nil }, checks...)
}

// StubFunc is like Stub but builds the payload from the request, after the
// checks have passed.
func StubFunc(build func(req *Request) (any, error), checks ...Check) Handler {
	return func(req *Request) (*Response, error) {
		for _, check := range checks {
			if err := check(req); err != nil {
				return nil, err
			}
		}
		payload, err := build(req)
		if err != nil {
			return nil, err
		}
		return Fulfill(payload)
	}
}

// ExpectMethod checks the request method.
func ExpectMethod(method string) Check {
	want := strings.ToUpper(method)
	return func(req *Request) error {
		if req.Method != want {
			return fmt.Errorf("method: got %s, want %s", req.Method, want)
		}
		return nil
	}
}

// ExpectBody checks that the JSON body contains expected. See MatchObject.
func ExpectBody(expected any) Check {
	return func(req *Request) error {
		if len(req.Body) == 0 {
			return fmt.Errorf("body: empty, want %s", describe(expected))
		}
		if err := MatchObject(req.Body, expected); err != nil {
			return fmt.Errorf("body: %w", err)
		}
		return nil
	}
}

// ExpectField checks a single gjson path in the JSON body. want is compared
// as JSON, so 2 and "2" differ.
func ExpectField(path string, want any) Check {
	expected, err := normalize(want)
	return func(req *Request) error {
		if err != nil {
			return fmt.Errorf("body field %s: encode want: %w", path, err)
		}
		res := req.Get(path)
		if !res.Exists() {
			return fmt.Errorf("body field %s: missing", path)
		}
		if !assert.ObjectsAreEqual(expected, res.Value()) {
			return fmt.Errorf("body field %s: got %s, want %s", path, res.Raw, describe(want))
		}
		return nil
	}
}
