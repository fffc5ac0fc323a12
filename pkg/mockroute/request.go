package mockroute

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

// Request is an intercepted request as seen by a Handler.
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte

	// Pattern is the canonical pattern of the route that matched.
	Pattern string
	params  map[string]string
}

// Path returns the request path, or "/" when the URL is missing.
func (r *Request) Path() string {
	if r.URL == nil || r.URL.Path == "" {
		return "/"
	}
	return r.URL.Path
}

// Param returns the value captured by a ":name" segment.
func (r *Request) Param(name string) string {
	return r.params[name]
}

// DecodeJSON unmarshals the body into v.
func (r *Request) DecodeJSON(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("decode %s %s: empty body", r.Method, r.Path())
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.Method, r.Path(), err)
	}
	return nil
}

// Get looks up a gjson path in the JSON body.
func (r *Request) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

func (r *Request) bind(rt *route, values []string) {
	r.Pattern = rt.pattern.String()
	names := rt.pattern.paramNames()
	for i, name := range names {
		if name == "" || i >= len(values) {
			continue
		}
		if r.params == nil {
			r.params = make(map[string]string, len(names))
		}
		r.params[name] = values[i]
	}
}
