package mockroute

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a synthetic response handed back to the transport.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Fulfill builds a 200 JSON response carrying payload. []byte and
// json.RawMessage payloads are sent as-is.
func Fulfill(payload any) (*Response, error) {
	var body []byte
	switch v := payload.(type) {
	case json.RawMessage:
		body = v
	case []byte:
		body = v
	default:
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("fulfill: %w", err)
		}
		body = b
	}

	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	return &Response{Status: http.StatusOK, Header: h, Body: body}, nil
}

func (r *Response) status() int {
	if r.Status == 0 {
		return http.StatusOK
	}
	return r.Status
}
