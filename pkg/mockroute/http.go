package mockroute

import (
	"bytes"
	"errors"
	"io"
	"net/http"
)

// ServeHTTP makes the registrar usable as a mock backend, for example behind
// httptest.NewServer. Unmatched requests go to the fallback handler; rejected
// requests get 400 with the check failure as body.
func (r *Registrar) ServeHTTP(w http.ResponseWriter, hr *http.Request) {
	body, err := io.ReadAll(hr.Body)
	if err != nil {
		http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
		return
	}
	_ = hr.Body.Close()

	req := &Request{
		Method: hr.Method,
		URL:    hr.URL,
		Header: hr.Header.Clone(),
		Body:   body,
	}
	resp, err := r.Handle(req)
	switch {
	case errors.Is(err, ErrNoRoute), errors.Is(err, ErrClosed):
		hr.Body = io.NopCloser(bytes.NewReader(body))
		r.fallback.ServeHTTP(w, hr)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.status())
	_, _ = w.Write(resp.Body)
}
