package mockroute

import (
	"errors"
	"net/http"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Hijack routes every request of page through the registrar. Unmatched
// requests continue to the network; rejected ones fail with a network error.
// The returned router is stopped by Close.
func (r *Registrar) Hijack(page *rod.Page) *rod.HijackRouter {
	router := page.HijackRequests()
	router.MustAdd("*", r.serveHijack)
	go router.Run()

	if !r.onClose(router.Stop) {
		_ = router.Stop()
	}
	return router
}

func (r *Registrar) serveHijack(h *rod.Hijack) {
	header := make(http.Header)
	for k, v := range h.Request.Headers() {
		header.Set(k, v.Str())
	}
	req := &Request{
		Method: h.Request.Method(),
		URL:    h.Request.URL(),
		Header: header,
		Body:   []byte(h.Request.Body()),
	}

	resp, err := r.Handle(req)
	switch {
	case errors.Is(err, ErrNoRoute), errors.Is(err, ErrClosed):
		h.ContinueRequest(&proto.FetchContinueRequest{})
		return
	case err != nil:
		h.Response.Fail(proto.NetworkErrorReasonFailed)
		return
	}

	for k, vs := range resp.Header {
		for _, v := range vs {
			h.Response.SetHeader(k, v)
		}
	}
	h.Response.Payload().ResponseCode = resp.status()
	h.Response.SetBody(resp.Body)

	h.OnError = func(err error) {
		r.logger.Warn("fulfill hijacked request", zap.String("url", req.URL.String()), zap.Error(err))
	}
}
