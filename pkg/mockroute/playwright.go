package mockroute

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const playwrightGlob = "**/*"

// RoutePlaywright routes every request of page through the registrar.
// Unmatched requests fall back to playwright's default handling; rejected
// ones are aborted. The route is removed by Close.
func (r *Registrar) RoutePlaywright(page playwright.Page) error {
	if err := page.Route(playwrightGlob, r.servePlaywright); err != nil {
		return err
	}
	if !r.onClose(func() error { return page.Unroute(playwrightGlob) }) {
		return page.Unroute(playwrightGlob)
	}
	return nil
}

func (r *Registrar) servePlaywright(route playwright.Route) {
	pr := route.Request()
	u, err := url.Parse(pr.URL())
	if err != nil {
		r.logger.Warn("unparseable request url", zap.String("url", pr.URL()), zap.Error(err))
		_ = route.Fallback()
		return
	}
	header := make(http.Header)
	for k, v := range pr.Headers() {
		header.Set(k, v)
	}
	body, _ := pr.PostDataBuffer()

	resp, err := r.Handle(&Request{Method: pr.Method(), URL: u, Header: header, Body: body})
	switch {
	case errors.Is(err, ErrNoRoute), errors.Is(err, ErrClosed):
		err = route.Fallback()
	case err != nil:
		err = route.Abort("failed")
	default:
		headers := make(map[string]string, len(resp.Header))
		for k := range resp.Header {
			headers[k] = resp.Header.Get(k)
		}
		err = route.Fulfill(playwright.RouteFulfillOptions{
			Status:  playwright.Int(resp.status()),
			Headers: headers,
			Body:    resp.Body,
		})
	}
	if err != nil {
		r.logger.Warn("answer routed request", zap.String("url", u.String()), zap.Error(err))
	}
}
