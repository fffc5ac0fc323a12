// Package storefront drives the JWT Pizza UI through Rod. Each helper waits
// up to the configured timeout for the element it needs and fails the test
// when it does not show up.
package storefront

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/pizzae2e/pkg/fixtures"
)

// Breadcrumb is the navigation trail at the top of every dashboard.
const Breadcrumb = "ol.flex.items-center"

// findByText returns the n-th element matching selector whose visible text,
// value or aria-label matches the case-insensitive pattern, or null.
const findByText = `(selector, pattern, n) => {
	const rx = new RegExp(pattern, 'i');
	const label = (e) => e.innerText || e.value || e.getAttribute('aria-label') || '';
	const found = [...document.querySelectorAll(selector)].filter((e) => rx.test(label(e)));
	return found[n] || null;
}`

const containsText = `(selector, text) => {
	const e = document.querySelector(selector);
	return !!e && e.innerText.includes(text);
}`

const lacksText = `(selector, text) => {
	const e = document.querySelector(selector);
	return !e || !e.innerText.includes(text);
}`

// Page wraps a Rod page pointed at the storefront.
type Page struct {
	t       testing.TB
	page    *rod.Page
	baseURL string
	timeout time.Duration
}

// New wraps page. baseURL is the storefront root, e.g. http://localhost:5173.
func New(t testing.TB, page *rod.Page, baseURL string, timeout time.Duration) *Page {
	return &Page{
		t:       t,
		page:    page,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// Rod returns the underlying page.
func (p *Page) Rod() *rod.Page { return p.page }

// URL joins path onto the storefront root.
func (p *Page) URL(path string) string {
	return p.baseURL + "/" + strings.TrimLeft(path, "/")
}

// do runs fn against a page bound to the action timeout.
func (p *Page) do(action string, fn func(pg *rod.Page) error) {
	p.t.Helper()
	pg := p.page.Timeout(p.timeout)
	defer pg.CancelTimeout()
	require.NoError(p.t, fn(pg), action)
}

// Goto navigates to path under the storefront root and waits for load.
func (p *Page) Goto(path string) {
	p.t.Helper()
	u := p.URL(path)
	p.do("goto "+u, func(pg *rod.Page) error {
		if err := pg.Navigate(u); err != nil {
			return err
		}
		return pg.WaitLoad()
	})
}

func (p *Page) clickByText(selector, name string, nth int) {
	p.t.Helper()
	p.do(fmt.Sprintf("click %s %q", selector, name), func(pg *rod.Page) error {
		el, err := pg.ElementByJS(rod.Eval(findByText, selector, regexp.QuoteMeta(name), nth))
		if err != nil {
			return err
		}
		return el.Click(proto.InputMouseButtonLeft, 1)
	})
}

// ClickLink clicks the first link whose text contains name.
func (p *Page) ClickLink(name string) { p.t.Helper(); p.clickByText("a", name, 0) }

// ClickNthLink clicks the n-th (0-based) link whose text contains name.
func (p *Page) ClickNthLink(name string, n int) { p.t.Helper(); p.clickByText("a", name, n) }

// ClickButton clicks the first button whose text contains name.
func (p *Page) ClickButton(name string) { p.t.Helper(); p.clickByText("button", name, 0) }

// Click clicks the first element matching a CSS selector.
func (p *Page) Click(selector string) {
	p.t.Helper()
	p.do("click "+selector, func(pg *rod.Page) error {
		el, err := pg.Element(selector)
		if err != nil {
			return err
		}
		return el.Click(proto.InputMouseButtonLeft, 1)
	})
}

// Fill replaces the value of the input with the given placeholder.
func (p *Page) Fill(placeholder, value string) {
	p.t.Helper()
	p.do(fmt.Sprintf("fill %q", placeholder), func(pg *rod.Page) error {
		el, err := pg.Element(fmt.Sprintf("[placeholder=%q]", placeholder))
		if err != nil {
			return err
		}
		if err := el.SelectAllText(); err != nil {
			return err
		}
		return el.Input(value)
	})
}

// Press types keys into the input with the given placeholder.
func (p *Page) Press(placeholder string, keys ...input.Key) {
	p.t.Helper()
	p.do(fmt.Sprintf("press in %q", placeholder), func(pg *rod.Page) error {
		el, err := pg.Element(fmt.Sprintf("[placeholder=%q]", placeholder))
		if err != nil {
			return err
		}
		return el.Type(keys...)
	})
}

// SelectOption picks the option with value in the first select box.
func (p *Page) SelectOption(value string) {
	p.t.Helper()
	p.do("select "+value, func(pg *rod.Page) error {
		el, err := pg.Element("select")
		if err != nil {
			return err
		}
		return el.Select([]string{fmt.Sprintf("option[value=%q]", value)}, true, rod.SelectorTypeCSSSector)
	})
}

// ExpectText waits until the first element matching selector contains text.
func (p *Page) ExpectText(selector, text string) {
	p.t.Helper()
	p.do(fmt.Sprintf("expect %s to contain %q", selector, text), func(pg *rod.Page) error {
		return pg.Wait(rod.Eval(containsText, selector, text))
	})
}

// ExpectNoText waits until the first element matching selector does not
// contain text.
func (p *Page) ExpectNoText(selector, text string) {
	p.t.Helper()
	p.do(fmt.Sprintf("expect %s not to contain %q", selector, text), func(pg *rod.Page) error {
		return pg.Wait(rod.Eval(lacksText, selector, text))
	})
}

// ExpectBodyText waits until the page body contains text.
func (p *Page) ExpectBodyText(text string) { p.t.Helper(); p.ExpectText("body", text) }

// ExpectNoBodyText waits until the page body no longer contains text.
func (p *Page) ExpectNoBodyText(text string) { p.t.Helper(); p.ExpectNoText("body", text) }

// ExpectVisible waits for a visible element matching selector whose text
// contains name.
func (p *Page) ExpectVisible(selector, name string) {
	p.t.Helper()
	p.do(fmt.Sprintf("expect %s %q visible", selector, name), func(pg *rod.Page) error {
		el, err := pg.ElementByJS(rod.Eval(findByText, selector, regexp.QuoteMeta(name), 0))
		if err != nil {
			return err
		}
		return el.WaitVisible()
	})
}

// ExpectTitle waits for the document title.
func (p *Page) ExpectTitle(title string) {
	p.t.Helper()
	p.do(fmt.Sprintf("expect title %q", title), func(pg *rod.Page) error {
		return pg.Wait(rod.Eval(`(want) => document.title === want`, title))
	})
}

// ExpectBreadcrumb checks the i-th (1-based) breadcrumb entry.
func (p *Page) ExpectBreadcrumb(i int, text string) {
	p.t.Helper()
	p.ExpectText(fmt.Sprintf("%s li:nth-child(%d)", Breadcrumb, i), text)
}

// Login fills and submits the login form, which must already be open.
func (p *Page) Login(creds fixtures.Credentials) {
	p.t.Helper()
	p.Click(`[placeholder="Email address"]`)
	p.Fill("Email address", creds.Email)
	p.Press("Email address", input.Tab)
	p.Fill("Password", creds.Password)
	p.ClickButton("Login")
}

// Register fills and submits the registration form, which must already be open.
func (p *Page) Register(creds fixtures.Credentials) {
	p.t.Helper()
	p.Fill("Full name", creds.Name)
	p.Fill("Email address", creds.Email)
	p.Fill("Password", creds.Password)
	p.ClickButton("Register")
}

// LoginFromPage opens /login and logs in.
func (p *Page) LoginFromPage(creds fixtures.Credentials) {
	p.t.Helper()
	p.Goto("/login")
	p.Login(creds)
}

// CreateFranchise fills and submits the create-franchise form.
func (p *Page) CreateFranchise(name, adminEmail string) {
	p.t.Helper()
	p.Fill("franchise name", name)
	p.Fill("franchisee admin email", adminEmail)
	p.ClickButton("Create")
}

// CreateStore fills and submits the create-store form.
func (p *Page) CreateStore(name string) {
	p.t.Helper()
	p.Fill("store name", name)
	p.ClickButton("Create")
}

// ChoosePizzas picks store storeID and adds the named pizzas to the order.
func (p *Page) ChoosePizzas(storeID string, pizzas ...string) {
	p.t.Helper()
	p.SelectOption(storeID)
	for _, name := range pizzas {
		p.ClickLink(name)
	}
}

// RowButton clicks the button in the n-th (1-based) row of the first table.
func (p *Page) RowButton(n int) {
	p.t.Helper()
	p.Click(fmt.Sprintf("table > tbody > tr:nth-of-type(%d) button", n))
}
