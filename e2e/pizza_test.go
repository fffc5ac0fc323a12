//go:build e2e

package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thesyncim/pizzae2e/pkg/fixtures"
)

func TestHomePage(t *testing.T) {
	t.Parallel()
	s := newSession(t)

	s.Goto("/")
	s.ExpectTitle("JWT Pizza")
}

func TestPurchaseWithLogin(t *testing.T) {
	t.Parallel()
	creds := fixtures.DinerCredentials()
	s := newSession(t, fixtures.Purchase(creds)...)

	s.Goto("/")
	s.ClickButton("Order now")

	s.ExpectText("h2", "Awesome is a click away")
	s.ChoosePizzas("4", "Veggie", "Pepperoni")
	s.ExpectText("form", "Selected pizzas: 2")
	s.ClickButton("Checkout")

	s.Login(creds)

	s.ExpectText("main", "Send me those 2 pizzas right now!")
	s.ExpectText("tbody", "Veggie")
	s.ExpectText("tbody", "Pepperoni")
	s.ExpectText("tfoot", "0.008 ₿")
	s.ClickButton("Pay now")

	s.ExpectBodyText("0.008")
	assert.True(t, s.called(http.MethodPost, fixtures.OrderPattern), "order was not placed")
}

func TestNotFound(t *testing.T) {
	t.Parallel()
	s := newSession(t)

	s.Goto("/")
	s.Goto("/pageRouteThatDoesNotExist")

	s.ExpectVisible("h1, h2, h3", "Oops")
	s.ExpectBodyText("It looks like we have dropped a pizza on the floor. Please try another page.")
}

func TestLoginFallsThroughUntilMocked(t *testing.T) {
	t.Parallel()
	creds := fixtures.DinerCredentials()
	s := newSession(t)

	// Unmocked, the login goes to the network and the diner stays logged out.
	s.LoginFromPage(creds)
	s.waitMiss(t, http.MethodPut, "/api/auth")
	s.ExpectVisible("button", "Login")
	s.ExpectNoBodyText("Logout")

	s.install(t, fixtures.Auth(fixtures.Diner, creds))
	s.LoginFromPage(creds)
	s.ExpectVisible("a", "Logout")
	assert.True(t, s.called(http.MethodPut, fixtures.AuthPattern))
}

func TestLogout(t *testing.T) {
	t.Parallel()
	creds := fixtures.DinerCredentials()
	s := newSession(t, fixtures.Auth(fixtures.Diner, creds))

	s.LoginFromPage(creds)
	s.ClickLink("Logout")

	s.Goto("/")
	s.ExpectTitle("JWT Pizza")
	s.ExpectVisible("a", "Login")
	s.ExpectVisible("a", "Register")
	assert.True(t, s.called(http.MethodDelete, fixtures.AuthPattern), "logout did not reach the backend")
}

func TestRegister(t *testing.T) {
	t.Parallel()
	creds := fixtures.DinerCredentials()
	creds.Name = "Pizza Diner"
	s := newSession(t, fixtures.Auth(fixtures.Diner, creds))

	s.Goto("/register")
	s.Register(creds)

	s.ExpectVisible("a", "Logout")
	assert.True(t, s.called(http.MethodPost, fixtures.AuthPattern), "registration did not reach the backend")
}
