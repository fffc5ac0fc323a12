// Package mockroute intercepts HTTP calls made by an application under test
// and answers them with canned responses keyed by method and path pattern.
//
// # Quick Start
//
// Bind a registrar to the test, register routes, then attach it to a page:
//
//	func TestLogin(t *testing.T) {
//	    routes := mockroute.NewForTest(t)
//	    routes.MustRegister("*/**/api/auth", mockroute.Handlers{
//	        http.MethodPut: mockroute.Stub(loginResponse,
//	            mockroute.ExpectBody(map[string]any{"email": "a@jwt.com", "password": "admin"}),
//	        ),
//	    })
//	    routes.Hijack(page) // or routes.RoutePlaywright(page), or httptest.NewServer(routes)
//	}
//
// # Patterns
//
// A pattern is a path template made of segments:
//
//	api       literal, matches itself
//	*         exactly one segment
//	:name     exactly one segment, captured as Request.Param("name")
//	**        zero or more segments
//
// The playwright spelling "*/**/api/auth" is accepted; the leading "*" stands
// for the URL scheme and is dropped. Absolute URLs are reduced to their path.
//
// When several patterns match a path the most specific one wins, compared
// segment by segment: a literal beats "*" and ":name", which beat "**".
// Registration order never decides precedence, so "/api/franchise/*" does not
// shadow "/api/franchise/*/store". Registering a pattern whose canonical form
// ("/api/franchise/*" for both "/api/franchise/:id" and "/api/franchise/*")
// is already present replaces the earlier route.
//
// # Validate, then stub
//
// Stub and StubFunc run their checks before producing the response. A failed
// check is reported to the bound test and the request is aborted instead of
// answered, so a test cannot pass when the application sent a malformed
// request.
//
// # Fall-through
//
// Requests matching no pattern, or matching only patterns with no handler for
// the method, are left to the transport: Rod continues the request,
// playwright falls back, and ServeHTTP hands it to the fallback handler.
package mockroute
