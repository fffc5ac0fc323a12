// Package fixtures owns the canonical test data for the JWT Pizza storefront
// and the mock route specs built from it.
//
// Every builder is a pure function returning mockroute.Spec values; install
// them on a per-test registrar:
//
//	routes := mockroute.NewForTest(t)
//	routes.MustInstall(fixtures.AdminSession()...)
//	routes.MustInstall(fixtures.CreatedFranchise("MY NEW FRANCHISE", fixtures.FranchiseeEmail))
//
// Builders that share a pattern bundle all of its methods in one Spec, since a
// later registration of the same pattern replaces the earlier one.
package fixtures
