package fixtures

import "github.com/thesyncim/pizzae2e/pkg/mockroute"

// Purchase mocks everything a diner needs to log in and buy the two-pizza
// order from the order page.
func Purchase(creds Credentials) []mockroute.Spec {
	return []mockroute.Spec{
		Menu(),
		Franchises(),
		Auth(Diner, creds),
		Orders(),
	}
}

// AdminSession logs the admin in and opens an empty admin dashboard.
func AdminSession() []mockroute.Spec {
	creds := AdminCredentials()
	return []mockroute.Spec{
		Auth(Admin, creds),
		CurrentUser(Admin, creds),
		NoFranchises(),
	}
}

// FranchiseeSession logs the franchisee in; their dashboard shows franchise
// name with a single store, Lehi.
func FranchiseeSession(name string) []mockroute.Spec {
	creds := FranchiseeCredentials()
	return []mockroute.Spec{
		Auth(Franchisee, creds),
		CurrentUser(Franchisee, creds),
		FranchiseByID(NewFranchise(name, "Lehi")),
	}
}

// FranchiseClosed accepts a franchise closure, after which no franchise is
// listed.
func FranchiseClosed() []mockroute.Spec {
	return []mockroute.Spec{
		NoFranchises(),
		CloseFranchise(),
	}
}

// StoreClosed accepts closing store in f; afterwards f is listed, both on
// the admin and on the franchisee dashboard, without it.
func StoreClosed(f Franchise, store string) []mockroute.Spec {
	after := f.WithoutStore(store)
	return []mockroute.Spec{
		DeleteStore(),
		franchiseList(after),
		FranchiseByID(after),
	}
}

// StoreCreated accepts creating store in f; afterwards the franchisee
// dashboard lists it.
func StoreCreated(f Franchise, store string) []mockroute.Spec {
	after := f.WithStore(Store{ID: f.nextStoreID(), Name: store})
	return []mockroute.Spec{
		CreateStore(f, store),
		FranchiseByID(after),
	}
}

// Session mocks the whole backend for one user: login, menu, ordering, and
// franchise f for franchisees and admins. The mockapi command serves it.
func Session(role Role, creds Credentials, f Franchise) []mockroute.Spec {
	specs := []mockroute.Spec{
		Auth(role, creds),
		CurrentUser(role, creds),
		Menu(),
		Orders(),
	}
	switch role {
	case Admin:
		specs = append(specs, franchiseList(append(SeedFranchises(), f)...))
	default:
		specs = append(specs, Franchises())
	}
	if role == Admin || role == Franchisee {
		specs = append(specs,
			FranchiseByID(f),
			CreateStore(f, "JamesTown"),
			DeleteStore(),
		)
	}
	return specs
}
