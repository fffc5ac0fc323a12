package fixtures

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/thesyncim/pizzae2e/pkg/mockroute"
)

// Patterns of the intercepted backend endpoints.
const (
	AuthPattern        = "*/**/api/auth"
	CurrentUserPattern = "*/**/api/user/me"
	MenuPattern        = "*/**/api/order/menu"
	OrderPattern       = "*/**/api/order"
	FranchisesPattern  = "*/**/api/franchise"
	FranchisePattern   = "*/**/api/franchise/:id"
	StoresPattern      = "*/**/api/franchise/:franchiseID/store"
	StorePattern       = "*/**/api/franchise/:franchiseID/store/:storeID"
)

// DefaultFranchiseName is the franchise the franchisee flows operate on.
const DefaultFranchiseName = "MY FRANCHISE"

const (
	franchiseID  = 2
	firstStoreID = 4
)

// NewFranchise returns a franchise administered by the franchisee account,
// owning stores named in order with ids starting at 4.
func NewFranchise(name string, stores ...string) Franchise {
	f := Franchise{
		ID:     franchiseID,
		Name:   name,
		Admins: []FranchiseAdmin{{ID: loaded().User.ID, Name: loaded().User.Name, Email: FranchiseeEmail}},
		Stores: make([]Store, 0, len(stores)),
	}
	for i, s := range stores {
		f = f.WithStore(Store{ID: firstStoreID + i, Name: s})
	}
	return f
}

// WithStore returns a copy of f with s appended. Stores get a zero revenue
// so the franchise dashboard can render them.
func (f Franchise) WithStore(s Store) Franchise {
	out := f.clone()
	if s.TotalRevenue == nil {
		zero := 0.0
		s.TotalRevenue = &zero
	}
	out.Stores = append(out.Stores, s)
	return out
}

// WithoutStore returns a copy of f without the store called name.
func (f Franchise) WithoutStore(name string) Franchise {
	out := f.clone()
	kept := out.Stores[:0]
	for _, s := range out.Stores {
		if s.Name != name {
			kept = append(kept, s)
		}
	}
	out.Stores = kept
	return out
}

// nextStoreID picks an id not used by any store of f.
func (f Franchise) nextStoreID() int {
	id := firstStoreID
	for _, s := range f.Stores {
		if s.ID >= id {
			id = s.ID + 1
		}
	}
	return id
}

// Auth mocks login (PUT), registration (POST) and logout (DELETE) for a user
// with role and creds. Login and registration validate the submitted
// credentials; logout always succeeds.
func Auth(role Role, creds Credentials) mockroute.Spec {
	expectCreds := mockroute.ExpectBody(map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	})
	login := AuthResponse{User: UserFor(role, creds), Token: Token()}

	return mockroute.Spec{
		Pattern: AuthPattern,
		Handlers: mockroute.Handlers{
			http.MethodPut: mockroute.Stub(login, expectCreds),
			http.MethodPost: mockroute.StubFunc(func(req *mockroute.Request) (any, error) {
				resp := login
				if name := req.Get("name").String(); name != "" {
					resp.User.Name = name
				}
				return resp, nil
			}, expectCreds),
			http.MethodDelete: mockroute.Stub(Message{Message: "logout successful"}),
		},
	}
}

// CurrentUser mocks the profile lookup the storefront makes with a stored token.
func CurrentUser(role Role, creds Credentials) mockroute.Spec {
	return mockroute.Spec{
		Pattern: CurrentUserPattern,
		Handlers: mockroute.Handlers{
			http.MethodGet: mockroute.Stub(UserFor(role, creds)),
		},
	}
}

func Menu() mockroute.Spec {
	return mockroute.Spec{
		Pattern: MenuPattern,
		Handlers: mockroute.Handlers{
			http.MethodGet: mockroute.Stub(MenuItems()),
		},
	}
}

// Franchises lists the seed franchises.
func Franchises() mockroute.Spec {
	return franchiseList(SeedFranchises()...)
}

// NoFranchises lists no franchises at all.
func NoFranchises() mockroute.Spec {
	return franchiseList()
}

func franchiseList(list ...Franchise) mockroute.Spec {
	if list == nil {
		list = []Franchise{}
	}
	return mockroute.Spec{
		Pattern: FranchisesPattern,
		Handlers: mockroute.Handlers{
			http.MethodGet: mockroute.Stub(list),
		},
	}
}

// CreatedFranchise accepts the creation of franchise name administered by
// adminEmail and lists it as the only franchise, with no stores.
func CreatedFranchise(name, adminEmail string) mockroute.Spec {
	created := Franchise{
		ID:     franchiseID,
		Name:   name,
		Admins: []FranchiseAdmin{{Email: adminEmail}},
		Stores: []Store{},
	}
	spec := franchiseList(created)
	spec.Handlers[http.MethodPost] = mockroute.Stub(created,
		mockroute.ExpectBody(map[string]any{
			"name":   name,
			"admins": []map[string]string{{"email": adminEmail}},
		}),
	)
	return spec
}

// FranchiseWithStores accepts the creation of f and lists it as the only
// franchise.
func FranchiseWithStores(f Franchise) mockroute.Spec {
	spec := franchiseList(f.clone())
	spec.Handlers[http.MethodPost] = mockroute.Stub(f.clone(), mockroute.ExpectField("name", f.Name))
	return spec
}

// FranchiseByID serves f as the franchise list of its admin and accepts its
// closure.
func FranchiseByID(f Franchise) mockroute.Spec {
	return mockroute.Spec{
		Pattern: FranchisePattern,
		Handlers: mockroute.Handlers{
			http.MethodGet:    mockroute.Stub([]Franchise{f.clone()}),
			http.MethodDelete: mockroute.Stub(Message{Message: "franchise deleted"}),
		},
	}
}

// CloseFranchise accepts the closure of any franchise.
func CloseFranchise() mockroute.Spec {
	return mockroute.Spec{
		Pattern: FranchisePattern,
		Handlers: mockroute.Handlers{
			http.MethodDelete: mockroute.Stub(Message{Message: "franchise deleted"}),
		},
	}
}

// CreateStore accepts the creation of a store called name in f.
func CreateStore(f Franchise, name string) mockroute.Spec {
	store := Store{ID: f.nextStoreID(), Name: name}
	return mockroute.Spec{
		Pattern: StoresPattern,
		Handlers: mockroute.Handlers{
			http.MethodPost: mockroute.Stub(store,
				expectParam("franchiseID", strconv.Itoa(f.ID)),
				mockroute.ExpectBody(map[string]string{"name": name}),
			),
		},
	}
}

// DeleteStore accepts the closure of any store.
func DeleteStore() mockroute.Spec {
	return mockroute.Spec{
		Pattern: StorePattern,
		Handlers: mockroute.Handlers{
			http.MethodDelete: mockroute.Stub(Message{Message: "store deleted"}),
		},
	}
}

// Orders validates the two-pizza order and echoes it back with an id and a
// verification jwt. GET returns the diner's history holding that order.
func Orders() mockroute.Spec {
	want := OrderRequest()
	placed := want
	placed.ID = OrderID()

	return mockroute.Spec{
		Pattern: OrderPattern,
		Handlers: mockroute.Handlers{
			http.MethodPost: mockroute.StubFunc(func(req *mockroute.Request) (any, error) {
				var order map[string]any
				if err := req.DecodeJSON(&order); err != nil {
					return nil, err
				}
				order["id"] = OrderID()
				return map[string]any{"order": order, "jwt": OrderJWT()}, nil
			}, mockroute.ExpectBody(want)),
			http.MethodGet: mockroute.Stub(OrderHistory{
				DinerID: loaded().User.ID,
				Orders:  []Order{placed},
				Page:    1,
			}),
		},
	}
}

func expectParam(name, want string) mockroute.Check {
	return func(req *mockroute.Request) error {
		if got := req.Param(name); got != want {
			return fmt.Errorf("path parameter %s: got %q, want %q", name, got, want)
		}
		return nil
	}
}
