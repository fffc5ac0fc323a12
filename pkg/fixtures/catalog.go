package fixtures

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogOrder struct {
	Order `yaml:",inline"`
	JWT   string `yaml:"jwt"`
}

type catalog struct {
	User struct {
		ID   int    `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"user"`
	Token      string       `yaml:"token"`
	Menu       []MenuItem   `yaml:"menu"`
	Franchises []Franchise  `yaml:"franchises"`
	Order      catalogOrder `yaml:"order"`
}

var (
	catalogOnce sync.Once
	catalogData *catalog
	catalogErr  error
)

func parseCatalog(b []byte) (*catalog, error) {
	var c catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse fixture catalog: %w", err)
	}
	if len(c.Menu) == 0 {
		return nil, fmt.Errorf("parse fixture catalog: empty menu")
	}
	if c.Token == "" || c.Order.JWT == "" {
		return nil, fmt.Errorf("parse fixture catalog: missing token or order jwt")
	}
	for i := range c.Franchises {
		if c.Franchises[i].Stores == nil {
			c.Franchises[i].Stores = []Store{}
		}
	}
	return &c, nil
}

// loaded returns the embedded catalog. The file ships with the binary, so a
// parse failure is a programming error.
func loaded() *catalog {
	catalogOnce.Do(func() {
		catalogData, catalogErr = parseCatalog(catalogYAML)
	})
	if catalogErr != nil {
		panic(catalogErr)
	}
	return catalogData
}

// MenuItems returns the pizza menu.
func MenuItems() []MenuItem {
	return append([]MenuItem(nil), loaded().Menu...)
}

// SeedFranchises returns the franchises shown on the order page.
func SeedFranchises() []Franchise {
	src := loaded().Franchises
	out := make([]Franchise, len(src))
	for i, f := range src {
		out[i] = f.clone()
	}
	return out
}

// OrderRequest returns the two-pizza order the purchase flow submits.
func OrderRequest() Order {
	o := loaded().Order.Order
	o.ID = 0
	o.Items = append([]OrderItem(nil), o.Items...)
	return o
}

// OrderID is the id the mocked backend assigns to a placed order.
func OrderID() int { return loaded().Order.ID }

// OrderJWT is the verification token returned with a placed order.
func OrderJWT() string { return loaded().Order.JWT }

// Token is the auth token returned on login.
func Token() string { return loaded().Token }

// UserFor returns the mocked user record for role and email.
func UserFor(role Role, creds Credentials) User {
	c := loaded()
	name := creds.Name
	if name == "" {
		name = c.User.Name
	}
	return User{
		ID:    c.User.ID,
		Name:  name,
		Email: creds.Email,
		Roles: []RoleAssignment{{Role: role}},
	}
}

func (f Franchise) clone() Franchise {
	f.Admins = append([]FranchiseAdmin(nil), f.Admins...)
	stores := make([]Store, len(f.Stores))
	copy(stores, f.Stores)
	f.Stores = stores
	return f
}
