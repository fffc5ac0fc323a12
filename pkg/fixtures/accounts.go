package fixtures

import "github.com/google/uuid"

// DefaultHostURL is where the storefront dev server listens.
const DefaultHostURL = "http://localhost:5173"

const (
	AdminEmail         = "a@jwt.com"
	AdminPassword      = "admin"
	FranchiseeEmail    = "f@jwt.com"
	FranchiseePassword = "franchisee"
	DinerPassword      = "a"
	// DinerEmail is the fixed diner account for manual runs; tests use
	// RandomEmail instead.
	DinerEmail         = "d@jwt.com"
)

// RandomEmail returns a diner address that no other test uses.
func RandomEmail() string {
	return "d@jwt" + uuid.NewString() + ".com"
}

func AdminCredentials() Credentials {
	return Credentials{Email: AdminEmail, Password: AdminPassword}
}

func FranchiseeCredentials() Credentials {
	return Credentials{Email: FranchiseeEmail, Password: FranchiseePassword}
}

// DinerCredentials returns a fresh diner with a random email.
func DinerCredentials() Credentials {
	return Credentials{Email: RandomEmail(), Password: DinerPassword}
}

// CredentialsFor returns the canonical credentials for role.
func CredentialsFor(role Role) Credentials {
	switch role {
	case Admin:
		return AdminCredentials()
	case Franchisee:
		return FranchiseeCredentials()
	default:
		return DinerCredentials()
	}
}

// ParseRole maps a role name to a Role, defaulting to Diner.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case Diner, Franchisee, Admin:
		return r, true
	default:
		return Diner, false
	}
}
