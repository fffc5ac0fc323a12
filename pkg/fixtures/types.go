package fixtures

// Role governs which parts of the storefront a user can reach.
type Role string

const (
	Diner      Role = "diner"
	Franchisee Role = "franchisee"
	Admin      Role = "admin"
)

// Credentials identify a user at login.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RoleAssignment is one entry of User.Roles.
type RoleAssignment struct {
	Role     Role `json:"role"`
	ObjectID int  `json:"objectId,omitempty"`
}

type User struct {
	ID    int              `json:"id" yaml:"id"`
	Name  string           `json:"name" yaml:"name"`
	Email string           `json:"email" yaml:"email"`
	Roles []RoleAssignment `json:"roles" yaml:"roles"`
}

// AuthResponse answers login and registration.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type MenuItem struct {
	ID          int     `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Image       string  `json:"image" yaml:"image"`
	Price       float64 `json:"price" yaml:"price"`
	Description string  `json:"description" yaml:"description"`
}

type Store struct {
	ID           int      `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	TotalRevenue *float64 `json:"totalRevenue,omitempty" yaml:"totalRevenue"`
}

// FranchiseAdmin is a user allowed to manage a franchise.
type FranchiseAdmin struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type Franchise struct {
	ID     int              `json:"id" yaml:"id"`
	Name   string           `json:"name" yaml:"name"`
	Admins []FranchiseAdmin `json:"admins,omitempty" yaml:"admins"`
	Stores []Store          `json:"stores" yaml:"stores"`
}

type OrderItem struct {
	MenuID      int     `json:"menuId" yaml:"menuId"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
}

// Order is the body of POST /api/order. StoreID is a string on the wire.
type Order struct {
	ID          int         `json:"id,omitempty" yaml:"id"`
	Items       []OrderItem `json:"items" yaml:"items"`
	StoreID     string      `json:"storeId" yaml:"storeId"`
	FranchiseID int         `json:"franchiseId" yaml:"franchiseId"`
}

// Total sums the item prices.
func (o Order) Total() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price
	}
	return sum
}

// OrderHistory answers GET /api/order.
type OrderHistory struct {
	DinerID int     `json:"dinerId"`
	Orders  []Order `json:"orders"`
	Page    int     `json:"page"`
}

// Message is the body of delete and logout responses.
type Message struct {
	Message string `json:"message"`
}
