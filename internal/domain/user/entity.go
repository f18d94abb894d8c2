package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Can review requests and manage balances
	RoleEmployee Role = "employee" // Regular employee
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Balance holds the remaining leave days per category. Values never go negative;
// a category is debited exactly once, when a request is approved.
type Balance struct {
	Sick   int `json:"sick"`
	Casual int `json:"casual"`
	Annual int `json:"annual"`
}

// Days returns the remaining days for a leave category name.
func (b Balance) Days(category string) int {
	switch category {
	case "sick":
		return b.Sick
	case "casual":
		return b.Casual
	case "annual":
		return b.Annual
	}
	return 0
}

// DefaultBalance is granted to newly registered users.
func DefaultBalance() Balance {
	return Balance{Sick: 10, Casual: 15, Annual: 20}
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	Role         Role
	Department   string
	Balance      Balance

	OAuthProvider   *string
	OAuthProviderID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor identifies the authenticated user performing an operation. It is built
// from token claims per request; the workflow never consults global session state.
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin checks if the actor has admin privileges
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess checks if the actor may read or delete a record owned by ownerID
func (a Actor) CanAccess(ownerID string) bool {
	return a.IsAdmin() || a.ID == ownerID
}
