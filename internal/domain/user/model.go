package user

import "time"

const (
	RolePlayer   = "player"
	RoleOperator = "operator"
)

// User holds identity, role and the engine-maintained running total.
// TotalPoints always equals the sum of awarded points across the user's bets;
// the scoring engine recomputes it in full rather than patching it
// incrementally.
type User struct {
	ID           string
	Username     string
	Email        string
	Role         string
	PasswordHash string
	TotalPoints  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal identifies an authenticated caller.
type Principal struct {
	UserID   string
	Username string
	Role     string
}

func (p Principal) IsOperator() bool {
	return p.Role == RoleOperator
}

func ValidRole(role string) bool {
	return role == RolePlayer || role == RoleOperator
}

// Patch enumerates the fields a partial user update may carry.
type Patch struct {
	Username *string
	Email    *string
	Role     *string
	Password *string
}
