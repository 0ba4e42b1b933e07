package user

import "fmt"

// Role controls access to catalog administration.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// Participant is an account building rosters within one season partition.
type Participant struct {
	ID       string
	Username string
	Role     Role
	Budget   int64
	SeasonID string
}

func (p Participant) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("participant id is required")
	}
	if p.Username == "" {
		return fmt.Errorf("participant username is required")
	}
	if p.Role != RoleAdmin && p.Role != RoleStandard {
		return fmt.Errorf("invalid participant role: %s", p.Role)
	}
	if p.Budget <= 0 {
		return fmt.Errorf("participant budget must be greater than zero")
	}
	if p.SeasonID == "" {
		return fmt.Errorf("participant season id is required")
	}

	return nil
}

func (p Participant) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID   string
	Username string
	Role     Role
}
