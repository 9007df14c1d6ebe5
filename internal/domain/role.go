// Package domain provides shared domain types for the Rebuttal debate engine.
package domain

// Role identifies one of the two fixed, asymmetric debate roles.
// The set is closed: every turn belongs to either the Creator or the Critic.
type Role string

const (
	// RoleCreator is the constructive role. It proposes and defends a stance.
	RoleCreator Role = "creator"

	// RoleCritic is the skeptical role. It attacks the Creator's latest turn.
	RoleCritic Role = "critic"
)

// String returns the string representation of the Role.
// This implements fmt.Stringer for convenient logging and debugging.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is a recognized type.
func (r Role) IsValid() bool {
	switch r {
	case RoleCreator, RoleCritic:
		return true
	}
	return false
}

// Marker returns the line prefix that identifies this role's turns,
// e.g. "CREATOR:" for the Creator.
func (r Role) Marker() string {
	switch r {
	case RoleCreator:
		return "CREATOR:"
	case RoleCritic:
		return "CRITIC:"
	default:
		return ""
	}
}

// Opponent returns the opposing role.
func (r Role) Opponent() Role {
	if r == RoleCreator {
		return RoleCritic
	}
	return RoleCreator
}

// Label returns the human-readable display name for transcripts.
func (r Role) Label() string {
	switch r {
	case RoleCreator:
		return "Creator"
	case RoleCritic:
		return "Critic"
	default:
		return "Unknown"
	}
}
