// Package auth defines the capability object that organizer-facing
// operations require.  Handlers construct a Principal from verified JWT
// claims; the service layer never touches cookies, headers or sessions,
// only this value.
package auth

// RoleOrganizer is the role claim required for event and reservation
// management.  Attendee-facing admission is public and carries no
// principal.
const RoleOrganizer = "ORGANIZER"

// Principal identifies an authenticated caller and what they may do.
// The zero value is an anonymous caller with no capabilities.
type Principal struct {
	UserID string // subject of the verified access token
	Role   string // role claim from the token
}

// CanManageEvents reports whether the principal may create, edit or delete
// events and templates and triage reservations.
func (p Principal) CanManageEvents() bool { return p.Role == RoleOrganizer }
