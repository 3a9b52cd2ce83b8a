package models

// Principal is the authenticated identity reconstructed from a validated
// session token on each request. It is derived state, never persisted, and is
// not authoritative for role changes made after the token was issued.
type Principal struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
