package domain

import "time"

// Role is a functional capability tag granted to a user. A user may hold
// several roles at once; the set is never empty once persisted.
type Role string

const (
	RolePassenger  Role = "PASSENGER"
	RoleDriver     Role = "DRIVER"
	RoleAdmin      Role = "ADMIN"
	RoleInfluencer Role = "INFLUENCER"
)

// ParseRole validates a stored role tag.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePassenger, RoleDriver, RoleAdmin, RoleInfluencer:
		return Role(s), true
	}
	return "", false
}

// Status governs whether login succeeds for a user.
type Status string

const (
	StatusActive          Status = "ACTIVE"
	StatusBlocked         Status = "BLOCKED"
	StatusPendingApproval Status = "PENDING_APPROVAL"
)

// RoleSet is an add-only set of role tags. There is no removal operation in
// this design, which keeps the "already holds role" conflict check local.
type RoleSet []Role

// Has reports whether the set contains r.
func (s RoleSet) Has(r Role) bool {
	for _, held := range s {
		if held == r {
			return true
		}
	}
	return false
}

// Add returns the set extended with r, or the set unchanged and false when r
// is already held.
func (s RoleSet) Add(r Role) (RoleSet, bool) {
	if s.Has(r) {
		return s, false
	}
	return append(s, r), true
}

// Strings returns the role tags as plain strings, for token claims.
func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}

// User is the identity record. CPF is the unique login key; Email is unique
// when non-empty. Balance is stored in cents and never goes negative.
type User struct {
	ID                  string
	Name                string
	Email               string
	CPF                 string
	PasswordHash        string // argon2id encoded, never serialized
	ImageURL            string
	PhoneNumber         string
	CNHImageURL         string
	CarDocumentImageURL string
	Roles               RoleSet
	Status              Status
	Balance             int64 // cents
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
