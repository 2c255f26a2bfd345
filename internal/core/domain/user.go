package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the enumerated capability class controlling endpoint access.
// Roles are parsed once at the boundary; the core never compares raw strings.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleIntern   Role = "intern"
)

var ErrUnknownRole = errors.New("unknown role")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many failed sign-in attempts")
var ErrForbidden = errors.New("access forbidden")

// ParseRole normalises a role name to its enum member. It accepts both the
// bare form ("admin") and the wire-prefixed form ("ROLE_ADMIN").
func ParseRole(s string) (Role, error) {
	name := strings.TrimSpace(s)
	name = strings.TrimPrefix(name, "ROLE_")
	switch Role(strings.ToLower(name)) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleIntern:
		return RoleIntern, nil
	}
	return "", ErrUnknownRole
}

// WireName returns the prefixed form used in API responses, e.g. "ROLE_ADMIN".
func (r Role) WireName() string {
	return "ROLE_" + strings.ToUpper(string(r))
}

// RoleSet is the set of roles resolved for a user, loaded once per request.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Has reports membership of a single role.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Roles returns the members in the fixed enum order admin, employee, intern.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(s))
	for _, r := range []Role{RoleAdmin, RoleEmployee, RoleIntern} {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// User models an account in the portal. The internship window is only
// populated for interns and drives the remaining-days computation.
type User struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	FullName        string     `json:"fullName,omitempty"`
	Roles           []Role     `json:"roles"`
	InternshipStart *time.Time `json:"internshipStart,omitempty"`
	InternshipEnd   *time.Time `json:"internshipEnd,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// RoleSet returns the user's role assignment as a set.
func (u *User) RoleSet() RoleSet {
	return NewRoleSet(u.Roles...)
}

var ErrNoInternshipPeriod = errors.New("no internship period found")

// InternshipPeriod is the start/end window for an intern plus the number of
// whole days left, rounded up.
type InternshipPeriod struct {
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	RemainingDays int       `json:"remainingDays"`
}

// RemainingDays computes ceil((end − now) / 24h). Past windows go negative,
// matching the reporting contract.
func RemainingDays(end, now time.Time) int {
	const day = 24 * time.Hour
	diff := end.Sub(now)
	days := diff / day
	if diff%day > 0 {
		days++
	}
	return int(days)
}
