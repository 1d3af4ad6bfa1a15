package model

import (
	"errors"
	"strings"
)

// Role is the closed set of account roles. The stored form is always the
// lowercase string; parsing is case-insensitive.
type Role string

const (
	RoleFreelancer Role = "freelancer"
	RoleClient     Role = "client"
	RoleAdmin      Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "freelancer", "seller":
		return RoleFreelancer, nil
	case "client", "buyer":
		return RoleClient, nil
	case "admin":
		return RoleAdmin, nil
	}
	return "", ErrUnknownRole
}

// RoleSet holds a user's roles. A user may be both freelancer and client.
type RoleSet map[Role]bool

func NewRoleSet(roles ...Role) RoleSet {
	rs := make(RoleSet, len(roles))
	for _, r := range roles {
		rs[r] = true
	}
	return rs
}

func ParseRoleSet(values []string) (RoleSet, error) {
	rs := make(RoleSet, len(values))
	for _, v := range values {
		r, err := ParseRole(v)
		if err != nil {
			return nil, err
		}
		rs[r] = true
	}
	return rs, nil
}

func (rs RoleSet) Has(r Role) bool {
	return rs[r]
}

// String serializes the set as a comma list in a fixed order so the stored
// column is stable across updates.
func (rs RoleSet) String() string {
	ordered := []Role{RoleFreelancer, RoleClient, RoleAdmin}
	parts := make([]string, 0, len(rs))
	for _, r := range ordered {
		if rs[r] {
			parts = append(parts, string(r))
		}
	}
	return strings.Join(parts, ",")
}

func (rs RoleSet) Slice() []string {
	ordered := []Role{RoleFreelancer, RoleClient, RoleAdmin}
	out := make([]string, 0, len(rs))
	for _, r := range ordered {
		if rs[r] {
			out = append(out, string(r))
		}
	}
	return out
}

// RoleSetFromColumn parses the stored comma list, skipping empty segments.
// Unknown segments are dropped rather than failing reads of old rows.
func RoleSetFromColumn(col string) RoleSet {
	rs := make(RoleSet)
	for _, part := range strings.Split(col, ",") {
		if part == "" {
			continue
		}
		if r, err := ParseRole(part); err == nil {
			rs[r] = true
		}
	}
	return rs
}
