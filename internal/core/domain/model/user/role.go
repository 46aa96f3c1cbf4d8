package user

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Role is a capability granted to a user.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleCourier Role = "courier"
)

// AllRoles lists the valid roles.
func AllRoles() []Role {
	return []Role{RoleUser, RoleAdmin, RoleCourier}
}

// ParseRole maps a lowercase role name onto a Role.
func ParseRole(s string) (Role, error) {
	candidate := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := candidate.Validate(); err != nil {
		return "", err
	}
	return candidate, nil
}

// ParseRoles parses every name, failing on the first invalid one.
func ParseRoles(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		role, err := ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (r Role) Validate() error {
	for _, role := range AllRoles() {
		if r == role {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
}

func (r Role) String() string {
	return string(r)
}
