package user

import (
	"errors"
	"slices"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	ErrFirstNameIsRequired  = errs.NewValueIsRequiredError("firstName")
	ErrEmailIsRequired      = errs.NewValueIsRequiredError("email")
	ErrRolesAreRequired     = errs.NewValueIsRequiredError("roles")
	ErrUserIsNotCourier     = errs.NewForbiddenError("user does not hold the courier role")
	ErrCourierIsNotActive   = errs.NewForbiddenError("courier is not active")
)

// Profile holds the descriptive fields of a user.
type Profile struct {
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	MatricNumber string
}

// User is the aggregate root for a person known to the system.
//
// User follows these invariants:
//   - roles is a non-empty set drawn from user, admin and courier
//   - courierActive can only be true while the courier role is held
type User struct {
	id            kernel.UUID
	profile       Profile
	roles         []Role
	courierActive bool

	guard guard.ConstructorGuard
}

// NewUser creates a user. Duplicate roles are collapsed; couriers start inactive.
func NewUser(id kernel.UUID, profile Profile, roles []Role) (*User, error) {
	return RestoreUser(id, profile, roles, false)
}

// RestoreUser rebuilds a user from storage.
func RestoreUser(id kernel.UUID, profile Profile, roles []Role, courierActive bool) (*User, error) {
	u := &User{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setProfile(profile),
		u.SetRoles(roles),
	); err != nil {
		return nil, err
	}

	u.courierActive = courierActive && u.HasRole(RoleCourier)
	return u, nil
}

// Validate ensures the user was created through NewUser or RestoreUser.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Profile() Profile {
	return u.profile
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.profile.FirstName + " " + u.profile.LastName)
}

// Roles returns a copy of the role set.
func (u *User) Roles() []Role {
	return slices.Clone(u.roles)
}

func (u *User) HasRole(role Role) bool {
	return slices.Contains(u.roles, role)
}

func (u *User) IsCourierActive() bool {
	return u.courierActive
}

// SetRoles replaces the role set. Dropping the courier role also clears the
// courier availability flag.
func (u *User) SetRoles(roles []Role) error {
	if len(roles) == 0 {
		return ErrRolesAreRequired
	}

	unique := make([]Role, 0, len(roles))
	for _, role := range roles {
		if err := role.Validate(); err != nil {
			return err
		}
		if !slices.Contains(unique, role) {
			unique = append(unique, role)
		}
	}

	u.roles = unique
	if !u.HasRole(RoleCourier) {
		u.courierActive = false
	}
	return nil
}

// SetCourierActive toggles availability for deliveries.
func (u *User) SetCourierActive(active bool) error {
	if !u.HasRole(RoleCourier) {
		return ErrUserIsNotCourier
	}
	u.courierActive = active
	return nil
}

// CanDeliver checks that the user may claim orders.
func (u *User) CanDeliver() error {
	if !u.HasRole(RoleCourier) {
		return ErrUserIsNotCourier
	}
	if !u.courierActive {
		return ErrCourierIsNotActive
	}
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setProfile(profile Profile) error {
	profile.FirstName = strings.TrimSpace(profile.FirstName)
	profile.LastName = strings.TrimSpace(profile.LastName)
	profile.Email = strings.TrimSpace(profile.Email)

	var err error
	if profile.FirstName == "" {
		err = errors.Join(err, ErrFirstNameIsRequired)
	}
	if profile.Email == "" {
		err = errors.Join(err, ErrEmailIsRequired)
	}
	if err != nil {
		return err
	}

	u.profile = profile
	return nil
}
