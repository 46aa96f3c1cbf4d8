// Package restaurant holds the Restaurant aggregate referenced by carts and
// shown in delivery details.
package restaurant

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")
	ErrNameIsRequired             = errs.NewValueIsRequiredError("name")
	ErrAddressIsRequired          = errs.NewValueIsRequiredError("address")
)

// Restaurant is a place food is ordered from.
type Restaurant struct {
	id      kernel.UUID
	name    string
	address string

	guard guard.ConstructorGuard
}

// NewRestaurant validates and builds a restaurant. Name and address are trimmed and required.
func NewRestaurant(id kernel.UUID, name, address string) (*Restaurant, error) {
	r := &Restaurant{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setAddress(address),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

func (r *Restaurant) Name() string {
	return r.name
}

func (r *Restaurant) Address() string {
	return r.address
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Restaurant) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrAddressIsRequired
	}
	r.address = address
	return nil
}
