// Package userrepo persists users together with their roles and courier availability.
package userrepo

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserDTO is the users table row. Roles are stored as a JSON array of role names.
type UserDTO struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	FirstName     string                      `gorm:"not null"`
	LastName      string                      `gorm:"column:last_name"`
	Email         string                      `gorm:"uniqueIndex;not null"`
	PhoneNumber   string                      `gorm:"column:phone_number"`
	MatricNumber  string                      `gorm:"column:matric_number"`
	Roles         datatypes.JSONSlice[string] `gorm:"not null"`
	CourierActive bool                        `gorm:"not null;default:false"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	roles := make([]string, 0, len(u.Roles()))
	for _, role := range u.Roles() {
		roles = append(roles, role.String())
	}

	profile := u.Profile()
	return UserDTO{
		ID:            u.ID().Bytes(),
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		Email:         profile.Email,
		PhoneNumber:   profile.PhoneNumber,
		MatricNumber:  profile.MatricNumber,
		Roles:         datatypes.NewJSONSlice(roles),
		CourierActive: u.IsCourierActive(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFrom(dto.ID)
	if err != nil {
		return nil, err
	}

	roles, err := user.ParseRoles(dto.Roles)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, user.Profile{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		PhoneNumber:  dto.PhoneNumber,
		MatricNumber: dto.MatricNumber,
	}, roles, dto.CourierActive)
}
