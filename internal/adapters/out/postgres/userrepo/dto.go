// Package userrepo persists user accounts with GORM.
package userrepo

import (
	"time"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/user"

	"github.com/google/uuid"
)

const emailConstraint = "idx_users_email"

// UserDTO is the row of the users table.
type UserDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"not null;uniqueIndex:idx_users_email"`
	PasswordHash  *string   `gorm:"column:password"`
	FirstName     string
	LastName      string
	Department    string
	Designation   string
	Gender        string
	PhoneNumber   string
	Address       string `gorm:"type:text"`
	ProfilePhoto  string
	OAuthProvider string    `gorm:"column:oauth_provider"`
	OAuthID       string    `gorm:"column:oauth_id"`
	Role          string    `gorm:"type:varchar(32);not null;index"`
	CreatedAt     time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	p := u.Profile()
	c := u.Credentials()
	return UserDTO{
		ID:            u.ID().Google(),
		Email:         u.Email(),
		PasswordHash:  c.PasswordHash,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Department:    p.Department,
		Designation:   p.Designation,
		Gender:        p.Gender,
		PhoneNumber:   p.PhoneNumber,
		Address:       p.Address,
		ProfilePhoto:  p.ProfilePhoto,
		OAuthProvider: c.OAuthProvider,
		OAuthID:       c.OAuthID,
		Role:          u.Role().String(),
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.UpdatedAt(),
	}
}

// ToDomain rebuilds the aggregate from a row.
func ToDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		dto.Email,
		role,
		user.Profile{
			FirstName:    dto.FirstName,
			LastName:     dto.LastName,
			Department:   dto.Department,
			Designation:  dto.Designation,
			Gender:       dto.Gender,
			PhoneNumber:  dto.PhoneNumber,
			Address:      dto.Address,
			ProfilePhoto: dto.ProfilePhoto,
		},
		user.Credentials{
			PasswordHash:  dto.PasswordHash,
			OAuthProvider: dto.OAuthProvider,
			OAuthID:       dto.OAuthID,
		},
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
