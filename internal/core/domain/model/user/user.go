package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/pkg/errs"
)

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")
)

// Profile holds the self-service fields of a user. Empty strings mean "not set".
type Profile struct {
	FirstName    string
	LastName     string
	Department   string
	Designation  string
	Gender       string
	PhoneNumber  string
	Address      string
	ProfilePhoto string
}

// FullName joins first and last name, skipping empty parts.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Credentials describe how a user signs in. A user created through an
// external provider has no password hash until one is set.
type Credentials struct {
	PasswordHash  *string
	OAuthProvider string
	OAuthID       string
}

// User is an account of the system.
type User struct {
	id          kernel.UUID
	email       string
	role        Role
	profile     Profile
	credentials Credentials
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewUser registers an account. The e-mail is normalised to lower case.
func NewUser(id kernel.UUID, email string, role Role, profile Profile, credentials Credentials, now time.Time) (*User, error) {
	u := &User{
		profile:       profile,
		credentials:   credentials,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}
	return u, nil
}

// RestoreUser rebuilds a persisted user.
func RestoreUser(
	id kernel.UUID,
	email string,
	role Role,
	profile Profile,
	credentials Credentials,
	createdAt time.Time,
	updatedAt time.Time,
) (*User, error) {
	u := &User{
		profile:       profile,
		credentials:   credentials,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) Profile() Profile {
	return u.profile
}

func (u *User) Credentials() Credentials {
	return u.credentials
}

// HasPassword reports whether a password hash was ever set.
func (u *User) HasPassword() bool {
	return u.credentials.PasswordHash != nil && *u.credentials.PasswordHash != ""
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// Actor returns the identity this user acts with.
func (u *User) Actor() Actor {
	return Actor{id: u.id, role: u.role}
}

// ChangeRole reassigns the role. It returns the previous role.
func (u *User) ChangeRole(role Role, now time.Time) (Role, error) {
	if err := role.Validate(); err != nil {
		return "", err
	}

	previous := u.role
	u.role = role
	u.touch(now)
	return previous, nil
}

// UpdateProfile replaces the self-service fields. The profile photo is kept
// when the new profile does not carry one.
func (u *User) UpdateProfile(profile Profile, now time.Time) {
	if profile.ProfilePhoto == "" {
		profile.ProfilePhoto = u.profile.ProfilePhoto
	}
	u.profile = profile
	u.touch(now)
}

// SetPasswordHash stores a new hash. It reports whether a password existed
// before, which tells an update apart from a first-time set.
func (u *User) SetPasswordHash(hash string, now time.Time) (bool, error) {
	if strings.TrimSpace(hash) == "" {
		return false, errs.NewValueIsRequiredError("passwordHash")
	}

	hadPassword := u.HasPassword()
	u.credentials.PasswordHash = &hash
	u.touch(now)
	return hadPassword, nil
}

func (u *User) touch(now time.Time) {
	if now.After(u.updatedAt) {
		u.updatedAt = now
	}
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an e-mail address", email))
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
