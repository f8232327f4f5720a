// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read the tables directly and return read models; they never
// go through the unit of work.
package queries

import (
	"time"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// OrderReadModel is an order as shown to clients. Owner is set when the
// query joined the owning user.
type OrderReadModel struct {
	ID                  kernel.UUID
	OrderNumber         string
	UserID              kernel.UUID
	Destination         string
	MaterialCode        string
	Party               string
	Mill                string
	Priority            int
	MaterialDescription string
	OrderQuantity       int
	ValidUntil          time.Time
	DispatchQuantity    *int
	CompletionNotes     *string
	Status              order.Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Owner               *OwnerReadModel
}

type OwnerReadModel struct {
	FirstName string
	LastName  string
	Email     string
}

// NewOrderReadModel maps an aggregate, typically the result of a command.
func NewOrderReadModel(o *order.Order) OrderReadModel {
	d := o.Details()
	return OrderReadModel{
		ID:                  o.ID(),
		OrderNumber:         o.Number().String(),
		UserID:              o.OwnerID(),
		Destination:         d.Destination,
		MaterialCode:        d.MaterialCode,
		Party:               d.Party,
		Mill:                d.Mill,
		Priority:            d.Priority,
		MaterialDescription: d.MaterialDescription,
		OrderQuantity:       d.OrderQuantity,
		ValidUntil:          d.ValidUntil,
		DispatchQuantity:    o.DispatchQuantity(),
		CompletionNotes:     o.CompletionNotes(),
		Status:              o.Status(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
	}
}

// UserReadModel never carries the password hash.
type UserReadModel struct {
	ID            kernel.UUID
	Email         string
	Role          user.Role
	FirstName     string
	LastName      string
	Department    string
	Designation   string
	Gender        string
	PhoneNumber   string
	Address       string
	ProfilePhoto  string
	OAuthProvider string
	HasPassword   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUserReadModel maps an aggregate.
func NewUserReadModel(u *user.User) UserReadModel {
	p := u.Profile()
	return UserReadModel{
		ID:            u.ID(),
		Email:         u.Email(),
		Role:          u.Role(),
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Department:    p.Department,
		Designation:   p.Designation,
		Gender:        p.Gender,
		PhoneNumber:   p.PhoneNumber,
		Address:       p.Address,
		ProfilePhoto:  p.ProfilePhoto,
		OAuthProvider: u.Credentials().OAuthProvider,
		HasPassword:   u.HasPassword(),
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.UpdatedAt(),
	}
}

const orderColumns = `
	o.id, o.order_number, o.user_id, o.destination, o.material_code, o.party, o.mill,
	o.priority, o.material_description, o.order_quantity, o.valid_until,
	o.dispatch_quantity, o.completion_notes, o.status, o.created_at, o.updated_at,
	u.first_name AS owner_first_name, u.last_name AS owner_last_name, u.email AS owner_email`

const ordersWithOwner = "LEFT JOIN users u ON u.id = o.user_id"

// orderRow is one row selected with orderColumns.
type orderRow struct {
	ID                  uuid.UUID
	OrderNumber         string
	UserID              uuid.UUID
	Destination         string
	MaterialCode        string
	Party               string
	Mill                string
	Priority            int
	MaterialDescription string
	OrderQuantity       int
	ValidUntil          time.Time
	DispatchQuantity    *int
	CompletionNotes     *string
	Status              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	OwnerFirstName      *string
	OwnerLastName       *string
	OwnerEmail          *string
}

// toDomain restores the aggregate so access rules can be applied to it.
func (r orderRow) toDomain() (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(r.UserID[:])
	if err != nil {
		return nil, err
	}
	number, err := order.ParseNumber(r.OrderNumber)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		number,
		ownerID,
		order.Details{
			Destination:         r.Destination,
			MaterialCode:        r.MaterialCode,
			Party:               r.Party,
			Mill:                r.Mill,
			Priority:            r.Priority,
			MaterialDescription: r.MaterialDescription,
			OrderQuantity:       r.OrderQuantity,
			ValidUntil:          r.ValidUntil.UTC(),
		},
		status,
		r.DispatchQuantity,
		r.CompletionNotes,
		r.CreatedAt.UTC(),
		r.UpdatedAt.UTC(),
	)
}

func (r orderRow) owner() *OwnerReadModel {
	if r.OwnerEmail == nil {
		return nil
	}
	owner := &OwnerReadModel{Email: *r.OwnerEmail}
	if r.OwnerFirstName != nil {
		owner.FirstName = *r.OwnerFirstName
	}
	if r.OwnerLastName != nil {
		owner.LastName = *r.OwnerLastName
	}
	return owner
}

func (r orderRow) toReadModel() (OrderReadModel, error) {
	o, err := r.toDomain()
	if err != nil {
		return OrderReadModel{}, err
	}
	model := NewOrderReadModel(o)
	model.Owner = r.owner()
	return model, nil
}

func toOrderReadModels(rows []orderRow) ([]OrderReadModel, error) {
	models := make([]OrderReadModel, 0, len(rows))
	for _, row := range rows {
		model, err := row.toReadModel()
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	return models, nil
}

const userColumns = `id, email, password, first_name, last_name, department, designation,
	gender, phone_number, address, profile_photo, oauth_provider, oauth_id, role, created_at, updated_at`

// userRow is one row selected with userColumns.
type userRow struct {
	ID            uuid.UUID
	Email         string
	Password      *string
	FirstName     string
	LastName      string
	Department    string
	Designation   string
	Gender        string
	PhoneNumber   string
	Address       string
	ProfilePhoto  string
	OAuthProvider string `gorm:"column:oauth_provider"`
	OAuthID       string `gorm:"column:oauth_id"`
	Role          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r userRow) toDomain() (*user.User, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := user.ParseRole(r.Role)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		r.Email,
		role,
		user.Profile{
			FirstName:    r.FirstName,
			LastName:     r.LastName,
			Department:   r.Department,
			Designation:  r.Designation,
			Gender:       r.Gender,
			PhoneNumber:  r.PhoneNumber,
			Address:      r.Address,
			ProfilePhoto: r.ProfilePhoto,
		},
		user.Credentials{
			PasswordHash:  r.Password,
			OAuthProvider: r.OAuthProvider,
			OAuthID:       r.OAuthID,
		},
		r.CreatedAt.UTC(),
		r.UpdatedAt.UTC(),
	)
}
