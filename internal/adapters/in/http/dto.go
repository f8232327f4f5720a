package http

import (
	"time"

	"steelorders/internal/core/application/usecases/queries"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/model/user"
)

const dateLayout = time.DateOnly

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type NewOrderRequest struct {
	Destination         string `json:"destination"`
	MaterialCode        string `json:"materialCode"`
	Party               string `json:"party"`
	Mill                string `json:"mill"`
	Priority            int    `json:"priority"`
	MaterialDescription string `json:"materialDescription"`
	OrderQuantity       int    `json:"orderQuantity"`
	ValidUntil          string `json:"validUntil"`
}

func (r NewOrderRequest) toDetails() (order.Details, error) {
	validUntil, err := order.ParseValidUntil(r.ValidUntil)
	if err != nil {
		return order.Details{}, err
	}
	return order.Details{
		Destination:         r.Destination,
		MaterialCode:        r.MaterialCode,
		Party:               r.Party,
		Mill:                r.Mill,
		Priority:            r.Priority,
		MaterialDescription: r.MaterialDescription,
		OrderQuantity:       r.OrderQuantity,
		ValidUntil:          validUntil,
	}, nil
}

// OrderPatchRequest has pointer fields so absent keys are left unchanged.
type OrderPatchRequest struct {
	Destination         *string `json:"destination"`
	MaterialCode        *string `json:"materialCode"`
	Party               *string `json:"party"`
	Mill                *string `json:"mill"`
	Priority            *int    `json:"priority"`
	MaterialDescription *string `json:"materialDescription"`
	OrderQuantity       *int    `json:"orderQuantity"`
	ValidUntil          *string `json:"validUntil"`
}

func (r OrderPatchRequest) toPatch() (order.DetailsPatch, error) {
	patch := order.DetailsPatch{
		Destination:         r.Destination,
		MaterialCode:        r.MaterialCode,
		Party:               r.Party,
		Mill:                r.Mill,
		Priority:            r.Priority,
		MaterialDescription: r.MaterialDescription,
		OrderQuantity:       r.OrderQuantity,
	}
	if r.ValidUntil != nil {
		validUntil, err := order.ParseValidUntil(*r.ValidUntil)
		if err != nil {
			return order.DetailsPatch{}, err
		}
		patch.ValidUntil = &validUntil
	}
	return patch, nil
}

type CompletionRequest struct {
	DispatchQuantity *int    `json:"dispatchQuantity"`
	CompletionNotes  string `json:"completionNotes"`
}

type OwnerResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type OrderResponse struct {
	ID                  string         `json:"id"`
	OrderNumber         string         `json:"orderNumber"`
	Destination         string         `json:"destination"`
	MaterialCode        string         `json:"materialCode"`
	Party               string         `json:"party"`
	Mill                string         `json:"mill"`
	Priority            int            `json:"priority"`
	MaterialDescription string         `json:"materialDescription"`
	OrderQuantity       int            `json:"orderQuantity"`
	ValidUntil          string         `json:"validUntil"`
	DispatchQuantity    *int           `json:"dispatchQuantity"`
	CompletionNotes     *string        `json:"completionNotes"`
	Status              string         `json:"status"`
	UserID              string         `json:"userId"`
	User                *OwnerResponse `json:"user,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

func newOrderResponse(o queries.OrderReadModel) OrderResponse {
	response := OrderResponse{
		ID:                  o.ID.String(),
		OrderNumber:         o.OrderNumber,
		Destination:         o.Destination,
		MaterialCode:        o.MaterialCode,
		Party:               o.Party,
		Mill:                o.Mill,
		Priority:            o.Priority,
		MaterialDescription: o.MaterialDescription,
		OrderQuantity:       o.OrderQuantity,
		ValidUntil:          o.ValidUntil.Format(dateLayout),
		DispatchQuantity:    o.DispatchQuantity,
		CompletionNotes:     o.CompletionNotes,
		Status:              o.Status.String(),
		UserID:              o.UserID.String(),
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
	if o.Owner != nil {
		response.User = &OwnerResponse{
			FirstName: o.Owner.FirstName,
			LastName:  o.Owner.LastName,
			Email:     o.Owner.Email,
		}
	}
	return response
}

func newOrderResponseFromDomain(o *order.Order) OrderResponse {
	return newOrderResponse(queries.NewOrderReadModel(o))
}

func newOrderResponses(orders []queries.OrderReadModel) []OrderResponse {
	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = newOrderResponse(o)
	}
	return response
}

type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type OrderListResponse struct {
	Orders     []OrderResponse    `json:"orders"`
	Pagination PaginationResponse `json:"pagination"`
}

type ProfileRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Department   string `json:"department"`
	Designation  string `json:"designation"`
	Gender       string `json:"gender"`
	PhoneNumber  string `json:"phoneNumber"`
	Address      string `json:"address"`
	ProfilePhoto string `json:"profilePhoto"`
}

func (r ProfileRequest) toProfile() user.Profile {
	return user.Profile{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Department:   r.Department,
		Designation:  r.Designation,
		Gender:       r.Gender,
		PhoneNumber:  r.PhoneNumber,
		Address:      r.Address,
		ProfilePhoto: r.ProfilePhoto,
	}
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type RoleChangeRequest struct {
	Role string `json:"role"`
}

type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Department    string    `json:"department"`
	Designation   string    `json:"designation"`
	Gender        string    `json:"gender"`
	PhoneNumber   string    `json:"phoneNumber"`
	Address       string    `json:"address"`
	ProfilePhoto  string    `json:"profilePhoto"`
	OAuthProvider string    `json:"oauthProvider,omitempty"`
	HasPassword   bool      `json:"hasPassword"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func newUserResponse(u queries.UserReadModel) UserResponse {
	return UserResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		Role:          u.Role.String(),
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Department:    u.Department,
		Designation:   u.Designation,
		Gender:        u.Gender,
		PhoneNumber:   u.PhoneNumber,
		Address:       u.Address,
		ProfilePhoto:  u.ProfilePhoto,
		OAuthProvider: u.OAuthProvider,
		HasPassword:   u.HasPassword,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

type StatsResponse struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalOrders     int64 `json:"totalOrders"`
	DraftOrders     int64 `json:"draftOrders"`
	FinalizedOrders int64 `json:"finalizedOrders"`
	CompletedOrders int64 `json:"completedOrders"`
}

type HistoryPointResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
