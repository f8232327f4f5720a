package queries

import (
	"errors"
	"fmt"

	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/pkg/errs"
	"steelorders/internal/pkg/guard"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// HistoryCap bounds the operations history view to the most recent completions.
	HistoryCap = 50
)

// View selects the operations queue an OPERATIONS_MANAGER looks at.
// Other roles ignore it.
type View string

const (
	ViewPending View = "pending"
	ViewHistory View = "history"
)

// ParseView accepts "", "pending" and "history". Empty means pending.
func ParseView(s string) (View, error) {
	switch View(s) {
	case "", ViewPending:
		return ViewPending, nil
	case ViewHistory:
		return ViewHistory, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("view", fmt.Errorf("%q is not pending or history", s))
	}
}

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through the orders the actor may see, newest first.
//
// Example:
//
//	query, err := NewListOrdersQuery(actor, 2, 20, ViewPending)
//	page, err := handler.Handle(ctx, query)
//	fmt.Printf("page %d of %d\n", page.Pagination.Page, page.Pagination.Pages)
type ListOrdersQuery struct {
	actor user.Actor
	page  int
	limit int
	view  View

	guard guard.ConstructorGuard
}

// NewListOrdersQuery applies the defaults: page 0 means 1 and limit 0 means 10.
// A limit above MaxLimit is lowered to MaxLimit.
func NewListOrdersQuery(actor user.Actor, page, limit int, view View) (ListOrdersQuery, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if view == "" {
		view = ViewPending
	}

	var pageErr, limitErr, viewErr error
	if page < 1 {
		pageErr = errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if limit < 1 {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit)
	}
	if view != ViewPending && view != ViewHistory {
		viewErr = errs.NewValueIsInvalidError("view")
	}
	if err := errors.Join(actor.Validate(), pageErr, limitErr, viewErr); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		actor: actor,
		page:  page,
		limit: min(limit, MaxLimit),
		view:  view,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() user.Actor {
	return q.actor
}

func (q ListOrdersQuery) Page() int {
	return q.page
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q ListOrdersQuery) View() View {
	return q.view
}

// Pagination describes the returned page. Pages is ceil(Total / Limit).
type Pagination struct {
	Page  int
	Limit int
	Total int64
	Pages int
}

func newPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

type ListOrdersQueryResponse struct {
	Orders     []OrderReadModel
	Pagination Pagination
}
