package services_test

import (
	"fmt"
	"testing"
	"time"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/core/domain/services"
	"steelorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPolicy(t *testing.T) *services.AccessPolicy {
	t.Helper()
	policy, err := services.NewAccessPolicy()
	require.NoError(t, err)
	return policy
}

func newActor(t *testing.T, role user.Role) user.Actor {
	t.Helper()
	actor, err := user.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func newOrder(t *testing.T, owner kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	now := time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC)
	number, err := order.NewNumber(2026, 3)
	require.NoError(t, err)

	var qty *int
	if status == order.Completed {
		q := 1000
		qty = &q
	}
	o, err := order.RestoreOrder(kernel.NewUUID(), number, owner, order.Details{
		Destination:         "SAIL",
		MaterialCode:        "MAT003",
		Party:               "Steel Supplier C",
		Mill:                "Sinter Plant",
		Priority:            10,
		MaterialDescription: "sinter",
		OrderQuantity:       1000,
		ValidUntil:          now.AddDate(0, 2, 0),
	}, status, qty, nil, now, now)
	require.NoError(t, err)
	return o
}

func TestAccessPolicy_Authorize(t *testing.T) {
	policy := newPolicy(t)

	testCases := []struct {
		role     user.Role
		resource services.Resource
		action   services.Action
		scope    services.Scope
	}{
		{user.RoleUser, services.ResourceOrder, services.ActionCreate, services.ScopeAny},
		{user.RoleUser, services.ResourceOrder, services.ActionList, services.ScopeOwn},
		{user.RoleUser, services.ResourceOrder, services.ActionFinalize, services.ScopeOwn},
		{user.RoleUser, services.ResourceOrder, services.ActionComplete, ""},
		{user.RoleUser, services.ResourceStats, services.ActionView, ""},
		{user.RoleOperationsManager, services.ResourceOrder, services.ActionCreate, ""},
		{user.RoleOperationsManager, services.ResourceOrder, services.ActionList, services.ScopeFulfillment},
		{user.RoleOperationsManager, services.ResourceOrder, services.ActionComplete, services.ScopeAny},
		{user.RoleOperationsManager, services.ResourceOrder, services.ActionUpdate, ""},
		{user.RoleOperationsManager, services.ResourceOrder, services.ActionDelete, ""},
		{user.RoleOperationsManager, services.ResourceOrder, services.ActionFinalize, ""},
		{user.RoleAdmin, services.ResourceOrder, services.ActionCreate, ""},
		{user.RoleAdmin, services.ResourceOrder, services.ActionComplete, ""},
		{user.RoleAdmin, services.ResourceOrder, services.ActionUpdate, services.ScopeAny},
		{user.RoleAdmin, services.ResourceUser, services.ActionManage, services.ScopeAny},
		{user.RoleAdmin, services.ResourceStats, services.ActionView, services.ScopeAny},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s %s %s", tc.role, tc.action, tc.resource), func(t *testing.T) {
			scope, err := policy.Authorize(newActor(t, tc.role), tc.resource, tc.action)

			if tc.scope == "" {
				require.ErrorIs(t, err, errs.ErrAccessDenied)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.scope, scope)
		})
	}
}

func TestAccessPolicy_AuthorizeUnauthenticated(t *testing.T) {
	_, err := newPolicy(t).Authorize(user.Actor{}, services.ResourceOrder, services.ActionList)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestAccessPolicy_AuthorizeOrder(t *testing.T) {
	policy := newPolicy(t)
	owner := newActor(t, user.RoleUser)
	stranger := newActor(t, user.RoleUser)
	ops := newActor(t, user.RoleOperationsManager)
	admin := newActor(t, user.RoleAdmin)

	draft := newOrder(t, owner.ID(), order.Draft)
	finalized := newOrder(t, owner.ID(), order.Finalized)
	completed := newOrder(t, owner.ID(), order.Completed)

	t.Run("owner may change own draft", func(t *testing.T) {
		require.NoError(t, policy.AuthorizeOrder(owner, services.ActionUpdate, draft))
		require.NoError(t, policy.AuthorizeOrder(owner, services.ActionDelete, draft))
		require.NoError(t, policy.AuthorizeOrder(owner, services.ActionFinalize, draft))
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		err := policy.AuthorizeOrder(stranger, services.ActionUpdate, draft)

		var denied *errs.AccessDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, "order belongs to another user", denied.Reason)

		require.ErrorIs(t, policy.AuthorizeOrder(stranger, services.ActionView, draft), errs.ErrAccessDenied)
	})

	t.Run("operations see only handed over orders", func(t *testing.T) {
		require.ErrorIs(t, policy.AuthorizeOrder(ops, services.ActionView, draft), errs.ErrAccessDenied)
		require.NoError(t, policy.AuthorizeOrder(ops, services.ActionView, finalized))
		require.NoError(t, policy.AuthorizeOrder(ops, services.ActionView, completed))
		require.NoError(t, policy.AuthorizeOrder(ops, services.ActionComplete, finalized))
		require.ErrorIs(t, policy.AuthorizeOrder(ops, services.ActionDelete, finalized), errs.ErrAccessDenied)
	})

	t.Run("admin may change any order but not complete it", func(t *testing.T) {
		require.NoError(t, policy.AuthorizeOrder(admin, services.ActionUpdate, draft))
		require.NoError(t, policy.AuthorizeOrder(admin, services.ActionFinalize, draft))
		require.NoError(t, policy.AuthorizeOrder(admin, services.ActionView, completed))
		require.ErrorIs(t, policy.AuthorizeOrder(admin, services.ActionComplete, finalized), errs.ErrAccessDenied)
	})
}
