package services

import (
	"fmt"

	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/pkg/errs"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Resource is what an action is performed on.
type Resource string

const (
	ResourceOrder Resource = "order"
	ResourceUser  Resource = "user"
	ResourceStats Resource = "stats"
)

// Action is a permission checked by AccessPolicy.
type Action string

const (
	ActionCreate   Action = "create"
	ActionView     Action = "view"
	ActionList     Action = "list"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionFinalize Action = "finalize"
	ActionComplete Action = "complete"
	ActionManage   Action = "manage"
)

// Scope narrows a granted permission.
type Scope string

const (
	// ScopeAny grants the action on every instance.
	ScopeAny Scope = "any"
	// ScopeOwn grants the action on orders the actor created.
	ScopeOwn Scope = "own"
	// ScopeFulfillment grants the action on orders handed over to operations
	// (FINALIZED or COMPLETED).
	ScopeFulfillment Scope = "fulfillment"
)

const accessModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, scope

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// accessRules is the whole permission table. Anything not listed is denied.
var accessRules = [][]string{
	{string(user.RoleUser), string(ResourceOrder), string(ActionCreate), string(ScopeAny)},
	{string(user.RoleUser), string(ResourceOrder), string(ActionView), string(ScopeOwn)},
	{string(user.RoleUser), string(ResourceOrder), string(ActionList), string(ScopeOwn)},
	{string(user.RoleUser), string(ResourceOrder), string(ActionUpdate), string(ScopeOwn)},
	{string(user.RoleUser), string(ResourceOrder), string(ActionDelete), string(ScopeOwn)},
	{string(user.RoleUser), string(ResourceOrder), string(ActionFinalize), string(ScopeOwn)},

	{string(user.RoleOperationsManager), string(ResourceOrder), string(ActionView), string(ScopeFulfillment)},
	{string(user.RoleOperationsManager), string(ResourceOrder), string(ActionList), string(ScopeFulfillment)},
	{string(user.RoleOperationsManager), string(ResourceOrder), string(ActionComplete), string(ScopeAny)},

	{string(user.RoleAdmin), string(ResourceOrder), string(ActionView), string(ScopeAny)},
	{string(user.RoleAdmin), string(ResourceOrder), string(ActionList), string(ScopeAny)},
	{string(user.RoleAdmin), string(ResourceOrder), string(ActionUpdate), string(ScopeAny)},
	{string(user.RoleAdmin), string(ResourceOrder), string(ActionDelete), string(ScopeAny)},
	{string(user.RoleAdmin), string(ResourceOrder), string(ActionFinalize), string(ScopeAny)},
	{string(user.RoleAdmin), string(ResourceUser), string(ActionList), string(ScopeAny)},
	{string(user.RoleAdmin), string(ResourceUser), string(ActionManage), string(ScopeAny)},
	{string(user.RoleAdmin), string(ResourceStats), string(ActionView), string(ScopeAny)},
}

// AccessPolicy answers "may this actor do that". The table is loaded once and
// only read afterwards, so a single AccessPolicy is shared by all handlers.
//
// Example:
//
//	if err := policy.AuthorizeOrder(actor, services.ActionFinalize, o); err != nil {
//	    return nil, err // *errs.AccessDeniedError
//	}
type AccessPolicy struct {
	enforcer *casbin.Enforcer
}

func NewAccessPolicy() (*AccessPolicy, error) {
	m, err := model.NewModelFromString(accessModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse access model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create access enforcer: %w", err)
	}
	enforcer.EnableLog(false)

	if _, err := enforcer.AddPolicies(accessRules); err != nil {
		return nil, fmt.Errorf("failed to load access rules: %w", err)
	}

	return &AccessPolicy{enforcer: enforcer}, nil
}

// Authorize returns the scope the actor holds for action on resource,
// or an *errs.AccessDeniedError when the table grants nothing.
func (p *AccessPolicy) Authorize(actor user.Actor, resource Resource, action Action) (Scope, error) {
	if err := actor.Validate(); err != nil {
		return "", errs.ErrUnauthorized
	}

	allowed, matched, err := p.enforcer.EnforceEx(string(actor.Role()), string(resource), string(action))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate access rules: %w", err)
	}
	if !allowed || len(matched) < 4 {
		return "", errs.NewAccessDeniedError(actor.Role().String(), string(resource), string(action), "")
	}

	return Scope(matched[3]), nil
}

// AuthorizeOrder checks action on a concrete order, applying the granted scope.
func (p *AccessPolicy) AuthorizeOrder(actor user.Actor, action Action, o *order.Order) error {
	scope, err := p.Authorize(actor, ResourceOrder, action)
	if err != nil {
		return err
	}

	switch scope {
	case ScopeAny:
		return nil
	case ScopeOwn:
		if o.IsOwnedBy(actor.ID()) {
			return nil
		}
		return errs.NewAccessDeniedError(actor.Role().String(), string(ResourceOrder), string(action), "order belongs to another user")
	case ScopeFulfillment:
		if o.Status().IsFulfillment() {
			return nil
		}
		return errs.NewAccessDeniedError(actor.Role().String(), string(ResourceOrder), string(action), "order is not handed over to operations")
	default:
		return errs.NewAccessDeniedError(actor.Role().String(), string(ResourceOrder), string(action), fmt.Sprintf("unknown scope %q", scope))
	}
}
