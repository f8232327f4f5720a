package audit

// Action classifies an audit entry.
type Action string

const (
	OrderCreated   Action = "ORDER_CREATED"
	OrderUpdated   Action = "ORDER_UPDATED"
	OrderDeleted   Action = "ORDER_DELETED"
	OrderFinalized Action = "ORDER_FINALIZED"
	OrderCompleted Action = "ORDER_COMPLETED"

	UserCreated     Action = "USER_CREATED"
	UserRoleUpdated Action = "USER_ROLE_UPDATED"
	ProfileUpdated  Action = "PROFILE_UPDATED"
	PasswordUpdated Action = "PASSWORD_UPDATED"
	PasswordSet     Action = "PASSWORD_SET"
)

func (a Action) String() string {
	return string(a)
}
