package gate

// Action describes the kind of operation a principal wants to perform.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
	// ActionDecide moves a pending leave request to a final state.
	ActionDecide Action = "decide"
)
