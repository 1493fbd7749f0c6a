package gate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Operation represents the kind of resource access being decided
type Operation string

const (
	OperationRead          Operation = "read"
	OperationCreate        Operation = "create"
	OperationUpdate        Operation = "update"
	OperationDelete        Operation = "delete"
	OperationOrderChildren Operation = "order-children"
)

// Canonical action names understood by the backing authority.
const (
	ActionRead        = "read"
	ActionAddNode     = "add-node"
	ActionSetProperty = "set-property"
	ActionRemove      = "remove"
)

// Operations lists every operation this gate decides on.
var Operations = []Operation{
	OperationRead,
	OperationCreate,
	OperationUpdate,
	OperationDelete,
	OperationOrderChildren,
}

// Action returns the canonical authority action for the operation, or an
// empty string for an unknown operation. Reordering children mutates the
// parent's child-order property, so it shares set-property with update.
func (o Operation) Action() string {
	switch o {
	case OperationRead:
		return ActionRead
	case OperationCreate:
		return ActionAddNode
	case OperationUpdate, OperationOrderChildren:
		return ActionSetProperty
	case OperationDelete:
		return ActionRemove
	default:
		return ""
	}
}

// UnmarshalJSON parses the JSON-encoded data and validates it as one of the defined Operation values.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch Operation(s) {
	case OperationRead, OperationCreate, OperationUpdate, OperationDelete, OperationOrderChildren:
		*o = Operation(s)
		return nil
	default:
		return fmt.Errorf(
			"invalid operation value: %q, must be one of: %s",
			s,
			strings.Join([]string{
				string(OperationRead),
				string(OperationCreate),
				string(OperationUpdate),
				string(OperationDelete),
				string(OperationOrderChildren),
			}, ", "),
		)
	}
}
