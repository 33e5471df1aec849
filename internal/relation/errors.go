package relation

import "fmt"

// Entity kinds named by NotFoundError.
const (
	KindUser    = "user"
	KindTask    = "task"
	KindProject = "project"
)

// NotFoundError reports which entity kind failed to resolve so handlers can
// name it in the client error.
type NotFoundError struct {
	Kind string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Kind)
}
