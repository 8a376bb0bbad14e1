// Package tasks reads and appends tasks stored in the task management
// contract, and maps contract values to and from the domain types.
package tasks

// Contract method names.
const (
	MethodGetTasks     = "getTasks"
	MethodCreateTask   = "createTask"
	MethodCompleteTask = "completeTask"
)

// Task is a single task item.
type Task struct {
	Description string
	Completed   bool
}

// Collection is the full task list in the order the contract returned it.
type Collection []Task

// AddTaskDescription is the value of the add task form.
type AddTaskDescription struct {
	Description string
}

// Args maps the form value to the createTask call arguments.
// The description is forwarded as is, empty strings included.
func (d AddTaskDescription) Args() []any {
	return []any{d.Description}
}
