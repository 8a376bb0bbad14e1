package tasks

import "fmt"

// QueryDecodeError is returned when a getTasks result could not be decoded,
// either because the contract reported an error or because the output does
// not have the expected shape.
type QueryDecodeError struct {
	Message string
}

func (e *QueryDecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", MethodGetTasks, e.Message)
}

// TransactionError is returned when signing, submitting or executing a
// transaction failed.
type TransactionError struct {
	Method string
	Err    error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s: %v", e.Method, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}
