package cli

// ExitError wraps an error with the process exit code.
type ExitError struct {
	Err  error
	Code int
	// Printed is set when the command already reported the failure.
	Printed bool
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
