package scaffold

import "fmt"

// FilesystemError reports a read, write, copy or remove failure while
// preparing the project, merging the manifest or materializing files.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// TemplateFetchError reports a failure to resolve or install the template
// package. No rollback is performed for it.
type TemplateFetchError struct {
	Template string
	Err      error
}

func (e *TemplateFetchError) Error() string {
	return fmt.Sprintf("getting template package %s: %v", e.Template, e.Err)
}

func (e *TemplateFetchError) Unwrap() error { return e.Err }

// AbortError reports a failure after the template was fetched. The project
// has been rolled back by the time it is returned.
type AbortError struct {
	Stage Stage
	Err   error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("installation aborted while %s: %v", e.Stage, e.Err)
}

func (e *AbortError) Unwrap() error { return e.Err }
