package taskfile

import "fmt"

// ParseError reports a malformed task or milestone file. It is always
// scoped to one file: callers log it and exclude the file from the
// index rather than aborting the whole build.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
}

func parseErrorf(path, format string, args ...any) *ParseError {
	return &ParseError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
