package errors

// ErrorCategory groups failures by what the user has to look at to fix them.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"     // document unreadable, malformed or ambiguous
	CategoryValidation ErrorCategory = "validation" // document decoded but breaks a rule
	CategoryNotFound   ErrorCategory = "not_found"
	CategoryFileSystem ErrorCategory = "filesystem" // export target or docs root
	CategoryRuntime    ErrorCategory = "runtime"    // watcher or metrics listener
	CategoryInternal   ErrorCategory = "internal"
)

// ExitCode is the process status the CLI returns for the category.
func (c ErrorCategory) ExitCode() int {
	switch c {
	case CategoryValidation:
		return 2
	case CategoryNotFound:
		return 3
	case CategoryConfig:
		return 7
	case CategoryInternal:
		return 10
	case CategoryFileSystem:
		return 11
	case CategoryRuntime:
		return 12
	default:
		return 1
	}
}

// opaque categories hide their message unless output is verbose.
func (c ErrorCategory) opaque() bool {
	return c == CategoryInternal || c == CategoryRuntime
}

// ErrorSeverity says whether the command can carry on.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// Fields is structured detail attached to an error, such as the
// configuration path or the selected environment.
type Fields map[string]any

// with returns a copy of f that also holds key.
func (f Fields) with(key string, value any) Fields {
	out := make(Fields, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	out[key] = value
	return out
}
