package command

// ResultStatus indicates the outcome of a command execution.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusFailed indicates the command could not perform its effect.
	StatusFailed
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the value produced by a successful Execute.
// It is never mutated after being returned.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Code is a numeric status code. Zero means success.
	Code int
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK, Code: 0}
}

// Failure creates a failed result with the given code.
func Failure(code int) Result {
	if code == 0 {
		code = 1
	}
	return Result{Status: StatusFailed, Code: code}
}
