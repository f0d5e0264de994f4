package harness

import "fmt"

// RequestError describes a failed REST call: either a non-2xx response
// (Status and Body set) or a transport-level failure (Err set).
// It maps to exit code 1.
type RequestError struct {
	Method string
	Path   string
	Status int
	Body   string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %d %s", e.Method, e.Path, e.Status, e.Body)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
