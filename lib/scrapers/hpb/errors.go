package hpb

import "fmt"

// StatusError is returned when the storefront answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hpb %s failed (%s)", e.Endpoint, e.Status)
}

// DecodeError is returned when a response body does not have the expected shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("hpb %s returned an unreadable body: %s", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
