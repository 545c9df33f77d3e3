package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a backend error response with its HTTP status attached
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("portal api: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a backend 404. GetAssessment returns
// 404 until analysis has been started for the claim, so callers treat it
// as "no assessment yet" rather than a failure.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
