package cms

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the CMS client.
var (
	ErrNotFound     = errors.New("cms entry not found")
	ErrUnauthorized = errors.New("cms rejected credentials")
	ErrNoBaseURL    = errors.New("cms base url is empty")
	ErrMalformed    = errors.New("malformed cms response")
)

// StatusError is returned for non-2xx responses that have no sentinel.
type StatusError struct {
	Code int
	Path string
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("cms %s: status %d", e.Path, e.Code)
	}
	return fmt.Sprintf("cms %s: status %d: %s", e.Path, e.Code, e.Body)
}
