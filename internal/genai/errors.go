package genai

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoImage is returned when the service answered successfully but the
// response carried no image part.
var ErrNoImage = errors.New("genai: response contained no image part")

// APIError is a typed failure from the generative service.
type APIError struct {
	StatusCode int    // HTTP status
	Status     string // service status string, e.g. RESOURCE_EXHAUSTED
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("genai: %s (HTTP %d): %s", e.Status, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("genai: HTTP %d: %s", e.StatusCode, e.Message)
}

// PermissionOrQuota reports whether the failure means the credential is
// missing, rejected or out of quota. These are the cases where asking the
// user for a new key can help; everything else is a generic failure.
func (e *APIError) PermissionOrQuota() bool {
	switch {
	case e.StatusCode == http.StatusForbidden, e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.Status == "PERMISSION_DENIED", e.Status == "RESOURCE_EXHAUSTED":
		return true
	}
	return false
}

// IsPermissionOrQuota reports whether err (or anything it wraps) is an
// APIError in the permission/quota class.
func IsPermissionOrQuota(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.PermissionOrQuota()
}
