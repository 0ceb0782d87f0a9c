package gateway

import "fmt"

// Error is the typed failure every Gateway call resolves to. Status is the
// HTTP status for server rejections and 0 for transport failures (network,
// timeout, unresolvable rewrite target — indistinguishable at this layer).
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("gateway: transport failure: %v", e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("gateway: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("gateway: unexpected status %d", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransport reports whether the failure never produced an HTTP response.
func (e *Error) IsTransport() bool { return e.Status == 0 }

// IsUnauthorized reports a 401 rejection. By the time the caller sees it the
// session has already been invalidated.
func (e *Error) IsUnauthorized() bool { return e.Status == 401 }
