package realm

import "fmt"

// Reason describes why a token was rejected. Reasons are logged, not shown
// to clients.
type Reason string

const (
	ReasonMissingIdentity Reason = "malformed or missing identity claim"
	ReasonUnknownUser     Reason = "unknown user"
	ReasonTokenRejected   Reason = "token and fallback both invalid"
)

// AuthenticationError is returned when a well-formed token is rejected
type AuthenticationError struct {
	Reason Reason
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}
