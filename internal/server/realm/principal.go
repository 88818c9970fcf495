package realm

import (
	"sort"

	"github.com/iudanet/consolerealm/internal/models"
)

// CredentialKind identifies the type of credential presented to a realm
type CredentialKind string

const (
	// KindBearerToken signed token from the Authorization header
	KindBearerToken CredentialKind = "bearer_token"
	// KindPassword username/password form
	KindPassword CredentialKind = "password"
)

// AuthMethod records which check accepted the token
type AuthMethod string

const (
	// MethodPassword token verified against the current password hash
	MethodPassword AuthMethod = "password"
	// MethodAPIToken token found in the API token registry
	MethodAPIToken AuthMethod = "api_token"
)

// Principal is the identity of one authenticated request.
type Principal struct {
	UserID   string     `json:"user_id"`
	Username string     `json:"username"`
	Method   AuthMethod `json:"method"`
	// IsAPIToken marks a non-interactive API session
	IsAPIToken bool `json:"is_api_token"`
}

func newPrincipal(user *models.User, method AuthMethod) *Principal {
	return &Principal{
		UserID:     user.ID,
		Username:   user.Username,
		Method:     method,
		IsAPIToken: method == MethodAPIToken,
	}
}

// PermissionSet is a set of permission strings
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set, dropping duplicates
func NewPermissionSet(perms ...string) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether perm is in the set
func (s PermissionSet) Has(perm string) bool {
	_, ok := s[perm]
	return ok
}

// Slice returns the permissions sorted
func (s PermissionSet) Slice() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
