package identity

import "errors"

// Identity is the typed caller identity built once at the boundary from a
// verified claim set. Handlers and services consume this value only and never
// re-parse the raw claims.
type Identity struct {
	// ID is the stable subject identifier ("sub" claim) used for ownership.
	ID string
	// DisplayName is the caller's username ("cognito:username" claim),
	// informational only.
	DisplayName string
}

// ErrMissingSubject is returned when the verified claims carry no subject.
var ErrMissingSubject = errors.New("claims missing subject")

// FromClaims plucks the identity fields out of a verified claims map.
// The subject is mandatory; a missing display name is tolerated.
func FromClaims(claims map[string]interface{}) (Identity, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, ErrMissingSubject
	}
	name, _ := claims["cognito:username"].(string)
	return Identity{ID: sub, DisplayName: name}, nil
}
