package types

import "github.com/m-mizutani/goerr/v2"

// UserID identifies the owner of a memory document. The service runs
// mostly single-user, so an empty ID normalizes to DefaultUserID.
type UserID string

// DefaultUserID is used when the caller does not supply an identity
const DefaultUserID UserID = "default"

// Normalize returns the UserID, treating empty as DefaultUserID
func (id UserID) Normalize() UserID {
	if id == "" {
		return DefaultUserID
	}
	return id
}

// String returns the string representation of the user ID
func (id UserID) String() string {
	return string(id)
}

// Validate checks that the UserID is usable as a storage key
func (id UserID) Validate() error {
	if len(id) > 128 {
		return goerr.New("user ID is too long", goerr.T(TagValidation), goerr.V("length", len(id)))
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return goerr.New("user ID contains invalid character", goerr.T(TagValidation), goerr.V("id", string(id)))
		}
	}
	return nil
}
