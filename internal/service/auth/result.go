package auth

import "github.com/storylab/backend/internal/domain"

// AuthResult is returned by Register, Login, and LoginExternal.
type AuthResult struct {
	Token string
	User  domain.User
}
