package auth

import (
	"github.com/google/uuid"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
)

// Session is the authenticated identity handed to every cart, checkout and
// order operation. A zero UserID means no authenticated user.
type Session struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// Anonymous is the session used for unauthenticated reads.
var Anonymous = Session{}

// Authenticated reports whether the session carries a user identity.
func (s Session) Authenticated() bool {
	return s.UserID != uuid.Nil
}

// IsAdmin reports whether the session holds the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == enums.UserRoleAdmin
}
