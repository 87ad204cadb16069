package services

import (
	"github.com/ArowuTest/conomy-backend/internal/models"
)

// Session identifies the signed-in user for one call. The zero value is the
// signed-out session.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// SignedIn reports whether the session carries a user
func (s Session) SignedIn() bool {
	return s.UserID != ""
}

// IsAdmin reports whether the session may settle requests
func (s Session) IsAdmin() bool {
	return s.SignedIn() && s.Role == models.RoleAdmin
}

func requireSession(s Session) error {
	if !s.SignedIn() {
		return ErrUnauthenticated
	}
	return nil
}
