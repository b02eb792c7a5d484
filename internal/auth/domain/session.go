package domain

import (
	"time"

	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
)

// Session is a logged-in user's signed cookie token together with the
// claims it carries.
type Session struct {
	ID        string
	UserID    userdomain.ID
	Username  string
	Token     string
	ExpiresAt time.Time
}
