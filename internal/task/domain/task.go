package domain

import (
	"time"

	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
)

type ID string

// Task is always read and written through its owner.
type Task struct {
	ID        ID
	OwnerID   userdomain.ID
	Title     string
	Done      bool
	CreatedAt time.Time
}
