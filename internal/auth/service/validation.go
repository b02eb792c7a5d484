package service

import (
	"strings"

	"github.com/AlibekovAA/tasktracker/internal/common/validation"
)

type RegisterInput struct {
	Username        string `form:"username" validate:"required,min=4,max=20"`
	Password        string `form:"password" validate:"required,min=8,max=20"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginInput only checks presence; length rules apply at registration.
type LoginInput struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (in RegisterInput) normalize() RegisterInput {
	in.Username = strings.TrimSpace(in.Username)
	return in
}

func (in LoginInput) normalize() LoginInput {
	in.Username = strings.TrimSpace(in.Username)
	return in
}

func validateRegister(in RegisterInput) error {
	return validation.Struct(in)
}

func validateLogin(in LoginInput) error {
	return validation.Struct(in)
}
