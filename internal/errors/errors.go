package myErrors

import "errors"

var (
	ErrUserNotFound    = errors.New("invalid username")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserExists      = errors.New("user already exists")
	ErrEntryNotFound   = errors.New("vault entry not found")
	ErrObjectNotFound  = errors.New("sealed object not found")
	ErrUnauthorized    = errors.New("unauthorized")
)
