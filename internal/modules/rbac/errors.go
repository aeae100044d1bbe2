package rbac

import "errors"

var (
	ErrRoleExists   = errors.New("role already exists")
	ErrRoleNotFound = errors.New("role does not exist")
	ErrUserNotFound = errors.New("user does not exist")
)
