package service

import "errors"

// Domain errors. Handlers translate these at the boundary: validation,
// missing products, stock shortfalls and illegal transitions are 400,
// ErrForbidden 403, ErrNotFound 404, anything else 500 with the raw error
// kept server-side.
var (
	ErrValidation        = errors.New("validation")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
)

const RoleAdmin = "admin"
