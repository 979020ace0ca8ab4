package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Tenant errors
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrTenantAlreadyExists = errors.New("tenant already exists")

	// Catalog errors
	ErrItemNotFound = errors.New("catalog item not found")

	// Authorization errors
	ErrUnauthorized       = errors.New("not authorized to manage this tenant")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")

	// Backend errors
	ErrBackendFailure = errors.New("backend operation failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")
)
