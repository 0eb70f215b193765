package apperr

import "github.com/tuanvumaihuynh/inventory-tracker/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
)

var (
	ValidationErr       = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	MalformedBodyErr    = zerror.NewBadRequest("MALFORMED_BODY", "request body must be a valid JSON object")
	InvalidIDErr        = zerror.NewBadRequest("INVALID_ID", "id must be a positive integer")
	RouteNotFoundErr    = zerror.NewNotFound("ROUTE_NOT_FOUND", "Route not found")
	MethodNotAllowedErr = zerror.NewZError(nil, zerror.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
)

// Auth
var (
	ErrMissingToken       = zerror.NewUnauthorized("MISSING_TOKEN", "Access token required")
	ErrInvalidToken       = zerror.NewUnauthorized("INVALID_TOKEN", "Invalid or expired token")
	ErrInvalidCredentials = zerror.NewUnauthorized("INVALID_CREDENTIALS", "Invalid credentials")
	ErrUserAlreadyExists  = zerror.NewConflict("USER_ALREADY_EXISTS", "Username or email already exists")
	ErrUserNotFound       = zerror.NewNotFound("USER_NOT_FOUND", "User not found")
)

// Inventory
var (
	ErrItemNotFound     = zerror.NewNotFound("ITEM_NOT_FOUND", "Inventory item not found")
	ErrSkuAlreadyExists = zerror.NewConflict("SKU_ALREADY_EXISTS", "SKU already exists")
	ErrValueOutOfRange  = zerror.NewBadRequest("VALUE_OUT_OF_RANGE", "numeric value out of range")
)

// Health
var (
	ErrDatabaseUnavailable = zerror.NewServiceUnavailable("DATABASE_UNAVAILABLE", "database is unavailable")
)
