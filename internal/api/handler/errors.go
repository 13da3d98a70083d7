package handler

import "github.com/P4CodeMaxxers/DBS2-Backend/internal/api/apierr"

// Re-exported for handler convenience
var (
	WriteError             = apierr.WriteError
	NewInvalidRequestError = apierr.NewInvalidRequestError
	NewUnauthorizedError   = apierr.NewUnauthorizedError
)
