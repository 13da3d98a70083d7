package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnknownField        = "UNKNOWN_FIELD"
	CodeInvalidCoin         = "INVALID_COIN"
	CodeSameCoin            = "SAME_COIN"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeInvalidBook         = "INVALID_BOOK"
	CodeInvalidGame         = "INVALID_GAME"
	CodeInvalidPassword     = "INVALID_PASSWORD"
	CodeBannedPassword      = "BANNED_PASSWORD"
	CodeUnknownAction       = "UNKNOWN_ACTION"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeRunNotFound         = "RUN_NOT_FOUND"
	CodeItemNotFound        = "ITEM_NOT_FOUND"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeAlreadyOwned        = "ALREADY_OWNED"
	CodeRateUnavailable     = "RATE_UNAVAILABLE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrRunNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRunNotFound, "Run not found"}}
	case errors.Is(err, model.ErrItemNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeItemNotFound, "Item not found"}}
	case errors.Is(err, model.ErrUnknownShopItem):
		return &httpError{http.StatusNotFound, APIError{CodeItemNotFound, "Unknown shop item"}}
	case errors.Is(err, model.ErrInvalidCoin):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCoin, "Invalid coin id"}}
	case errors.Is(err, model.ErrSameCoin):
		return &httpError{http.StatusBadRequest, APIError{CodeSameCoin, "Cannot convert a coin to itself"}}
	case errors.Is(err, model.ErrInvalidAmount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAmount, "Amount must be positive"}}
	case errors.Is(err, model.ErrInvalidBook):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBook, "Invalid book id"}}
	case errors.Is(err, model.ErrInvalidGame):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGame, "Invalid minigame id"}}
	case errors.Is(err, model.ErrUnknownField):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownField, err.Error()}}
	case errors.Is(err, model.ErrInvalidNumber):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}
	case errors.Is(err, model.ErrUnknownAction):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownAction, "Unknown bulk action"}}
	case errors.Is(err, model.ErrInvalidPassword):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPassword, "Password must be at least 4 lowercase letters"}}
	case errors.Is(err, model.ErrBannedPassword):
		return &httpError{http.StatusBadRequest, APIError{CodeBannedPassword, "Password contains a banned word"}}
	case errors.Is(err, model.ErrInvalidRequest):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}
	case errors.Is(err, model.ErrInsufficientBalance):
		return &httpError{http.StatusBadRequest, APIError{CodeInsufficientBalance, "Insufficient balance"}}
	case errors.Is(err, model.ErrInsufficientFunds):
		return &httpError{http.StatusBadRequest, APIError{CodeInsufficientFunds, "Insufficient funds"}}
	case errors.Is(err, model.ErrAlreadyOwned):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyOwned, "Item already owned"}}
	case errors.Is(err, model.ErrRateUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeRateUnavailable, "No usable price for coin"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
