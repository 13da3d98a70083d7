package request

import (
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
)

// CryptoRequest is the request body for the satoshi balance endpoint.
// Either Crypto (absolute set) or Add (relative delta) is supplied.
type CryptoRequest struct {
	Crypto *int64 `json:"crypto,omitempty"`
	Add    *int64 `json:"add,omitempty"`
}

// UpdateScoreRequest is the request body for recording a game score
type UpdateScoreRequest struct {
	Game  string   `json:"game"`
	Score *float64 `json:"score"`
}

// AddInventoryRequest is the request body for adding an inventory item
type AddInventoryRequest struct {
	Name    string `json:"name"`
	FoundAt string `json:"found_at"`
}

// RemoveInventoryRequest is the request body for removing an inventory item
type RemoveInventoryRequest struct {
	Index int `json:"index"`
}

// MinigamesRequest maps minigame ids to completion flags
type MinigamesRequest map[string]bool

// ConvertRequest is the request body for a coin conversion
type ConvertRequest struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// PurchaseRequest is the request body for a shop purchase
type PurchaseRequest struct {
	ItemID string `json:"item_id"`
}

// SubmitRunRequest is the request body for submitting a ghost run
type SubmitRunRequest struct {
	Book      string        `json:"book_id"`
	Score     float64       `json:"score"`
	Trace     []model.Point `json:"trace"`
	GuestName string        `json:"guest_name,omitempty"`
}

// RotatePasswordRequest is the request body for rotating a password
type RotatePasswordRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// BulkUpdateRequest is the request body for admin bulk operations
type BulkUpdateRequest struct {
	Action string `json:"action"`
	Amount int64  `json:"amount"`
}
