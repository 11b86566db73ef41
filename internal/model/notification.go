package model

// NotificationType enum constants
const (
	NotifyLowStock   = "low_stock"
	NotifyExpirySoon = "expiry_soon"
	NotifyDebtLimit  = "debt_limit"
)

// Notification is derived state, regenerated wholesale from products,
// customers and settings. The id encodes kind plus subject id so the same
// underlying condition keeps the same id (and its read flag) across
// re-derivations.
type Notification struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	Read       bool   `json:"read"`
	ProductID  *int64 `json:"productId,omitempty"`
	CustomerID *int64 `json:"customerId,omitempty"`
}

// ToastType enum constants
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

// Toast is a transient UI notice. Never persisted.
type Toast struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Type    string `json:"type"`
}
