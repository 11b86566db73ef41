// Package service implements the mutation API: every state transition of
// the dataset goes through one of these services, which combine the ledger
// computations with the document update and leave the persistence write to
// the controller's debounce.
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"alkhaled/internal/ledger"
	"alkhaled/internal/model"
	ws "alkhaled/internal/websocket"
)

var (
	// ErrNotFound means a referenced entity id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrCreditWithoutCustomer rejects a sale that would create debt with
	// no customer attached. Policy rejection, not a system fault.
	ErrCreditWithoutCustomer = errors.New("credit sale requires a customer")

	// ErrInvalidDocument rejects an import missing required top-level keys.
	ErrInvalidDocument = errors.New("invalid data file")
)

const maxToasts = 20

// pushToast appends a transient notice to the in-memory document (never
// persisted) and broadcasts it to connected UIs.
func pushToast(doc *model.Document, hub *ws.Hub, message, kind string) {
	t := model.Toast{ID: uuid.NewString(), Message: message, Type: kind}
	doc.Toasts = append(doc.Toasts, t)
	if n := len(doc.Toasts); n > maxToasts {
		doc.Toasts = doc.Toasts[n-maxToasts:]
	}
	hub.Emit(ws.EventToast, t)
}

// refreshNotifications re-derives the notification list after a relevant
// change (products, customers, debts or settings).
func refreshNotifications(doc *model.Document, hub *ws.Hub) {
	doc.Notifications = ledger.DeriveNotifications(doc, time.Now())
	hub.Emit(ws.EventNotifications, doc.Notifications)
}
