package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"alkhaled/internal/model"
	"alkhaled/internal/store"
	ws "alkhaled/internal/websocket"
)

// --- DTOs ---

type UpdateSettingsRequest struct {
	LowStockThreshold   *int                   `json:"lowStockThreshold"`
	ExpiryWarningDays   *int                   `json:"expiryWarningDays"`
	CustomerDebtLimit   *decimal.Decimal       `json:"customerDebtLimit"`
	ProductCustomFields []model.CustomFieldDef `json:"productCustomFields"`
}

// --- Interface ---

type SettingsService interface {
	GetSettings() model.Settings
	UpdateSettings(req UpdateSettingsRequest) (model.Settings, error)

	ListNotifications() []model.Notification
	MarkNotificationRead(id string) error
	MarkAllNotificationsRead() error
}

type settingsService struct {
	ctrl *store.Controller
	hub  *ws.Hub
}

func NewSettingsService(ctrl *store.Controller, hub *ws.Hub) SettingsService {
	return &settingsService{ctrl: ctrl, hub: hub}
}

// --- Implementation ---

func (s *settingsService) GetSettings() model.Settings {
	var settings model.Settings
	s.ctrl.View(func(doc *model.Document) {
		settings = doc.Settings
	})
	return settings
}

// UpdateSettings applies the provided fields only and re-derives
// notifications, since thresholds changed.
func (s *settingsService) UpdateSettings(req UpdateSettingsRequest) (model.Settings, error) {
	var settings model.Settings
	err := s.ctrl.Update(func(doc *model.Document) error {
		if req.LowStockThreshold != nil {
			doc.Settings.LowStockThreshold = *req.LowStockThreshold
		}
		if req.ExpiryWarningDays != nil {
			doc.Settings.ExpiryWarningDays = *req.ExpiryWarningDays
		}
		if req.CustomerDebtLimit != nil {
			doc.Settings.CustomerDebtLimit = *req.CustomerDebtLimit
		}
		if req.ProductCustomFields != nil {
			doc.Settings.ProductCustomFields = req.ProductCustomFields
		}
		settings = doc.Settings
		pushToast(doc, s.hub, "تم حفظ الإعدادات بنجاح", model.ToastSuccess)
		refreshNotifications(doc, s.hub)
		return nil
	})
	return settings, err
}

func (s *settingsService) ListNotifications() []model.Notification {
	var out []model.Notification
	s.ctrl.View(func(doc *model.Document) {
		out = make([]model.Notification, len(doc.Notifications))
		copy(out, doc.Notifications)
	})
	return out
}

// MarkNotificationRead flips one notification's read flag. The flag
// survives re-derivation because ids are stable per condition.
func (s *settingsService) MarkNotificationRead(id string) error {
	return s.ctrl.Update(func(doc *model.Document) error {
		for i := range doc.Notifications {
			if doc.Notifications[i].ID == id {
				doc.Notifications[i].Read = true
				s.hub.Emit(ws.EventNotifications, doc.Notifications)
				return nil
			}
		}
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	})
}

func (s *settingsService) MarkAllNotificationsRead() error {
	return s.ctrl.Update(func(doc *model.Document) error {
		for i := range doc.Notifications {
			doc.Notifications[i].Read = true
		}
		s.hub.Emit(ws.EventNotifications, doc.Notifications)
		return nil
	})
}
