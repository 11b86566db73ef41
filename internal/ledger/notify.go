package ledger

import (
	"fmt"
	"time"

	"alkhaled/internal/model"
)

// DeriveNotifications recomputes the notification list wholesale from
// products, customers and settings. Ids are deterministic per condition
// (kind plus subject id), and read flags from the previous list are carried
// over for ids that survive, so re-derivation never resets read state for
// unrelated conditions.
func DeriveNotifications(doc *model.Document, now time.Time) []model.Notification {
	settings := doc.Settings
	expiryThreshold := now.AddDate(0, 0, settings.ExpiryWarningDays)

	notifications := make([]model.Notification, 0)

	for i := range doc.Products {
		p := &doc.Products[i]
		if p.Stock > 0 && p.Stock <= settings.LowStockThreshold {
			pid := p.ID
			notifications = append(notifications, model.Notification{
				ID:        fmt.Sprintf("low-stock-%d", p.ID),
				Type:      model.NotifyLowStock,
				Message:   fmt.Sprintf("المخزون شارف على الانتهاء لـ %q. الكمية المتبقية: %d", p.Name, p.Stock),
				ProductID: &pid,
			})
		}
		if p.ExpiryDate != "" {
			if expiry, ok := ParseDate(p.ExpiryDate); ok && expiry.After(now) && !expiry.After(expiryThreshold) {
				pid := p.ID
				notifications = append(notifications, model.Notification{
					ID:        fmt.Sprintf("expiry-%d", p.ID),
					Type:      model.NotifyExpirySoon,
					Message:   fmt.Sprintf("صلاحية منتج %q ستنتهي قريباً بتاريخ %s.", p.Name, p.ExpiryDate),
					ProductID: &pid,
				})
			}
		}
	}

	if settings.CustomerDebtLimit.IsPositive() {
		balances := CustomerBalances(doc.Invoices, doc.Payments)
		for _, c := range doc.Customers {
			debt := balances[c.ID]
			if debt.GreaterThanOrEqual(settings.CustomerDebtLimit) {
				cid := c.ID
				notifications = append(notifications, model.Notification{
					ID:         fmt.Sprintf("debt-limit-%d", c.ID),
					Type:       model.NotifyDebtLimit,
					Message:    fmt.Sprintf("تجاوز العميل %q حد الدين المسموح به. الدين الحالي: %s ج.م", c.Name, debt.StringFixed(2)),
					CustomerID: &cid,
				})
			}
		}
	}

	wasRead := make(map[string]bool, len(doc.Notifications))
	for _, n := range doc.Notifications {
		if n.Read {
			wasRead[n.ID] = true
		}
	}
	for i := range notifications {
		notifications[i].Read = wasRead[notifications[i].ID]
	}

	return notifications
}
