package model

import "github.com/shopspring/decimal"

// Settings holds store-wide configuration.
type Settings struct {
	LowStockThreshold   int              `json:"lowStockThreshold"`
	ExpiryWarningDays   int              `json:"expiryWarningDays"`
	CustomerDebtLimit   decimal.Decimal  `json:"customerDebtLimit"` // 0 disables debt alerts
	ProductCustomFields []CustomFieldDef `json:"productCustomFields"`
}

// DefaultSettings returns the settings a fresh store starts with.
func DefaultSettings() Settings {
	return Settings{
		LowStockThreshold:   10,
		ExpiryWarningDays:   30,
		CustomerDebtLimit:   decimal.NewFromInt(1000),
		ProductCustomFields: []CustomFieldDef{{ID: "supplier", Name: "المورد", Type: FieldTypeText}},
	}
}
