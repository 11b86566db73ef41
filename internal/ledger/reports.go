package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"alkhaled/internal/model"
)

// DaySales is one bar of the sales-by-day series.
type DaySales struct {
	Date  string          `json:"date"` // YYYY-MM-DD
	Sales decimal.Decimal `json:"sales"`
}

// ProductSales aggregates one product's sold quantity and value.
type ProductSales struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// CustomerSales aggregates one customer's purchase value.
type CustomerSales struct {
	CustomerID int64           `json:"customerId"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
}

// DashboardStats backs the home screen.
type DashboardStats struct {
	DailySales  decimal.Decimal `json:"dailySales"`
	DailyProfit decimal.Decimal `json:"dailyProfit"`
	TotalStock  int             `json:"totalStock"`
	BestSeller  string          `json:"bestSeller"`
	WeekSales   []DaySales      `json:"weekSales"`
}

// RangeReport is the date-range financial report. Gross profit is the
// sell/purchase margin over sold lines; net profit deducts expenses and all
// discounts granted in the range.
type RangeReport struct {
	TotalSales     decimal.Decimal `json:"totalSales"`
	GrossProfit    decimal.Decimal `json:"grossProfit"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	TotalDiscounts decimal.Decimal `json:"totalDiscounts"`
	NetProfit      decimal.Decimal `json:"netProfit"`
	TopProducts    []ProductSales  `json:"topProducts"`
	TopCustomers   []CustomerSales `json:"topCustomers"`
	SalesByDay     []DaySales      `json:"salesByDay"`
}

func invoiceProfit(inv model.Invoice) decimal.Decimal {
	profit := decimal.Zero
	for _, it := range inv.Items {
		margin := it.Price.Sub(it.PurchasePrice)
		profit = profit.Add(margin.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return profit
}

// Dashboard computes today's totals and the trailing week series.
func Dashboard(doc *model.Document, now time.Time) DashboardStats {
	today := now.Format("2006-01-02")
	stats := DashboardStats{
		DailySales:  decimal.Zero,
		DailyProfit: decimal.Zero,
		BestSeller:  "",
	}

	soldByProduct := make(map[int64]*ProductSales)
	for _, inv := range doc.Invoices {
		if inv.Date.Format("2006-01-02") == today {
			stats.DailySales = stats.DailySales.Add(inv.Total)
			stats.DailyProfit = stats.DailyProfit.Add(invoiceProfit(inv))
		}
		for _, it := range inv.Items {
			agg := soldByProduct[it.ID]
			if agg == nil {
				agg = &ProductSales{ProductID: it.ID, Name: it.Name, Total: decimal.Zero}
				soldByProduct[it.ID] = agg
			}
			agg.Quantity += it.Quantity
			agg.Total = agg.Total.Add(it.LineTotal())
		}
	}

	best := 0
	for _, agg := range soldByProduct {
		if agg.Quantity > best {
			best = agg.Quantity
			stats.BestSeller = agg.Name
		}
	}

	for _, p := range doc.Products {
		stats.TotalStock += p.Stock
	}

	weekStart := now.AddDate(0, 0, -6)
	stats.WeekSales = salesByDay(doc.Invoices, startOfDay(weekStart), endOfDay(now))
	return stats
}

// ReportRange computes the financial report between start and end, both
// days inclusive.
func ReportRange(doc *model.Document, start, end time.Time) RangeReport {
	start = startOfDay(start)
	end = endOfDay(end)
	report := RangeReport{
		TotalSales:     decimal.Zero,
		GrossProfit:    decimal.Zero,
		TotalExpenses:  decimal.Zero,
		TotalDiscounts: decimal.Zero,
	}

	productSales := make(map[int64]*ProductSales)
	customerSales := make(map[int64]*CustomerSales)

	for _, inv := range doc.Invoices {
		if inv.Date.Before(start) || inv.Date.After(end) {
			continue
		}
		report.TotalSales = report.TotalSales.Add(inv.Total)
		report.GrossProfit = report.GrossProfit.Add(invoiceProfit(inv))
		report.TotalDiscounts = report.TotalDiscounts.Add(inv.DiscountAmount).Add(inv.ManualDiscountAmount)

		for _, it := range inv.Items {
			agg := productSales[it.ID]
			if agg == nil {
				agg = &ProductSales{ProductID: it.ID, Name: it.Name, Total: decimal.Zero}
				productSales[it.ID] = agg
			}
			agg.Quantity += it.Quantity
			agg.Total = agg.Total.Add(it.LineTotal())
		}

		if inv.CustomerID != nil {
			if c := doc.CustomerByID(*inv.CustomerID); c != nil {
				agg := customerSales[c.ID]
				if agg == nil {
					agg = &CustomerSales{CustomerID: c.ID, Name: c.Name, Total: decimal.Zero}
					customerSales[c.ID] = agg
				}
				agg.Total = agg.Total.Add(inv.Total)
			}
		}
	}

	for _, exp := range doc.Expenses {
		if day, ok := ParseDate(exp.Date); ok {
			if day.Before(start) || day.After(end) {
				continue
			}
		}
		report.TotalExpenses = report.TotalExpenses.Add(exp.Amount)
	}

	report.NetProfit = report.GrossProfit.Sub(report.TotalExpenses).Sub(report.TotalDiscounts)

	report.TopProducts = topProducts(productSales, 5)
	report.TopCustomers = topCustomers(customerSales, 5)
	report.SalesByDay = salesByDay(doc.Invoices, start, end)
	return report
}

func topProducts(sales map[int64]*ProductSales, n int) []ProductSales {
	out := make([]ProductSales, 0, len(sales))
	for _, s := range sales {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func topCustomers(sales map[int64]*CustomerSales, n int) []CustomerSales {
	out := make([]CustomerSales, 0, len(sales))
	for _, s := range sales {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// salesByDay buckets invoice totals per calendar day, emitting an entry for
// every day in the range so charts render gaps as zeroes.
func salesByDay(invoices []model.Invoice, start, end time.Time) []DaySales {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for day := startOfDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		totals[key] = decimal.Zero
		order = append(order, key)
	}
	for _, inv := range invoices {
		if inv.Date.Before(start) || inv.Date.After(end) {
			continue
		}
		key := inv.Date.Format("2006-01-02")
		totals[key] = totals[key].Add(inv.Total)
	}

	out := make([]DaySales, 0, len(order))
	for _, key := range order {
		out = append(out, DaySales{Date: key, Sales: totals[key]})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
