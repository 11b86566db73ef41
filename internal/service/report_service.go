package service

import (
	"time"

	"alkhaled/internal/ledger"
	"alkhaled/internal/model"
	"alkhaled/internal/store"
)

// --- Interface ---

type ReportService interface {
	Dashboard() ledger.DashboardStats
	Range(start, end time.Time) ledger.RangeReport
}

type reportService struct {
	ctrl *store.Controller
}

func NewReportService(ctrl *store.Controller) ReportService {
	return &reportService{ctrl: ctrl}
}

// --- Implementation ---

func (s *reportService) Dashboard() ledger.DashboardStats {
	var stats ledger.DashboardStats
	s.ctrl.View(func(doc *model.Document) {
		stats = ledger.Dashboard(doc, time.Now())
	})
	return stats
}

func (s *reportService) Range(start, end time.Time) ledger.RangeReport {
	var report ledger.RangeReport
	s.ctrl.View(func(doc *model.Document) {
		report = ledger.ReportRange(doc, start, end)
	})
	return report
}
