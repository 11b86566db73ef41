package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"alkhaled/internal/service"
	"alkhaled/pkg/response"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/summary", h.Summary)
	}
}

// Dashboard returns today's headline figures and the trailing week
// @Summary      Dashboard statistics
// @Tags         reports
// @Produce      json
// @Success      200  {object}  response.Response{data=ledger.DashboardStats}
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.reportService.Dashboard()))
}

// Summary returns the profit and loss report for a date range
// @Summary      Range report
// @Tags         reports
// @Produce      json
// @Param        start  query     string  true  "Start date (YYYY-MM-DD)"
// @Param        end    query     string  true  "End date (YYYY-MM-DD)"
// @Success      200    {object}  response.Response{data=ledger.RangeReport}
// @Failure      400    {object}  response.Response
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	start, err := time.ParseInLocation("2006-01-02", c.Query("start"), time.Local)
	if err != nil {
		badRequest(c, "Invalid start date, expected YYYY-MM-DD")
		return
	}
	end, err := time.ParseInLocation("2006-01-02", c.Query("end"), time.Local)
	if err != nil {
		badRequest(c, "Invalid end date, expected YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		badRequest(c, "End date is before start date")
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.reportService.Range(start, end)))
}
