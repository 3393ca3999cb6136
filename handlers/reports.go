package handlers

import (
	"net/http"

	"github.com/expensehub/backend/services"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the aggregate spending reports. Totals are
// computed across all users; the routes require authentication but
// not the admin role.
type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// ByCategory handles GET /api/reports/expenses/by-category.
func (h *ReportHandler) ByCategory(c *gin.Context) {
	rows, err := h.reports.ByCategory(c.Query("from"), c.Query("to"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ByPeriod handles GET /api/reports/expenses/by-period.
func (h *ReportHandler) ByPeriod(c *gin.Context) {
	rows, err := h.reports.ByPeriod(c.Query("from"), c.Query("to"), c.Query("group"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
