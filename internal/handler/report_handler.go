package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/denialp88/tickets/internal/service"
)

// ReportHandler handles the dashboard and report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DashboardStats godoc
// @Summary Global dashboard statistics
// @Tags reports
// @Produce json
// @Success 200 {object} report.DashboardStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /dashboard/stats [get]
// @Security BearerAuth
func (h *ReportHandler) DashboardStats(c echo.Context) error {
	stats, err := h.reportService.Dashboard(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ProfitLossReport godoc
// @Summary Per-event and global profit/loss figures
// @Tags reports
// @Produce json
// @Success 200 {object} report.ProfitLossReport
// @Failure 403 {object} errors.ErrorResponse
// @Router /reports/profit-loss [get]
// @Security BearerAuth
func (h *ReportHandler) ProfitLossReport(c echo.Context) error {
	rep, err := h.reportService.ProfitLoss(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, rep)
}

// CommissionReport godoc
// @Summary Commission totals with per-event breakdown
// @Tags reports
// @Produce json
// @Success 200 {object} report.CommissionReport
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/commission-report [get]
// @Security BearerAuth
func (h *ReportHandler) CommissionReport(c echo.Context) error {
	rep, err := h.reportService.Commission(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, rep)
}

// BookerEarnings godoc
// @Summary Booker earnings totals and per-event breakdown
// @Tags reports
// @Produce json
// @Success 200 {object} report.BookerEarnings
// @Failure 403 {object} errors.ErrorResponse
// @Router /booker/earnings [get]
// @Security BearerAuth
func (h *ReportHandler) BookerEarnings(c echo.Context) error {
	earnings, err := h.reportService.BookerEarnings(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, earnings)
}
