package handler

import (
	"time"

	"github.com/prishaadesai/jewelry-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// WorkerPerformance aggregates completed tasks per worker
// GET /api/reports/worker-performance
func (h *ReportHandler) WorkerPerformance(c *fiber.Ctx) error {
	report, err := h.reportService.WorkerPerformance()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// JobSummary returns job counts by status and aggregate loss
// GET /api/reports/job-summary
func (h *ReportHandler) JobSummary(c *fiber.Ctx) error {
	summary, err := h.reportService.JobSummary()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// MaterialConsumption aggregates weight flow per item category
// GET /api/reports/material-consumption?start_date=&end_date=
func (h *ReportHandler) MaterialConsumption(c *fiber.Ctx) error {
	startDate, err := parseDateQuery(c, "start_date")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid start_date, use YYYY-MM-DD"})
	}
	endDate, err := parseDateQuery(c, "end_date")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid end_date, use YYYY-MM-DD"})
	}

	report, err := h.reportService.MaterialConsumption(startDate, endDate)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
