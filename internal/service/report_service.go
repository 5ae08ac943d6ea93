package service

import (
	"time"

	"github.com/prishaadesai/jewelry-backend/internal/repository"
)

// ReportService exposes read-only aggregations; no write side effects.
type ReportService interface {
	WorkerPerformance() ([]repository.WorkerPerformance, error)
	JobSummary() (*repository.JobSummary, error)
	MaterialConsumption(startDate, endDate *time.Time) ([]repository.MaterialConsumption, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) WorkerPerformance() ([]repository.WorkerPerformance, error) {
	return s.reportRepo.WorkerPerformance()
}

func (s *reportService) JobSummary() (*repository.JobSummary, error) {
	return s.reportRepo.JobSummary()
}

func (s *reportService) MaterialConsumption(startDate, endDate *time.Time) ([]repository.MaterialConsumption, error) {
	return s.reportRepo.MaterialConsumption(startDate, endDate)
}
