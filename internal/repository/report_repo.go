package repository

import (
	"math"
	"time"

	"github.com/prishaadesai/jewelry-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkerPerformance aggregates completed transactions per worker
type WorkerPerformance struct {
	WorkerID              uuid.UUID `json:"worker_id"`
	WorkerName            string    `json:"worker_name"`
	Role                  string    `json:"role"`
	TasksCompleted        int64     `json:"tasks_completed"`
	TotalIssuedWeight     float64   `json:"total_issued_weight"`
	TotalLoss             float64   `json:"total_loss"`
	AverageLossPercentage float64   `json:"average_loss_percentage"`
}

// JobSummary is the overall production overview
type JobSummary struct {
	TotalJobs             int64            `json:"total_jobs"`
	JobsByStatus          map[string]int64 `json:"jobs_by_status"`
	TotalInitialWeight    float64          `json:"total_initial_weight"`
	TotalLoss             float64          `json:"total_loss"`
	AverageLossPercentage float64          `json:"average_loss_percentage"`
}

// MaterialConsumption aggregates weight flow per item category
type MaterialConsumption struct {
	ItemCategory       string  `json:"item_category"`
	TotalJobs          int64   `json:"total_jobs"`
	TotalInitialWeight float64 `json:"total_initial_weight"`
	TotalIssuedWeight  float64 `json:"total_issued_weight"`
	TotalLoss          float64 `json:"total_loss"`
	LossPercentage     float64 `json:"loss_percentage"`
}

type ReportRepository interface {
	WorkerPerformance() ([]WorkerPerformance, error)
	JobSummary() (*JobSummary, error)
	MaterialConsumption(startDate, endDate *time.Time) ([]MaterialConsumption, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) WorkerPerformance() ([]WorkerPerformance, error) {
	var results []WorkerPerformance

	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			transactions.worker_id,
			users.full_name,
			users.role,
			COUNT(*) as tasks_completed,
			COALESCE(SUM(transactions.issued_weight), 0) as total_issued_weight,
			COALESCE(SUM(transactions.loss), 0) as total_loss,
			COALESCE(AVG(transactions.loss_percentage), 0) as average_loss_percentage
		`).
		Joins("JOIN users ON users.id = transactions.worker_id").
		Where("transactions.status = ?", model.TxCompleted).
		Group("transactions.worker_id, users.full_name, users.role").
		Order("average_loss_percentage ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row WorkerPerformance
		if err := rows.Scan(&row.WorkerID, &row.WorkerName, &row.Role,
			&row.TasksCompleted, &row.TotalIssuedWeight, &row.TotalLoss,
			&row.AverageLossPercentage); err != nil {
			return nil, err
		}
		row.AverageLossPercentage = roundPct(row.AverageLossPercentage)
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *reportRepo) JobSummary() (*JobSummary, error) {
	summary := &JobSummary{JobsByStatus: make(map[string]int64)}

	// Counts per status
	rows, err := r.db.Model(&model.Job{}).
		Select("status, COUNT(*)").
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		summary.JobsByStatus[status] = count
		summary.TotalJobs += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Weight totals
	err = r.db.Model(&model.Job{}).
		Select("COALESCE(SUM(initial_weight), 0), COALESCE(SUM(total_loss), 0)").
		Row().
		Scan(&summary.TotalInitialWeight, &summary.TotalLoss)
	if err != nil {
		return nil, err
	}

	if summary.TotalInitialWeight > 0 {
		summary.AverageLossPercentage = roundPct(summary.TotalLoss / summary.TotalInitialWeight * 100)
	}
	return summary, nil
}

func (r *reportRepo) MaterialConsumption(startDate, endDate *time.Time) ([]MaterialConsumption, error) {
	jobQuery := r.db.Model(&model.Job{}).
		Select(`
			item_category,
			COUNT(*) as total_jobs,
			COALESCE(SUM(initial_weight), 0) as total_initial_weight,
			COALESCE(SUM(total_loss), 0) as total_loss
		`).
		Group("item_category").
		Order("item_category ASC")
	if startDate != nil {
		jobQuery = jobQuery.Where("jobs.created_at >= ?", *startDate)
	}
	if endDate != nil {
		jobQuery = jobQuery.Where("jobs.created_at <= ?", *endDate)
	}

	rows, err := jobQuery.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MaterialConsumption
	index := make(map[string]int)
	for rows.Next() {
		var row MaterialConsumption
		if err := rows.Scan(&row.ItemCategory, &row.TotalJobs,
			&row.TotalInitialWeight, &row.TotalLoss); err != nil {
			return nil, err
		}
		if row.TotalInitialWeight > 0 {
			row.LossPercentage = roundPct(row.TotalLoss / row.TotalInitialWeight * 100)
		}
		index[row.ItemCategory] = len(results)
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Issued weight comes from the transactions side of the ledger
	issuedQuery := r.db.Model(&model.Transaction{}).
		Select("jobs.item_category, COALESCE(SUM(transactions.issued_weight), 0)").
		Joins("JOIN jobs ON jobs.id = transactions.job_id").
		Group("jobs.item_category")
	if startDate != nil {
		issuedQuery = issuedQuery.Where("jobs.created_at >= ?", *startDate)
	}
	if endDate != nil {
		issuedQuery = issuedQuery.Where("jobs.created_at <= ?", *endDate)
	}

	issuedRows, err := issuedQuery.Rows()
	if err != nil {
		return nil, err
	}
	defer issuedRows.Close()

	for issuedRows.Next() {
		var category string
		var issued float64
		if err := issuedRows.Scan(&category, &issued); err != nil {
			return nil, err
		}
		if i, ok := index[category]; ok {
			results[i].TotalIssuedWeight = issued
		}
	}
	return results, issuedRows.Err()
}

// Percentages are reported to 2 decimals, same as per-transaction loss.
func roundPct(v float64) float64 {
	return math.Round(v*100) / 100
}
