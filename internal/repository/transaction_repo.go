package repository

import (
	"github.com/prishaadesai/jewelry-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindInProgressByWorker(workerID uuid.UUID) ([]model.Transaction, error)
	FindByJob(jobID uuid.UUID) ([]model.Transaction, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Job").Preload("Worker").First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// FindInProgressByWorker returns the worker's open assignments with job info.
func (r *transactionRepo) FindInProgressByWorker(workerID uuid.UUID) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Job").
		Where("worker_id = ? AND status = ?", workerID, model.TxInProgress).
		Order("issued_at ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByJob(jobID uuid.UUID) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Worker").
		Where("job_id = ?", jobID).
		Order("issued_at ASC").
		Find(&transactions).Error
	return transactions, err
}
