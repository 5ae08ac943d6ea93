package service

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prishaadesai/jewelry-backend/internal/model"
	"github.com/prishaadesai/jewelry-backend/internal/repository"
	"github.com/prishaadesai/jewelry-backend/internal/ws"
	"github.com/prishaadesai/jewelry-backend/pkg/apperror"
	"github.com/prishaadesai/jewelry-backend/pkg/validator"
)

type TaskService interface {
	GetWorkerTasks(workerID uuid.UUID) ([]WorkerTaskResponse, error)
	CompleteTask(workerID uuid.UUID, req *CompleteTaskRequest) (*model.Transaction, error)
}

// WorkerTaskResponse is a worker's view of an open assignment
type WorkerTaskResponse struct {
	TransactionID uuid.UUID   `json:"transaction_id"`
	JobID         uuid.UUID   `json:"job_id"`
	DesignNo      string      `json:"design_no"`
	ItemCategory  string      `json:"item_category"`
	Stage         model.Stage `json:"stage"`
	IssuedWeight  float64     `json:"issued_weight"`
	IssuedAt      time.Time   `json:"issued_at"`
}

type CompleteTaskRequest struct {
	TransactionID  uuid.UUID `json:"transaction_id" validate:"uuid_required"`
	ReturnedWeight float64   `json:"returned_weight"`
	Notes          string    `json:"notes"`
}

type taskService struct {
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	hub             *ws.Hub
}

func NewTaskService(transactionRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub) TaskService {
	return &taskService{
		transactionRepo: transactionRepo,
		db:              db,
		hub:             hub,
	}
}

func (s *taskService) GetWorkerTasks(workerID uuid.UUID) ([]WorkerTaskResponse, error) {
	transactions, err := s.transactionRepo.FindInProgressByWorker(workerID)
	if err != nil {
		return nil, err
	}

	tasks := make([]WorkerTaskResponse, 0, len(transactions))
	for _, transaction := range transactions {
		task := WorkerTaskResponse{
			TransactionID: transaction.ID,
			JobID:         transaction.JobID,
			Stage:         transaction.Stage,
			IssuedWeight:  transaction.IssuedWeight,
			IssuedAt:      transaction.IssuedAt,
		}
		if transaction.Job != nil {
			task.DesignNo = transaction.Job.DesignNo
			task.ItemCategory = transaction.Job.ItemCategory
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// CompleteTask closes a worker's active assignment: records the returned
// weight, computes the stage loss, and recalculates the parent job's totals.
// The whole update is one database transaction so a crash cannot leave the
// transaction closed but the job totals stale.
func (s *taskService) CompleteTask(workerID uuid.UUID, req *CompleteTaskRequest) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	var completed *model.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var transaction model.Transaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&transaction, "id = ?", req.TransactionID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("transaction not found or not assigned to you")
			}
			return err
		}
		if err := completionGuard(&transaction, workerID); err != nil {
			return err
		}

		returnedWeight := round3(req.ReturnedWeight)
		loss, lossPercentage, err := computeLoss(transaction.IssuedWeight, returnedWeight)
		if err != nil {
			return err
		}

		now := time.Now()
		transaction.ReturnedWeight = &returnedWeight
		transaction.Loss = &loss
		transaction.LossPercentage = &lossPercentage
		transaction.ReturnedAt = &now
		transaction.Status = model.TxCompleted
		transaction.Notes = req.Notes
		transaction.UpdatedBy = workerID.String()
		if err := tx.Save(&transaction).Error; err != nil {
			return err
		}

		var job model.Job
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&job, "id = ?", transaction.JobID).Error; err != nil {
			return err
		}

		// Recompute from the ledger rather than incrementing, so replayed
		// or repaired transactions can never double-count
		var totalLoss float64
		err = tx.Model(&model.Transaction{}).
			Where("job_id = ? AND status = ?", job.ID, model.TxCompleted).
			Select("COALESCE(SUM(loss), 0)").
			Scan(&totalLoss).Error
		if err != nil {
			return err
		}

		job.TotalLoss = round3(totalLoss)
		job.LossPercentage = round2(totalLoss / job.InitialWeight * 100)
		job.CurrentStage = nil
		job.CurrentWorkerID = nil
		job.Status = jobStatusAfter(transaction.Stage)
		job.UpdatedBy = workerID.String()
		if err := tx.Save(&job).Error; err != nil {
			return err
		}

		completed = &transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Publish("task_completed", completed.ToResponse())
	}
	return completed, nil
}

// completionGuard validates that a worker may close this transaction.
// Someone else's transaction reads as missing rather than forbidden.
func completionGuard(transaction *model.Transaction, workerID uuid.UUID) error {
	if transaction.WorkerID != workerID {
		return apperror.NotFound("transaction not found or not assigned to you")
	}
	switch transaction.Status {
	case model.TxCompleted:
		return apperror.Conflict("task is already completed")
	case model.TxCancelled:
		return apperror.Conflict("task was cancelled")
	}
	return nil
}

// jobStatusAfter returns the job's status once a stage transaction completes
func jobStatusAfter(stage model.Stage) model.JobStatus {
	if stage.IsFinal() {
		return model.JobCompleted
	}
	return model.JobPendingAssignment
}

// computeLoss derives the stage loss from issued and returned weights.
// Returned weight above issued is rejected, not clamped: the data layer
// should never record a negative loss.
func computeLoss(issuedWeight, returnedWeight float64) (loss, lossPercentage float64, err error) {
	if returnedWeight < 0 {
		return 0, 0, apperror.Validation("returned weight cannot be negative")
	}
	if returnedWeight > issuedWeight {
		return 0, 0, apperror.Validation("returned weight cannot exceed issued weight (%.3f)", issuedWeight)
	}

	loss = round3(issuedWeight - returnedWeight)
	if issuedWeight > 0 {
		lossPercentage = round2(loss / issuedWeight * 100)
	}
	return loss, lossPercentage, nil
}

// Weights are tracked to milligram precision, percentages to 2 decimals.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
