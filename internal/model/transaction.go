package model

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus tracks a stage assignment from issue to return
type TransactionStatus string

const (
	TxInProgress TransactionStatus = "in_progress"
	TxCompleted  TransactionStatus = "completed"
	TxCancelled  TransactionStatus = "cancelled"
)

// Transaction records material issued to a worker for one production stage.
// ReturnedWeight, Loss, LossPercentage and ReturnedAt stay nil until the
// worker completes the task. Invariant: at most one transaction per job is
// in_progress at any time.
type Transaction struct {
	BaseModel
	JobID    uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	Job      *Job      `gorm:"foreignKey:JobID" json:"job,omitempty"`
	WorkerID uuid.UUID `gorm:"type:uuid;not null;index" json:"worker_id"`
	Worker   *User     `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`

	Stage          Stage             `gorm:"type:varchar(20);not null" json:"stage"`
	IssuedWeight   float64           `gorm:"not null;check:issued_weight > 0" json:"issued_weight"`
	ReturnedWeight *float64          `json:"returned_weight"`
	Loss           *float64          `json:"loss"`
	LossPercentage *float64          `json:"loss_percentage"`
	IssuedAt       time.Time         `gorm:"not null;index" json:"issued_at"`
	ReturnedAt     *time.Time        `json:"returned_at"`
	Status         TransactionStatus `gorm:"type:varchar(20);not null;default:'in_progress'" json:"status"`
	Notes          string            `gorm:"type:text" json:"notes"`
}

// TransactionResponse for API responses, with worker identity flattened in
type TransactionResponse struct {
	ID             uuid.UUID         `json:"id"`
	JobID          uuid.UUID         `json:"job_id"`
	WorkerID       uuid.UUID         `json:"worker_id"`
	WorkerName     string            `json:"worker_name,omitempty"`
	WorkerRole     Role              `json:"worker_role,omitempty"`
	Stage          Stage             `json:"stage"`
	IssuedWeight   float64           `json:"issued_weight"`
	ReturnedWeight *float64          `json:"returned_weight"`
	Loss           *float64          `json:"loss"`
	LossPercentage *float64          `json:"loss_percentage"`
	IssuedAt       time.Time         `json:"issued_at"`
	ReturnedAt     *time.Time        `json:"returned_at"`
	Status         TransactionStatus `json:"status"`
	Notes          string            `json:"notes,omitempty"`
}

// ToResponse converts Transaction to TransactionResponse
func (t *Transaction) ToResponse() TransactionResponse {
	response := TransactionResponse{
		ID:             t.ID,
		JobID:          t.JobID,
		WorkerID:       t.WorkerID,
		Stage:          t.Stage,
		IssuedWeight:   t.IssuedWeight,
		ReturnedWeight: t.ReturnedWeight,
		Loss:           t.Loss,
		LossPercentage: t.LossPercentage,
		IssuedAt:       t.IssuedAt,
		ReturnedAt:     t.ReturnedAt,
		Status:         t.Status,
		Notes:          t.Notes,
	}
	if t.Worker != nil {
		response.WorkerName = t.Worker.FullName
		response.WorkerRole = t.Worker.Role
	}
	return response
}
