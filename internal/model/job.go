package model

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus tracks a job through its production lifecycle
type JobStatus string

const (
	JobCreated           JobStatus = "created"
	JobInProgress        JobStatus = "in_progress"
	JobPendingAssignment JobStatus = "pending_assignment"
	JobCompleted         JobStatus = "completed"
	JobCancelled         JobStatus = "cancelled"
)

// Job is a single piece of jewelry moving through the production stages.
// TotalLoss and LossPercentage are derived from completed transactions and
// never written directly by API callers. Invariant: TotalLoss never exceeds
// InitialWeight while transactions are completed through the API.
type Job struct {
	BaseModel
	DesignNo       string     `gorm:"type:varchar(50);not null" json:"design_no" validate:"required,max=50"`
	ItemCategory   string     `gorm:"type:varchar(50);not null" json:"item_category" validate:"required,max=50"`
	InitialWeight  float64    `gorm:"not null;check:initial_weight > 0" json:"initial_weight" validate:"required,gt=0"`
	TotalLoss      float64    `gorm:"not null;default:0;check:total_loss >= 0" json:"total_loss"`
	LossPercentage float64    `gorm:"not null;default:0" json:"loss_percentage"`
	Status         JobStatus  `gorm:"type:varchar(20);not null;default:'created'" json:"status"`
	CurrentStage   *Stage     `gorm:"type:varchar(20)" json:"current_stage"`
	Description    string     `gorm:"type:text" json:"description"`

	CurrentWorkerID *uuid.UUID `gorm:"type:uuid" json:"current_worker_id"`
	CurrentWorker   *User      `gorm:"foreignKey:CurrentWorkerID" json:"current_worker,omitempty"`
	CreatedByUserID uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_user_id"`
	CreatedByUser   *User      `gorm:"foreignKey:CreatedByUserID" json:"created_by_user,omitempty"`

	Transactions []Transaction `gorm:"constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

// JobResponse for API responses
type JobResponse struct {
	ID              uuid.UUID  `json:"id"`
	DesignNo        string     `json:"design_no"`
	ItemCategory    string     `json:"item_category"`
	InitialWeight   float64    `json:"initial_weight"`
	TotalLoss       float64    `json:"total_loss"`
	LossPercentage  float64    `json:"loss_percentage"`
	Status          JobStatus  `json:"status"`
	CurrentStage    *Stage     `json:"current_stage"`
	CurrentWorkerID *uuid.UUID `json:"current_worker_id"`
	CreatedByUserID uuid.UUID  `json:"created_by_user_id"`
	CreatedAt       time.Time  `json:"created_at"`
	Description     string     `json:"description,omitempty"`
}

// JobDetailResponse includes the job's full transaction history,
// ordered by issue time ascending.
type JobDetailResponse struct {
	JobResponse
	Transactions []TransactionResponse `json:"transactions"`
}

// ToResponse converts Job to JobResponse
func (j *Job) ToResponse() JobResponse {
	return JobResponse{
		ID:              j.ID,
		DesignNo:        j.DesignNo,
		ItemCategory:    j.ItemCategory,
		InitialWeight:   j.InitialWeight,
		TotalLoss:       j.TotalLoss,
		LossPercentage:  j.LossPercentage,
		Status:          j.Status,
		CurrentStage:    j.CurrentStage,
		CurrentWorkerID: j.CurrentWorkerID,
		CreatedByUserID: j.CreatedByUserID,
		CreatedAt:       j.CreatedAt,
		Description:     j.Description,
	}
}

// ToDetailResponse converts Job and its preloaded transactions
func (j *Job) ToDetailResponse() JobDetailResponse {
	detail := JobDetailResponse{
		JobResponse:  j.ToResponse(),
		Transactions: make([]TransactionResponse, len(j.Transactions)),
	}
	for i := range j.Transactions {
		detail.Transactions[i] = j.Transactions[i].ToResponse()
	}
	return detail
}
