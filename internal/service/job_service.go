package service

import (
	"errors"
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

type JobService interface {
	CreateJob(req *CreateJobRequest, creator *model.User) (*model.Job, error)
	GetJobs(filter repository.JobFilter) ([]model.JobResponse, error)
	GetJob(id uuid.UUID) (*model.JobDetailResponse, error)
	UpdateJob(id uuid.UUID, req *UpdateJobRequest, updaterID string) (*model.Job, error)
	CancelJob(id uuid.UUID, updaterID string) (*model.Job, error)
	AssignJob(jobID uuid.UUID, req *AssignJobRequest, assignerID string) (*model.Transaction, error)
}

type CreateJobRequest struct {
	DesignNo      string  `json:"design_no" validate:"required,max=50"`
	ItemCategory  string  `json:"item_category" validate:"required,max=50"`
	InitialWeight float64 `json:"initial_weight" validate:"required,gt=0"`
	Description   string  `json:"description"`
}

// UpdateJobRequest covers job metadata only. Status and the loss totals are
// derived by the lifecycle and are not writable here.
type UpdateJobRequest struct {
	DesignNo     *string `json:"design_no" validate:"omitempty,max=50"`
	ItemCategory *string `json:"item_category" validate:"omitempty,max=50"`
	Description  *string `json:"description"`
}

type AssignJobRequest struct {
	WorkerID uuid.UUID   `json:"worker_id" validate:"uuid_required"`
	Stage    model.Stage `json:"stage" validate:"required,oneof=casting filing setting polishing"`
}

type jobService struct {
	jobRepo repository.JobRepository
	db      *gorm.DB
	hub     *ws.Hub
}

func NewJobService(jobRepo repository.JobRepository, db *gorm.DB, hub *ws.Hub) JobService {
	return &jobService{
		jobRepo: jobRepo,
		db:      db,
		hub:     hub,
	}
}

func (s *jobService) publish(eventType string, payload interface{}) {
	if s.hub != nil {
		s.hub.Publish(eventType, payload)
	}
}

func (s *jobService) CreateJob(req *CreateJobRequest, creator *model.User) (*model.Job, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	job := &model.Job{
		DesignNo:        req.DesignNo,
		ItemCategory:    req.ItemCategory,
		InitialWeight:   round3(req.InitialWeight),
		Status:          model.JobCreated,
		Description:     req.Description,
		CreatedByUserID: creator.ID,
	}
	job.CreatedBy = creator.ID.String()
	job.UpdatedBy = creator.ID.String()

	if err := s.jobRepo.Create(job); err != nil {
		return nil, err
	}

	s.publish("job_created", job.ToResponse())
	return job, nil
}

func (s *jobService) GetJobs(filter repository.JobFilter) ([]model.JobResponse, error) {
	if filter.Status != "" {
		switch filter.Status {
		case model.JobCreated, model.JobInProgress, model.JobPendingAssignment, model.JobCompleted, model.JobCancelled:
		default:
			return nil, apperror.Validation("unknown job status %q", filter.Status)
		}
	}

	jobs, err := s.jobRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	responses := make([]model.JobResponse, len(jobs))
	for i := range jobs {
		responses[i] = jobs[i].ToResponse()
	}
	return responses, nil
}

func (s *jobService) GetJob(id uuid.UUID) (*model.JobDetailResponse, error) {
	job, err := s.jobRepo.FindByIDWithHistory(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("job not found")
		}
		return nil, err
	}
	detail := job.ToDetailResponse()
	return &detail, nil
}

func (s *jobService) UpdateJob(id uuid.UUID, req *UpdateJobRequest, updaterID string) (*model.Job, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if req.DesignNo == nil && req.ItemCategory == nil && req.Description == nil {
		return nil, apperror.Validation("no update data provided")
	}

	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("job not found")
		}
		return nil, err
	}

	if req.DesignNo != nil {
		job.DesignNo = *req.DesignNo
	}
	if req.ItemCategory != nil {
		job.ItemCategory = *req.ItemCategory
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	job.UpdatedBy = updaterID

	if err := s.jobRepo.Update(job); err != nil {
		return nil, err
	}
	return job, nil
}

// CancelJob halts a job that has not finished production. Any open
// assignment is cancelled with it so the single-active-transaction
// invariant holds if the job is ever inspected afterwards.
func (s *jobService) CancelJob(id uuid.UUID, updaterID string) (*model.Job, error) {
	var cancelled *model.Job

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&job, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("job not found")
			}
			return err
		}

		if job.Status == model.JobCompleted {
			return apperror.Conflict("completed job cannot be cancelled")
		}
		if job.Status == model.JobCancelled {
			return apperror.Conflict("job is already cancelled")
		}

		err := tx.Model(&model.Transaction{}).
			Where("job_id = ? AND status = ?", job.ID, model.TxInProgress).
			Updates(map[string]interface{}{
				"status":     model.TxCancelled,
				"updated_by": updaterID,
			}).Error
		if err != nil {
			return err
		}

		job.Status = model.JobCancelled
		job.CurrentStage = nil
		job.CurrentWorkerID = nil
		job.UpdatedBy = updaterID
		if err := tx.Save(&job).Error; err != nil {
			return err
		}

		cancelled = &job
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("job_cancelled", cancelled.ToResponse())
	return cancelled, nil
}

// AssignJob opens a stage transaction for a worker. The whole flow runs in
// one database transaction with the job row locked, so two owners racing on
// the same job cannot both create an active assignment.
func (s *jobService) AssignJob(jobID uuid.UUID, req *AssignJobRequest, assignerID string) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	var created *model.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&job, "id = ?", jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("job not found")
			}
			return err
		}

		var open int64
		if err := tx.Model(&model.Transaction{}).
			Where("job_id = ? AND status = ?", job.ID, model.TxInProgress).
			Count(&open).Error; err != nil {
			return err
		}
		if err := assignGuard(&job, open); err != nil {
			return err
		}

		var lastCompleted *model.Transaction
		var last model.Transaction
		err := tx.Where("job_id = ? AND status = ?", job.ID, model.TxCompleted).
			Order("issued_at DESC").
			First(&last).Error
		if err == nil {
			lastCompleted = &last
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		expected, err := nextStage(lastCompleted)
		if err != nil {
			return err
		}
		if req.Stage != expected {
			return apperror.Validation("next stage for this job is %s, not %s", expected, req.Stage)
		}

		issuedWeight := issuedWeightFor(&job, lastCompleted)

		var worker model.User
		if err := tx.First(&worker, "id = ?", req.WorkerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("worker not found")
			}
			return err
		}
		if err := workerGuard(&worker, req.Stage); err != nil {
			return err
		}

		transaction := &model.Transaction{
			JobID:        job.ID,
			WorkerID:     worker.ID,
			Stage:        req.Stage,
			IssuedWeight: issuedWeight,
			IssuedAt:     time.Now(),
			Status:       model.TxInProgress,
		}
		transaction.CreatedBy = assignerID
		transaction.UpdatedBy = assignerID
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}

		stage := req.Stage
		job.Status = model.JobInProgress
		job.CurrentStage = &stage
		job.CurrentWorkerID = &worker.ID
		job.UpdatedBy = assignerID
		if err := tx.Save(&job).Error; err != nil {
			return err
		}

		transaction.Worker = &worker
		created = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("job_assigned", created.ToResponse())
	return created, nil
}

// nextStage returns the stage a job must be assigned next, given its last
// completed transaction. nil means nothing is completed yet.
func nextStage(lastCompleted *model.Transaction) (model.Stage, error) {
	if lastCompleted == nil {
		return model.StageCasting, nil
	}
	next, ok := lastCompleted.Stage.Next()
	if !ok {
		return "", apperror.Conflict("all production stages are already completed")
	}
	return next, nil
}

// assignGuard rejects assignment on a job whose lifecycle cannot take one.
// At most one transaction per job is in_progress at any time.
func assignGuard(job *model.Job, openAssignments int64) error {
	if job.Status == model.JobCompleted || job.Status == model.JobCancelled {
		return apperror.Conflict("job is %s and cannot be assigned", job.Status)
	}
	if openAssignments > 0 {
		return apperror.Conflict("job already has an active assignment")
	}
	return nil
}

// issuedWeightFor picks the weight handed to the next worker: the job's
// initial weight for the first stage, the prior stage's returned weight after.
func issuedWeightFor(job *model.Job, lastCompleted *model.Transaction) float64 {
	if lastCompleted == nil || lastCompleted.ReturnedWeight == nil {
		return job.InitialWeight
	}
	return *lastCompleted.ReturnedWeight
}

// workerGuard checks the worker can take the stage
func workerGuard(worker *model.User, stage model.Stage) error {
	if !worker.IsActive {
		return apperror.PermissionDenied("worker account is inactive")
	}
	if worker.Role != stage.RequiredRole() {
		return apperror.PermissionDenied("stage %s requires role %s, but %s is a %s",
			stage, stage.RequiredRole(), worker.Username, worker.Role)
	}
	return nil
}
