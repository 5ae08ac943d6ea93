package repository

import (
	"github.com/prishaadesai/jewelry-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobFilter narrows job listings. Zero values mean "no filter".
type JobFilter struct {
	Status       model.JobStatus
	ItemCategory string
}

type JobRepository interface {
	Create(job *model.Job) error
	FindByID(id uuid.UUID) (*model.Job, error)
	FindByIDWithHistory(id uuid.UUID) (*model.Job, error)
	FindAll(filter JobFilter) ([]model.Job, error)
	Update(job *model.Job) error
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db}
}

func (r *jobRepo) Create(job *model.Job) error {
	return r.db.Create(job).Error
}

func (r *jobRepo) FindByID(id uuid.UUID) (*model.Job, error) {
	var job model.Job
	if err := r.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// FindByIDWithHistory loads the job with its full transaction history
// ordered by issue time ascending, workers included.
func (r *jobRepo) FindByIDWithHistory(id uuid.UUID) (*model.Job, error) {
	var job model.Job
	err := r.db.
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("transactions.issued_at ASC")
		}).
		Preload("Transactions.Worker").
		Preload("CurrentWorker").
		Preload("CreatedByUser").
		First(&job, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) FindAll(filter JobFilter) ([]model.Job, error) {
	query := r.db.Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ItemCategory != "" {
		query = query.Where("item_category = ?", filter.ItemCategory)
	}

	var jobs []model.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) Update(job *model.Job) error {
	return r.db.Save(job).Error
}
