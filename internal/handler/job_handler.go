package handler

import (
	"github.com/prishaadesai/jewelry-backend/internal/model"
	"github.com/prishaadesai/jewelry-backend/internal/repository"
	"github.com/prishaadesai/jewelry-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type JobHandler struct {
	jobService service.JobService
	userRepo   repository.UserRepository
}

func NewJobHandler(jobService service.JobService, userRepo repository.UserRepository) *JobHandler {
	return &JobHandler{jobService: jobService, userRepo: userRepo}
}

// CreateJob opens a new production job
// POST /api/jobs
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	var req service.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	creatorID, err := currentUserID(c)
	if err != nil {
		return fail(c, err)
	}
	creator, err := h.userRepo.FindByID(creatorID)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "User not found"})
	}

	job, err := h.jobService.CreateJob(&req, creator)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Job created successfully",
		"data":    job.ToResponse(),
	})
}

// GetJobs lists jobs, optionally filtered by status and item category
// GET /api/jobs?status=&item_category=
func (h *JobHandler) GetJobs(c *fiber.Ctx) error {
	filter := repository.JobFilter{
		Status:       model.JobStatus(c.Query("status")),
		ItemCategory: c.Query("item_category"),
	}

	jobs, err := h.jobService.GetJobs(filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(jobs)
}

// GetJob returns a job with its full transaction history
// GET /api/jobs/:id
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	job, err := h.jobService.GetJob(jobID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(job)
}

// UpdateJob updates job metadata (never the derived loss fields)
// PUT /api/jobs/:id
func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	var req service.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updaterID, err := currentUserID(c)
	if err != nil {
		return fail(c, err)
	}

	job, err := h.jobService.UpdateJob(jobID, &req, updaterID.String())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Job updated successfully",
		"data":    job.ToResponse(),
	})
}

// CancelJob halts an unfinished job
// POST /api/jobs/:id/cancel
func (h *JobHandler) CancelJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	updaterID, err := currentUserID(c)
	if err != nil {
		return fail(c, err)
	}

	job, err := h.jobService.CancelJob(jobID, updaterID.String())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Job cancelled",
		"data":    job.ToResponse(),
	})
}

// AssignJob assigns the job's next stage to a worker
// POST /api/jobs/:id/assign
func (h *JobHandler) AssignJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	var req service.AssignJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	assignerID, err := currentUserID(c)
	if err != nil {
		return fail(c, err)
	}

	transaction, err := h.jobService.AssignJob(jobID, &req, assignerID.String())
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Job assigned",
		"data":    transaction.ToResponse(),
	})
}
