package handler

import (
	"github.com/prishaadesai/jewelry-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type WorkerHandler struct {
	taskService service.TaskService
}

func NewWorkerHandler(taskService service.TaskService) *WorkerHandler {
	return &WorkerHandler{taskService: taskService}
}

// GetTasks lists the caller's open assignments
// GET /api/worker/tasks
func (h *WorkerHandler) GetTasks(c *fiber.Ctx) error {
	workerID, err := currentUserID(c)
	if err != nil {
		return fail(c, err)
	}

	tasks, err := h.taskService.GetWorkerTasks(workerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tasks)
}

// CompleteTask closes the caller's active assignment with a returned weight
// POST /api/worker/complete-task
func (h *WorkerHandler) CompleteTask(c *fiber.Ctx) error {
	workerID, err := currentUserID(c)
	if err != nil {
		return fail(c, err)
	}

	var req service.CompleteTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.taskService.CompleteTask(workerID, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Task completed",
		"data":    transaction.ToResponse(),
	})
}
