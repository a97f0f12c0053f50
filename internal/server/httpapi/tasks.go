package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/labstack/echo/v4"
)

type createTaskRequest struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

type updateTaskRequest struct {
	Status *string `json:"status"`
	Title  *string `json:"title"`
}

// taskDTO is the wire shape of a task. The owner id stays server-side.
type taskDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTaskDTO(t *models.Task) taskDTO {
	return taskDTO{ID: t.ID, Title: t.Title, Status: t.Status, CreatedAt: t.CreatedAt}
}

func (s *Server) createTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()
	task, err := s.tasks.Create(ctx, userID(c), req.Title, req.Status)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return fail(c, http.StatusBadRequest, validationMessage(err))
		}
		s.logger.Error(ctx, "create task failed", "err", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return ok(c, http.StatusCreated, "Task created successfully", echo.Map{"task": toTaskDTO(task)})
}

func (s *Server) listTasks(c echo.Context) error {
	ctx := c.Request().Context()
	tasks, err := s.tasks.List(ctx, userID(c))
	if err != nil {
		s.logger.Error(ctx, "list tasks failed", "err", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	dtos := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, toTaskDTO(t))
	}

	return ok(c, http.StatusOK, "Tasks retrieved successfully", echo.Map{
		"tasks": dtos,
		"count": len(dtos),
	})
}

func (s *Server) updateTask(c echo.Context) error {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusNotFound, "Task not found")
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()
	task, err := s.tasks.Update(ctx, userID(c), taskID, req.Status, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return fail(c, http.StatusBadRequest, validationMessage(err))
		case errors.Is(err, common.ErrorNotFound):
			return fail(c, http.StatusNotFound, "Task not found")
		default:
			s.logger.Error(ctx, "update task failed", "err", err.Error())
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	return ok(c, http.StatusOK, "Task updated successfully", echo.Map{"task": toTaskDTO(task)})
}

func (s *Server) deleteTask(c echo.Context) error {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusNotFound, "Task not found")
	}

	ctx := c.Request().Context()
	if err := s.tasks.Delete(ctx, userID(c), taskID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail(c, http.StatusNotFound, "Task not found")
		}
		s.logger.Error(ctx, "delete task failed", "err", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return ok(c, http.StatusOK, "Task deleted successfully", nil)
}

func (s *Server) taskAnalytics(c echo.Context) error {
	ctx := c.Request().Context()
	analytics, err := s.tasks.Analytics(ctx, userID(c))
	if err != nil {
		s.logger.Error(ctx, "task analytics failed", "err", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return ok(c, http.StatusOK, "Task analytics retrieved successfully", analytics)
}
