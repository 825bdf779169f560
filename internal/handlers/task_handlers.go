package handlers

import (
	"net/http"
	"time"

	"taskboard/internal/handlers/dto"
	"taskboard/internal/logger"
	"taskboard/internal/service"

	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService TaskService
}

func NewTaskHandler(taskService TaskService) TaskHandler {
	return TaskHandler{TaskService: taskService}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	filter, errs := taskFilter(r)
	if len(errs) > 0 {
		handleError(w, r, service.NewValidationError(errs...), "list_tasks")
		return
	}

	list, err := h.TaskService.List(r.Context(), id, filter)
	if err != nil {
		handleError(w, r, err, "list_tasks")
		return
	}
	responseOK(w, http.StatusOK, "", dto.FromTaskPage(list))
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	t, err := h.TaskService.Create(r.Context(), id, req.Draft())
	if err != nil {
		handleError(w, r, err, "create_task")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", t.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseOK(w, http.StatusCreated, "Task created successfully", object{"task": dto.FromTask(t)})
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	t, err := h.TaskService.Get(r.Context(), id, taskID)
	if err != nil {
		handleError(w, r, err, "get_task")
		return
	}
	responseOK(w, http.StatusOK, "", object{"task": dto.FromTask(t)})
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := caller(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	t, err := h.TaskService.Update(r.Context(), id, taskID, req.Patch())
	if err != nil {
		handleError(w, r, err, "update_task")
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", taskID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseOK(w, http.StatusOK, "Task updated successfully", object{"task": dto.FromTask(t)})
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.TaskService.Delete(r.Context(), id, taskID); err != nil {
		handleError(w, r, err, "delete_task")
		return
	}
	responseOK(w, http.StatusOK, "Task deleted successfully", nil)
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	stats, err := h.TaskService.Stats(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "task_stats")
		return
	}
	responseOK(w, http.StatusOK, "", object{"stats": stats})
}
