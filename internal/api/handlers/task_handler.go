package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/taskdesk/taskdesk-be/internal/models"
	"github.com/taskdesk/taskdesk-be/internal/services"
)

// TaskHandler handles HTTP requests for task records.
type TaskHandler struct {
	service services.TaskServiceProvider
	events  services.EventServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider, events services.EventServiceProvider) *TaskHandler {
	return &TaskHandler{service: service, events: events}
}

// Create handles inserting a new task record.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	id, err := h.service.CreateTask(ctx, task)
	if err != nil {
		log.Error().Err(err).Msg("Failed to insert task")
		respondError(w, http.StatusInternalServerError, "Database insert error")
		return
	}

	h.record("task.created", fmt.Sprintf("Task %d created", id))
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task added successfully",
		"id":      id,
	})
}

// GetAll handles listing every task record.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	tasks, err := h.service.GetAllTasks(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch tasks")
		respondError(w, http.StatusInternalServerError, "Database fetch error")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// Update handles overwriting a task record.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := h.service.UpdateTask(ctx, id, task); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "Task not found")
			return
		}
		log.Error().Err(err).Int64("task_id", id).Msg("Failed to update task")
		respondError(w, http.StatusInternalServerError, "Database update error")
		return
	}

	h.record("task.updated", fmt.Sprintf("Task %d updated", id))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Task updated successfully"})
}

// Delete handles removing a task record.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := h.service.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "Task not found")
			return
		}
		log.Error().Err(err).Int64("task_id", id).Msg("Failed to delete task")
		respondError(w, http.StatusInternalServerError, "Database delete error")
		return
	}

	h.record("task.deleted", fmt.Sprintf("Task %d deleted", id))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (h *TaskHandler) record(eventType, message string) {
	if h.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := h.events.Record(ctx, eventType, "info", message); err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record audit event")
	}
}
