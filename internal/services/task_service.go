package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskdesk/taskdesk-be/internal/models"
)

// ErrTaskNotFound is returned when an update or delete matches no row.
var ErrTaskNotFound = errors.New("task not found")

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	CreateTask(ctx context.Context, task models.Task) (int64, error)
	GetAllTasks(ctx context.Context) ([]models.Task, error)
	UpdateTask(ctx context.Context, id int64, task models.Task) error
	DeleteTask(ctx context.Context, id int64) error
}

// TaskService provides CRUD over the task table.
type TaskService struct {
	db *sql.DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

// CreateTask inserts a task record and returns its generated ID.
func (s *TaskService) CreateTask(ctx context.Context, task models.Task) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks (name, age, phone, gender, email, role) VALUES (?, ?, ?, ?, ?, ?)",
		task.Name, task.Age, task.Phone, task.Gender, task.Email, task.Role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetAllTasks retrieves every task record.
func (s *TaskService) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, age, phone, gender, email, role FROM tasks ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Name, &task.Age, &task.Phone, &task.Gender, &task.Email, &task.Role); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTask overwrites all mutable fields of a task record.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, task models.Task) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET name=?, age=?, phone=?, gender=?, email=?, role=? WHERE id=?",
		task.Name, task.Age, task.Phone, task.Gender, task.Email, task.Role, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteTask removes a task record.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
