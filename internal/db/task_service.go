package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/todoweb/internal/models"
	"github.com/balkashynov/todoweb/internal/sortmode"
)

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Action   string
	Date     string
	Priority bool
}

// CreateTask inserts a new, not yet done task
func (s *Store) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	task := models.Task{
		Action:   req.Action,
		Date:     req.Date,
		Priority: req.Priority,
		Done:     false,
	}

	if err := s.DB.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, &StorageError{Op: "create task", Err: err}
	}

	return &task, nil
}

// GetTasks retrieves every task in storage order
func (s *Store) GetTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task

	if err := s.DB.WithContext(ctx).Find(&tasks).Error; err != nil {
		return nil, &StorageError{Op: "list tasks", Err: err}
	}

	return tasks, nil
}

// GetTasksByDate retrieves every task ordered by its date text.
// Ties fall back to id in the same direction.
func (s *Store) GetTasksByDate(ctx context.Context, mode sortmode.Mode) ([]models.Task, error) {
	var order string
	switch mode {
	case sortmode.Ascending:
		order = "date ASC, id ASC"
	case sortmode.Descending:
		order = "date DESC, id DESC"
	default:
		return nil, fmt.Errorf("list tasks by date: unsupported mode %s", mode)
	}

	var tasks []models.Task
	if err := s.DB.WithContext(ctx).Order(order).Find(&tasks).Error; err != nil {
		return nil, &StorageError{Op: "list tasks by date", Err: err}
	}

	return tasks, nil
}

// ListTasks retrieves tasks in the given display mode
func (s *Store) ListTasks(ctx context.Context, mode sortmode.Mode) ([]models.Task, error) {
	if mode == sortmode.Unsorted {
		return s.GetTasks(ctx)
	}
	return s.GetTasksByDate(ctx, mode)
}

// GetTaskByID retrieves a task by ID
func (s *Store) GetTaskByID(ctx context.Context, id uint) (*models.Task, error) {
	return getTask(s.DB.WithContext(ctx), id)
}

func getTask(tx *gorm.DB, id uint) (*models.Task, error) {
	var task models.Task

	err := tx.First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, &StorageError{Op: "get task", Err: err}
	}

	return &task, nil
}

// MarkTaskDone marks a task as completed. Already completed tasks are
// returned unchanged.
func (s *Store) MarkTaskDone(ctx context.Context, id uint) (*models.Task, error) {
	var task *models.Task

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		task, err = getTask(tx, id)
		if err != nil {
			return err
		}
		if task.Done {
			return nil
		}

		if err := tx.Model(task).Update("done", true).Error; err != nil {
			return &StorageError{Op: "mark task done", Err: err}
		}
		task.Done = true
		return nil
	})
	if err != nil {
		return nil, wrapTx("mark task done", err)
	}

	return task, nil
}

// DeleteTask permanently removes a task
func (s *Store) DeleteTask(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := getTask(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Delete(task).Error; err != nil {
			return &StorageError{Op: "delete task", Err: err}
		}
		return nil
	})

	return wrapTx("delete task", err)
}

// CountTasks returns the number of stored tasks
func (s *Store) CountTasks(ctx context.Context) (int64, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.Task{}).Count(&n).Error; err != nil {
		return 0, &StorageError{Op: "count tasks", Err: err}
	}
	return n, nil
}

// wrapTx passes domain errors through and wraps commit failures
func wrapTx(op string, err error) error {
	if err == nil {
		return nil
	}
	var storageErr *StorageError
	if errors.Is(err, ErrTaskNotFound) || errors.As(err, &storageErr) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
