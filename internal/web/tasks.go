package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/balkashynov/todoweb/internal/db"
	"github.com/balkashynov/todoweb/internal/export"
	"github.com/balkashynov/todoweb/internal/models"
	"github.com/balkashynov/todoweb/internal/sortmode"
)

// ExcludedExportFields are left out of files written by /save
var ExcludedExportFields = []string{"id"}

type indexPage struct {
	Tasks []models.Task
	Sort  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	mode := s.sort.Current()
	tasks, err := s.tasks.ListTasks(r.Context(), mode)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, http.StatusOK, "index", indexPage{Tasks: tasks, Sort: mode.String()})
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "add", nil)
}

func (s *Server) handleAddSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.Debug("add: unreadable form", "err", err)
		redirectHome(w, r)
		return
	}

	action := strings.TrimSpace(r.PostFormValue("action"))
	if action == "" {
		// invalid submissions go back to the list without feedback
		s.logger.Debug("add: empty action ignored")
		redirectHome(w, r)
		return
	}

	task, err := s.tasks.CreateTask(r.Context(), db.CreateTaskRequest{
		Action:   action,
		Date:     r.PostFormValue("date"),
		Priority: r.PostFormValue("priority") != "",
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	s.logger.Info("task created", "id", task.ID, "priority", task.Priority)
	redirectHome(w, r)
}

func (s *Server) handleDone(w http.ResponseWriter, r *http.Request) {
	id, ok := s.taskID(w, r)
	if !ok {
		return
	}
	if _, err := s.tasks.MarkTaskDone(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Info("task done", "id", id)
	redirectHome(w, r)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.taskID(w, r)
	if !ok {
		return
	}
	if err := s.tasks.DeleteTask(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Info("task deleted", "id", id)
	redirectHome(w, r)
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	order := r.PathValue("order")
	if s.sort.SetLabel(order) {
		s.logger.Info("sort changed", "order", order, "mode", s.sort.Current())
	} else {
		s.logger.Debug("sort: unknown order ignored", "order", order)
	}
	redirectHome(w, r)
}

func (s *Server) handleSaveForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "save", nil)
}

func (s *Server) handleSaveSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.Debug("save: unreadable form", "err", err)
		redirectHome(w, r)
		return
	}

	filename := strings.TrimSpace(r.PostFormValue("filename"))
	if filename == "" {
		s.logger.Debug("save: empty filename ignored")
		redirectHome(w, r)
		return
	}

	tasks, err := s.tasks.GetTasksByDate(r.Context(), sortmode.Descending)
	if err != nil {
		s.fail(w, err)
		return
	}

	content, err := export.Export(models.Records(tasks), ExcludedExportFields...)
	if errors.Is(err, export.ErrEmptyInput) {
		s.logger.Info("save: no tasks to export", "file", filename)
		redirectHome(w, r)
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	if err := export.AppendFile(filename, content); err != nil {
		s.fail(w, err)
		return
	}

	s.logger.Info("tasks exported", "file", filename, "count", len(tasks))
	redirectHome(w, r)
}

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.ListTasks(r.Context(), s.sort.Current())
	if err != nil {
		s.logger.Error("list tasks", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.tasks.CountTasks(r.Context())
	if err != nil {
		s.logger.Error("health check", "err", err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"tasks":  n,
		"sort":   s.sort.Current().String(),
	})
}

// taskID parses the task_id path value, rendering a 404 when it is not an id
func (s *Server) taskID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := r.PathValue("task_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		s.renderError(w, http.StatusNotFound, fmt.Sprintf("Task %q not found.", raw))
		return 0, false
	}
	return uint(id), true
}

// fail maps an operation error to an error page
func (s *Server) fail(w http.ResponseWriter, err error) {
	var fwErr *export.FileWriteError
	switch {
	case errors.Is(err, db.ErrTaskNotFound):
		s.logger.Warn("task not found", "err", err)
		s.renderError(w, http.StatusNotFound, "That task does not exist.")
	case errors.As(err, &fwErr):
		s.logger.Error("export failed", "file", fwErr.Path, "err", fwErr.Err)
		s.renderError(w, http.StatusInternalServerError, fmt.Sprintf("Could not write %s: %v", fwErr.Path, fwErr.Err))
	default:
		s.logger.Error("request failed", "err", err)
		s.renderError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
