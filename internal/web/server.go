// Package web serves the to-do list as HTML pages.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/balkashynov/todoweb/internal/db"
	"github.com/balkashynov/todoweb/internal/models"
	"github.com/balkashynov/todoweb/internal/sortmode"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"index", "add", "save", "error"}

// TaskStore is the persistence contract the handlers need.
type TaskStore interface {
	CreateTask(ctx context.Context, req db.CreateTaskRequest) (*models.Task, error)
	ListTasks(ctx context.Context, mode sortmode.Mode) ([]models.Task, error)
	GetTasksByDate(ctx context.Context, mode sortmode.Mode) ([]models.Task, error)
	MarkTaskDone(ctx context.Context, id uint) (*models.Task, error)
	DeleteTask(ctx context.Context, id uint) error
	CountTasks(ctx context.Context) (int64, error)
}

// Server is the HTTP server for the to-do list.
type Server struct {
	tasks  TaskStore
	sort   *sortmode.State
	logger *log.Logger
	pages  map[string]*template.Template
	mux    *http.ServeMux
}

// New creates a new Server.
func New(tasks TaskStore, sort *sortmode.State, logger *log.Logger) (*Server, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	s := &Server{
		tasks:  tasks,
		sort:   sort,
		logger: logger,
		pages:  pages,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start).Round(time.Microsecond))
}

func (s *Server) routes() {
	// Pages
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /add", s.handleAddForm)
	s.mux.HandleFunc("POST /add", s.handleAddSubmit)
	s.mux.HandleFunc("GET /done/{task_id}", s.handleDone)
	s.mux.HandleFunc("GET /delete/{task_id}", s.handleDelete)
	s.mux.HandleFunc("GET /sort/{order}", s.handleSort)
	s.mux.HandleFunc("GET /save", s.handleSaveForm)
	s.mux.HandleFunc("POST /save", s.handleSaveSubmit)

	// JSON
	s.mux.HandleFunc("GET /api/tasks", s.handleTaskList)
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("render template", "page", page, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

type errorPage struct {
	Status  int
	Title   string
	Message string
}

func (s *Server) renderError(w http.ResponseWriter, status int, msg string) {
	s.render(w, status, "error", errorPage{
		Status:  status,
		Title:   http.StatusText(status),
		Message: msg,
	})
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
