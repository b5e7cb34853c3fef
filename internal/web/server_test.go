package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/balkashynov/todoweb/internal/db"
	"github.com/balkashynov/todoweb/internal/logging"
	"github.com/balkashynov/todoweb/internal/models"
	"github.com/balkashynov/todoweb/internal/sortmode"
)

type testEnv struct {
	store  *db.Store
	sort   *sortmode.State
	server *Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "todo.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	state := &sortmode.State{}
	server, err := New(store, state, logging.Discard())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return &testEnv{store: store, sort: state, server: server}
}

func (e *testEnv) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) create(t *testing.T, action, date string) *models.Task {
	t.Helper()
	task, err := e.store.CreateTask(context.Background(), db.CreateTaskRequest{Action: action, Date: date})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	return task
}

func assertRedirectHome(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}
}

func TestIndex(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Nothing to do") {
		t.Errorf("expected empty state, got %s", rec.Body.String())
	}

	env.create(t, "walk <dog>", "2024-01-01")
	rec = env.do(t, http.MethodGet, "/", nil)
	body := rec.Body.String()
	if !strings.Contains(body, "walk &lt;dog&gt;") {
		t.Errorf("expected escaped task action in body, got %s", body)
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestAddForm(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/add", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `name="action"`) {
		t.Errorf("expected action field in form")
	}
}

func TestAddSubmit(t *testing.T) {
	t.Run("creates task", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/add", url.Values{
			"action":   {"buy milk"},
			"date":     {"2024-01-01"},
			"priority": {"y"},
		})
		assertRedirectHome(t, rec)

		tasks, _ := env.store.GetTasks(context.Background())
		if len(tasks) != 1 {
			t.Fatalf("expected 1 task, got %d", len(tasks))
		}
		got := tasks[0]
		if got.Action != "buy milk" || got.Date != "2024-01-01" || !got.Priority || got.Done {
			t.Errorf("unexpected task: %+v", got)
		}
	})

	t.Run("done field in form is ignored", func(t *testing.T) {
		env := newTestEnv(t)
		env.do(t, http.MethodPost, "/add", url.Values{"action": {"x"}, "done": {"y"}})

		tasks, _ := env.store.GetTasks(context.Background())
		if len(tasks) != 1 || tasks[0].Done {
			t.Errorf("expected one not-done task, got %+v", tasks)
		}
	})

	t.Run("empty action silently redirects", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/add", url.Values{"action": {"  "}, "date": {"2024-01-01"}})
		assertRedirectHome(t, rec)

		n, _ := env.store.CountTasks(context.Background())
		if n != 0 {
			t.Errorf("expected no tasks, got %d", n)
		}
	})
}

func TestDone(t *testing.T) {
	env := newTestEnv(t)
	task := env.create(t, "a", "d")

	assertRedirectHome(t, env.do(t, http.MethodGet, "/done/"+itoa(task.ID), nil))
	assertRedirectHome(t, env.do(t, http.MethodGet, "/done/"+itoa(task.ID), nil))

	got, err := env.store.GetTaskByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID failed: %v", err)
	}
	if !got.Done {
		t.Error("expected task to be done")
	}

	for _, target := range []string{"/done/999", "/done/abc", "/done/-1"} {
		rec := env.do(t, http.MethodGet, target, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", target, rec.Code)
		}
	}
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	task := env.create(t, "a", "d")

	assertRedirectHome(t, env.do(t, http.MethodGet, "/delete/"+itoa(task.ID), nil))

	n, _ := env.store.CountTasks(context.Background())
	if n != 0 {
		t.Errorf("expected task removed, %d left", n)
	}

	rec := env.do(t, http.MethodGet, "/delete/"+itoa(task.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestSort(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "older", "2023-05-05")
	env.create(t, "newer", "2024-01-01")

	tests := []struct {
		order string
		mode  sortmode.Mode
		first string
	}{
		{"up", sortmode.Descending, "newer"},
		{"down", sortmode.Ascending, "older"},
		{"sideways", sortmode.Ascending, "older"},
	}
	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			assertRedirectHome(t, env.do(t, http.MethodGet, "/sort/"+tt.order, nil))
			if got := env.sort.Current(); got != tt.mode {
				t.Fatalf("expected mode %v, got %v", tt.mode, got)
			}

			body := env.do(t, http.MethodGet, "/", nil).Body.String()
			if strings.Index(body, tt.first) > strings.Index(body, otherOf(tt.first)) {
				t.Errorf("expected %s listed first", tt.first)
			}
		})
	}
}

func otherOf(action string) string {
	if action == "newer" {
		return "older"
	}
	return "newer"
}

func TestSave(t *testing.T) {
	t.Run("appends export", func(t *testing.T) {
		env := newTestEnv(t)
		env.create(t, "buy milk", "2024-01-01")
		env.create(t, `a "quoted" task`, "2024-01-02")
		path := filepath.Join(t.TempDir(), "tasks.csv")

		assertRedirectHome(t, env.do(t, http.MethodPost, "/save", url.Values{"filename": {path}}))
		assertRedirectHome(t, env.do(t, http.MethodPost, "/save", url.Values{"filename": {path}}))

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read export: %v", err)
		}
		block := "action;date;done;priority\n" +
			`"a ""quoted"" task";"2024-01-02";"False";"False";` + "\n" +
			`"buy milk";"2024-01-01";"False";"False";` + "\n"
		if string(data) != block+block {
			t.Errorf("unexpected file content:\n%s", data)
		}
	})

	t.Run("no tasks writes nothing", func(t *testing.T) {
		env := newTestEnv(t)
		path := filepath.Join(t.TempDir(), "tasks.csv")

		assertRedirectHome(t, env.do(t, http.MethodPost, "/save", url.Values{"filename": {path}}))
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("expected no file, stat err = %v", err)
		}
	})

	t.Run("empty filename silently redirects", func(t *testing.T) {
		env := newTestEnv(t)
		env.create(t, "a", "d")
		assertRedirectHome(t, env.do(t, http.MethodPost, "/save", url.Values{"filename": {""}}))
	})

	t.Run("unwritable path shows error", func(t *testing.T) {
		env := newTestEnv(t)
		env.create(t, "a", "d")
		path := filepath.Join(t.TempDir(), "missing", "tasks.csv")

		rec := env.do(t, http.MethodPost, "/save", url.Values{"filename": {path}})
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Could not write") {
			t.Errorf("expected write error message, got %s", rec.Body.String())
		}
	})

	t.Run("form renders", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodGet, "/save", nil)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `name="filename"`) {
			t.Errorf("unexpected save form response %d", rec.Code)
		}
	})
}

func TestAPITasks(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/tasks", nil)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected empty JSON list, got %s", rec.Body.String())
	}

	env.create(t, "a", "2023-01-01")
	env.create(t, "b", "2024-01-01")
	env.sort.Set(sortmode.Up)

	rec = env.do(t, http.MethodGet, "/api/tasks", nil)
	var tasks []models.Task
	if err := json.NewDecoder(rec.Body).Decode(&tasks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Action != "b" {
		t.Errorf("expected b first, got %+v", tasks)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "a", "d")

	rec := env.do(t, http.MethodGet, "/health", nil)
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["tasks"] != float64(1) || body["sort"] != "unsorted" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
