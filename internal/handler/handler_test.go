package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/domain"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/usecase"
)

// fakeTracker — тестовая реализация usecase поверх карт в памяти.
type fakeTracker struct {
	users     map[string]domain.User // id -> user
	exercises map[string][]domain.Exercise
	nextID    int
}

var _ usecase.TrackerUseCase = (*fakeTracker)(nil)

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		users:     map[string]domain.User{},
		exercises: map[string][]domain.Exercise{},
	}
}

func (f *fakeTracker) CreateUser(_ context.Context, username string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domain.ErrValidation
	}
	for _, u := range f.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	f.nextID++
	user := domain.User{ID: fmt.Sprintf("id-%03d", f.nextID), Username: username}
	f.users[user.ID] = user
	return &user, nil
}

func (f *fakeTracker) ListUsers(_ context.Context) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeTracker) AddExercise(_ context.Context, userID, description string, duration int, date string) (*domain.ExerciseResult, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if description == "" || duration <= 0 {
		return nil, domain.ErrValidation
	}
	if date == "" {
		date = domain.Today()
	}
	f.exercises[userID] = append(f.exercises[userID], domain.Exercise{
		Username: user.Username, Description: description, Duration: duration, Date: date,
	})
	return &domain.ExerciseResult{
		Username:    user.Username,
		ID:          user.ID,
		Description: description,
		Date:        domain.DisplayDate(date),
		Duration:    duration,
	}, nil
}

func (f *fakeTracker) GetLog(_ context.Context, userID, from, to string, limit int) (*domain.ExerciseLog, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	entries := []domain.LogEntry{}
	for _, ex := range f.exercises[userID] {
		if from != "" && ex.Date < from {
			continue
		}
		if to != "" && ex.Date > to {
			continue
		}
		entries = append(entries, domain.LogEntry{
			Description: ex.Description, Duration: ex.Duration, Date: domain.DisplayDate(ex.Date),
		})
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return &domain.ExerciseLog{Username: user.Username, ID: user.ID, Count: len(entries), Log: entries}, nil
}

func (f *fakeTracker) ArchiveLog(_ context.Context, userID string) (string, error) {
	if _, ok := f.users[userID]; !ok {
		return "", domain.ErrNotFound
	}
	return "http://archive.local/logs/" + userID + ".json", nil
}

func (f *fakeTracker) ArchivingEnabled() bool { return true }

func newTestRouter(tracker usecase.TrackerUseCase) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewTrackerHandler(tracker, "public", logger)

	r := chi.NewRouter()
	r.Get("/api/users", h.ListUsers)
	r.Post("/api/users", h.CreateUser)
	r.Get("/api/users/exercises", h.MissingUserID)
	r.Post("/api/users/{id}/exercises", h.AddExercise)
	r.Get("/api/users/{id}/logs", h.GetLog)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doForm(t *testing.T, router http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateUserFormAndJSON(t *testing.T) {
	router := newTestRouter(newFakeTracker())

	rec := doForm(t, router, "/api/users", url.Values{"username": {"alice"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("form create status = %d, want 200", rec.Code)
	}
	var created struct {
		Username string `json:"username"`
		ID       string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if created.Username != "alice" || created.ID == "" {
		t.Errorf("response = %+v, want username alice with generated id", created)
	}

	// повторное создание возвращает ту же запись
	rec = doJSON(t, router, http.MethodPost, "/api/users", `{"username":"alice"}`)
	var again struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &again); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if again.ID != created.ID {
		t.Errorf("repeated create id = %q, want %q", again.ID, created.ID)
	}
}

func TestCreateUserValidationStatus(t *testing.T) {
	router := newTestRouter(newFakeTracker())

	rec := doJSON(t, router, http.MethodPost, "/api/users", `{"username":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("body = %s, want JSON error body", rec.Body.String())
	}
}

func TestAddExerciseDurationCoercion(t *testing.T) {
	tracker := newFakeTracker()
	router := newTestRouter(tracker)

	user, _ := tracker.CreateUser(context.Background(), "alice")

	// duration строкой (form-urlencoded, как шлёт страница из public/)
	rec := doForm(t, router, "/api/users/"+user.ID+"/exercises",
		url.Values{"description": {"run"}, "duration": {"30"}, "date": {"2024-01-01"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"duration":30`) {
		t.Errorf("body = %s, want numeric duration 30", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"date":"Mon Jan 01 2024"`) {
		t.Errorf("body = %s, want display date", rec.Body.String())
	}

	// duration числом (JSON)
	rec = doJSON(t, router, http.MethodPost, "/api/users/"+user.ID+"/exercises",
		`{"description":"swim","duration":15}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"duration":15`) {
		t.Errorf("body = %s, want numeric duration 15", rec.Body.String())
	}

	// нечисловая длительность
	rec = doForm(t, router, "/api/users/"+user.ID+"/exercises",
		url.Values{"description": {"run"}, "duration": {"lots"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for non-numeric duration", rec.Code)
	}
}

func TestAddExerciseUnknownUser(t *testing.T) {
	router := newTestRouter(newFakeTracker())

	rec := doJSON(t, router, http.MethodPost, "/api/users/nobody/exercises",
		`{"description":"run","duration":30}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User not found") {
		t.Errorf("body = %s, want user-not-found error", rec.Body.String())
	}
}

func TestGetLog(t *testing.T) {
	tracker := newFakeTracker()
	router := newTestRouter(tracker)

	user, _ := tracker.CreateUser(context.Background(), "alice")
	_, _ = tracker.AddExercise(context.Background(), user.ID, "run", 30, "2024-01-01")
	_, _ = tracker.AddExercise(context.Background(), user.ID, "swim", 20, "2024-02-01")

	rec := doJSON(t, router, http.MethodGet, "/api/users/"+user.ID+"/logs?from=2024-01-15&limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var logResult domain.ExerciseLog
	if err := json.Unmarshal(rec.Body.Bytes(), &logResult); err != nil {
		t.Fatalf("unmarshal log: %v", err)
	}
	if logResult.Count != 1 || len(logResult.Log) != 1 {
		t.Fatalf("count = %d, log len = %d, want 1/1", logResult.Count, len(logResult.Log))
	}
	if logResult.Log[0].Date != "Thu Feb 01 2024" {
		t.Errorf("date = %q, want display form Thu Feb 01 2024", logResult.Log[0].Date)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/users/"+user.ID+"/logs?limit=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for bad limit", rec.Code)
	}
}

func TestMissingUserIDRoute(t *testing.T) {
	router := newTestRouter(newFakeTracker())

	rec := doJSON(t, router, http.MethodGet, "/api/users/exercises?from=2024-01-01", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (compatibility quirk)", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"Missing user id"}` {
		t.Errorf("body = %s, want exactly {\"error\":\"Missing user id\"}", got)
	}
}

func TestListUsersAlwaysArray(t *testing.T) {
	router := newTestRouter(newFakeTracker())

	rec := doJSON(t, router, http.MethodGet, "/api/users", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want empty JSON array", got)
	}
}
