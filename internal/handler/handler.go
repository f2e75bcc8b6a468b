package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/domain"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/usecase"
)

// TrackerHandler — обработчик HTTP-запросов трекера упражнений.
type TrackerHandler struct {
	trackerUseCase usecase.TrackerUseCase
	staticDir      string
	logger         *slog.Logger
}

// NewTrackerHandler создаёт новый экземпляр TrackerHandler.
func NewTrackerHandler(uc usecase.TrackerUseCase, staticDir string, logger *slog.Logger) *TrackerHandler {
	return &TrackerHandler{
		trackerUseCase: uc,
		staticDir:      staticDir,
		logger:         logger,
	}
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// statusFromError транслирует доменную ошибку в HTTP-статус.
func statusFromError(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case domain.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondWithUseCaseError — логирует ошибку usecase и отвечает по таксономии.
func (h *TrackerHandler) respondWithUseCaseError(w http.ResponseWriter, endpoint string, err error) {
	code := statusFromError(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("request failed", "endpoint", endpoint, "error", err)
		respondWithError(w, code, "Internal server error", h.logger)
		return
	}
	h.logger.Warn("request rejected", "endpoint", endpoint, "status", code, "error", err)
	if domain.IsNotFound(err) {
		respondWithError(w, code, "User not found", h.logger)
		return
	}
	respondWithError(w, code, trimErrorPrefix(err), h.logger)
}

// trimErrorPrefix убирает сентинельный префикс из текста ошибки валидации.
func trimErrorPrefix(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// Index — отдаёт статическую стартовую страницу.
func (h *TrackerHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}

// ListUsers — возвращает полный список пользователей.
func (h *TrackerHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.trackerUseCase.ListUsers(r.Context())
	if err != nil {
		h.respondWithUseCaseError(w, "ListUsers", err)
		return
	}
	respondWithJSON(w, http.StatusOK, users, h.logger)
}

// CreateUser — создаёт пользователя или возвращает существующего.
func (h *TrackerHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
	}
	if err := decodeBody(r, &body); err != nil {
		h.logger.Warn("malformed request body", "endpoint", "CreateUser", "error", err)
		respondWithError(w, http.StatusBadRequest, "Malformed request body", h.logger)
		return
	}

	user, err := h.trackerUseCase.CreateUser(r.Context(), body.Username)
	if err != nil {
		h.respondWithUseCaseError(w, "CreateUser", err)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// AddExercise — записывает упражнение для пользователя из сегмента пути.
func (h *TrackerHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var body struct {
		Description string     `json:"description"`
		Duration    flexString `json:"duration"`
		Date        string     `json:"date"`
	}
	if err := decodeBody(r, &body); err != nil {
		h.logger.Warn("malformed request body", "endpoint", "AddExercise", "error", err)
		respondWithError(w, http.StatusBadRequest, "Malformed request body", h.logger)
		return
	}

	// duration принимается и строкой, и числом, в ответе — всегда число.
	duration, ok := parseDuration(string(body.Duration))
	if !ok {
		respondWithError(w, http.StatusBadRequest, "duration must be a number of minutes", h.logger)
		return
	}

	result, err := h.trackerUseCase.AddExercise(r.Context(), userID, body.Description, duration, body.Date)
	if err != nil {
		h.respondWithUseCaseError(w, "AddExercise", err)
		return
	}
	respondWithJSON(w, http.StatusOK, result, h.logger)
}

// GetLog — возвращает журнал упражнений пользователя.
// Query-параметры: from, to (даты), limit (целое число).
func (h *TrackerHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a non-negative integer", h.logger)
			return
		}
		limit = parsed
	}

	logResult, err := h.trackerUseCase.GetLog(r.Context(), userID, from, to, limit)
	if err != nil {
		h.respondWithUseCaseError(w, "GetLog", err)
		return
	}
	respondWithJSON(w, http.StatusOK, logResult, h.logger)
}

// MissingUserID — преднамеренная ловушка для маршрута без сегмента id.
// Статус 200 и точное тело ответа зафиксированы: старые клиенты
// разбирают именно такую форму.
func (h *TrackerHandler) MissingUserID(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"error": "Missing user id"}, h.logger)
}

// decodeBody разбирает тело запроса: JSON или form-urlencoded.
func decodeBody(r *http.Request, dst interface{}) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		return json.NewDecoder(r.Body).Decode(dst)
	}

	if err := r.ParseForm(); err != nil {
		return err
	}
	values := map[string]string{}
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}
	// прогоняем значения формы через те же json-теги, что и JSON-тело
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// flexString принимает JSON-значение и строкой, и числом.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	*f = flexString(b)
	return nil
}

// parseDuration приводит введённую длительность к целому числу минут.
func parseDuration(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true // отсутствие значения отлавливает валидация usecase
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
