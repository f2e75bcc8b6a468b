package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vcward/freecodecamp-exercise-tracker/internal/core/ports"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/domain"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/messaging/payloads"
)

// trackerInteractor реализует TrackerUseCase поверх портов хранилищ.
// publisher и archive могут быть nil: публикация событий и архивирование —
// необязательные возможности, ядро трекера работает без них.
type trackerInteractor struct {
	userStore     ports.UserStore
	exerciseStore ports.ExerciseStore
	publisher     ports.ExerciseEventPublisher
	archive       ArchiveStorage
	logger        *slog.Logger
}

// NewTrackerUseCase создаёт новый экземпляр бизнес-логики трекера.
func NewTrackerUseCase(
	userStore ports.UserStore,
	exerciseStore ports.ExerciseStore,
	publisher ports.ExerciseEventPublisher,
	archive ArchiveStorage,
	logger *slog.Logger,
) TrackerUseCase {
	return &trackerInteractor{
		userStore:     userStore,
		exerciseStore: exerciseStore,
		publisher:     publisher,
		archive:       archive,
		logger:        logger,
	}
}

// CreateUser создаёт пользователя или возвращает существующего.
// Последовательность "найти, иначе вставить" не атомарна: два конкурентных
// запроса с новым username могут оба пройти проверку и оба вставить запись.
func (t *trackerInteractor) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}

	existing, err := t.userStore.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя по username: %w", err)
	}
	if existing != nil {
		t.logger.Info("user already exists", "username", username, "user_id", existing.ID)
		return existing, nil
	}

	user, err := t.userStore.CreateUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	t.logger.Info("user created", "username", username, "user_id", user.ID)
	return user, nil
}

// ListUsers возвращает всех пользователей.
func (t *trackerInteractor) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := t.userStore.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// AddExercise записывает упражнение для пользователя.
func (t *trackerInteractor) AddExercise(ctx context.Context, userID, description string, duration int, date string) (*domain.ExerciseResult, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be a positive number of minutes", domain.ErrValidation)
	}

	user, err := t.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if date == "" {
		date = domain.Today()
	} else {
		normalized, err := domain.NormalizeDate(date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be a calendar date (YYYY-MM-DD)", domain.ErrValidation)
		}
		date = normalized
	}

	exercise := domain.Exercise{
		Username:    user.Username,
		Description: description,
		Duration:    duration,
		Date:        date,
	}
	if err := t.exerciseStore.SaveExercise(ctx, &exercise); err != nil {
		return nil, fmt.Errorf("ошибка при сохранении упражнения: %w", err)
	}

	t.logger.Info("exercise logged",
		"user_id", user.ID,
		"username", user.Username,
		"duration", duration,
		"date", date,
	)

	t.publishExerciseLogged(ctx, user, &exercise)

	return &domain.ExerciseResult{
		Username:    user.Username,
		ID:          user.ID,
		Description: exercise.Description,
		Date:        domain.DisplayDate(exercise.Date),
		Duration:    exercise.Duration,
	}, nil
}

// GetLog возвращает журнал упражнений пользователя.
func (t *trackerInteractor) GetLog(ctx context.Context, userID, from, to string, limit int) (*domain.ExerciseLog, error) {
	user, err := t.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := domain.NewLogFilter(user.Username, from, to, limit)
	exercises, err := t.exerciseStore.FindExercises(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении журнала упражнений: %w", err)
	}

	entries := make([]domain.LogEntry, 0, len(exercises))
	for _, ex := range exercises {
		entries = append(entries, domain.LogEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        domain.DisplayDate(ex.Date),
		})
	}

	return &domain.ExerciseLog{
		Username: user.Username,
		ID:       user.ID,
		Count:    len(entries),
		Log:      entries,
	}, nil
}

// ArchivingEnabled сообщает, сконфигурировано ли архивное хранилище.
func (t *trackerInteractor) ArchivingEnabled() bool {
	return t.archive != nil
}

// ArchiveLog выгружает полный журнал пользователя в объектное хранилище.
func (t *trackerInteractor) ArchiveLog(ctx context.Context, userID string) (string, error) {
	if t.archive == nil {
		return "", fmt.Errorf("архивное хранилище не сконфигурировано")
	}

	logResult, err := t.GetLog(ctx, userID, "", "", 0)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(logResult)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации журнала: %w", err)
	}

	key := fmt.Sprintf("logs/%s.json", logResult.ID)
	url, err := t.archive.UploadFile(ctx, key, bytes.NewReader(body), "application/json")
	if err != nil {
		return "", fmt.Errorf("ошибка выгрузки архива журнала: %w", err)
	}

	t.logger.Info("exercise log archived",
		"user_id", logResult.ID,
		"key", key,
		"entries", logResult.Count,
	)
	return url, nil
}

// resolveUser находит пользователя по id, транслируя отсутствие записи
// в domain.ErrNotFound.
func (t *trackerInteractor) resolveUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := t.userStore.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя по id: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}
	return user, nil
}

// publishExerciseLogged публикует событие о записанном упражнении.
// Публикация — best effort: ошибка брокера логируется и не влияет на запрос.
func (t *trackerInteractor) publishExerciseLogged(ctx context.Context, user *domain.User, exercise *domain.Exercise) {
	if t.publisher == nil {
		return
	}

	payload := payloads.ExerciseLoggedPayload{
		UserID:      user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
	}
	if err := t.publisher.PublishExerciseLogged(ctx, payload); err != nil {
		t.logger.Error("failed to publish exercise logged event", "user_id", user.ID, "error", err)
	}
}
