package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vcward/freecodecamp-exercise-tracker/internal/domain"
)

// ExerciseStorage реализует интерфейс ports.ExerciseStore с использованием GORM.
type ExerciseStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewExerciseStorage создает новый экземпляр ExerciseStorage.
func NewExerciseStorage(db *gorm.DB, logger *slog.Logger) *ExerciseStorage {
	return &ExerciseStorage{db: db, logger: logger}
}

// SaveExercise вставляет запись об упражнении.
func (s *ExerciseStorage) SaveExercise(ctx context.Context, exercise *domain.Exercise) error {
	start := time.Now()

	if exercise.ID == "" {
		exercise.ID = uuid.New().String()
	}

	result := s.db.WithContext(ctx).Create(exercise)
	if result.Error != nil {
		s.logger.Error("failed to insert exercise", "username", exercise.Username, "error", result.Error)
		return fmt.Errorf("ошибка при сохранении упражнения: %w", result.Error)
	}

	s.logger.Info("exercise inserted",
		"exercise_id", exercise.ID,
		"username", exercise.Username,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// FindExercises возвращает упражнения по фильтру в естественном порядке
// таблицы. Даты хранятся текстом в формате domain.DateLayout, поэтому
// сравнение >=/<= по колонке эквивалентно сравнению календарных дат.
func (s *ExerciseStorage) FindExercises(ctx context.Context, filter domain.LogFilter) ([]domain.Exercise, error) {
	start := time.Now()

	query := s.db.WithContext(ctx).Where("username = ?", filter.Username)
	if filter.Date != nil {
		if filter.Date.From != "" {
			query = query.Where("date >= ?", filter.Date.From)
		}
		if filter.Date.To != "" {
			query = query.Where("date <= ?", filter.Date.To)
		}
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var exercises []domain.Exercise
	result := query.Find(&exercises)
	if result.Error != nil {
		s.logger.Error("failed to query exercises", "username", filter.Username, "error", result.Error)
		return nil, fmt.Errorf("ошибка при выборке упражнений: %w", result.Error)
	}

	s.logger.Info("exercises query completed",
		"username", filter.Username,
		"found", len(exercises),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return exercises, nil
}
