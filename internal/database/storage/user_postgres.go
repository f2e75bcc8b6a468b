package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vcward/freecodecamp-exercise-tracker/internal/domain"
)

// UserStorage реализует интерфейс ports.UserStore с использованием GORM.
type UserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage.
func NewUserStorage(db *gorm.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser вставляет нового пользователя с сгенерированным uuid.
func (s *UserStorage) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	start := time.Now()

	user := domain.User{
		ID:       uuid.New().String(),
		Username: username,
	}
	result := s.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		s.logger.Error("failed to insert user", "username", username, "error", result.Error)
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", result.Error)
	}

	s.logger.Info("user inserted",
		"user_id", user.ID,
		"username", username,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}

// FindUserByUsername возвращает первую запись с таким username.
func (s *UserStorage) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to find user by username", "username", username, "error", result.Error)
		return nil, fmt.Errorf("ошибка при поиске пользователя по username: %w", result.Error)
	}
	return &user, nil
}

// FindUserByID возвращает пользователя по идентификатору.
// id — текстовая колонка, поэтому некорректная строка просто не найдёт запись.
func (s *UserStorage) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			s.logger.Warn("user not found by id", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to find user by id", "id", id, "error", result.Error)
		return nil, fmt.Errorf("ошибка при поиске пользователя по id: %w", result.Error)
	}
	return &user, nil
}

// ListUsers возвращает всех пользователей без фильтрации и пагинации.
func (s *UserStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	start := time.Now()

	var users []domain.User
	result := s.db.WithContext(ctx).Find(&users)
	if result.Error != nil {
		s.logger.Error("failed to list users", "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", result.Error)
	}

	s.logger.Info("listed users successfully",
		"count", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}
