package ports

import (
	"context"

	"github.com/vcward/freecodecamp-exercise-tracker/internal/domain"
)

// UserStore определяет методы для взаимодействия с хранилищем пользователей.
// Отсутствие записи — это (nil, nil), а не ошибка: решение о ErrNotFound
// принимает слой usecase.
type UserStore interface {
	// CreateUser вставляет нового пользователя и возвращает запись
	// с присвоенным хранилищем идентификатором.
	CreateUser(ctx context.Context, username string) (*domain.User, error)

	// FindUserByUsername возвращает первую запись с таким username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByID возвращает пользователя по идентификатору.
	// Некорректный идентификатор трактуется как отсутствие записи.
	FindUserByID(ctx context.Context, id string) (*domain.User, error)

	// ListUsers возвращает всех пользователей без фильтрации и пагинации.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// ExerciseStore определяет методы для взаимодействия с хранилищем упражнений.
type ExerciseStore interface {
	// SaveExercise вставляет запись об упражнении и проставляет ей
	// присвоенный хранилищем идентификатор.
	SaveExercise(ctx context.Context, exercise *domain.Exercise) error

	// FindExercises возвращает записи, удовлетворяющие фильтру,
	// в естественном порядке хранилища.
	FindExercises(ctx context.Context, filter domain.LogFilter) ([]domain.Exercise, error)
}
