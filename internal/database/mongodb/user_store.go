package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vcward/freecodecamp-exercise-tracker/internal/domain"
)

// userDocument — представление пользователя в коллекции users.
// _id генерируется хранилищем и наружу отдаётся в hex-виде.
type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
}

func (d userDocument) toDomain() domain.User {
	return domain.User{ID: d.ID.Hex(), Username: d.Username}
}

// UserStore реализует ports.UserStore поверх коллекции users.
type UserStore struct {
	col    *mongo.Collection
	logger *slog.Logger
}

// NewUserStore создаёт новый экземпляр UserStore.
func NewUserStore(client *Client, logger *slog.Logger) *UserStore {
	return &UserStore{col: client.Users(), logger: logger}
}

// CreateUser вставляет нового пользователя.
func (s *UserStore) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	start := time.Now()

	res, err := s.col.InsertOne(ctx, userDocument{Username: username})
	if err != nil {
		s.logger.Error("failed to insert user", "username", username, "error", err)
		return nil, fmt.Errorf("ошибка при вставке пользователя: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("хранилище вернуло идентификатор неожиданного типа: %T", res.InsertedID)
	}

	s.logger.Info("user inserted",
		"username", username,
		"user_id", oid.Hex(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &domain.User{ID: oid.Hex(), Username: username}, nil
}

// FindUserByUsername возвращает первую запись с таким username.
func (s *UserStore) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var doc userDocument
	err := s.col.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		s.logger.Error("failed to find user by username", "username", username, "error", err)
		return nil, fmt.Errorf("ошибка при поиске пользователя по username: %w", err)
	}

	user := doc.toDomain()
	return &user, nil
}

// FindUserByID возвращает пользователя по hex-идентификатору.
// Некорректный hex — это "не найдено", а не ошибка процесса.
func (s *UserStore) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		s.logger.Warn("malformed user id, treating as not found", "id", id)
		return nil, nil
	}

	var doc userDocument
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		s.logger.Error("failed to find user by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при поиске пользователя по id: %w", err)
	}

	user := doc.toDomain()
	return &user, nil
}

// ListUsers возвращает всех пользователей.
func (s *UserStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	start := time.Now()

	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("ошибка при чтении списка пользователей: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toDomain())
	}

	s.logger.Info("listed users successfully",
		"count", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}
