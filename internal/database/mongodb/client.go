package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Client представляет клиент для взаимодействия с MongoDB —
// хранилищем документов по умолчанию.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// NewClient инициализирует новое подключение к MongoDB и проверяет его ping-ом.
func NewClient(uri, dbName string, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Error("failed to open MongoDB connection", "error", err)
		return nil, fmt.Errorf("ошибка открытия соединения с MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("failed to ping MongoDB", "error", err)
		return nil, fmt.Errorf("не удалось подключиться к MongoDB: %w", err)
	}

	logger.Info("MongoDB connection established successfully",
		"database", dbName,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Client{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

// Users возвращает коллекцию пользователей.
func (c *Client) Users() *mongo.Collection {
	return c.db.Collection("users")
}

// Exercises возвращает коллекцию упражнений.
func (c *Client) Exercises() *mongo.Collection {
	return c.db.Collection("exercises")
}

func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := c.client.Disconnect(ctx); err != nil {
		c.logger.Error("failed to close MongoDB connection", "error", err)
		return err
	}
	c.logger.Info("MongoDB connection closed")
	return nil
}
