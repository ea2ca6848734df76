package configuration

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/michellexliu/journly/internal/db"
	"github.com/michellexliu/journly/internal/handler"
	"github.com/michellexliu/journly/internal/model"
	"github.com/michellexliu/journly/internal/repo"
	"github.com/michellexliu/journly/internal/sentiment"
	"github.com/michellexliu/journly/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Container holds every constructed dependency. Handlers, the repo backing
// the auth gate, and the connections that need closing all hang off it; no
// package-level singletons.
type Container struct {
	AuthHandler    handler.AuthHandler
	JournalHandler handler.JournalHandler
	Users          repo.UserRepository
	Config         Config
	Logger         *zap.Logger

	// private - for cleanup
	mongoClient *mongo.Database
}

func BuildContainer() (*Container, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	con, err := db.OpenConnection(config.Database.Uri, config.Database.Database)
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	usersRepo := db.NewRepository[model.User](con, config.Database.UsersCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureUserIndexes(ctx, usersRepo); err != nil {
		return nil, fmt.Errorf("failed to ensure user indexes: %w", err)
	}

	userRepo := repo.NewUserRepository(con, usersRepo, logger)
	scorer := sentiment.NewScorer()

	authService := service.NewAuthService(userRepo, logger)
	journalService := service.NewJournalService(userRepo, scorer, logger)

	oauthConfig := &oauth2.Config{
		ClientID:     config.OAuth.ClientID,
		ClientSecret: config.OAuth.ClientSecret,
		RedirectURL:  config.OAuth.RedirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	return &Container{
		AuthHandler:    handler.NewAuthHandler(authService, oauthConfig, logger),
		JournalHandler: handler.NewJournalHandler(journalService, logger),
		Users:          userRepo,
		Config:         *config,
		Logger:         logger,
		mongoClient:    con,
	}, nil
}

// Close gracefully shuts down all connections
func (c *Container) Close() error {
	// Sync logger
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	// Close MongoDB connection pool
	if c.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.mongoClient.Client().Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to close MongoDB connection: %w", err)
		}
	}

	return nil
}
