package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/michellexliu/journly/internal/db"
	"github.com/michellexliu/journly/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateGoogleID = errors.New("google id already registered")
	ErrInvalidUserID     = errors.New("invalid user id")
	ErrPostNotAppended   = errors.New("post not appended: no matching user")
)

const (
	// Timeouts
	defaultWriteTimeout = 5 * time.Second
	defaultReadTimeout  = 10 * time.Second
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	AppendPost(ctx context.Context, userID primitive.ObjectID, post model.Post) error
}

type userRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.User]
	logger    *zap.Logger
}

func NewUserRepository(con *mongo.Database, repo *db.Repository[model.User], logger *zap.Logger) UserRepository {
	return &userRepository{
		con:       con,
		mongoRepo: repo,
		logger:    logger,
	}
}

// EnsureUserIndexes creates the unique constraints the auth flows rely on:
// usernames are globally unique, and google ids are unique among the
// documents that carry one. Registration and find-or-create detect
// conflicts through these indexes instead of a read-then-write check.
func EnsureUserIndexes(ctx context.Context, repo *db.Repository[model.User]) error {
	return repo.EnsureIndexes(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "google_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(db.NewFilter().Exists("google_id", true).Build()),
		},
	})
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidUserID
	}

	user, err := r.mongoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		r.logger.Error("failed to find user by id", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, db.NewFilter().Eq("username", username).Build())
}

func (r *userRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	return r.findOne(ctx, db.NewFilter().Eq("google_id", googleID).Build())
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindOne(ctx, filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		r.logger.Error("failed to find user", zap.Any("filter", filter), zap.Error(err))
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Create inserts the user and maps unique-index violations to the matching
// sentinel, so callers can distinguish "taken" from infrastructure failure.
func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Posts == nil {
		user.Posts = []model.Post{}
	}

	result, err := r.mongoRepo.Create(ctx, *user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if user.GoogleID != "" {
				return nil, ErrDuplicateGoogleID
			}
			return nil, ErrDuplicateUsername
		}
		r.logger.Error("failed to create user", zap.String("username", user.Username), zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}

	r.logger.Debug("user created", zap.String("id", user.ID.Hex()), zap.String("username", user.Username))
	return user, nil
}

// AppendPost pushes a post onto the user's embedded posts array with a
// single update-by-id, so concurrent composes never lose entries.
func (r *userRepository) AppendPost(ctx context.Context, userID primitive.ObjectID, post model.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.Push(ctx, userID, "posts", post)
	if err != nil {
		r.logger.Error("failed to append post",
			zap.String("userId", userID.Hex()),
			zap.String("postId", post.ID.Hex()),
			zap.Error(err))
		return fmt.Errorf("failed to append post: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrPostNotAppended
	}

	r.logger.Debug("post appended",
		zap.String("userId", userID.Hex()),
		zap.String("postId", post.ID.Hex()),
		zap.Float64("score", post.Score))
	return nil
}
