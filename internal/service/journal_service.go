package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/michellexliu/journly/internal/model"
	"github.com/michellexliu/journly/internal/repo"
	"github.com/michellexliu/journly/internal/sentiment"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrPostNotFound = errors.New("post not found")

// dateLayout matches the HTML date input the compose form submits.
const dateLayout = "2006-01-02"

type JournalService interface {
	Compose(ctx context.Context, user *model.User, body, date string) (model.Post, error)
	PostByID(user *model.User, postID string) (*model.Post, error)
	Insights(user *model.User) model.Insights
}

type journalService struct {
	users  repo.UserRepository
	scorer sentiment.Scorer
	logger *zap.Logger
}

func NewJournalService(users repo.UserRepository, scorer sentiment.Scorer, logger *zap.Logger) JournalService {
	return &journalService{
		users:  users,
		scorer: scorer,
		logger: logger,
	}
}

// Compose scores the body once, stamps the post and appends it to the
// user's embedded posts with a single update-by-id. The score written here
// is final; reads never rescore.
func (s *journalService) Compose(ctx context.Context, user *model.User, body, date string) (model.Post, error) {
	post := model.Post{
		ID:    primitive.NewObjectID(),
		Body:  body,
		Date:  parseDate(date),
		Score: s.scorer.Score(body),
	}

	if err := s.users.AppendPost(ctx, user.ID, post); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

func (s *journalService) PostByID(user *model.User, postID string) (*model.Post, error) {
	post, ok := user.PostByID(postID)
	if !ok {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Insights aggregates the user's whole post history in memory: average
// score, the two extremes, and an ascending-by-date chart series. With a
// single post both extremes are that post; with none, HasData is false and
// no averaging happens.
func (s *journalService) Insights(user *model.User) model.Insights {
	posts := user.Posts
	if len(posts) == 0 {
		return model.Insights{}
	}

	// Stable sorts keep insertion order on equal scores or dates.
	byScore := make([]model.Post, len(posts))
	copy(byScore, posts)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].Score > byScore[j].Score
	})

	var sum float64
	for _, p := range byScore {
		sum += p.Score
	}

	byDate := make([]model.Post, len(posts))
	copy(byDate, posts)
	sort.SliceStable(byDate, func(i, j int) bool {
		return byDate[i].Date.Before(byDate[j].Date)
	})

	chart := model.ChartData{
		Labels: make([]string, len(byDate)),
		Scores: make([]float64, len(byDate)),
	}
	for i, p := range byDate {
		chart.Labels[i] = p.Date.Format("1/2/2006")
		chart.Scores[i] = p.Score
	}

	return model.Insights{
		HasData:      true,
		Average:      sum / float64(len(posts)),
		MostPositive: byScore[0],
		MostNegative: byScore[len(byScore)-1],
		Chart:        chart,
	}
}

// parseDate accepts the compose form's date; anything unparsable falls back
// to now rather than rejecting the entry.
func parseDate(date string) time.Time {
	if t, err := time.Parse(dateLayout, date); err == nil {
		return t
	}
	return time.Now().UTC()
}
