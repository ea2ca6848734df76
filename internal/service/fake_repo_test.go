package service

import (
	"context"

	"github.com/michellexliu/journly/internal/model"
	"github.com/michellexliu/journly/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo is an in-memory stand-in for repo.UserRepository.
type fakeUserRepo struct {
	byID       map[string]*model.User
	byUsername map[string]*model.User
	byGoogleID map[string]*model.User

	createErr error
	appendErr error
	// missFirstGoogleLookup simulates losing the find-or-create race: the
	// first FindByGoogleID misses even though the user is seeded.
	missFirstGoogleLookup bool

	created  []*model.User
	appended []model.Post
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[string]*model.User),
		byUsername: make(map[string]*model.User),
		byGoogleID: make(map[string]*model.User),
	}
}

func (f *fakeUserRepo) add(u *model.User) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.byID[u.ID.Hex()] = u
	if u.Username != "" {
		f.byUsername[u.Username] = u
	}
	if u.GoogleID != "" {
		f.byGoogleID[u.GoogleID] = u
	}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, repo.ErrUserNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, repo.ErrUserNotFound
}

func (f *fakeUserRepo) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	if f.missFirstGoogleLookup {
		f.missFirstGoogleLookup = false
		return nil, repo.ErrUserNotFound
	}
	if u, ok := f.byGoogleID[googleID]; ok {
		return u, nil
	}
	return nil, repo.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	// Mirror repo.Create: on a duplicate-key conflict a user carrying a
	// google id surfaces ErrDuplicateGoogleID, otherwise ErrDuplicateUsername.
	if user.GoogleID != "" {
		if _, ok := f.byGoogleID[user.GoogleID]; ok {
			return nil, repo.ErrDuplicateGoogleID
		}
		if _, ok := f.byUsername[user.Username]; ok {
			return nil, repo.ErrDuplicateGoogleID
		}
	} else if _, ok := f.byUsername[user.Username]; ok {
		return nil, repo.ErrDuplicateUsername
	}
	f.add(user)
	f.created = append(f.created, user)
	return user, nil
}

func (f *fakeUserRepo) AppendPost(ctx context.Context, userID primitive.ObjectID, post model.Post) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	u, ok := f.byID[userID.Hex()]
	if !ok {
		return repo.ErrPostNotAppended
	}
	u.Posts = append(u.Posts, post)
	f.appended = append(f.appended, post)
	return nil
}
