package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account document in MongoDB. Posts are embedded
// sub-documents: they have no identity outside their parent user.
//
// A user is created either through local registration (PasswordHash set)
// or through the first Google login (GoogleID set); at least one of the
// two credential paths is always present.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash string             `json:"-" bson:"password_hash,omitempty"`
	GoogleID     string             `json:"-" bson:"google_id,omitempty"`
	FirstName    string             `json:"firstName" bson:"first_name"`
	LastName     string             `json:"lastName" bson:"last_name"`
	Posts        []Post             `json:"posts" bson:"posts"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
}

// PostByID scans the embedded posts for a matching id. The slice is small
// and unindexed, so a linear scan is the whole lookup.
func (u *User) PostByID(id string) (*Post, bool) {
	for i := range u.Posts {
		if u.Posts[i].ID.Hex() == id {
			return &u.Posts[i], true
		}
	}
	return nil, false
}
