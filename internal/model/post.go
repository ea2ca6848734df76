package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a single journal entry embedded in a user document.
// Score is computed once at compose time and never recomputed on read.
type Post struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Body  string             `json:"body" bson:"body"`
	Date  time.Time          `json:"date" bson:"date"`
	Score float64            `json:"score" bson:"score"`
}
