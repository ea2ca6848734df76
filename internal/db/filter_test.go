package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilterBuilder(t *testing.T) {
	filter := NewFilter().
		Eq("username", "alice").
		Exists("google_id", true).
		Build()

	assert.Equal(t, bson.M{
		"username":  "alice",
		"google_id": bson.M{"$exists": true},
	}, filter)
}

func TestFilterBuilderObjectID(t *testing.T) {
	id := primitive.NewObjectID()

	filter := NewFilter().ObjectID("_id", id.Hex()).Build()
	assert.Equal(t, bson.M{"_id": id}, filter)

	// Malformed ids are skipped rather than producing a broken filter.
	filter = NewFilter().ObjectID("_id", "not-hex").Build()
	assert.Equal(t, bson.M{}, filter)
}

func TestFilterBuilderOr(t *testing.T) {
	filter := NewFilter().
		Or(bson.M{"username": "alice"}, bson.M{"google_id": "g-1"}).
		Build()

	assert.Equal(t, bson.M{"$or": []bson.M{{"username": "alice"}, {"google_id": "g-1"}}}, filter)
}

func TestEmptyFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, Empty())
}
