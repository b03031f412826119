package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials MongoDB and pings it. The returned client is the single
// shared handle for the whole process; callers pass it down explicitly.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

// Collections groups the feed collections of one database.
type Collections struct {
	Posts      *mongo.Collection
	Likes      *mongo.Collection
	Comments   *mongo.Collection
	SavedPosts *mongo.Collection
	Listings   *mongo.Collection
}

func New(client *mongo.Client, name string) *Collections {
	db := client.Database(name)
	return &Collections{
		Posts:      db.Collection("posts"),
		Likes:      db.Collection("likes"),
		Comments:   db.Collection("comments"),
		SavedPosts: db.Collection("savedPosts"),
		Listings:   db.Collection("campusCart"),
	}
}

// EnsureIndexes creates the query indexes and, critically, the unique
// compound indexes on likes(postId,userId) and savedPosts(userId,postId).
// Those two act as the compare-and-swap on entry existence that keeps
// concurrent toggles from double-counting.
func EnsureIndexes(ctx context.Context, c *Collections) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := c.Likes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "postId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = c.SavedPosts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "postId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = c.Posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "likes", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "keywords", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = c.Comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "postId", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
