package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Like records one user's like on one post. Its presence is the source of
// truth for Post.Likes; the (postId, userId) pair is unique.
type Like struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	UserID    string             `bson:"userId" json:"userId"`
	Timestamp int64              `bson:"timestamp" json:"timestamp"`
}
