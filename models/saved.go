package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PostSnapshot is the point-in-time copy stored with a saved post. It is a
// copy, not a reference: later edits to the source post never touch it.
type PostSnapshot struct {
	Title      string `bson:"title" json:"title"`
	Content    string `bson:"content" json:"content"`
	Category   string `bson:"category" json:"category"`
	UserName   string `bson:"userName" json:"userName"`
	UserAvatar string `bson:"userAvatar" json:"userAvatar"`
	Department string `bson:"department" json:"department"`
	Timestamp  int64  `bson:"timestamp" json:"timestamp"`
}

// SavedPost is one user's private archive entry for one post. The
// (userId, postId) pair is unique.
type SavedPost struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   string             `bson:"userId" json:"userId"`
	PostID   primitive.ObjectID `bson:"postId" json:"postId"`
	PostData PostSnapshot       `bson:"postData" json:"postData"`
	SavedAt  int64              `bson:"savedAt" json:"savedAt"`
}

// SnapshotOf freezes the archived field subset of a post.
func SnapshotOf(p Post) PostSnapshot {
	return PostSnapshot{
		Title:      p.Title,
		Content:    p.Content,
		Category:   p.Category,
		UserName:   p.UserName,
		UserAvatar: p.UserAvatar,
		Department: p.Department,
		Timestamp:  p.Timestamp,
	}
}
