package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment is append-only: there is no edit or delete path.
type Comment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID     primitive.ObjectID `bson:"postId" json:"postId"`
	Text       string             `bson:"text" json:"text"`
	UserID     string             `bson:"userId" json:"userId"`
	UserName   string             `bson:"userName" json:"userName"`
	UserAvatar string             `bson:"userAvatar" json:"userAvatar"`
	Timestamp  int64              `bson:"timestamp" json:"timestamp"`
}

// NewComment applies the author display defaults. ID and Timestamp are
// assigned by the store at write time.
func NewComment(postID primitive.ObjectID, text, userID, userName, userAvatar string) Comment {
	if userName == "" {
		userName = DefaultUserName
	}
	if userAvatar == "" {
		userAvatar = DefaultUserAvatar
	}

	return Comment{
		PostID:     postID,
		Text:       text,
		UserID:     userID,
		UserName:   userName,
		UserAvatar: userAvatar,
	}
}
