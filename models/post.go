package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RanjeetKaur14/UniSphere/keywords"
)

const (
	DefaultUserName   = "Anonymous"
	DefaultUserAvatar = "https://ui-avatars.com/api/?name=User&background=4361ee&color=fff"
	DefaultDepartment = "General"
)

// Post is a feed item. Likes and Comments are denormalized counters that
// mirror the live like/comment records; they are only ever changed through
// the store's toggle/add bundles, never set directly.
type Post struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Content         string             `bson:"content" json:"content"`
	Category        string             `bson:"category" json:"category"`
	UserID          string             `bson:"userId" json:"userId"`
	UserName        string             `bson:"userName" json:"userName"`
	UserAvatar      string             `bson:"userAvatar" json:"userAvatar"`
	Department      string             `bson:"department" json:"department"`
	Tags            []string           `bson:"tags" json:"tags"`
	Likes           int                `bson:"likes" json:"likes"`
	Comments        int                `bson:"comments" json:"comments"`
	Keywords        []string           `bson:"keywords" json:"keywords"`
	Timestamp       int64              `bson:"timestamp" json:"timestamp"`
	ConvertedToCart bool               `bson:"convertedToCart,omitempty" json:"convertedToCart,omitempty"`
	CartListingID   string             `bson:"cartListingId,omitempty" json:"cartListingId,omitempty"`
}

// NewPost applies the creation defaults. ID and Timestamp are assigned by
// the store at write time.
func NewPost(title, content, category, userID, userName, userAvatar, department string) Post {
	if userName == "" {
		userName = DefaultUserName
	}
	if userAvatar == "" {
		userAvatar = DefaultUserAvatar
	}
	if department == "" {
		department = DefaultDepartment
	}

	return Post{
		Title:      title,
		Content:    content,
		Category:   category,
		UserID:     userID,
		UserName:   userName,
		UserAvatar: userAvatar,
		Department: department,
		Tags:       []string{category},
		Likes:      0,
		Comments:   0,
		Keywords:   keywords.Extract(title + " " + content),
	}
}
