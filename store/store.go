// Package store owns the interaction-consistency rules of the feed: every
// multi-document mutation (like toggle, comment add, archive save, cart
// conversion) goes through here so the denormalized counters on a post
// always mirror the underlying like/comment records.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RanjeetKaur14/UniSphere/models"
)

var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation means the caller sent missing or malformed input.
	ErrValidation = errors.New("invalid input")
)

const (
	SortRecent  = "recent"
	SortPopular = "popular"

	// CategoryAll is the sentinel that disables category filtering.
	CategoryAll = "all"

	// UrgentTag marks posts counted by the urgent stat.
	UrgentTag = "urgent"
)

// PostFilter composes as logical AND. Search must already be lowercased.
type PostFilter struct {
	Category string
	Search   string
	Sort     string
}

// ConvertRequest carries the caller-supplied listing fields; zero values
// fall back to the listing defaults.
type ConvertRequest struct {
	Price       float64
	Condition   string
	ContactInfo map[string]interface{}
}

// StatsWindow bounds the stats queries, in the store's millisecond
// timestamp unit.
type StatsWindow struct {
	DayStart    int64 // start of the current local day
	ActiveSince int64 // start of the trailing activity window
}

// Store is the persistence boundary. One implementation talks to MongoDB;
// the in-memory one backs tests. Both uphold the same invariants:
// exactly one state flip per toggle call, counters equal to record
// cardinality, frozen archive snapshots, and at most one listing per post.
type Store interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error)

	ToggleLike(ctx context.Context, postID primitive.ObjectID, userID string) (liked bool, err error)

	AddComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error)

	ToggleSave(ctx context.Context, userID string, postID primitive.ObjectID) (saved bool, err error)

	ConvertToListing(ctx context.Context, postID primitive.ObjectID, req ConvertRequest) (listingID string, err error)

	Stats(ctx context.Context, win StatsWindow) (*models.Stats, error)
}
