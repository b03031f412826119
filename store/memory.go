package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RanjeetKaur14/UniSphere/models"
)

// Memory is an in-memory Store used as a test double. Every operation
// holds the one mutex, so check-then-act sequences are serialized and the
// exactly-one-flip guarantee holds trivially.
type Memory struct {
	mu       sync.Mutex
	posts    map[primitive.ObjectID]*models.Post
	likes    map[string]models.Like
	comments map[primitive.ObjectID][]models.Comment
	saved    map[string]models.SavedPost
	listings map[primitive.ObjectID]models.Listing
	clock    int64
}

func NewMemory() *Memory {
	return &Memory{
		posts:    make(map[primitive.ObjectID]*models.Post),
		likes:    make(map[string]models.Like),
		comments: make(map[primitive.ObjectID][]models.Comment),
		saved:    make(map[string]models.SavedPost),
		listings: make(map[primitive.ObjectID]models.Listing),
	}
}

// now returns a strictly increasing millisecond timestamp so that writes
// in the same millisecond still order deterministically.
func (m *Memory) now() int64 {
	t := time.Now().UnixMilli()
	if t <= m.clock {
		t = m.clock + 1
	}
	m.clock = t
	return t
}

func likeKey(postID primitive.ObjectID, userID string) string {
	return postID.Hex() + "_" + userID
}

func savedKey(userID string, postID primitive.ObjectID) string {
	return userID + "_" + postID.Hex()
}

func (m *Memory) CreatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	post.ID = primitive.NewObjectID()
	post.Timestamp = m.now()

	stored := *post
	m.posts[stored.ID] = &stored
	return nil
}

func (m *Memory) GetPost(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *post
	return &cp, nil
}

func (m *Memory) ListPosts(_ context.Context, filter PostFilter) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	posts := []models.Post{}
	for _, post := range m.posts {
		if filter.Category != "" && filter.Category != CategoryAll && !contains(post.Tags, filter.Category) {
			continue
		}
		if filter.Search != "" && !contains(post.Keywords, filter.Search) {
			continue
		}
		posts = append(posts, *post)
	}

	sort.Slice(posts, func(i, j int) bool {
		if filter.Sort == SortPopular {
			if posts[i].Likes != posts[j].Likes {
				return posts[i].Likes > posts[j].Likes
			}
		} else if posts[i].Timestamp != posts[j].Timestamp {
			return posts[i].Timestamp > posts[j].Timestamp
		}
		return posts[i].ID.Hex() > posts[j].ID.Hex()
	})
	return posts, nil
}

func (m *Memory) ToggleLike(_ context.Context, postID primitive.ObjectID, userID string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[postID]
	if !ok {
		return false, ErrNotFound
	}

	key := likeKey(postID, userID)
	if _, ok := m.likes[key]; ok {
		delete(m.likes, key)
		post.Likes--
		return false, nil
	}

	m.likes[key] = models.Like{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		UserID:    userID,
		Timestamp: m.now(),
	}
	post.Likes++
	return true, nil
}

func (m *Memory) AddComment(_ context.Context, comment *models.Comment) error {
	if comment.Text == "" || comment.UserID == "" {
		return fmt.Errorf("%w: text and userId are required", ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[comment.PostID]
	if !ok {
		return ErrNotFound
	}

	comment.ID = primitive.NewObjectID()
	comment.Timestamp = m.now()

	m.comments[comment.PostID] = append(m.comments[comment.PostID], *comment)
	post.Comments++
	return nil
}

func (m *Memory) ListComments(_ context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	comments := append([]models.Comment{}, m.comments[postID]...)
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].Timestamp != comments[j].Timestamp {
			return comments[i].Timestamp > comments[j].Timestamp
		}
		return comments[i].ID.Hex() > comments[j].ID.Hex()
	})
	return comments, nil
}

func (m *Memory) ToggleSave(_ context.Context, userID string, postID primitive.ObjectID) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := savedKey(userID, postID)
	if _, ok := m.saved[key]; ok {
		delete(m.saved, key)
		return false, nil
	}

	post, ok := m.posts[postID]
	if !ok {
		return false, ErrNotFound
	}

	m.saved[key] = models.SavedPost{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		PostID:   postID,
		PostData: models.SnapshotOf(*post),
		SavedAt:  m.now(),
	}
	return true, nil
}

func (m *Memory) ConvertToListing(_ context.Context, postID primitive.ObjectID, req ConvertRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[postID]
	if !ok {
		return "", ErrNotFound
	}
	if post.ConvertedToCart && post.CartListingID != "" {
		return post.CartListingID, nil
	}

	listing := models.NewListingFromPost(*post, req.Price, req.Condition, req.ContactInfo)
	listing.ID = primitive.NewObjectID()
	listing.CreatedAt = m.now()
	m.listings[listing.ID] = listing

	post.ConvertedToCart = true
	post.CartListingID = listing.ID.Hex()
	return post.CartListingID, nil
}

func (m *Memory) Stats(_ context.Context, win StatsWindow) (*models.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var postsToday, total, withComments, urgent int64
	active := make(map[string]struct{})

	for _, post := range m.posts {
		total++
		if post.Timestamp >= win.DayStart {
			postsToday++
		}
		if post.Comments > 0 {
			withComments++
		}
		if contains(post.Tags, UrgentTag) {
			urgent++
		}
		if post.Timestamp >= win.ActiveSince {
			active[post.UserID] = struct{}{}
		}
	}
	for _, comments := range m.comments {
		for _, comment := range comments {
			if comment.Timestamp >= win.ActiveSince {
				active[comment.UserID] = struct{}{}
			}
		}
	}

	return &models.Stats{
		PostsToday:   postsToday,
		ResolvedRate: models.FormatResolvedRate(withComments, total),
		ActiveUsers:  len(active),
		UrgentPosts:  urgent,
	}, nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
