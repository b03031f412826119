package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RanjeetKaur14/UniSphere/database"
	"github.com/RanjeetKaur14/UniSphere/models"
)

// Mongo is the MongoDB-backed Store. Multi-document write bundles run in a
// session transaction where the deployment supports it; on standalone
// mongod they degrade to sequential writes, with the unique indexes still
// preventing duplicate entries.
type Mongo struct {
	client *mongo.Client
	c      *database.Collections
}

func NewMongo(client *mongo.Client, c *database.Collections) *Mongo {
	return &Mongo{client: client, c: c}
}

// now is the server-assigned write timestamp. Client-supplied timestamps
// are never consulted.
func (m *Mongo) now() int64 {
	return time.Now().UnixMilli()
}

// withBundle runs fn as one atomic write bundle. Transactions need a
// replica set; a standalone mongod rejects the very first transactional
// operation before any write lands, so rerunning fn sequentially is safe.
func (m *Mongo) withBundle(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := m.client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && txnUnsupported(err) {
		log.Warn().Msg("mongo deployment without transaction support, applying write bundle sequentially")
		return fn(ctx)
	}
	return err
}

func txnUnsupported(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.Code == 20 || strings.Contains(ce.Message, "Transaction numbers")
	}
	return false
}

func (m *Mongo) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.Timestamp = m.now()

	if _, err := m.c.Posts.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (m *Mongo) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := m.c.Posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &post, nil
}

func (m *Mongo) ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	query := bson.M{}
	if filter.Category != "" && filter.Category != CategoryAll {
		query["tags"] = filter.Category
	}
	if filter.Search != "" {
		query["keywords"] = filter.Search
	}

	sort := bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}
	if filter.Sort == SortPopular {
		sort = bson.D{{Key: "likes", Value: -1}, {Key: "_id", Value: -1}}
	}

	cursor, err := m.c.Posts.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// ToggleLike flips the (post, user) like state and mirrors the flip on the
// post counter, as one bundle. The delete-else-insert plus the unique
// index guarantee exactly one state flip per logical call: the loser of a
// concurrent double-like hits a duplicate key and observes "liked" without
// a second increment.
func (m *Mongo) ToggleLike(ctx context.Context, postID primitive.ObjectID, userID string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if err := m.postExists(ctx, postID); err != nil {
		return false, err
	}

	liked := false
	err := m.withBundle(ctx, func(ctx context.Context) error {
		key := bson.M{"postId": postID, "userId": userID}

		res, err := m.c.Likes.DeleteOne(ctx, key)
		if err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		if res.DeletedCount > 0 {
			liked = false
			return m.incCounter(ctx, postID, "likes", -1)
		}

		like := models.Like{PostID: postID, UserID: userID, Timestamp: m.now()}
		if _, err := m.c.Likes.InsertOne(ctx, like); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				liked = true
				return nil
			}
			return fmt.Errorf("insert like: %w", err)
		}
		liked = true
		return m.incCounter(ctx, postID, "likes", 1)
	})
	return liked, err
}

func (m *Mongo) AddComment(ctx context.Context, comment *models.Comment) error {
	if comment.Text == "" || comment.UserID == "" {
		return fmt.Errorf("%w: text and userId are required", ErrValidation)
	}
	if err := m.postExists(ctx, comment.PostID); err != nil {
		return err
	}

	comment.ID = primitive.NewObjectID()
	comment.Timestamp = m.now()

	return m.withBundle(ctx, func(ctx context.Context) error {
		if _, err := m.c.Comments.InsertOne(ctx, comment); err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
		return m.incCounter(ctx, comment.PostID, "comments", 1)
	})
}

func (m *Mongo) ListComments(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := m.c.Comments.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return comments, nil
}

// ToggleSave flips the archive entry for (user, post). The snapshot is
// written once at save time and never updated afterwards.
func (m *Mongo) ToggleSave(ctx context.Context, userID string, postID primitive.ObjectID) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	key := bson.M{"userId": userID, "postId": postID}

	res, err := m.c.SavedPosts.DeleteOne(ctx, key)
	if err != nil {
		return false, fmt.Errorf("delete saved post: %w", err)
	}
	if res.DeletedCount > 0 {
		return false, nil
	}

	post, err := m.GetPost(ctx, postID)
	if err != nil {
		return false, err
	}

	saved := models.SavedPost{
		UserID:   userID,
		PostID:   postID,
		PostData: models.SnapshotOf(*post),
		SavedAt:  m.now(),
	}
	if _, err := m.c.SavedPosts.InsertOne(ctx, saved); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// A concurrent save won the insert; the entry exists.
			return true, nil
		}
		return false, fmt.Errorf("insert saved post: %w", err)
	}
	return true, nil
}

// ConvertToListing is idempotent: a post already converted returns its
// existing listing id instead of growing a duplicate. The listing insert
// and the post flag update are one bundle.
func (m *Mongo) ConvertToListing(ctx context.Context, postID primitive.ObjectID, req ConvertRequest) (string, error) {
	var listingID string
	err := m.withBundle(ctx, func(ctx context.Context) error {
		post, err := m.GetPost(ctx, postID)
		if err != nil {
			return err
		}
		if post.ConvertedToCart && post.CartListingID != "" {
			listingID = post.CartListingID
			return nil
		}

		listing := models.NewListingFromPost(*post, req.Price, req.Condition, req.ContactInfo)
		listing.ID = primitive.NewObjectID()
		listing.CreatedAt = m.now()

		if _, err := m.c.Listings.InsertOne(ctx, listing); err != nil {
			return fmt.Errorf("insert listing: %w", err)
		}

		update := bson.M{"$set": bson.M{"convertedToCart": true, "cartListingId": listing.ID.Hex()}}
		if _, err := m.c.Posts.UpdateOne(ctx, bson.M{"_id": postID}, update); err != nil {
			return fmt.Errorf("mark post converted: %w", err)
		}

		listingID = listing.ID.Hex()
		return nil
	})
	return listingID, err
}

func (m *Mongo) Stats(ctx context.Context, win StatsWindow) (*models.Stats, error) {
	postsToday, err := m.c.Posts.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": win.DayStart}})
	if err != nil {
		return nil, fmt.Errorf("count posts today: %w", err)
	}

	total, err := m.c.Posts.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	withComments, err := m.c.Posts.CountDocuments(ctx, bson.M{"comments": bson.M{"$gt": 0}})
	if err != nil {
		return nil, fmt.Errorf("count commented posts: %w", err)
	}

	urgent, err := m.c.Posts.CountDocuments(ctx, bson.M{"tags": UrgentTag})
	if err != nil {
		return nil, fmt.Errorf("count urgent posts: %w", err)
	}

	activeWindow := bson.M{"timestamp": bson.M{"$gte": win.ActiveSince}}
	postAuthors, err := m.c.Posts.Distinct(ctx, "userId", activeWindow)
	if err != nil {
		return nil, fmt.Errorf("distinct post authors: %w", err)
	}
	commentAuthors, err := m.c.Comments.Distinct(ctx, "userId", activeWindow)
	if err != nil {
		return nil, fmt.Errorf("distinct comment authors: %w", err)
	}

	active := make(map[string]struct{})
	for _, a := range append(postAuthors, commentAuthors...) {
		if id, ok := a.(string); ok {
			active[id] = struct{}{}
		}
	}

	return &models.Stats{
		PostsToday:   postsToday,
		ResolvedRate: models.FormatResolvedRate(withComments, total),
		ActiveUsers:  len(active),
		UrgentPosts:  urgent,
	}, nil
}

func (m *Mongo) postExists(ctx context.Context, id primitive.ObjectID) error {
	n, err := m.c.Posts.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("count post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) incCounter(ctx context.Context, postID primitive.ObjectID, field string, delta int) error {
	_, err := m.c.Posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return fmt.Errorf("update %s counter: %w", field, err)
	}
	return nil
}
