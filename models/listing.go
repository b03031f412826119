package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	ListingCategory     = "Other"
	ListingStatusActive = "active"
	DefaultCondition    = "Good"
)

// Listing is a Campus Cart item derived one-way from a post.
// OriginalPostID is a lookup-only back-reference.
type Listing struct {
	ID             primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Title          string                 `bson:"title" json:"title"`
	Description    string                 `bson:"description" json:"description"`
	Price          float64                `bson:"price" json:"price"`
	Condition      string                 `bson:"condition" json:"condition"`
	Category       string                 `bson:"category" json:"category"`
	SellerID       string                 `bson:"sellerId" json:"sellerId"`
	SellerName     string                 `bson:"sellerName" json:"sellerName"`
	SellerAvatar   string                 `bson:"sellerAvatar" json:"sellerAvatar"`
	ContactInfo    map[string]interface{} `bson:"contactInfo" json:"contactInfo"`
	Images         []string               `bson:"images" json:"images"`
	Status         string                 `bson:"status" json:"status"`
	OriginalPostID primitive.ObjectID     `bson:"originalPostId" json:"originalPostId"`
	CreatedAt      int64                  `bson:"createdAt" json:"createdAt"`
}

// NewListingFromPost derives a listing from a post: description is the post
// content, seller fields copy the post author, category is always the
// catch-all. ID and CreatedAt are assigned by the store at write time.
func NewListingFromPost(p Post, price float64, condition string, contactInfo map[string]interface{}) Listing {
	if condition == "" {
		condition = DefaultCondition
	}
	if contactInfo == nil {
		contactInfo = map[string]interface{}{}
	}

	return Listing{
		Title:          p.Title,
		Description:    p.Content,
		Price:          price,
		Condition:      condition,
		Category:       ListingCategory,
		SellerID:       p.UserID,
		SellerName:     p.UserName,
		SellerAvatar:   p.UserAvatar,
		ContactInfo:    contactInfo,
		Images:         []string{},
		Status:         ListingStatusActive,
		OriginalPostID: p.ID,
	}
}
