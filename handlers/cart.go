package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RanjeetKaur14/UniSphere/store"
)

type ConvertToCartRequest struct {
	Price       float64                `json:"price"`
	Condition   string                 `json:"condition"`
	ContactInfo map[string]interface{} `json:"contactInfo"`
}

func (h *Handler) ConvertToCart(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	// The whole body is optional; every field has a default.
	var req ConvertToCartRequest
	_ = c.ShouldBindJSON(&req)

	ctx, cancel := requestCtx(c)
	defer cancel()

	listingID, err := h.store.ConvertToListing(ctx, id, store.ConvertRequest{
		Price:       req.Price,
		Condition:   req.Condition,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		h.fail(c, "convert to cart", err, "Failed to convert post to Campus Cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post successfully converted to Campus Cart listing",
		"data":    gin.H{"cartListingId": listingID},
	})
}
