package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RanjeetKaur14/UniSphere/store"
)

const requestTimeout = 10 * time.Second

// Handler carries the store dependency for all feed endpoints.
type Handler struct {
	store store.Store
}

func New(s store.Store) *Handler {
	return &Handler{store: s}
}

func requestCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// postID parses the :id path parameter. A malformed id cannot reference an
// existing post, so it reports not-found rather than a validation error.
func postID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondNotFound(c, "Post not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": message})
}

// fail maps a store error onto the uniform error shape: validation → 400,
// missing entity → 404, anything else → 500 with failMessage, logged with
// the operation and post id but never the request body.
func (h *Handler) fail(c *gin.Context, op string, err error, failMessage string) {
	switch {
	case errors.Is(err, store.ErrValidation):
		respondBadRequest(c, "Missing required fields")
	case errors.Is(err, store.ErrNotFound):
		respondNotFound(c, "Post not found")
	default:
		log.Error().Err(err).Str("op", op).Str("postId", c.Param("id")).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": failMessage})
	}
}
