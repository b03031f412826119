package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ToggleLike(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		respondBadRequest(c, "User ID is required")
		return
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	liked, err := h.store.ToggleLike(ctx, id, req.UserID)
	if err != nil {
		h.fail(c, "toggle like", err, "Failed to update like")
		return
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
