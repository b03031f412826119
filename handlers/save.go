package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ToggleSave(c *gin.Context) {
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

	saved, err := h.store.ToggleSave(ctx, req.UserID, id)
	if err != nil {
		h.fail(c, "toggle save", err, "Failed to save post")
		return
	}

	message := "Post removed from Private Drive"
	if saved {
		message = "Post saved to Private Drive"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"saved":   saved,
	})
}
