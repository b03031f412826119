package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RanjeetKaur14/UniSphere/models"
)

type AddCommentRequest struct {
	Text       string `json:"text"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	UserAvatar string `json:"userAvatar"`
}

func (h *Handler) AddComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" || req.UserID == "" {
		respondBadRequest(c, "Missing required fields")
		return
	}

	comment := models.NewComment(id, req.Text, req.UserID, req.UserName, req.UserAvatar)

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.store.AddComment(ctx, &comment); err != nil {
		h.fail(c, "add comment", err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Comment added successfully",
		"data":    comment,
	})
}

func (h *Handler) ListComments(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	comments, err := h.store.ListComments(ctx, id)
	if err != nil {
		h.fail(c, "list comments", err, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": comments})
}
