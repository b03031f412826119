package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RanjeetKaur14/UniSphere/models"
	"github.com/RanjeetKaur14/UniSphere/store"
)

type CreatePostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	UserAvatar string `json:"userAvatar"`
	Department string `json:"department"`
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Missing required fields")
		return
	}
	if req.Title == "" || req.Content == "" || req.Category == "" || req.UserID == "" {
		respondBadRequest(c, "Missing required fields")
		return
	}

	post := models.NewPost(req.Title, req.Content, req.Category, req.UserID, req.UserName, req.UserAvatar, req.Department)

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.store.CreatePost(ctx, &post); err != nil {
		h.fail(c, "create post", err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Post created successfully",
		"data":    post,
	})
}

func (h *Handler) GetPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	post, err := h.store.GetPost(ctx, id)
	if err != nil {
		h.fail(c, "get post", err, "Failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

func (h *Handler) ListPosts(c *gin.Context) {
	filter := store.PostFilter{
		Category: c.Query("category"),
		Search:   strings.ToLower(c.Query("search")),
		Sort:     c.Query("sort"),
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	posts, err := h.store.ListPosts(ctx, filter)
	if err != nil {
		h.fail(c, "list posts", err, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    posts,
		"count":   len(posts),
	})
}
