package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RanjeetKaur14/UniSphere/handlers"
	"github.com/RanjeetKaur14/UniSphere/routes"
	"github.com/RanjeetKaur14/UniSphere/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	return routes.SetupRouter(handlers.New(store.NewMemory()))
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func createPost(t *testing.T, router *gin.Engine, title, category, userID string) map[string]interface{} {
	t.Helper()
	w, resp := do(t, router, http.MethodPost, "/api/posts", gin.H{
		"title":    title,
		"content":  title + " body",
		"category": category,
		"userId":   userID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return resp["data"].(map[string]interface{})
}

func TestCreatePost(t *testing.T) {
	router := newTestRouter()

	w, resp := do(t, router, http.MethodPost, "/api/posts", gin.H{
		"title":    "Lost keys",
		"content":  "Left my keys in the library",
		"category": "lost-found",
		"userId":   "u1",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Post created successfully", resp["message"])

	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, float64(0), data["likes"])
	assert.Equal(t, float64(0), data["comments"])
	assert.Equal(t, "Anonymous", data["userName"])
	assert.Equal(t, "General", data["department"])
	assert.Equal(t, []interface{}{"lost-found"}, data["tags"])
	assert.Contains(t, data["keywords"], "library")
	assert.NotZero(t, data["timestamp"])
}

func TestCreatePostMissingFields(t *testing.T) {
	router := newTestRouter()

	w, resp := do(t, router, http.MethodPost, "/api/posts", gin.H{"title": "only a title"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Missing required fields", resp["message"])
}

func TestGetPostNotFound(t *testing.T) {
	router := newTestRouter()

	w, resp := do(t, router, http.MethodGet, "/api/posts/ffffffffffffffffffffffff", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", resp["message"])

	w, _ = do(t, router, http.MethodGet, "/api/posts/not-a-valid-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeToggleFlow(t *testing.T) {
	router := newTestRouter()
	post := createPost(t, router, "Pizza night", "food", "author")
	id := post["id"].(string)

	w, resp := do(t, router, http.MethodPost, "/api/posts/"+id+"/like", gin.H{"userId": "u1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post liked", resp["message"])

	_, resp = do(t, router, http.MethodGet, "/api/posts/"+id, nil)
	assert.Equal(t, float64(1), resp["data"].(map[string]interface{})["likes"])

	w, resp = do(t, router, http.MethodPost, "/api/posts/"+id+"/like", gin.H{"userId": "u1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post unliked", resp["message"])

	_, resp = do(t, router, http.MethodGet, "/api/posts/"+id, nil)
	assert.Equal(t, float64(0), resp["data"].(map[string]interface{})["likes"])
}

func TestLikeValidation(t *testing.T) {
	router := newTestRouter()
	post := createPost(t, router, "Pizza night", "food", "author")
	id := post["id"].(string)

	w, resp := do(t, router, http.MethodPost, "/api/posts/"+id+"/like", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User ID is required", resp["message"])

	w, _ = do(t, router, http.MethodPost, "/api/posts/ffffffffffffffffffffffff/like", gin.H{"userId": "u1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentFlow(t *testing.T) {
	router := newTestRouter()
	post := createPost(t, router, "Study group", "academic", "author")
	id := post["id"].(string)

	w, resp := do(t, router, http.MethodPost, "/api/posts/"+id+"/comments", gin.H{
		"text":   "count me in",
		"userId": "u1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Comment added successfully", resp["message"])
	comment := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, comment["id"])
	assert.Equal(t, "Anonymous", comment["userName"])

	w, _ = do(t, router, http.MethodPost, "/api/posts/"+id+"/comments", gin.H{
		"text":   "me too",
		"userId": "u2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	_, resp = do(t, router, http.MethodGet, "/api/posts/"+id, nil)
	assert.Equal(t, float64(2), resp["data"].(map[string]interface{})["comments"])

	_, resp = do(t, router, http.MethodGet, "/api/posts/"+id+"/comments", nil)
	comments := resp["data"].([]interface{})
	require.Len(t, comments, 2)
	// Most recent first.
	assert.Equal(t, "me too", comments[0].(map[string]interface{})["text"])
	assert.Equal(t, "count me in", comments[1].(map[string]interface{})["text"])
}

func TestCommentValidation(t *testing.T) {
	router := newTestRouter()
	post := createPost(t, router, "Study group", "academic", "author")
	id := post["id"].(string)

	w, resp := do(t, router, http.MethodPost, "/api/posts/"+id+"/comments", gin.H{"userId": "u1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", resp["message"])

	w, _ = do(t, router, http.MethodPost, "/api/posts/ffffffffffffffffffffffff/comments", gin.H{
		"text":   "hello",
		"userId": "u1",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveToggleFlow(t *testing.T) {
	router := newTestRouter()
	post := createPost(t, router, "Free couch", "marketplace", "author")
	id := post["id"].(string)

	w, resp := do(t, router, http.MethodPost, "/api/posts/"+id+"/save", gin.H{"userId": "u1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["saved"])
	assert.Equal(t, "Post saved to Private Drive", resp["message"])

	w, resp = do(t, router, http.MethodPost, "/api/posts/"+id+"/save", gin.H{"userId": "u1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["saved"])
	assert.Equal(t, "Post removed from Private Drive", resp["message"])

	w, _ = do(t, router, http.MethodPost, "/api/posts/ffffffffffffffffffffffff/save", gin.H{"userId": "u1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConvertToCartFlow(t *testing.T) {
	router := newTestRouter()
	post := createPost(t, router, "Old bike", "marketplace", "seller")
	id := post["id"].(string)

	w, resp := do(t, router, http.MethodPost, "/api/posts/"+id+"/convert-to-cart", gin.H{"price": 40})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post successfully converted to Campus Cart listing", resp["message"])
	listingID := resp["data"].(map[string]interface{})["cartListingId"].(string)
	require.NotEmpty(t, listingID)

	_, resp = do(t, router, http.MethodGet, "/api/posts/"+id, nil)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["convertedToCart"])
	assert.Equal(t, listingID, data["cartListingId"])

	// Converting twice keeps the same listing.
	_, resp = do(t, router, http.MethodPost, "/api/posts/"+id+"/convert-to-cart", nil)
	assert.Equal(t, listingID, resp["data"].(map[string]interface{})["cartListingId"])

	w, _ = do(t, router, http.MethodPost, "/api/posts/ffffffffffffffffffffffff/convert-to-cart", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPostsFilterComposition(t *testing.T) {
	router := newTestRouter()
	createPost(t, router, "Pizza party", "food", "u1")
	createPost(t, router, "Burger meetup", "food", "u2")
	createPost(t, router, "Pizza tournament", "sports", "u3")

	w, resp := do(t, router, http.MethodGet, "/api/posts?category=food&search=Pizza", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["count"])
	posts := resp["data"].([]interface{})
	require.Len(t, posts, 1)
	assert.Equal(t, "Pizza party", posts[0].(map[string]interface{})["title"])

	_, resp = do(t, router, http.MethodGet, "/api/posts?category=all", nil)
	assert.Equal(t, float64(3), resp["count"])
}

func TestListPostsSortPopular(t *testing.T) {
	router := newTestRouter()
	first := createPost(t, router, "First", "misc", "u1")
	createPost(t, router, "Second", "misc", "u2")

	id := first["id"].(string)
	do(t, router, http.MethodPost, "/api/posts/"+id+"/like", gin.H{"userId": "u3"})

	_, resp := do(t, router, http.MethodGet, "/api/posts?sort=popular", nil)
	posts := resp["data"].([]interface{})
	require.Len(t, posts, 2)
	assert.Equal(t, "First", posts[0].(map[string]interface{})["title"])

	_, resp = do(t, router, http.MethodGet, "/api/posts?sort=recent", nil)
	posts = resp["data"].([]interface{})
	assert.Equal(t, "Second", posts[0].(map[string]interface{})["title"])
}

func TestStatsEndpoint(t *testing.T) {
	router := newTestRouter()

	_, resp := do(t, router, http.MethodGet, "/api/stats", nil)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["postsToday"])
	assert.Equal(t, "0%", data["resolvedRate"])
	assert.Equal(t, float64(0), data["activeUsers"])
	assert.Equal(t, float64(0), data["urgentPosts"])

	post := createPost(t, router, "Need help now", "urgent", "u1")
	createPost(t, router, "Lunch plans", "food", "u2")
	createPost(t, router, "Quiet post", "misc", "u3")
	do(t, router, http.MethodPost, "/api/posts/"+post["id"].(string)+"/comments", gin.H{
		"text":   "on my way",
		"userId": "u4",
	})

	_, resp = do(t, router, http.MethodGet, "/api/stats", nil)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["postsToday"])
	assert.Equal(t, "33%", data["resolvedRate"])
	assert.Equal(t, float64(4), data["activeUsers"])
	assert.Equal(t, float64(1), data["urgentPosts"])
}

func TestUnknownAPIRoute(t *testing.T) {
	router := newTestRouter()

	w, resp := do(t, router, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
}
