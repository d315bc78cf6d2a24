package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blog-api/globals"
	"blog-api/models"
	"blog-api/pkg/tokens"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubPostStore keeps posts in memory, newest first.
type stubPostStore struct {
	posts  []models.Post
	nextID int
}

func (s *stubPostStore) CreatePost(userID int, title, content string) (*models.Post, error) {
	s.nextID++
	p := models.Post{
		ID:             s.nextID,
		Title:          title,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
		UserID:         userID,
		AuthorUsername: "alice",
	}
	s.posts = append([]models.Post{p}, s.posts...)
	return &p, nil
}

func (s *stubPostStore) GetPostByID(id int) (*models.Post, error) {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return &s.posts[i], nil
		}
	}
	return nil, nil
}

func (s *stubPostStore) GetPosts(limit, offset int) ([]models.Post, int, error) {
	total := len(s.posts)
	if offset >= total {
		return []models.Post{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return s.posts[offset:end], total, nil
}

func postsFixture() (*gin.Engine, *stubPostStore, tokens.Store) {
	gin.SetMode(gin.TestMode)
	userStore := &stubUserStore{users: map[int]*models.User{
		1: {ID: 1, Username: "alice", Email: "alice@x.com"},
	}}
	tokenStore := tokens.NewMemoryStore(0)
	auth := NewAuthHandler(userStore, tokenStore)
	posts := &stubPostStore{}
	h := NewPostsHandler(posts, auth)

	r := gin.New()
	r.Use(sessions.Sessions(globals.SessionName, cookie.NewStore([]byte("0123456789abcdef0123456789abcdef"))))
	r.POST("/api/posts", h.CreatePost)
	r.GET("/api/posts", h.GetPosts)
	r.GET("/api/posts/:id", h.GetPost)
	return r, posts, tokenStore
}

func TestCreatePostRequiresAuth(t *testing.T) {
	r, _, _ := postsFixture()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"title":"Hi","content":"<p>x</p>"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePostSanitizesContent(t *testing.T) {
	r, store, tokenStore := postsFixture()
	token := tokenStore.Issue(1)

	w := httptest.NewRecorder()
	body := `{"title":"Hi","content":"<p>Hello<script>x</script></p>"}`
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Post
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "<p>Hello</p>", created.Content)

	// The stored content is the sanitized one: there is no raw path.
	stored, _ := store.GetPostByID(created.ID)
	assert.Equal(t, "<p>Hello</p>", stored.Content)
}

func TestCreatePostMissingFields(t *testing.T) {
	r, _, tokenStore := postsFixture()
	token := tokenStore.Issue(1)

	for _, body := range []string{`{}`, `{"title":"Hi"}`, `{"content":"<p>x</p>"}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestGetPostNotFound(t *testing.T) {
	r, _, _ := postsFixture()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/999", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/posts/abc", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPostsPagination(t *testing.T) {
	r, _, tokenStore := postsFixture()
	token := tokenStore.Issue(1)

	for i := 0; i < 15; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"title":"T","content":"<p>c</p>"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts?page=1&per_page=10", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posts       []models.Post `json:"posts"`
		TotalPosts  int           `json:"total_posts"`
		TotalPages  int           `json:"total_pages"`
		CurrentPage int           `json:"current_page"`
		PerPage     int           `json:"per_page"`
		NextPageNum *int          `json:"next_page_num"`
		PrevPageNum *int          `json:"prev_page_num"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Posts, 10)
	assert.Equal(t, 15, resp.TotalPosts)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.NotNil(t, resp.NextPageNum)
	assert.Nil(t, resp.PrevPageNum)
	// Newest first.
	assert.Equal(t, 15, resp.Posts[0].ID)
}

func TestListPostsClampsOutOfRangeParams(t *testing.T) {
	r, _, _ := postsFixture()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts?page=0&per_page=1000", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp["current_page"])
	assert.EqualValues(t, 100, resp["per_page"])
}

func TestListPostsRejectsNonNumericParams(t *testing.T) {
	r, _, _ := postsFixture()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts?page=abc", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
