package handlers

import (
	"log"
	"net/http"
	"strconv"

	"blog-api/models"
	"blog-api/pkg/sanitize"
	"blog-api/types"

	"github.com/gin-gonic/gin"
)

// PostStore is the slice of the posts repository the handlers need.
type PostStore interface {
	CreatePost(userID int, title, content string) (*models.Post, error)
	GetPostByID(id int) (*models.Post, error)
	GetPosts(limit, offset int) ([]models.Post, int, error)
}

type PostsHandler struct {
	posts PostStore
	auth  *AuthHandler
}

func NewPostsHandler(posts PostStore, auth *AuthHandler) *PostsHandler {
	return &PostsHandler{posts: posts, auth: auth}
}

func (h *PostsHandler) CreatePost(c *gin.Context) {
	user, err := h.auth.CurrentUser(c)
	if err != nil {
		log.Printf("create post: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, types.ErrorBody("Authentication required"))
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorBody("Request body must be JSON"))
		return
	}
	if req.Title == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, types.ErrorBody("Title and content are required"))
		return
	}

	// Sole XSS defense: content is always filtered before it reaches the
	// repository.
	content := sanitize.Clean(req.Content)

	post, err := h.posts.CreatePost(user.ID, req.Title, content)
	if err != nil {
		log.Printf("create post: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostsHandler) GetPosts(c *gin.Context) {
	pagination, err := types.ParsePaginationParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorBody("Invalid pagination parameters"))
		return
	}

	posts, total, err := h.posts.GetPosts(pagination.PerPage, pagination.Offset)
	if err != nil {
		log.Printf("list posts: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}

	c.JSON(http.StatusOK, pagination.BuildResponse("posts", posts, total))
}

func (h *PostsHandler) GetPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, types.ErrorBody("Post not found"))
		return
	}

	post, err := h.posts.GetPostByID(id)
	if err != nil {
		log.Printf("get post: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, types.ErrorBody("Post not found"))
		return
	}

	c.JSON(http.StatusOK, post)
}
