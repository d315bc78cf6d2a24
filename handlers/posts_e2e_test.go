package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

func (s *E2ETestSuite) Test10_CreatePostUnauthenticated() {
	body := `{"title":"Hi","content":"<p>Hello</p>"}`
	resp, err := http.Post(s.baseURL+"/api/posts", "application/json", bytes.NewBufferString(body))
	s.NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *E2ETestSuite) Test11_CreatePostSanitized() {
	body := `{"title":"Hi","content":"<p>Hello<script>x</script></p>"}`
	req, _ := http.NewRequest(http.MethodPost, s.baseURL+"/api/posts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	resp, err := http.DefaultClient.Do(req)
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	var post map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&post))
	s.Equal("<p>Hello</p>", post["content"])
	s.Equal("alice", post["author_username"])
	s.createdPostID = int(post["id"].(float64))

	// UTC timestamp with Z suffix.
	created, _ := post["created_at"].(string)
	s.NotEmpty(created)
	s.Equal(uint8('Z'), created[len(created)-1])
}

func (s *E2ETestSuite) Test12_CreatePostValidation() {
	for _, body := range []string{`{"title":"Hi"}`, `{"content":"<p>x</p>"}`} {
		req, _ := http.NewRequest(http.MethodPost, s.baseURL+"/api/posts", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.token)
		resp, err := http.DefaultClient.Do(req)
		s.NoError(err)
		resp.Body.Close()
		s.Equal(http.StatusBadRequest, resp.StatusCode)
	}
}

func (s *E2ETestSuite) Test13_GetPost() {
	resp, err := http.Get(fmt.Sprintf("%s/api/posts/%d", s.baseURL, s.createdPostID))
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var post map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&post))
	s.Equal("<p>Hello</p>", post["content"])
}

func (s *E2ETestSuite) Test14_GetPostNotFound() {
	resp, err := http.Get(fmt.Sprintf("%s/api/posts/%d", s.baseURL, s.createdPostID+999))
	s.NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *E2ETestSuite) Test15_ListPosts() {
	resp, err := http.Get(s.baseURL + "/api/posts?page=1&per_page=10")
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var data map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&data))
	posts := data["posts"].([]interface{})
	s.NotEmpty(posts)
	s.EqualValues(1, data["current_page"])

	// Ordered by created_at descending.
	var prev string
	for i, raw := range posts {
		p := raw.(map[string]interface{})
		createdAt := p["created_at"].(string)
		if i > 0 {
			s.LessOrEqual(createdAt, prev)
		}
		prev = createdAt
	}
}

func (s *E2ETestSuite) Test16_ListPostsBadParams() {
	resp, err := http.Get(s.baseURL + "/api/posts?page=abc")
	s.NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
