package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
)

func (s *E2ETestSuite) Test01_Health() {
	resp, err := http.Get(s.baseURL + "/api/health")
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var data map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&data))
	s.Equal("healthy", data["status"])
}

func (s *E2ETestSuite) Test02_Register() {
	body := `{"username":"alice","email":"alice@x.com","password":"secret1"}`
	resp, err := http.Post(s.baseURL+"/api/auth/register", "application/json", bytes.NewBufferString(body))
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	var data map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&data))
	user := data["user"].(map[string]interface{})
	s.Equal("alice", user["username"])
	s.Equal("alice@x.com", user["email"])
	s.Nil(user["password_hash"])
}

func (s *E2ETestSuite) Test03_RegisterConflict() {
	// Same username, different email.
	body := `{"username":"alice","email":"other@x.com","password":"secret1"}`
	resp, err := http.Post(s.baseURL+"/api/auth/register", "application/json", bytes.NewBufferString(body))
	s.NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusConflict, resp.StatusCode)

	// Same email, different username.
	body = `{"username":"alice2","email":"alice@x.com","password":"secret1"}`
	resp, err = http.Post(s.baseURL+"/api/auth/register", "application/json", bytes.NewBufferString(body))
	s.NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *E2ETestSuite) Test04_RegisterValidation() {
	for _, body := range []string{
		`{"username":"al","email":"a@x.com","password":"secret1"}`,
		`{"username":"albert","email":"a@x.com","password":"short"}`,
		`{"username":"albert","email":"a@x.com"}`,
	} {
		resp, err := http.Post(s.baseURL+"/api/auth/register", "application/json", bytes.NewBufferString(body))
		s.NoError(err)
		resp.Body.Close()
		s.Equal(http.StatusBadRequest, resp.StatusCode)
	}
}

func (s *E2ETestSuite) Test05_LoginInvalid() {
	// Wrong password and unknown email must be indistinguishable.
	for _, body := range []string{
		`{"email":"alice@x.com","password":"wrong12"}`,
		`{"email":"nobody@x.com","password":"secret1"}`,
	} {
		resp, err := http.Post(s.baseURL+"/api/auth/login", "application/json", bytes.NewBufferString(body))
		s.NoError(err)
		resp.Body.Close()
		s.Equal(http.StatusUnauthorized, resp.StatusCode)
	}
}

func (s *E2ETestSuite) Test06_LoginValid() {
	body := `{"email":"alice@x.com","password":"secret1"}`
	resp, err := http.Post(s.baseURL+"/api/auth/login", "application/json", bytes.NewBufferString(body))
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var data map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&data))
	token, _ := data["token"].(string)
	s.NotEmpty(token)
	s.token = token
}

func (s *E2ETestSuite) Test07_Me() {
	req, _ := http.NewRequest(http.MethodGet, s.baseURL+"/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+s.token)
	resp, err := http.DefaultClient.Do(req)
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var user map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&user))
	s.Equal("alice", user["username"])
	s.Equal("alice@x.com", user["email"])
}

func (s *E2ETestSuite) Test08_MeUnauthenticated() {
	resp, err := http.Get(s.baseURL + "/api/auth/me")
	s.NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *E2ETestSuite) Test99_Logout() {
	req, _ := http.NewRequest(http.MethodPost, s.baseURL+"/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+s.token)
	resp, err := http.DefaultClient.Do(req)
	s.NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	// The revoked token no longer authenticates.
	req, _ = http.NewRequest(http.MethodGet, s.baseURL+"/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+s.token)
	resp, err = http.DefaultClient.Do(req)
	s.NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
