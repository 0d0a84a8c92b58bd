package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mural/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAddCommentHandler(t *testing.T) {
	env := setupTestEnv(t)
	require.NoError(t, env.db.Create(&models.User{ID: "bob", FullName: "Bob Jones"}).Error)
	post := env.createPostViaAPI(t, "owner", []formFile{
		{name: "a.jpg", contentType: "image/jpeg", content: "x"},
	})

	t.Run("rejects empty content", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/posts/"+post.ID+"/comment",
			map[string]string{"userID": "bob"})
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("adds comment and notifies owner", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/posts/"+post.ID+"/comment",
			map[string]string{"userID": "bob", "content": "Great view!"})
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		updated := decodePost(t, resp)
		require.Len(t, updated.Comments, 1)
		comment := updated.Comments[0]
		assert.NotEmpty(t, comment.ID)
		assert.Equal(t, "bob", comment.UserID)
		assert.Equal(t, "Bob Jones", comment.UserFullName)
		assert.Equal(t, "Great view!", comment.Content)

		var notifications []models.Notification
		require.NoError(t, env.db.Where("user_id = ?", "owner").Find(&notifications).Error)
		require.Len(t, notifications, 1)
		assert.Equal(t, "Bob Jones commented on your post: Sunset", notifications[0].Message)
	})

	t.Run("unknown commenter becomes Anonymous", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/posts/"+post.ID+"/comment",
			map[string]string{"userID": "ghost", "content": "hi"})
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		updated := decodePost(t, resp)
		last := updated.Comments[len(updated.Comments)-1]
		assert.Equal(t, "Anonymous", last.UserFullName)
	})

	t.Run("commenting a missing post is 404", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/posts/missing/comment",
			map[string]string{"userID": "bob", "content": "hi"})
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateCommentHandler(t *testing.T) {
	env := setupTestEnv(t)
	require.NoError(t, env.db.Create(&models.User{ID: "bob", FullName: "Bob Jones"}).Error)
	post := env.createPostViaAPI(t, "owner", []formFile{
		{name: "a.jpg", contentType: "image/jpeg", content: "x"},
	})

	req := jsonRequest(t, http.MethodPost, "/posts/"+post.ID+"/comment",
		map[string]string{"userID": "bob", "content": "original"})
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	commentID := decodePost(t, resp).Comments[0].ID

	t.Run("author edits own comment", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPut, "/posts/"+post.ID+"/comment/"+commentID,
			map[string]string{"userID": "bob", "content": "edited"})
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "edited", decodePost(t, resp).Comments[0].Content)
	})

	t.Run("someone else's edit silently changes nothing", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPut, "/posts/"+post.ID+"/comment/"+commentID,
			map[string]string{"userID": "mallory", "content": "hijacked"})
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "edited", decodePost(t, resp).Comments[0].Content)
	})
}

func TestDeleteCommentHandler(t *testing.T) {
	env := setupTestEnv(t)
	require.NoError(t, env.db.Create(&models.User{ID: "bob", FullName: "Bob Jones"}).Error)
	post := env.createPostViaAPI(t, "owner", []formFile{
		{name: "a.jpg", contentType: "image/jpeg", content: "x"},
	})

	addComment := func(t *testing.T) string {
		t.Helper()
		req := jsonRequest(t, http.MethodPost, "/posts/"+post.ID+"/comment",
			map[string]string{"userID": "bob", "content": "target"})
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		comments := decodePost(t, resp).Comments
		return comments[len(comments)-1].ID
	}

	t.Run("requires userID", func(t *testing.T) {
		commentID := addComment(t)
		resp, err := env.app.Test(httptest.NewRequest(http.MethodDelete,
			"/posts/"+post.ID+"/comment/"+commentID, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("stranger's delete changes nothing", func(t *testing.T) {
		commentID := addComment(t)
		resp, err := env.app.Test(httptest.NewRequest(http.MethodDelete,
			"/posts/"+post.ID+"/comment/"+commentID+"?userID=mallory", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		updated := decodePost(t, resp)
		found := false
		for _, c := range updated.Comments {
			if c.ID == commentID {
				found = true
			}
		}
		assert.True(t, found, "comment must survive a stranger's delete")
	})

	t.Run("author removes own comment", func(t *testing.T) {
		commentID := addComment(t)
		resp, err := env.app.Test(httptest.NewRequest(http.MethodDelete,
			"/posts/"+post.ID+"/comment/"+commentID+"?userID=bob", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		for _, c := range decodePost(t, resp).Comments {
			assert.NotEqual(t, commentID, c.ID)
		}
	})

	t.Run("post owner removes any comment", func(t *testing.T) {
		commentID := addComment(t)
		resp, err := env.app.Test(httptest.NewRequest(http.MethodDelete,
			"/posts/"+post.ID+"/comment/"+commentID+"?userID=owner", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		for _, c := range decodePost(t, resp).Comments {
			assert.NotEqual(t, commentID, c.ID)
		}
	})
}
