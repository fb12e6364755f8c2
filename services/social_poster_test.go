package services

import (
	"ClassFeed/models"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwitterPosterPostsWithUserToken(t *testing.T) {
	var gotAuth, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/tweets", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotText = body["text"]
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"123","text":"hello class"}}`))
	}))
	defer srv.Close()

	result := NewTwitterPoster(srv.URL).Post(context.Background(), models.User{TwitterToken: "tok"}, "hello class")

	require.True(t, result.OK(), "%v", result.Err)
	assert.Equal(t, "123", result.Tweet.ID)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "hello class", gotText)
}

func TestTwitterPosterReportsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	result := NewTwitterPoster(srv.URL).Post(context.Background(), models.User{TwitterToken: "tok"}, "hi")

	assert.False(t, result.OK())
	assert.ErrorContains(t, result.Err, "429")
}

func TestTwitterPosterWithoutLinkedAccount(t *testing.T) {
	result := NewTwitterPoster("http://127.0.0.1:0").Post(context.Background(), models.User{}, "hi")

	assert.ErrorIs(t, result.Err, ErrNoSocialAccount)
	assert.False(t, result.OK())
}
