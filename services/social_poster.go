package services

import (
	"ClassFeed/models"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTwitterAPIURL = "https://api.twitter.com"

var ErrNoSocialAccount = errors.New("user has no linked social account")

// PostResult is the outcome of mirroring a message to the social platform.
// Callers log a failed result and carry on; it is never returned to clients.
type PostResult struct {
	Tweet *models.Tweet
	Err   error
}

func (r PostResult) OK() bool {
	return r.Err == nil && r.Tweet != nil && r.Tweet.ID != ""
}

type SocialPoster interface {
	Post(ctx context.Context, author models.User, text string) PostResult
}

// TwitterPoster posts on behalf of a user with the user's OAuth 2.0 token.
type TwitterPoster struct {
	BaseURL string
	Client  *http.Client
}

func NewTwitterPoster(baseURL string) *TwitterPoster {
	if baseURL == "" {
		baseURL = defaultTwitterAPIURL
	}
	return &TwitterPoster{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type createTweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

func (p *TwitterPoster) Post(ctx context.Context, author models.User, text string) PostResult {
	if author.TwitterToken == "" {
		return PostResult{Err: ErrNoSocialAccount}
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return PostResult{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return PostResult{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+author.TwitterToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return PostResult{Err: fmt.Errorf("post tweet: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return PostResult{Err: fmt.Errorf("post tweet: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))}
	}

	var decoded createTweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return PostResult{Err: fmt.Errorf("decode tweet: %w", err)}
	}
	if decoded.Data.ID == "" {
		return PostResult{Err: errors.New("post tweet: response without id")}
	}

	return PostResult{Tweet: &models.Tweet{ID: decoded.Data.ID, Text: decoded.Data.Text}}
}
