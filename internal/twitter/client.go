// Package twitter is the remote collaborator of the hydration
// pipeline: a rate-limited Twitter API v1.1 client that fetches one
// raw status or user document per call.
package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"tweetkit/internal/metrics"
	"tweetkit/internal/model"
)

// ErrMissingCredentials means the client cannot be constructed because
// one of the four OAuth 1.0a credentials is empty.
var ErrMissingCredentials = errors.New("missing twitter api credentials")

// Credentials holds the OAuth 1.0a key material for v1.1 endpoints.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
}

func (c Credentials) complete() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// Client fetches raw documents from the Twitter v1.1 REST API. It
// waits on its own rate limiter and retries 429/5xx responses with
// backoff, so callers never see a rate-limit error mid-archive.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	baseBackoff time.Duration
	creds       Credentials
	nowFn       func() time.Time
	nonceFn     func() string
}

func New(creds Credentials) (*Client, error) {
	if !creds.complete() {
		return nil, ErrMissingCredentials
	}
	return &Client{
		baseURL:     "https://api.twitter.com/1.1",
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		limiter:     newDefaultLimiter(),
		maxAttempts: getEnvInt("TWITTER_API_MAX_ATTEMPTS", 5),
		baseBackoff: time.Duration(getEnvInt("TWITTER_API_BASE_BACKOFF_MS", 500)) * time.Millisecond,
		creds:       creds,
		nowFn:       time.Now,
		nonceFn:     defaultNonce,
	}, nil
}

// FetchTweet returns the raw extended-mode status document for id.
func (c *Client) FetchTweet(ctx context.Context, id string) (model.Document, error) {
	return c.get(ctx, "/statuses/show.json", map[string]string{
		"id":         id,
		"tweet_mode": "extended",
	})
}

// FetchUser returns the raw user document for id.
func (c *Client) FetchUser(ctx context.Context, id string) (model.Document, error) {
	return c.get(ctx, "/users/show.json", map[string]string{
		"user_id": id,
	})
}

func (c *Client) get(ctx context.Context, path string, params map[string]string) (model.Document, error) {
	reqURL := c.baseURL + path + "?" + encodeQuery(params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	c.oauth1Sign(req, params)
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("twitter api status %d for %s", resp.StatusCode, path)
	}
	var doc model.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	backoff := c.baseBackoff
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := c.httpClient.Do(req.Clone(ctx))
		if err == nil {
			if resp.StatusCode == http.StatusTooManyRequests || (resp.StatusCode >= 500 && resp.StatusCode <= 599) {
				lastErr = fmt.Errorf("status %s", resp.Status)
				ra := resp.Header.Get("Retry-After")
				_ = resp.Body.Close()
				metrics.IncAPIRetry(req.URL.Path)
				wait := backoff
				if ra != "" {
					if secs, err := strconv.Atoi(ra); err == nil {
						wait = time.Duration(secs) * time.Second
					} else if t, err := http.ParseTime(ra); err == nil {
						if d := time.Until(t); d > 0 {
							wait = d
						}
					}
				}
				// jitter +/-20%
				jitter := time.Duration(float64(wait) * 0.2)
				if jitter > 0 {
					wait = wait - jitter + time.Duration(time.Now().UnixNano()%int64(2*jitter))
				}
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				backoff *= 2
				continue
			}
			return resp, nil
		}
		lastErr = err
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("request failed after %d attempts: %v", c.maxAttempts, lastErr)
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil && i > 0 {
		return i
	}
	return def
}
