package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var testCreds = Credentials{
	ConsumerKey:    "ck",
	ConsumerSecret: "cs",
	AccessToken:    "at",
	AccessSecret:   "as",
}

func newTestClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	c, err := New(testCreds)
	if err != nil {
		t.Fatal(err)
	}
	c.baseURL = ts.URL
	c.httpClient = ts.Client()
	c.maxAttempts = 3
	c.baseBackoff = 10 * time.Millisecond
	return c
}

func TestNewRequiresAllCredentials(t *testing.T) {
	partials := []Credentials{
		{},
		{ConsumerKey: "ck"},
		{ConsumerKey: "ck", ConsumerSecret: "cs", AccessToken: "at"},
	}
	for _, creds := range partials {
		if _, err := New(creds); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("New(%+v): want ErrMissingCredentials, got %v", creds, err)
		}
	}
	if _, err := New(testCreds); err != nil {
		t.Fatalf("complete credentials rejected: %v", err)
	}
}

func TestFetchTweetSignsAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "OAuth ") {
			t.Errorf("missing OAuth header, got %q", r.Header.Get("Authorization"))
		}
		q := r.URL.Query()
		if q.Get("id") != "1001" || q.Get("tweet_mode") != "extended" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id_str":    "1001",
			"full_text": "hello",
			"lang":      "en",
		})
	}))
	defer ts.Close()

	c := newTestClient(t, ts)
	doc, err := c.FetchTweet(context.Background(), "1001")
	if err != nil {
		t.Fatal(err)
	}
	if doc["full_text"] != "hello" || doc["lang"] != "en" {
		t.Fatalf("unexpected document: %v", doc)
	}
}

func TestFetchUserStatusErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := newTestClient(t, ts)
	if _, err := c.FetchUser(context.Background(), "42"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestExhaustedRetriesReportLastStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := newTestClient(t, ts)
	c.maxAttempts = 2
	_, err := c.FetchTweet(context.Background(), "1")
	if err == nil {
		t.Fatal("expected error when every attempt is throttled")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("error must name the last status, got %v", err)
	}
}

func TestDoWithRetryHandles429(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id_str": "1"})
	}))
	defer ts.Close()

	c := newTestClient(t, ts)
	doc, err := c.FetchTweet(context.Background(), "1")
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if doc["id_str"] != "1" {
		t.Fatalf("unexpected document: %v", doc)
	}
	if attempts < 2 {
		t.Fatalf("expected at least 2 attempts, got %d", attempts)
	}
}
