package hydrate

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"tweetkit/internal/cache"
	"tweetkit/internal/model"
)

type fakeFetcher struct {
	tweets     map[string]model.Document
	users      map[string]model.Document
	tweetCalls int
	userCalls  int
}

func (f *fakeFetcher) FetchTweet(ctx context.Context, id string) (model.Document, error) {
	f.tweetCalls++
	d, ok := f.tweets[id]
	if !ok {
		return nil, fmt.Errorf("no such tweet %s", id)
	}
	return clone(d), nil
}

func (f *fakeFetcher) FetchUser(ctx context.Context, id string) (model.Document, error) {
	f.userCalls++
	d, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("no such user %s", id)
	}
	return clone(d), nil
}

// clone round-trips through JSON so numbers arrive as float64, the
// same shape a decoded API response has.
func clone(d model.Document) model.Document {
	b, _ := json.Marshal(d)
	var out model.Document
	_ = json.Unmarshal(b, &out)
	return out
}

func newHydrator(t *testing.T, f *fakeFetcher) *Hydrator {
	t.Helper()
	return &Hydrator{
		Cache:   cache.NewStore(t.TempDir()),
		Fetcher: f,
		Log:     zerolog.Nop(),
	}
}

func TestTweetFetchesOnceThenServesFromCache(t *testing.T) {
	f := &fakeFetcher{tweets: map[string]model.Document{
		"1001": {
			"created_at":    "Mon Jan 02 15:04:05 +0000 2006",
			"full_text":     "hello world",
			"lang":          "en",
			"retweet_count": 3,
		},
	}}
	h := newHydrator(t, f)
	ctx := context.Background()

	first, err := h.Tweet(ctx, "1001")
	require.NoError(t, err)
	require.Equal(t, 1, f.tweetCalls)
	require.NotNil(t, first.Meta, "fresh fetch must still carry cache metadata")
	require.Equal(t, "Twitter", *first.JSONSource)

	second, err := h.Tweet(ctx, "1001")
	require.NoError(t, err)
	require.Equal(t, 1, f.tweetCalls, "second hydration must not fetch")
	require.Equal(t, first.Retweet, second.Retweet)
	require.Equal(t, *first.CreatedAtTS, *second.CreatedAtTS)
	require.Equal(t, int64(3), *second.RetweetCount)
}

func TestRetweetDetection(t *testing.T) {
	cases := []struct {
		name string
		doc  model.Document
		want bool
	}{
		{"retweeted status field", model.Document{"retweeted_status": map[string]any{}, "full_text": "whatever"}, true},
		{"RT prefix upper", model.Document{"full_text": "RT @someone: news"}, true},
		{"rt prefix lower", model.Document{"full_text": "rt this please"}, true},
		{"plain tweet", model.Document{"full_text": "hello world"}, false},
		{"too short", model.Document{"full_text": "r"}, false},
		{"no text", model.Document{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tw, err := buildTweet("1", tc.doc)
			require.NoError(t, err)
			require.Equal(t, tc.want, tw.Retweet)
		})
	}
}

func TestCreatedAtNormalization(t *testing.T) {
	tw, err := buildTweet("1", model.Document{"created_at": "Mon Jan 02 15:04:05 +0000 2006"})
	require.NoError(t, err)
	require.NotNil(t, tw.CreatedAtTS)
	require.Equal(t, "2006-01-02 15:04:05", *tw.CreatedAtTS)

	tw, err = buildTweet("1", model.Document{"created_at": "not a timestamp"})
	require.NoError(t, err)
	require.Nil(t, tw.CreatedAtTS)

	tw, err = buildTweet("1", model.Document{})
	require.NoError(t, err)
	require.Nil(t, tw.CreatedAt)
	require.Nil(t, tw.CreatedAtTS)
}

func TestUpstreamErrorPayloadDoesNotAbortHydration(t *testing.T) {
	f := &fakeFetcher{tweets: map[string]model.Document{
		"404": {
			"error": "[{'message': 'No status found with that ID.', 'code': 144}]",
		},
	}}
	h := newHydrator(t, f)
	tw, err := h.Tweet(context.Background(), "404")
	require.NoError(t, err)
	require.Nil(t, tw.FullText)
	require.Equal(t, int64(404), tw.ID)
}

func TestAuthorIsReducedAndHydrated(t *testing.T) {
	f := &fakeFetcher{
		tweets: map[string]model.Document{
			"1": {
				"full_text": "with author",
				"user": map[string]any{
					"id_str":      "42",
					"screen_name": "inline-ignored",
				},
			},
		},
		users: map[string]model.Document{
			"42": {"screen_name": "someone", "followers_count": 10},
		},
	}
	h := newHydrator(t, f)
	tw, err := h.Tweet(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, tw.Author)
	require.Equal(t, "42", tw.Author.ID)
	require.Equal(t, "someone", *tw.Author.ScreenName)
	require.Equal(t, 1, f.userCalls)

	// The user is cached independently of the tweet.
	u, err := h.User(context.Background(), "42")
	require.NoError(t, err)
	require.Equal(t, 1, f.userCalls)
	require.Equal(t, int64(10), *u.FollowersCount)
}

func TestMissingOptionalFieldsDefaultToNil(t *testing.T) {
	f := &fakeFetcher{tweets: map[string]model.Document{"9": {}}}
	h := newHydrator(t, f)
	tw, err := h.Tweet(context.Background(), "9")
	require.NoError(t, err)
	require.Nil(t, tw.FullText)
	require.Nil(t, tw.Lang)
	require.Nil(t, tw.RetweetCount)
	require.Nil(t, tw.Author)
	require.False(t, tw.Retweet)
}

func TestNullDocumentFromFetchIsAnError(t *testing.T) {
	// A 200 response with body "null" decodes to a nil map and no
	// error; hydration must surface that as an error, not a panic.
	f := &fakeFetcher{tweets: map[string]model.Document{"13": nil}}
	h := newHydrator(t, f)
	tw, err := h.Tweet(context.Background(), "13")
	require.Error(t, err)
	require.Contains(t, err.Error(), "null document")
	require.Nil(t, tw)
}

func TestAuthorID(t *testing.T) {
	cases := []struct {
		name   string
		doc    model.Document
		want   string
		wantOK bool
	}{
		{"embedded object", model.Document{"user": map[string]any{"id_str": "7"}}, "7", true},
		{"bare string", model.Document{"user": "8"}, "8", true},
		{"numeric id", model.Document{"user": float64(9)}, "9", true},
		{"absent", model.Document{}, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := authorID(tc.doc)
			require.Equal(t, tc.wantOK, ok)
			require.Equal(t, tc.want, got)
		})
	}
}
