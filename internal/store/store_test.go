package store

import (
	"context"
	"testing"

	"tweetkit/internal/model"
	"tweetkit/internal/tweetset"
)

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64   { return &n }

func testSet() *tweetset.Set {
	return &tweetset.Set{
		IDs: []string{"1", "2"},
		Tweets: []*model.Tweet{
			{
				ID:            1,
				CreatedAtTS:   strPtr("2006-01-02 15:04:05"),
				FullText:      strPtr("hello"),
				Lang:          strPtr("en"),
				RetweetCount:  intPtr(3),
				FavoriteCount: intPtr(5),
				Author:        &model.User{ID: "42"},
			},
			{
				ID:       2,
				FullText: strPtr("RT @a: hola"),
				Lang:     strPtr("es"),
				Retweet:  true,
			},
		},
	}
}

func TestExportSetAndCount(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()

	if err := db.ExportSet(ctx, testSet()); err != nil {
		t.Fatalf("export: %v", err)
	}
	n, err := db.CountTweets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}

	// Exports append; the store does not deduplicate.
	if err := db.ExportSet(ctx, testSet()); err != nil {
		t.Fatal(err)
	}
	n, _ = db.CountTweets(ctx)
	if n != 4 {
		t.Fatalf("count after second export = %d, want 4", n)
	}
}

func TestLanguages(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()
	if err := db.ExportSet(ctx, testSet()); err != nil {
		t.Fatal(err)
	}
	langs, err := db.Languages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if langs["en"] != 1 || langs["es"] != 1 {
		t.Fatalf("unexpected language counts: %v", langs)
	}
}
