// Package tweetset builds ordered collections of hydrated tweets from
// identifier lists, applying the optional field filter and the
// retweet-inclusion policy.
package tweetset

import (
	"context"
	"fmt"
	"os"

	"tweetkit/internal/filter"
	"tweetkit/internal/hydrate"
	"tweetkit/internal/model"
)

// Options control which hydrated tweets a build keeps. The zero value
// excludes retweets; DefaultOptions matches the documented defaults.
type Options struct {
	// FilterKey/FilterValue configure the substring filter; the filter
	// is active only when both are set.
	FilterKey   string
	FilterValue string
	// IncludeRetweets keeps tweets whose Retweet flag is set.
	IncludeRetweets bool
	// Progress prints a cosmetic per-identifier indicator. It has no
	// effect on the result.
	Progress bool
}

// DefaultOptions returns the documented defaults: retweets included,
// no filter, no progress output.
func DefaultOptions() Options {
	return Options{IncludeRetweets: true}
}

// Set is an ordered, immutable collection of accepted tweets.
type Set struct {
	IDs    []string
	Tweets []*model.Tweet
}

// Build hydrates ids in input order and keeps each tweet according to
// the inclusion policy:
//
//	retweet  include_retweets  filtered_out  outcome
//	true     true              false         keep
//	true     true              true          drop
//	false    -                 false         keep
//	false    -                 true          drop
//	true     false             -             drop
//
// A build has no partial results: the first hydration failure aborts
// it entirely. Duplicate identifiers are hydrated and kept again.
func Build(ctx context.Context, h *hydrate.Hydrator, ids []string, opts Options) (*Set, error) {
	set := &Set{IDs: ids}
	for i, id := range ids {
		if opts.Progress {
			fmt.Fprintf(os.Stderr, "\rhydrating %d/%d", i+1, len(ids))
		}
		t, err := h.Tweet(ctx, id)
		if err != nil {
			if opts.Progress {
				fmt.Fprintln(os.Stderr)
			}
			return nil, fmt.Errorf("tweet %s: %w", id, err)
		}

		filteredOut := false
		if opts.FilterKey != "" && opts.FilterValue != "" {
			filteredOut = filter.Evaluate(t.Raw, opts.FilterKey, opts.FilterValue).Out
		}
		switch {
		case t.Retweet && !opts.IncludeRetweets:
			// retweets excluded regardless of filter outcome
		case filteredOut:
		default:
			set.Tweets = append(set.Tweets, t)
		}
	}
	if opts.Progress && len(ids) > 0 {
		fmt.Fprintln(os.Stderr)
	}
	return set, nil
}

// Len returns the number of accepted tweets.
func (s *Set) Len() int { return len(s.Tweets) }

// At returns the accepted tweet at position i.
func (s *Set) At(i int) *model.Tweet { return s.Tweets[i] }

// Table returns the tabular projection: the column order and one row
// per accepted tweet.
func (s *Set) Table() ([]string, []map[string]any) {
	rows := make([]map[string]any, 0, len(s.Tweets))
	for _, t := range s.Tweets {
		rows = append(rows, t.Data())
	}
	return model.TweetColumns, rows
}
