// Package hydrate turns identifiers into fully-typed records, serving
// each one from the write-once cache when present and fetching,
// tagging, and caching it when not. Either path yields the same
// record: derived fields are pure functions of the raw document, and
// cache metadata always comes from the backing file.
package hydrate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"tweetkit/internal/cache"
	"tweetkit/internal/metrics"
	"tweetkit/internal/model"
)

// Fetcher performs the remote API call for one identifier. The
// twitter.Client satisfies this; tests substitute their own.
type Fetcher interface {
	FetchTweet(ctx context.Context, id string) (model.Document, error)
	FetchUser(ctx context.Context, id string) (model.Document, error)
}

// jsonSource tags documents that originated from a live fetch, as
// opposed to being reconstructed purely from cache.
const jsonSource = "Twitter"

// Hydrator resolves identifiers against the cache, falling back to the
// Fetcher on a miss.
type Hydrator struct {
	Cache            *cache.Store
	Fetcher          Fetcher
	Log              zerolog.Logger
	SuppressWarnings bool
}

// Tweet hydrates one status record. Missing optional fields never fail
// hydration; only cache I/O and remote fetch errors propagate.
func (h *Hydrator) Tweet(ctx context.Context, id string) (*model.Tweet, error) {
	doc, err := h.resolve(ctx, id, cache.KindTweet)
	if err != nil {
		return nil, err
	}
	h.reportUpstreamError(id, doc)

	t, err := buildTweet(id, doc)
	if err != nil {
		return nil, err
	}
	if uid, ok := authorID(doc); ok {
		u, err := h.User(ctx, uid)
		if err != nil {
			return nil, fmt.Errorf("author of tweet %s: %w", id, err)
		}
		t.Author = u
	}
	return t, nil
}

// User hydrates one profile record.
func (h *Hydrator) User(ctx context.Context, id string) (*model.User, error) {
	doc, err := h.resolve(ctx, id, cache.KindUser)
	if err != nil {
		return nil, err
	}
	return buildUser(id, doc), nil
}

// resolve returns the raw document for id, cache-first. On a miss it
// fetches, tags provenance, writes the cache file, then re-loads so
// the document carries metadata of the just-written file.
func (h *Hydrator) resolve(ctx context.Context, id string, kind cache.Kind) (model.Document, error) {
	doc, ok, err := h.Cache.Load(id, kind)
	if err != nil {
		return nil, err
	}
	if ok {
		metrics.IncCacheHit(string(kind))
		return doc, nil
	}
	metrics.IncCacheMiss(string(kind))

	var raw model.Document
	switch kind {
	case cache.KindTweet:
		raw, err = h.Fetcher.FetchTweet(ctx, id)
	case cache.KindUser:
		raw, err = h.Fetcher.FetchUser(ctx, id)
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		// A 200 with body "null" decodes to a nil map without error.
		return nil, fmt.Errorf("%s %s: fetch returned a null document", kind, id)
	}
	metrics.IncLiveFetch(string(kind))

	raw["json_source"] = jsonSource
	if err := h.Cache.Put(id, kind, raw); err != nil {
		return nil, err
	}
	doc, ok, err = h.Cache.Load(id, kind)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s %s vanished after caching", kind, id)
	}
	return doc, nil
}

// authorID reduces the document's user field to a bare identifier
// string. The API embeds a full user object in statuses; older cache
// files may hold just the id.
func authorID(doc model.Document) (string, bool) {
	switch u := doc["user"].(type) {
	case map[string]any:
		if s, ok := u["id_str"].(string); ok && s != "" {
			return s, true
		}
		if f, ok := u["id"].(float64); ok {
			return fmt.Sprintf("%.0f", f), true
		}
		return "", false
	case string:
		return u, u != ""
	case float64:
		return fmt.Sprintf("%.0f", u), true
	default:
		return "", false
	}
}
