package hydrate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tweetkit/internal/cache"
	"tweetkit/internal/model"
)

// createdAtLayout is the fixed v1.1 timestamp format, e.g.
// "Mon Jan 02 15:04:05 +0000 2006".
const createdAtLayout = "Mon Jan 02 15:04:05 +0000 2006"

const normalizedLayout = "2006-01-02 15:04:05"

func buildTweet(id string, doc model.Document) (*model.Tweet, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("tweet identifier %q is not numeric", id)
	}
	t := &model.Tweet{
		ID:                  numID,
		CreatedAt:           strField(doc, "created_at"),
		FullText:            strField(doc, "full_text"),
		Truncated:           boolField(doc, "truncated"),
		Entities:            mapField(doc, "entities"),
		Source:              strField(doc, "source"),
		InReplyToStatusID:   strField(doc, "in_reply_to_status_id_str"),
		InReplyToUserID:     strField(doc, "in_reply_to_user_id_str"),
		InReplyToScreenName: strField(doc, "in_reply_to_screen_name"),
		Geo:                 doc["geo"],
		Coordinates:         doc["coordinates"],
		Place:               doc["place"],
		Contributors:        doc["contributors"],
		IsQuoteStatus:       boolField(doc, "is_quote_status"),
		RetweetCount:        intField(doc, "retweet_count"),
		FavoriteCount:       intField(doc, "favorite_count"),
		PossiblySensitive:   boolField(doc, "possibly_sensitive"),
		Lang:                strField(doc, "lang"),
		JSONSource:          strField(doc, "json_source"),
		Meta:                metaField(doc),
		Raw:                 doc,
	}
	t.CreatedAtTS = normalizeCreatedAt(t.CreatedAt)
	t.Retweet = isRetweet(doc, t.Text())
	return t, nil
}

func buildUser(id string, doc model.Document) *model.User {
	return &model.User{
		ID:                   id,
		ContributorsEnabled:  boolField(doc, "contributors_enabled"),
		CreatedAt:            strField(doc, "created_at"),
		Description:          strField(doc, "description"),
		Entities:             mapField(doc, "entities"),
		FavouritesCount:      intField(doc, "favourites_count"),
		FollowersCount:       intField(doc, "followers_count"),
		FriendsCount:         intField(doc, "friends_count"),
		GeoEnabled:           boolField(doc, "geo_enabled"),
		HasExtendedProfile:   boolField(doc, "has_extended_profile"),
		IsTranslationEnabled: boolField(doc, "is_translation_enabled"),
		IsTranslator:         boolField(doc, "is_translator"),
		Lang:                 strField(doc, "lang"),
		ListedCount:          intField(doc, "listed_count"),
		Location:             strField(doc, "location"),
		Name:                 strField(doc, "name"),
		ScreenName:           strField(doc, "screen_name"),
		Protected:            boolField(doc, "protected"),
		TimeZone:             strField(doc, "time_zone"),
		TranslatorType:       strField(doc, "translator_type"),
		URL:                  strField(doc, "url"),
		UTCOffset:            intField(doc, "utc_offset"),
		Verified:             boolField(doc, "verified"),
		JSONSource:           strField(doc, "json_source"),
		Meta:                 metaField(doc),
		Raw:                  doc,
	}
}

// isRetweet reports whether the document carries a retweeted status or
// the body text opens with "rt" in either case.
func isRetweet(doc model.Document, fullText string) bool {
	if _, ok := doc["retweeted_status"]; ok {
		return true
	}
	return len(fullText) >= 2 && strings.EqualFold(fullText[:2], "rt")
}

// normalizeCreatedAt reformats the raw timestamp; an unparseable value
// yields nil rather than an error.
func normalizeCreatedAt(raw *string) *string {
	if raw == nil {
		return nil
	}
	ts, err := time.Parse(createdAtLayout, *raw)
	if err != nil {
		return nil
	}
	s := ts.Format(normalizedLayout)
	return &s
}

func strField(doc model.Document, key string) *string {
	if s, ok := doc[key].(string); ok {
		return &s
	}
	return nil
}

func boolField(doc model.Document, key string) *bool {
	if b, ok := doc[key].(bool); ok {
		return &b
	}
	return nil
}

// intField extracts an integer field. JSON numbers decode as float64;
// re-read cache files and freshly decoded fetches both pass through
// here, so only that representation is handled.
func intField(doc model.Document, key string) *int64 {
	if f, ok := doc[key].(float64); ok {
		n := int64(f)
		return &n
	}
	return nil
}

func mapField(doc model.Document, key string) map[string]any {
	if m, ok := doc[key].(map[string]any); ok {
		return m
	}
	return nil
}

func metaField(doc model.Document) *model.Meta {
	m, ok := doc[cache.MetaKey].(map[string]any)
	if !ok {
		return nil
	}
	get := func(k string) string {
		s, _ := m[k].(string)
		return s
	}
	return &model.Meta{CTime: get("ctime"), MTime: get("mtime"), ATime: get("atime")}
}
