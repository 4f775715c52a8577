package model

// TweetColumns is the column order of the tabular projection.
var TweetColumns = []string{
	"id", "created_at", "created_at_ts", "full_text", "truncated",
	"entities", "source", "in_reply_to_status_id_str",
	"in_reply_to_user_id_str", "in_reply_to_screen_name", "user", "geo",
	"coordinates", "place", "contributors", "is_quote_status",
	"retweet_count", "favorite_count", "possibly_sensitive", "lang",
	"json_source", "retweet", "_meta",
}

// Data returns the tweet as one row of the tabular projection, keyed by
// TweetColumns. Pointer fields are flattened; missing values come out
// as nil.
func (t *Tweet) Data() map[string]any {
	var userID any
	if t.Author != nil {
		userID = t.Author.ID
	}
	return map[string]any{
		"id":                        t.ID,
		"created_at":                deref(t.CreatedAt),
		"created_at_ts":             deref(t.CreatedAtTS),
		"full_text":                 deref(t.FullText),
		"truncated":                 deref(t.Truncated),
		"entities":                  t.Entities,
		"source":                    deref(t.Source),
		"in_reply_to_status_id_str": deref(t.InReplyToStatusID),
		"in_reply_to_user_id_str":   deref(t.InReplyToUserID),
		"in_reply_to_screen_name":   deref(t.InReplyToScreenName),
		"user":                      userID,
		"geo":                       t.Geo,
		"coordinates":               t.Coordinates,
		"place":                     t.Place,
		"contributors":              t.Contributors,
		"is_quote_status":           deref(t.IsQuoteStatus),
		"retweet_count":             deref(t.RetweetCount),
		"favorite_count":            deref(t.FavoriteCount),
		"possibly_sensitive":        deref(t.PossiblySensitive),
		"lang":                      deref(t.Lang),
		"json_source":               deref(t.JSONSource),
		"retweet":                   t.Retweet,
		"_meta":                     t.Meta,
	}
}

// Data returns the user as one row of the tabular projection.
func (u *User) Data() map[string]any {
	return map[string]any{
		"id":                     u.ID,
		"contributors_enabled":   deref(u.ContributorsEnabled),
		"created_at":             deref(u.CreatedAt),
		"description":            deref(u.Description),
		"entities":               u.Entities,
		"favourites_count":       deref(u.FavouritesCount),
		"followers_count":        deref(u.FollowersCount),
		"friends_count":          deref(u.FriendsCount),
		"geo_enabled":            deref(u.GeoEnabled),
		"has_extended_profile":   deref(u.HasExtendedProfile),
		"is_translation_enabled": deref(u.IsTranslationEnabled),
		"is_translator":          deref(u.IsTranslator),
		"lang":                   deref(u.Lang),
		"listed_count":           deref(u.ListedCount),
		"location":               deref(u.Location),
		"name":                   deref(u.Name),
		"screen_name":            deref(u.ScreenName),
		"protected":              deref(u.Protected),
		"time_zone":              deref(u.TimeZone),
		"translator_type":        deref(u.TranslatorType),
		"url":                    deref(u.URL),
		"utc_offset":             deref(u.UTCOffset),
		"verified":               deref(u.Verified),
		"json_source":            deref(u.JSONSource),
		"_meta":                  u.Meta,
	}
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
