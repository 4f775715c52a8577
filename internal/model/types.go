package model

// Document is a raw API record as decoded from JSON, either read back
// from the cache or returned by a live fetch. The toolkit treats it
// opaquely except for the fields extracted below.
type Document = map[string]any

// Meta holds filesystem timestamps of the cache file backing a record,
// formatted as "2006-01-02 15:04:05" in local time. It is derived at
// read time and never written into the cache file itself.
type Meta struct {
	CTime string `json:"ctime"`
	MTime string `json:"mtime"`
	ATime string `json:"atime"`
}

// Tweet is a hydrated status record. Optional fields are pointers so a
// missing field stays distinguishable from a zero value; a Tweet is
// immutable after hydration.
type Tweet struct {
	ID                  int64
	CreatedAt           *string
	CreatedAtTS         *string // normalized "2006-01-02 15:04:05", nil if unparseable
	FullText            *string
	Truncated           *bool
	Entities            map[string]any
	Source              *string
	InReplyToStatusID   *string
	InReplyToUserID     *string
	InReplyToScreenName *string
	Author              *User
	Geo                 any
	Coordinates         any
	Place               any
	Contributors        any
	IsQuoteStatus       *bool
	RetweetCount        *int64
	FavoriteCount       *int64
	PossiblySensitive   *bool
	Lang                *string
	JSONSource          *string
	Meta                *Meta
	Retweet             bool
	Raw                 Document
}

// User is a hydrated profile record. Users are cached independently of
// the tweets that reference them and may be shared across many tweets.
type User struct {
	ID                   string
	ContributorsEnabled  *bool
	CreatedAt            *string
	Description          *string
	Entities             map[string]any
	FavouritesCount      *int64
	FollowersCount       *int64
	FriendsCount         *int64
	GeoEnabled           *bool
	HasExtendedProfile   *bool
	IsTranslationEnabled *bool
	IsTranslator         *bool
	Lang                 *string
	ListedCount          *int64
	Location             *string
	Name                 *string
	ScreenName           *string
	Protected            *bool
	TimeZone             *string
	TranslatorType       *string
	URL                  *string
	UTCOffset            *int64
	Verified             *bool
	JSONSource           *string
	Meta                 *Meta
	Raw                  Document
}
