package filter

import (
	"testing"

	"tweetkit/internal/model"
)

func TestEvaluate(t *testing.T) {
	doc := model.Document{
		"full_text": "Hello Berlin",
		"lang":      "en",
		"count":     float64(3),
	}
	cases := []struct {
		name   string
		field  string
		needle string
		want   bool
	}{
		{"empty needle always matches", "full_text", "", true},
		{"empty needle on missing field", "nope", "", true},
		{"case-insensitive needle", "lang", "EN", true},
		{"case-insensitive value", "full_text", "berlin", true},
		{"no match", "lang", "fr", false},
		{"missing field rejects", "place", "berlin", false},
		{"non-string field reads as empty", "count", "3", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Evaluate(doc, tc.field, tc.needle)
			if res.In != tc.want {
				t.Errorf("Evaluate(%q, %q).In = %v, want %v", tc.field, tc.needle, res.In, tc.want)
			}
			if res.Out == res.In {
				t.Errorf("In and Out must be complements")
			}
			if Match(doc, tc.field, tc.needle) != tc.want {
				t.Errorf("Match disagrees with Evaluate")
			}
		})
	}
}
