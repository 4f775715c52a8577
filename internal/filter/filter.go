// Package filter evaluates a single substring predicate against one
// field of a record's raw document.
package filter

import (
	"strings"

	"tweetkit/internal/model"
)

// Result is one predicate evaluation. It is ephemeral and never
// persisted.
type Result struct {
	In  bool
	Out bool
}

// Evaluate checks whether the lowered needle occurs in the lowered
// string value of field. A missing or non-string field reads as the
// empty string, so it only matches an empty needle. There is no error
// path.
func Evaluate(doc model.Document, field, needle string) Result {
	value, _ := doc[field].(string)
	in := strings.Contains(strings.ToLower(value), strings.ToLower(needle))
	return Result{In: in, Out: !in}
}

// Match is Evaluate reduced to its acceptance bit.
func Match(doc model.Document, field, needle string) bool {
	return Evaluate(doc, field, needle).In
}
