package hydrate

import (
	"encoding/json"
	"strings"

	"tweetkit/internal/model"
)

type upstreamError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// reportUpstreamError surfaces an API-side error embedded in the
// document itself, e.g. a deleted or protected status that was cached
// as {"error": "[{'message': ..., 'code': ...}]"}. The payload uses
// single-quote delimiters, so it is reinterpreted best-effort after
// quote normalization. Hydration always proceeds; this only logs.
func (h *Hydrator) reportUpstreamError(id string, doc model.Document) {
	raw, ok := doc["error"].(string)
	if !ok {
		return
	}
	normalized := strings.ReplaceAll(raw, "'", `"`)
	var errs []upstreamError
	if err := json.Unmarshal([]byte(normalized), &errs); err != nil || len(errs) == 0 {
		h.Log.Warn().Str("tweet", id).Str("raw", raw).Msg("unparseable upstream error payload")
		return
	}
	if h.SuppressWarnings {
		return
	}
	h.Log.Warn().
		Str("tweet", id).
		Int("code", errs[0].Code).
		Str("message", errs[0].Message).
		Msg("upstream error recorded for tweet")
}
