package search

import "github.com/jwalitptl/care-api/internal/model"

// CollapsedLimit is how many doctors show before "see all".
const CollapsedLimit = 3

// Project limits filtered for display. Collapsed views show at most
// CollapsedLimit entries; expanded views show everything.
func Project(filtered []model.Doctor, expanded bool) []model.Doctor {
	if expanded || len(filtered) <= CollapsedLimit {
		return filtered
	}
	return filtered[:CollapsedLimit]
}

// HasMore reports whether the expand/collapse toggle should be shown.
func HasMore(filtered []model.Doctor) bool {
	return len(filtered) > CollapsedLimit
}
