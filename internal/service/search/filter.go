package search

import (
	"strings"

	"github.com/jwalitptl/care-api/internal/model"
)

// Predicate reports whether a doctor satisfies one criterion.
type Predicate func(model.Doctor) bool

// Predicates returns one predicate per active criterion. Inactive criteria
// ("all", empty query, zero rating) contribute nothing.
func Predicates(c model.FilterCriteria) []Predicate {
	var preds []Predicate

	if c.Query != "" {
		preds = append(preds, matchQuery(strings.ToLower(c.Query)))
	}
	if c.Specialty != "" && c.Specialty != model.SpecialtyAll {
		preds = append(preds, matchSpecialty(c.Specialty))
	}
	if c.Experience != "" && c.Experience != model.ExperienceAll {
		preds = append(preds, matchExperience(c.Experience))
	}
	if c.Availability == model.AvailabilityNow {
		preds = append(preds, matchAvailable)
	}
	if c.MinRating > 0 {
		preds = append(preds, matchRating(c.MinRating))
	}
	return preds
}

// Filter returns the doctors of catalog that satisfy c, in catalog order.
// The result is never nil.
func Filter(catalog []model.Doctor, c model.FilterCriteria) []model.Doctor {
	preds := Predicates(c)
	out := make([]model.Doctor, 0, len(catalog))
	for _, d := range catalog {
		if matchAll(d, preds) {
			out = append(out, d)
		}
	}
	return out
}

func matchAll(d model.Doctor, preds []Predicate) bool {
	for _, p := range preds {
		if !p(d) {
			return false
		}
	}
	return true
}

// matchQuery expects q already lowercased.
func matchQuery(q string) Predicate {
	return func(d model.Doctor) bool {
		return strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(string(d.Specialty)), q) ||
			strings.Contains(strings.ToLower(d.Specialty.Label()), q) ||
			strings.Contains(strings.ToLower(d.Location), q)
	}
}

func matchSpecialty(s model.Specialty) Predicate {
	return func(d model.Doctor) bool {
		return d.Specialty == s
	}
}

// matchExperience excludes doctors whose experience cannot be parsed.
func matchExperience(band model.ExperienceBand) Predicate {
	return func(d model.Doctor) bool {
		years, ok := d.ExperienceYears()
		if !ok {
			return false
		}
		return model.BandForYears(years) == band
	}
}

func matchAvailable(d model.Doctor) bool {
	return d.Available
}

func matchRating(min model.RatingThreshold) Predicate {
	return func(d model.Doctor) bool {
		return d.Rating >= float64(min)
	}
}
