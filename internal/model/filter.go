package model

import (
	"fmt"
	"strings"
)

// ExperienceBand buckets years of experience.
type ExperienceBand string

const (
	ExperienceAll    ExperienceBand = "all"
	ExperienceJunior ExperienceBand = "junior" // 1-5 years
	ExperienceMid    ExperienceBand = "mid"    // 5-10 years
	ExperienceSenior ExperienceBand = "senior" // 10+ years
)

// BandForYears returns the band a year count falls in.
func BandForYears(years int) ExperienceBand {
	switch {
	case years >= 10:
		return ExperienceSenior
	case years >= 5:
		return ExperienceMid
	default:
		return ExperienceJunior
	}
}

// Availability is the availability filter mode.
type Availability string

const (
	AvailabilityAll   Availability = "all"
	AvailabilityNow   Availability = "available"
	AvailabilityToday Availability = "today"
	AvailabilityWeek  Availability = "week"
)

// RatingThreshold is a minimum rating; zero means no constraint.
type RatingThreshold float64

// RatingOption is one selectable minimum-rating option.
type RatingOption struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Threshold RatingThreshold `json:"threshold"`
}

// RatingOptions is the fixed ascending set of thresholds.
var RatingOptions = []RatingOption{
	{ID: "all", Name: "All Ratings"},
	{ID: "4+", Name: "4+ Stars", Threshold: 4.0},
	{ID: "4.5+", Name: "4.5+ Stars", Threshold: 4.5},
	{ID: "4.8+", Name: "4.8+ Stars", Threshold: 4.8},
}

// ParseRating resolves a rating option id. The empty string means "all".
func ParseRating(id string) (RatingThreshold, error) {
	if id == "" {
		return 0, nil
	}
	for _, opt := range RatingOptions {
		if opt.ID == id {
			return opt.Threshold, nil
		}
	}
	return 0, fmt.Errorf("unknown rating option %q", id)
}

// ParseSpecialty resolves a specialty tag. The empty string means "all".
func ParseSpecialty(s string) (Specialty, error) {
	if s == "" {
		return SpecialtyAll, nil
	}
	sp := Specialty(strings.ToLower(s))
	if !sp.Valid() {
		return "", fmt.Errorf("unknown specialty %q", s)
	}
	return sp, nil
}

// ParseExperience resolves an experience band. The empty string means "all".
func ParseExperience(s string) (ExperienceBand, error) {
	switch ExperienceBand(s) {
	case "", ExperienceAll:
		return ExperienceAll, nil
	case ExperienceJunior, ExperienceMid, ExperienceSenior:
		return ExperienceBand(s), nil
	}
	return "", fmt.Errorf("unknown experience level %q", s)
}

// ParseAvailability resolves an availability mode. The empty string means "all".
func ParseAvailability(s string) (Availability, error) {
	switch Availability(s) {
	case "", AvailabilityAll:
		return AvailabilityAll, nil
	case AvailabilityNow, AvailabilityToday, AvailabilityWeek:
		return Availability(s), nil
	}
	return "", fmt.Errorf("unknown availability option %q", s)
}

// FilterCriteria is the combined set of filter constraints.
type FilterCriteria struct {
	Query        string          `json:"query"`
	Specialty    Specialty       `json:"specialty"`
	Experience   ExperienceBand  `json:"experience"`
	Availability Availability    `json:"availability"`
	MinRating    RatingThreshold `json:"min_rating"`
}

// DefaultCriteria returns criteria with every constraint off.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Specialty:    SpecialtyAll,
		Experience:   ExperienceAll,
		Availability: AvailabilityAll,
	}
}

// HasActive reports whether any constraint differs from the defaults.
func (c FilterCriteria) HasActive() bool {
	return c.Query != "" ||
		(c.Specialty != "" && c.Specialty != SpecialtyAll) ||
		(c.Experience != "" && c.Experience != ExperienceAll) ||
		(c.Availability != "" && c.Availability != AvailabilityAll) ||
		c.MinRating > 0
}

// SearchResult is the view model for a search screen.
type SearchResult struct {
	Doctors          []Doctor       `json:"doctors"`
	Total            int            `json:"total"`
	HasMore          bool           `json:"has_more"`
	Expanded         bool           `json:"expanded"`
	HasActiveFilters bool           `json:"has_active_filters"`
	Criteria         FilterCriteria `json:"criteria"`
}
