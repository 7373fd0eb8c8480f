package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/care-api/internal/catalog"
	"github.com/jwalitptl/care-api/internal/model"
)

func ids(doctors []model.Doctor) []int {
	out := make([]int, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, d.ID)
	}
	return out
}

func criteria(mod func(*model.FilterCriteria)) model.FilterCriteria {
	c := model.DefaultCriteria()
	if mod != nil {
		mod(&c)
	}
	return c
}

func TestFilter(t *testing.T) {
	doctors := catalog.SampleDoctors()

	tests := []struct {
		name     string
		criteria model.FilterCriteria
		want     []int
	}{
		{
			name:     "no constraints returns catalog",
			criteria: criteria(nil),
			want:     []int{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			name:     "specialty cardiology",
			criteria: criteria(func(c *model.FilterCriteria) { c.Specialty = model.SpecialtyCardiology }),
			want:     []int{1, 4},
		},
		{
			name:     "query matches name case-insensitively",
			criteria: criteria(func(c *model.FilterCriteria) { c.Query = "JOHN" }),
			want:     []int{2, 3},
		},
		{
			name:     "query matches specialty label",
			criteria: criteria(func(c *model.FilterCriteria) { c.Query = "Derma" }),
			want:     []int{2, 8},
		},
		{
			name:     "query matches location",
			criteria: criteria(func(c *model.FilterCriteria) { c.Query = "new york" }),
			want:     []int{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			name:     "query without match",
			criteria: criteria(func(c *model.FilterCriteria) { c.Query = "zzz" }),
			want:     []int{},
		},
		{
			name:     "senior experience",
			criteria: criteria(func(c *model.FilterCriteria) { c.Experience = model.ExperienceSenior }),
			want:     []int{1, 3, 4, 8},
		},
		{
			name:     "mid experience",
			criteria: criteria(func(c *model.FilterCriteria) { c.Experience = model.ExperienceMid }),
			want:     []int{2, 5, 6, 7},
		},
		{
			name:     "junior experience",
			criteria: criteria(func(c *model.FilterCriteria) { c.Experience = model.ExperienceJunior }),
			want:     []int{},
		},
		{
			name:     "available now",
			criteria: criteria(func(c *model.FilterCriteria) { c.Availability = model.AvailabilityNow }),
			want:     []int{1, 3, 4, 5, 7, 8},
		},
		{
			name:     "available this week imposes nothing",
			criteria: criteria(func(c *model.FilterCriteria) { c.Availability = model.AvailabilityWeek }),
			want:     []int{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			name:     "rating 4.8+",
			criteria: criteria(func(c *model.FilterCriteria) { c.MinRating = 4.8 }),
			want:     []int{1, 2, 3, 5},
		},
		{
			name: "combined criteria",
			criteria: criteria(func(c *model.FilterCriteria) {
				c.Specialty = model.SpecialtyDermatology
				c.Availability = model.AvailabilityNow
				c.Experience = model.ExperienceSenior
			}),
			want: []int{8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(doctors, tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterMalformedExperience(t *testing.T) {
	doctors := []model.Doctor{
		{ID: 1, Experience: "a decade"},
		{ID: 2, Experience: ""},
		{ID: 3, Experience: "3 years"},
		{ID: 4, Experience: "99999999999999999999 years"},
	}

	assert.Equal(t, []int{3}, ids(Filter(doctors, criteria(func(c *model.FilterCriteria) {
		c.Experience = model.ExperienceJunior
	}))))
	assert.Equal(t, []int{1, 2, 3, 4}, ids(Filter(doctors, criteria(nil))))
}

func TestFilterIdempotent(t *testing.T) {
	doctors := catalog.SampleDoctors()
	all := []model.FilterCriteria{
		criteria(nil),
		criteria(func(c *model.FilterCriteria) { c.Query = "dr. j" }),
		criteria(func(c *model.FilterCriteria) { c.MinRating = 4.5; c.Availability = model.AvailabilityNow }),
		criteria(func(c *model.FilterCriteria) { c.Experience = model.ExperienceMid }),
	}
	for _, c := range all {
		once := Filter(doctors, c)
		assert.Equal(t, once, Filter(once, c))
	}
}

func TestFilterMonotonic(t *testing.T) {
	doctors := catalog.SampleDoctors()
	base := criteria(func(c *model.FilterCriteria) { c.Availability = model.AvailabilityNow })
	narrower := base
	narrower.MinRating = 4.5

	assert.LessOrEqual(t, len(Filter(doctors, narrower)), len(Filter(doctors, base)))

	narrowest := narrower
	narrowest.Specialty = model.SpecialtyCardiology
	assert.LessOrEqual(t, len(Filter(doctors, narrowest)), len(Filter(doctors, narrower)))
}

func TestFilterANDSemantics(t *testing.T) {
	doctors := catalog.SampleDoctors()
	c := criteria(func(c *model.FilterCriteria) {
		c.Query = "dr"
		c.Availability = model.AvailabilityNow
		c.MinRating = 4.7
	})

	for _, d := range Filter(doctors, c) {
		for _, p := range Predicates(c) {
			assert.True(t, p(d), "doctor %d fails a predicate", d.ID)
		}
	}
}

func TestPredicatesInactive(t *testing.T) {
	assert.Empty(t, Predicates(criteria(nil)))
	assert.Empty(t, Predicates(model.FilterCriteria{}))
	assert.Len(t, Predicates(criteria(func(c *model.FilterCriteria) {
		c.Query = "x"
		c.MinRating = 4
	})), 2)
}
