package search

import (
	"github.com/jwalitptl/care-api/internal/model"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
)

// CriteriaInput holds raw option ids as they arrive from a request or flags.
type CriteriaInput struct {
	Query        string `form:"q"`
	Specialty    string `form:"specialty"`
	Experience   string `form:"experience"`
	Availability string `form:"availability"`
	Rating       string `form:"rating"`
	Expanded     bool   `form:"expanded"`
}

// ParseCriteria turns option ids into criteria. Unknown ids are validation errors.
func ParseCriteria(in CriteriaInput) (model.FilterCriteria, error) {
	specialty, err := model.ParseSpecialty(in.Specialty)
	if err != nil {
		return model.FilterCriteria{}, apperrors.NewValidation(err.Error())
	}
	experience, err := model.ParseExperience(in.Experience)
	if err != nil {
		return model.FilterCriteria{}, apperrors.NewValidation(err.Error())
	}
	availability, err := model.ParseAvailability(in.Availability)
	if err != nil {
		return model.FilterCriteria{}, apperrors.NewValidation(err.Error())
	}
	rating, err := model.ParseRating(in.Rating)
	if err != nil {
		return model.FilterCriteria{}, apperrors.NewValidation(err.Error())
	}

	return model.FilterCriteria{
		Query:        in.Query,
		Specialty:    specialty,
		Experience:   experience,
		Availability: availability,
		MinRating:    rating,
	}, nil
}
