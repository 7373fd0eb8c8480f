package model

import (
	"strconv"
	"strings"
	"unicode"
)

// Specialty is an enumerated specialty tag.
type Specialty string

const (
	SpecialtyAll           Specialty = "all"
	SpecialtyCardiology    Specialty = "cardiology"
	SpecialtyDermatology   Specialty = "dermatology"
	SpecialtyNeurology     Specialty = "neurology"
	SpecialtyOrthopedic    Specialty = "orthopedic"
	SpecialtyPediatrics    Specialty = "pediatrics"
	SpecialtyGeneral       Specialty = "general"
	SpecialtyDental        Specialty = "dental"
	SpecialtyOphthalmology Specialty = "ophthalmology"
	SpecialtyPsychiatry    Specialty = "psychiatry"
)

// SpecialtyInfo pairs a tag with its display label.
type SpecialtyInfo struct {
	ID   Specialty `json:"id"`
	Name string    `json:"name"`
}

// Specialties lists the selectable specialties in display order, "all" first.
var Specialties = []SpecialtyInfo{
	{ID: SpecialtyAll, Name: "All"},
	{ID: SpecialtyCardiology, Name: "Cardiology"},
	{ID: SpecialtyDermatology, Name: "Dermatology"},
	{ID: SpecialtyNeurology, Name: "Neurology"},
	{ID: SpecialtyOrthopedic, Name: "Orthopedic"},
	{ID: SpecialtyPediatrics, Name: "Pediatrics"},
	{ID: SpecialtyGeneral, Name: "General"},
	{ID: SpecialtyDental, Name: "Dental"},
	{ID: SpecialtyOphthalmology, Name: "Ophthalmology"},
	{ID: SpecialtyPsychiatry, Name: "Psychiatry"},
}

// Label returns the display label, falling back to the raw tag.
func (s Specialty) Label() string {
	for _, info := range Specialties {
		if info.ID == s {
			return info.Name
		}
	}
	return string(s)
}

// Valid reports whether s is a known tag, "all" included.
func (s Specialty) Valid() bool {
	for _, info := range Specialties {
		if info.ID == s {
			return true
		}
	}
	return false
}

// Doctor is an immutable catalog entry.
type Doctor struct {
	ID              int       `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	Specialty       Specialty `json:"specialty" yaml:"specialty"`
	Location        string    `json:"location" yaml:"location"`
	Rating          float64   `json:"rating" yaml:"rating"`
	Reviews         int       `json:"reviews" yaml:"reviews"`
	Experience      string    `json:"experience" yaml:"experience"`
	Image           string    `json:"image,omitempty" yaml:"image"`
	Available       bool      `json:"available" yaml:"available"`
	ConsultationFee string    `json:"consultation_fee,omitempty" yaml:"consultation_fee"`
	NextSlot        string    `json:"next_slot,omitempty" yaml:"next_slot"`
}

// ExperienceYears parses the leading integer of the experience string
// ("10+ years" -> 10). ok is false when there is no leading number.
func (d Doctor) ExperienceYears() (years int, ok bool) {
	s := strings.TrimLeftFunc(d.Experience, unicode.IsSpace)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	years, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return years, true
}
