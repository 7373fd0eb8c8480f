package model

import (
	"fmt"
	"time"
)

// VitalKind is a tracked physiological measurement type.
type VitalKind string

const (
	VitalBloodPressure VitalKind = "blood_pressure"
	VitalHeartRate     VitalKind = "heart_rate"
	VitalWeight        VitalKind = "weight"
	VitalTemperature   VitalKind = "temperature"
	VitalBloodSugar    VitalKind = "blood_sugar"
)

// VitalInfo is the display metadata for a kind.
type VitalInfo struct {
	Kind        VitalKind `json:"kind"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit"`
	NormalRange string    `json:"normal_range"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
}

// VitalKinds lists every kind in display order.
var VitalKinds = []VitalInfo{
	{Kind: VitalBloodPressure, Name: "Blood Pressure", Unit: "mmHg", NormalRange: "90/60 - 120/80", Color: "#EF4444", Icon: "activity"},
	{Kind: VitalHeartRate, Name: "Heart Rate", Unit: "bpm", NormalRange: "60 - 100", Color: "#DC2626", Icon: "heart"},
	{Kind: VitalWeight, Name: "Weight", Unit: "kg", NormalRange: "BMI 18.5 - 24.9", Color: "#4285F4", Icon: "scale"},
	{Kind: VitalTemperature, Name: "Temperature", Unit: "°F", NormalRange: "97.0 - 99.0", Color: "#F59E0B", Icon: "thermometer"},
	{Kind: VitalBloodSugar, Name: "Blood Sugar", Unit: "mg/dL", NormalRange: "70 - 140", Color: "#10B981", Icon: "droplets"},
}

// Info returns the metadata for k.
func (k VitalKind) Info() (VitalInfo, bool) {
	for _, info := range VitalKinds {
		if info.Kind == k {
			return info, true
		}
	}
	return VitalInfo{}, false
}

// ParseVitalKind resolves a kind string.
func ParseVitalKind(s string) (VitalKind, error) {
	k := VitalKind(s)
	if _, ok := k.Info(); !ok {
		return "", fmt.Errorf("unknown vital kind %q", s)
	}
	return k, nil
}

// Trend is the direction of the two most recent readings.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

const (
	RecordDateLayout = "2006-01-02"
	RecordTimeLayout = "15:04"
)

// HealthRecord is a timestamped vital reading. Value may be composite ("120/80").
type HealthRecord struct {
	ID    int       `json:"id"`
	Kind  VitalKind `json:"type"`
	Value string    `json:"value"`
	Date  string    `json:"date"`
	Time  string    `json:"time"`
	Notes string    `json:"notes,omitempty"`
}

// RecordedAt combines Date and Time. ok is false if either fails to parse.
func (r HealthRecord) RecordedAt() (at time.Time, ok bool) {
	at, err := time.Parse(RecordDateLayout+" "+RecordTimeLayout, r.Date+" "+r.Time)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// AddReadingRequest is the input for recording a new reading.
type AddReadingRequest struct {
	Kind  VitalKind `json:"type" binding:"required"`
	Value string    `json:"value" binding:"required"`
	Date  string    `json:"date"`
	Time  string    `json:"time"`
	Notes string    `json:"notes" binding:"max=500"`
}

// VitalSummary is one overview card.
type VitalSummary struct {
	VitalInfo
	Latest *HealthRecord `json:"latest"`
	Trend  Trend         `json:"trend"`
}
