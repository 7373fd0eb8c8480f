package vitals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/care-api/internal/model"
	"github.com/jwalitptl/care-api/internal/repository/memory"
)

func reading(id int, kind model.VitalKind, value, date, tm string) model.HealthRecord {
	return model.HealthRecord{ID: id, Kind: kind, Value: value, Date: date, Time: tm}
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name    string
		kind    model.VitalKind
		records []model.HealthRecord
		want    model.Trend
	}{
		{
			name: "heart rate rises",
			kind: model.VitalHeartRate,
			records: []model.HealthRecord{
				reading(1, model.VitalHeartRate, "72", "2024-02-10", "08:00"),
				reading(2, model.VitalHeartRate, "70", "2024-02-09", "08:00"),
			},
			want: model.TrendUp,
		},
		{
			name: "single reading",
			kind: model.VitalHeartRate,
			records: []model.HealthRecord{
				reading(1, model.VitalHeartRate, "72", "2024-02-10", "08:00"),
			},
			want: model.TrendStable,
		},
		{
			name:    "no readings",
			kind:    model.VitalWeight,
			records: nil,
			want:    model.TrendStable,
		},
		{
			name: "blood pressure compares systolic",
			kind: model.VitalBloodPressure,
			records: []model.HealthRecord{
				reading(1, model.VitalBloodPressure, "120/80", "2024-02-09", "08:00"),
				reading(2, model.VitalBloodPressure, "118/76", "2024-02-10", "08:00"),
			},
			want: model.TrendDown,
		},
		{
			name: "equal values",
			kind: model.VitalWeight,
			records: []model.HealthRecord{
				reading(1, model.VitalWeight, "68.5", "2024-02-09", "07:00"),
				reading(2, model.VitalWeight, "68.5kg", "2024-02-10", "07:00"),
			},
			want: model.TrendStable,
		},
		{
			name: "unparseable value",
			kind: model.VitalBloodSugar,
			records: []model.HealthRecord{
				reading(1, model.VitalBloodSugar, "95", "2024-02-08", "12:00"),
				reading(2, model.VitalBloodSugar, "high", "2024-02-09", "12:00"),
			},
			want: model.TrendStable,
		},
		{
			name: "other kinds ignored",
			kind: model.VitalTemperature,
			records: []model.HealthRecord{
				reading(1, model.VitalTemperature, "98.6", "2024-02-08", "19:00"),
				reading(2, model.VitalHeartRate, "200", "2024-02-09", "19:00"),
				reading(3, model.VitalTemperature, "99.1", "2024-02-09", "19:00"),
			},
			want: model.TrendUp,
		},
		{
			name: "time breaks date ties",
			kind: model.VitalHeartRate,
			records: []model.HealthRecord{
				reading(1, model.VitalHeartRate, "80", "2024-02-10", "18:00"),
				reading(2, model.VitalHeartRate, "60", "2024-02-10", "07:30"),
			},
			want: model.TrendUp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Trend(tt.records, tt.kind))
		})
	}
}

func TestTrendTiesFavourLaterInsertion(t *testing.T) {
	records := []model.HealthRecord{
		reading(1, model.VitalHeartRate, "70", "2024-02-10", "08:00"),
		reading(2, model.VitalHeartRate, "75", "2024-02-10", "08:00"),
	}
	assert.Equal(t, model.TrendUp, Trend(records, model.VitalHeartRate))
	assert.Equal(t, 2, Latest(records, model.VitalHeartRate).ID)
}

func TestLatest(t *testing.T) {
	records := memory.SampleRecords()

	latest := Latest(records, model.VitalBloodPressure)
	require.NotNil(t, latest)
	assert.Equal(t, "120/80", latest.Value)

	assert.Nil(t, Latest(records, model.VitalKind("cholesterol")))
	assert.Nil(t, Latest(nil, model.VitalHeartRate))

	records = append(records,
		reading(6, model.VitalBloodPressure, "130/85", "2024-02-11", "06:00"),
		reading(7, model.VitalBloodPressure, "110/70", "2024-02-01", "06:00"),
	)
	assert.Equal(t, 6, Latest(records, model.VitalBloodPressure).ID)
}

func TestLatestUnparseableDateSortsOldest(t *testing.T) {
	records := []model.HealthRecord{
		reading(1, model.VitalWeight, "70", "someday", "07:00"),
		reading(2, model.VitalWeight, "69", "2024-01-01", "07:00"),
	}
	assert.Equal(t, 2, Latest(records, model.VitalWeight).ID)
	assert.Equal(t, model.TrendDown, Trend(records, model.VitalWeight))
}

func TestRecent(t *testing.T) {
	got := Recent(memory.SampleRecords())
	ids := make([]int, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{2, 1, 3, 4, 5}, ids)
}

func TestOverview(t *testing.T) {
	overview := Overview(memory.SampleRecords())
	require.Len(t, overview, len(model.VitalKinds))

	for i, s := range overview {
		assert.Equal(t, model.VitalKinds[i].Kind, s.Kind)
		require.NotNil(t, s.Latest)
		assert.Equal(t, s.Kind, s.Latest.Kind)
		assert.Equal(t, model.TrendStable, s.Trend)
	}
	assert.Equal(t, "mmHg", overview[0].Unit)
}

func TestLeadingNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"120/80", 120, true},
		{"72", 72, true},
		{"98.6", 98.6, true},
		{" 68.5 kg", 68.5, true},
		{"98.6F", 98.6, true},
		{"-3", -3, true},
		{"7.", 7, true},
		{"", 0, false},
		{"abc", 0, false},
		{"/80", 0, false},
		{".", 0, false},
	}
	for _, tt := range tests {
		got, ok := LeadingNumber(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, tt.in)
		}
	}
}
