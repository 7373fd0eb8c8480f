package memory

import (
	"context"
	"sync"

	"github.com/jwalitptl/care-api/internal/model"
	"github.com/jwalitptl/care-api/internal/repository"
)

type vitalRepository struct {
	mu      sync.RWMutex
	records []model.HealthRecord
	nextID  int
}

// NewVitalRepository returns an in-memory store holding a copy of seed.
func NewVitalRepository(seed []model.HealthRecord) repository.VitalRepository {
	r := &vitalRepository{
		records: make([]model.HealthRecord, len(seed)),
		nextID:  1,
	}
	copy(r.records, seed)
	for _, rec := range seed {
		if rec.ID >= r.nextID {
			r.nextID = rec.ID + 1
		}
	}
	return r
}

func (r *vitalRepository) List(ctx context.Context) ([]model.HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.HealthRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *vitalRepository) Add(ctx context.Context, record *model.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = r.nextID
	r.nextID++
	r.records = append(r.records, *record)
	return nil
}

// SampleRecords are the readings the app starts with.
func SampleRecords() []model.HealthRecord {
	return []model.HealthRecord{
		{ID: 1, Kind: model.VitalBloodPressure, Value: "120/80", Date: "2024-02-10", Time: "08:30", Notes: "Morning reading after breakfast"},
		{ID: 2, Kind: model.VitalHeartRate, Value: "72", Date: "2024-02-10", Time: "08:35"},
		{ID: 3, Kind: model.VitalWeight, Value: "68.5", Date: "2024-02-09", Time: "07:00"},
		{ID: 4, Kind: model.VitalTemperature, Value: "98.6", Date: "2024-02-08", Time: "19:00", Notes: "Feeling slightly unwell"},
		{ID: 5, Kind: model.VitalBloodSugar, Value: "95", Date: "2024-02-08", Time: "12:00", Notes: "Post-lunch reading"},
	}
}
