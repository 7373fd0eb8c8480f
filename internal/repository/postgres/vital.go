package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/care-api/internal/model"
	"github.com/jwalitptl/care-api/internal/repository"
)

type vitalRepository struct {
	*BaseRepository
}

func NewVitalRepository(base *BaseRepository) repository.VitalRepository {
	return &vitalRepository{BaseRepository: base}
}

type healthRecordRow struct {
	ID    int    `db:"id"`
	Kind  string `db:"kind"`
	Value string `db:"value"`
	Date  string `db:"record_date"`
	Time  string `db:"record_time"`
	Notes string `db:"notes"`
}

func (r *vitalRepository) List(ctx context.Context) ([]model.HealthRecord, error) {
	var rows []healthRecordRow
	query := `SELECT id, kind, value, record_date, record_time, notes FROM health_records ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list health records: %w", err)
	}

	records := make([]model.HealthRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.HealthRecord{
			ID:    row.ID,
			Kind:  model.VitalKind(row.Kind),
			Value: row.Value,
			Date:  row.Date,
			Time:  row.Time,
			Notes: row.Notes,
		})
	}
	return records, nil
}

func (r *vitalRepository) Add(ctx context.Context, record *model.HealthRecord) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO health_records (kind, value, record_date, record_time, notes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		err := tx.QueryRowxContext(ctx, query,
			string(record.Kind), record.Value, record.Date, record.Time, record.Notes,
		).Scan(&record.ID)
		if err != nil {
			return fmt.Errorf("failed to add health record: %w", err)
		}
		return nil
	})
}
