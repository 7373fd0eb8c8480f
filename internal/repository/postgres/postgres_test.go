package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/care-api/internal/model"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
)

func newMockBase(t *testing.T) (*BaseRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBaseRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestPreferenceRepository(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewPreferenceRepository(base)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO preferences").
		WithArgs("app_language", "ta").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Set(ctx, "app_language", "ta"))

	mock.ExpectQuery("SELECT value FROM preferences").
		WithArgs("app_language").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("ta"))
	got, err := repo.Get(ctx, "app_language")
	require.NoError(t, err)
	assert.Equal(t, "ta", got)

	mock.ExpectQuery("SELECT value FROM preferences").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(ctx, "missing")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVitalRepository(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewVitalRepository(base)
	ctx := context.Background()

	mock.ExpectQuery("SELECT id, kind, value, record_date, record_time, notes FROM health_records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "value", "record_date", "record_time", "notes"}).
			AddRow(1, "heart_rate", "72", "2024-02-10", "08:35", "").
			AddRow(2, "blood_pressure", "120/80", "2024-02-10", "08:30", "after breakfast"))
	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.VitalHeartRate, records[0].Kind)
	assert.Equal(t, "120/80", records[1].Value)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO health_records").
		WithArgs("weight", "70.1", "2024-02-11", "07:00", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	rec := &model.HealthRecord{Kind: model.VitalWeight, Value: "70.1", Date: "2024-02-11", Time: "07:00"}
	require.NoError(t, repo.Add(ctx, rec))
	assert.Equal(t, 3, rec.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVitalRepositoryAddRollsBack(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewVitalRepository(base)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO health_records").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Add(context.Background(), &model.HealthRecord{Kind: model.VitalWeight, Value: "70"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}
