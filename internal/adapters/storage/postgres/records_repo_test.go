package postgres

import (
	"context"
	"testing"
	"time"

	"health-vault/internal/domain/records"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

var recordCols = []string{"id", "owner_id", "category", "title", "notes", "recorded_at", "created_at", "status"}

func TestRecordsRepo_GetByIDs_KeepsOrderAndOmitsMissing(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewRecordsRepo(db)

	ids := []string{"r2", "gone", "r1"}
	mock.ExpectQuery(`WHERE id = ANY\(\$1\)`).
		WithArgs(ids).
		WillReturnRows(pgxmock.NewRows(recordCols).
			AddRow("r1", "p1", "lab_result", "Hemograma", "", t0, t0, "active").
			AddRow("r2", "p1", "imaging", "RX tórax", "", t0, t0, "active"))

	got, err := r.GetByIDs(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "r2", got[0].ID)
	require.Equal(t, records.CategoryImaging, got[0].Category)
	require.Equal(t, "r1", got[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordsRepo_GetByIDs_Empty(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewRecordsRepo(db)

	got, err := r.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordsRepo_ListByOwner_WithCategories(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewRecordsRepo(db)

	mock.ExpectQuery(`category = ANY\(\$2\)`).
		WithArgs("p1", []string{"vaccination"}, 5).
		WillReturnRows(pgxmock.NewRows(recordCols).
			AddRow("r9", "p1", "vaccination", "Antitetánica", "refuerzo", t0.Add(-24*time.Hour), t0, "active"))

	got, err := r.ListByOwner(context.Background(), "p1", records.ListFilter{
		Categories: []records.Category{records.CategoryVaccination},
		Limit:      5,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "refuerzo", got[0].Notes)
}

func TestRecordsRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewRecordsRepo(db)

	rec := records.Record{
		ID: "r1", OwnerID: "p1", Category: records.CategoryNote, Title: "nota",
		RecordedAt: t0, CreatedAt: t0, Status: records.StatusActive,
	}
	mock.ExpectExec(`INSERT INTO records`).
		WithArgs("r1", "p1", "note", "nota", "", t0, t0, "active").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, r.Create(context.Background(), rec))
	require.NoError(t, mock.ExpectationsWereMet())
}
