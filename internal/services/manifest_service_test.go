package services

import (
	"fmt"
	"testing"
	"time"

	"emanifest/internal/domain"
	"emanifest/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newManifestService(t *testing.T) (ManifestService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := ManifestService{
		Manifests: repositories.ManifestRepository{DB: db},
		Parks:     repositories.ParkRepository{DB: db},
		Agents:    repositories.AgentRepository{DB: db},
		Now:       func() time.Time { return time.UnixMilli(1700000000000) },
	}
	return svc, mock, func() { db.Close() }
}

func validManifestInput() CreateManifestInput {
	return CreateManifestInput{
		Origin:      "Lagos",
		Destination: "Abuja",
		PlateNumber: "ABC-123-XYZ",
		DriverName:  "John Doe",
		DriverPhone: "08012345678",
		Capacity:    14,
		AgentID:     2,
		ParkID:      3,
	}
}

func TestCreateManifestGeneratesCode(t *testing.T) {
	svc, mock, done := newManifestService(t)
	defer done()

	mock.ExpectQuery("FROM parks WHERE id").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "default_origin", "created_at"}).
			AddRow(3, "Lagos Central Park", "LG001", "Lagos", time.Now()))
	mock.ExpectQuery("FROM agents WHERE id").WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "park_id", "created_at"}).
			AddRow(2, "Ahmed Bello", "1001", 3, time.Now()))
	mock.ExpectExec("INSERT INTO manifests").
		WithArgs("NURTW-LAGOS-ABUJA-LG001-1700000000000", "Lagos", "Abuja", "ABC-123-XYZ",
			"John Doe", "08012345678", 14, int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(9, 1))

	m, err := svc.Create(validManifestInput())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if m.ManifestCode != "NURTW-LAGOS-ABUJA-LG001-1700000000000" {
		t.Fatalf("unexpected manifest code %q", m.ManifestCode)
	}
	if m.ID != 9 {
		t.Fatalf("expected id 9, got %d", m.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateManifestCapacityBounds(t *testing.T) {
	svc, _, done := newManifestService(t)
	defer done()

	for _, capacity := range []int{0, 3, 21} {
		in := validManifestInput()
		in.Capacity = capacity
		if _, err := svc.Create(in); !domain.IsValidation(err) {
			t.Fatalf("capacity %d: expected validation error, got %v", capacity, err)
		}
	}
}

func TestCreateManifestUnknownPark(t *testing.T) {
	svc, mock, done := newManifestService(t)
	defer done()

	mock.ExpectQuery("FROM parks WHERE id").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "default_origin", "created_at"}))

	if _, err := svc.Create(validManifestInput()); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found for unknown park, got %v", err)
	}
}

func TestLockManifestNotFound(t *testing.T) {
	svc, mock, done := newManifestService(t)
	defer done()

	mock.ExpectExec("UPDATE manifests SET is_locked").WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM manifests WHERE id`).WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	if err := svc.Lock(42); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestLockManifestIdempotent(t *testing.T) {
	svc, mock, done := newManifestService(t)
	defer done()

	// already locked: zero rows affected but the manifest exists
	mock.ExpectExec("UPDATE manifests SET is_locked").WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM manifests WHERE id`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	if err := svc.Lock(7); err != nil {
		t.Fatalf("locking a locked manifest should be a no-op, got %v", err)
	}
}

func TestExportCSVIncludesHeader(t *testing.T) {
	svc, mock, done := newManifestService(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM manifests`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM manifests m").
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, manifestCols...), "passenger_count")).
			AddRow(1, "NURTW-LAGOS-ABUJA-LG001-1", "Lagos", "Abuja", "ABC-123-XYZ",
				"John Doe", "08012345678", 14, true, "", 1, 1, time.Now(), 14))

	records, err := svc.ExportCSV(repositories.ManifestFilter{})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	if records[0][0] != "manifest_code" {
		t.Fatalf("expected header first, got %v", records[0])
	}
	if records[1][6] != "14" || records[1][7] != "true" {
		t.Fatalf("unexpected row values: %v", records[1])
	}
}

// An export of a listing larger than one page must contain every matching
// manifest, not just the first page.
func TestExportCSVPagesThroughFullListing(t *testing.T) {
	svc, mock, done := newManifestService(t)
	defer done()

	exportCols := append(append([]string{}, manifestCols...), "passenger_count")
	manifestRow := func(rows *sqlmock.Rows, id int) {
		rows.AddRow(int64(id), fmt.Sprintf("NURTW-LAGOS-ABUJA-LG001-%d", id),
			"Lagos", "Abuja", "ABC-123-XYZ", "John Doe", "08012345678",
			14, true, "", 1, 1, time.Now(), 14)
	}

	firstPage := sqlmock.NewRows(exportCols)
	for id := 1; id <= 100; id++ {
		manifestRow(firstPage, id)
	}
	secondPage := sqlmock.NewRows(exportCols)
	for id := 101; id <= 120; id++ {
		manifestRow(secondPage, id)
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM manifests`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))
	mock.ExpectQuery("FROM manifests m").WillReturnRows(firstPage)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM manifests`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))
	mock.ExpectQuery("FROM manifests m").WillReturnRows(secondPage)

	records, err := svc.ExportCSV(repositories.ManifestFilter{})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(records) != 121 {
		t.Fatalf("expected header plus all 120 rows, got %d records", len(records))
	}
	if records[120][0] != "NURTW-LAGOS-ABUJA-LG001-120" {
		t.Fatalf("last manifest missing from export, got %v", records[120])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
