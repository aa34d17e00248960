package repositories

import (
	"database/sql"
	"testing"
	"time"

	"emanifest/internal/domain"
	"emanifest/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestPassengerInsertFillsIDAndTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO passengers").
		WithArgs(int64(1), "Amina Yusuf", "Bola Yusuf", "0801234567", 2).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectQuery("SELECT created_at FROM passengers WHERE id").WithArgs(int64(21)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	repo := PassengerRepository{DB: db}
	p := models.Passenger{
		ManifestID:     1,
		Name:           "Amina Yusuf",
		NextOfKin:      "Bola Yusuf",
		NextOfKinPhone: "0801234567",
		SeatNumber:     2,
	}
	if err := repo.Insert(&p); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if p.ID != 21 {
		t.Fatalf("expected id 21, got %d", p.ID)
	}
	if !p.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at %v, got %v", created, p.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// The insert is committed before the created_at read-back runs, so a failed
// read-back must not surface as a registration error or a zero timestamp.
func TestPassengerInsertReadBackFailureFallsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO passengers").
		WillReturnResult(sqlmock.NewResult(22, 1))
	mock.ExpectQuery("SELECT created_at FROM passengers WHERE id").WithArgs(int64(22)).
		WillReturnError(sql.ErrConnDone)

	repo := PassengerRepository{DB: db}
	p := models.Passenger{ManifestID: 1, Name: "Amina Yusuf", NextOfKin: "Bola Yusuf", NextOfKinPhone: "0801234567", SeatNumber: 3}

	if err := repo.Insert(&p); err != nil {
		t.Fatalf("read-back failure must not fail the insert, got %v", err)
	}
	if p.ID != 22 {
		t.Fatalf("expected id 22, got %d", p.ID)
	}
	if p.CreatedAt.IsZero() {
		t.Fatal("created_at should fall back to the current time, got zero value")
	}
}

// The duplicate-key rejection from uq_manifest_seat must come back as the
// domain seat conflict, never as a raw driver error.
func TestPassengerInsertTranslatesDuplicateKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO passengers").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-4' for key 'uq_manifest_seat'"})

	repo := PassengerRepository{DB: db}
	p := models.Passenger{ManifestID: 1, Name: "Amina Yusuf", NextOfKin: "Bola Yusuf", NextOfKinPhone: "0801234567", SeatNumber: 4}

	err = repo.Insert(&p)
	if !domain.IsConflict(err) {
		t.Fatalf("expected domain conflict, got %v", err)
	}
	if domain.ErrorCode(err) != domain.CodeSeatTaken {
		t.Fatalf("expected code %s, got %s", domain.CodeSeatTaken, domain.ErrorCode(err))
	}
}

func TestPassengerInsertKeepsOtherErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO passengers").
		WillReturnError(&mysql.MySQLError{Number: 1146, Message: "Table 'emanifest.passengers' doesn't exist"})

	repo := PassengerRepository{DB: db}
	p := models.Passenger{ManifestID: 1, Name: "Amina Yusuf", NextOfKin: "Bola Yusuf", NextOfKinPhone: "0801234567", SeatNumber: 1}

	err = repo.Insert(&p)
	if err == nil || domain.IsConflict(err) {
		t.Fatalf("non-duplicate errors must pass through untranslated, got %v", err)
	}
}
