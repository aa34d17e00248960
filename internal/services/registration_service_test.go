package services

import (
	"testing"
	"time"

	"emanifest/internal/domain"
	"emanifest/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

var manifestCols = []string{
	"id", "manifest_code", "origin", "destination", "plate_number",
	"driver_name", "driver_phone", "capacity", "is_locked", "compliance_status",
	"agent_id", "park_id", "created_at",
}

func newRegistrationService(t *testing.T) (RegistrationService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := RegistrationService{
		Manifests:  repositories.ManifestRepository{DB: db},
		Passengers: repositories.PassengerRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func expectManifestLoad(mock sqlmock.Sqlmock, id int64, capacity int, locked bool, count int) {
	mock.ExpectQuery("FROM manifests WHERE id").WithArgs(id).
		WillReturnRows(sqlmock.NewRows(manifestCols).AddRow(
			id, "NURTW-LAGOS-ABUJA-LG001-1", "Lagos", "Abuja", "ABC-123-XYZ",
			"John Doe", "08012345678", capacity, locked, "", 1, 1, time.Now(),
		))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM passengers WHERE manifest_id`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func expectTakenSeats(mock sqlmock.Sqlmock, id int64, seats ...int) {
	rows := sqlmock.NewRows([]string{"seat_number"})
	for _, s := range seats {
		rows.AddRow(s)
	}
	mock.ExpectQuery("SELECT seat_number FROM passengers WHERE manifest_id").WithArgs(id).
		WillReturnRows(rows)
}

func validInput(manifestID int64) RegisterPassengerInput {
	return RegisterPassengerInput{
		ManifestID:     manifestID,
		Name:           "Amina Yusuf",
		NextOfKin:      "Bola Yusuf",
		NextOfKinPhone: "0801234567",
	}
}

func TestRegisterAutoAssignsFirstSeat(t *testing.T) {
	svc, mock, done := newRegistrationService(t)
	defer done()

	expectManifestLoad(mock, 1, 4, false, 0)
	expectTakenSeats(mock, 1)
	mock.ExpectExec("INSERT INTO passengers").
		WithArgs(int64(1), "Amina Yusuf", "Bola Yusuf", "0801234567", 1).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at FROM passengers WHERE id").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	p, err := svc.Register(validInput(1))
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if p.SeatNumber != 1 {
		t.Fatalf("empty manifest should assign seat 1, got %d", p.SeatNumber)
	}
	if p.ID != 7 {
		t.Fatalf("expected inserted id 7, got %d", p.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterRequestedSeatTaken(t *testing.T) {
	svc, mock, done := newRegistrationService(t)
	defer done()

	expectManifestLoad(mock, 1, 4, false, 1)
	expectTakenSeats(mock, 1, 1)

	in := validInput(1)
	seat := 1
	in.SeatNumber = &seat

	_, err := svc.Register(in)
	if !domain.IsConflict(err) {
		t.Fatalf("expected seat conflict, got %v", err)
	}
	if domain.ErrorCode(err) != domain.CodeSeatTaken {
		t.Fatalf("expected code %s, got %s", domain.CodeSeatTaken, domain.ErrorCode(err))
	}
}

func TestRegisterRequestedSeatOutOfRange(t *testing.T) {
	svc, mock, done := newRegistrationService(t)
	defer done()

	expectManifestLoad(mock, 1, 4, false, 0)
	expectTakenSeats(mock, 1)

	in := validInput(1)
	seat := 5
	in.SeatNumber = &seat

	_, err := svc.Register(in)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if domain.ErrorCode(err) != domain.CodeSeatOutOfRange {
		t.Fatalf("expected code %s, got %s", domain.CodeSeatOutOfRange, domain.ErrorCode(err))
	}
}

func TestRegisterManifestLocked(t *testing.T) {
	svc, mock, done := newRegistrationService(t)
	defer done()

	expectManifestLoad(mock, 1, 4, true, 0)

	_, err := svc.Register(validInput(1))
	if domain.ErrorCode(err) != domain.CodeManifestLocked {
		t.Fatalf("expected code %s, got %v", domain.CodeManifestLocked, err)
	}
}

func TestRegisterManifestFull(t *testing.T) {
	svc, mock, done := newRegistrationService(t)
	defer done()

	expectManifestLoad(mock, 1, 4, false, 4)

	_, err := svc.Register(validInput(1))
	if domain.ErrorCode(err) != domain.CodeManifestFull {
		t.Fatalf("expected code %s, got %v", domain.CodeManifestFull, err)
	}
}

func TestRegisterManifestNotFound(t *testing.T) {
	svc, mock, done := newRegistrationService(t)
	defer done()

	mock.ExpectQuery("FROM manifests WHERE id").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(manifestCols))

	_, err := svc.Register(validInput(99))
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

// Two concurrent registrations race for the last seat: both pass the
// in-memory check, but the unique index only lets one insert through. The
// loser's duplicate-key rejection must surface as the seat conflict.
func TestRegisterLosingRacerGetsSeatTaken(t *testing.T) {
	svc, mock, done := newRegistrationService(t)
	defer done()

	expectManifestLoad(mock, 1, 4, false, 3)
	expectTakenSeats(mock, 1, 1, 2, 3)
	mock.ExpectExec("INSERT INTO passengers").
		WithArgs(int64(1), "Amina Yusuf", "Bola Yusuf", "0801234567", 4).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-4' for key 'uq_manifest_seat'"})

	_, err := svc.Register(validInput(1))
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict from constraint violation, got %v", err)
	}
	if domain.ErrorCode(err) != domain.CodeSeatTaken {
		t.Fatalf("expected code %s, got %s", domain.CodeSeatTaken, domain.ErrorCode(err))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, done := newRegistrationService(t)
	defer done()

	cases := []struct {
		name  string
		patch func(*RegisterPassengerInput)
	}{
		{"missing manifest id", func(in *RegisterPassengerInput) { in.ManifestID = 0 }},
		{"short name", func(in *RegisterPassengerInput) { in.Name = "A" }},
		{"short next of kin", func(in *RegisterPassengerInput) { in.NextOfKin = "B" }},
		{"short phone", func(in *RegisterPassengerInput) { in.NextOfKinPhone = "080123" }},
		{"non-digit phone", func(in *RegisterPassengerInput) { in.NextOfKinPhone = "08012345ab" }},
	}
	for _, tc := range cases {
		in := validInput(1)
		tc.patch(&in)
		if _, err := svc.Register(in); !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestListPassengersRequiresManifestID(t *testing.T) {
	svc, _, done := newRegistrationService(t)
	defer done()

	if _, err := svc.ListPassengers(0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing manifest id, got %v", err)
	}
}

func TestListPassengersOrderedBySeat(t *testing.T) {
	svc, mock, done := newRegistrationService(t)
	defer done()

	expectManifestLoad(mock, 1, 4, false, 2)
	mock.ExpectQuery("FROM passengers").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "manifest_id", "name", "next_of_kin", "next_of_kin_phone", "seat_number", "created_at",
		}).
			AddRow(11, 1, "Amina Yusuf", "Bola Yusuf", "0801234567", 1, time.Now()).
			AddRow(12, 1, "Chidi Eze", "Ngozi Eze", "0809876543", 2, time.Now()))

	passengers, err := svc.ListPassengers(1)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(passengers) != 2 {
		t.Fatalf("expected 2 passengers, got %d", len(passengers))
	}
	if passengers[0].SeatNumber != 1 || passengers[1].SeatNumber != 2 {
		t.Fatalf("passengers not ordered by seat: %d, %d",
			passengers[0].SeatNumber, passengers[1].SeatNumber)
	}
}
