package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "emanifest/internal/config"
	"emanifest/internal/domain"
	"emanifest/internal/domain/models"
	"emanifest/internal/utils"

	"github.com/go-sql-driver/mysql"
)

type PassengerRepository struct {
	DB *sql.DB
}

func (r PassengerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const mysqlDuplicateEntry = 1062

// Insert writes the passenger row. The unique key on
// (manifest_id, seat_number) is the authoritative seat arbiter: when a
// concurrent registration already won the seat, MySQL rejects the insert and
// the duplicate-key error is translated to the domain seat conflict so
// callers never see driver error codes.
func (r PassengerRepository) Insert(p *models.Passenger) error {
	res, err := r.db().Exec(`
		INSERT INTO passengers (manifest_id, name, next_of_kin, next_of_kin_phone, seat_number)
		VALUES (?, ?, ?, ?, ?)`,
		p.ManifestID, p.Name, p.NextOfKin, p.NextOfKinPhone, p.SeatNumber,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return domain.ErrSeatTaken(p.SeatNumber)
		}
		return err
	}
	p.ID, _ = res.LastInsertId()

	// created_at is DB-generated; read it back so the response carries it.
	// The row is already committed, so a failed read-back must not turn the
	// registration into an error: log it and approximate the timestamp.
	if err := r.db().QueryRow(
		`SELECT created_at FROM passengers WHERE id = ?`, p.ID).Scan(&p.CreatedAt); err != nil {
		utils.LogEvent("", "passenger", "created_at_readback_failed", err.Error())
		p.CreatedAt = time.Now()
	}
	return nil
}

// ListByManifest returns passengers ordered by seat number ascending.
func (r PassengerRepository) ListByManifest(manifestID int64) ([]models.Passenger, error) {
	rows, err := r.db().Query(`
		SELECT id, manifest_id, name, next_of_kin, next_of_kin_phone, seat_number, created_at
		FROM passengers
		WHERE manifest_id = ?
		ORDER BY seat_number ASC`, manifestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(
			&p.ID, &p.ManifestID, &p.Name, &p.NextOfKin, &p.NextOfKinPhone,
			&p.SeatNumber, &p.CreatedAt,
		); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
