package repositories

import (
	"database/sql"
	"strings"

	intconfig "emanifest/internal/config"
	"emanifest/internal/domain"
	"emanifest/internal/domain/models"
)

type ManifestRepository struct {
	DB *sql.DB
}

func (r ManifestRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const manifestColumns = `id, manifest_code, origin, destination, plate_number,
	driver_name, driver_phone, capacity, is_locked, COALESCE(compliance_status,''),
	agent_id, park_id, created_at`

func scanManifest(row *sql.Row) (models.Manifest, error) {
	var m models.Manifest
	err := row.Scan(
		&m.ID, &m.ManifestCode, &m.Origin, &m.Destination, &m.PlateNumber,
		&m.DriverName, &m.DriverPhone, &m.Capacity, &m.IsLocked, &m.ComplianceStatus,
		&m.AgentID, &m.ParkID, &m.CreatedAt,
	)
	return m, err
}

// GetByID loads one manifest with its current passenger count.
func (r ManifestRepository) GetByID(id int64) (models.Manifest, error) {
	if id <= 0 {
		return models.Manifest{}, domain.ErrManifestNotFound()
	}
	m, err := scanManifest(r.db().QueryRow(
		`SELECT `+manifestColumns+` FROM manifests WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Manifest{}, domain.ErrManifestNotFound()
		}
		return models.Manifest{}, err
	}
	if err := r.db().QueryRow(
		`SELECT COUNT(*) FROM passengers WHERE manifest_id = ?`, id).Scan(&m.PassengerCount); err != nil {
		return models.Manifest{}, err
	}
	return m, nil
}

// TakenSeats returns the seat numbers currently occupied on a manifest.
func (r ManifestRepository) TakenSeats(manifestID int64) (map[int]bool, error) {
	rows, err := r.db().Query(
		`SELECT seat_number FROM passengers WHERE manifest_id = ?`, manifestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taken := map[int]bool{}
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		taken[seat] = true
	}
	return taken, rows.Err()
}

// FindOpenByPlate resolves an unlocked manifest by plate number,
// case-insensitive. Newest wins when a plate has stale open manifests.
func (r ManifestRepository) FindOpenByPlate(plate string) (models.Manifest, error) {
	plate = strings.TrimSpace(plate)
	m, err := scanManifest(r.db().QueryRow(
		`SELECT `+manifestColumns+`
		 FROM manifests
		 WHERE LOWER(plate_number) = LOWER(?) AND is_locked = 0
		 ORDER BY id DESC LIMIT 1`, plate))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Manifest{}, domain.ErrNoOpenManifest()
		}
		return models.Manifest{}, err
	}
	if err := r.db().QueryRow(
		`SELECT COUNT(*) FROM passengers WHERE manifest_id = ?`, m.ID).Scan(&m.PassengerCount); err != nil {
		return models.Manifest{}, err
	}
	return m, nil
}

// Create inserts the manifest and fills its ID.
func (r ManifestRepository) Create(m *models.Manifest) error {
	res, err := r.db().Exec(`
		INSERT INTO manifests
			(manifest_code, origin, destination, plate_number, driver_name,
			 driver_phone, capacity, is_locked, agent_id, park_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		m.ManifestCode, m.Origin, m.Destination, m.PlateNumber, m.DriverName,
		m.DriverPhone, m.Capacity, m.AgentID, m.ParkID,
	)
	if err != nil {
		return err
	}
	m.ID, _ = res.LastInsertId()
	return nil
}

// Lock finalizes a manifest. Idempotent: locking a locked manifest is a no-op.
func (r ManifestRepository) Lock(id int64) error {
	res, err := r.db().Exec(`UPDATE manifests SET is_locked = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists int
		if err := r.db().QueryRow(`SELECT COUNT(*) FROM manifests WHERE id = ?`, id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrManifestNotFound()
		}
	}
	return nil
}

// SetComplianceStatus stores an admin override on the manifest row.
func (r ManifestRepository) SetComplianceStatus(id int64, status string) error {
	res, err := r.db().Exec(
		`UPDATE manifests SET compliance_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists int
		if err := r.db().QueryRow(`SELECT COUNT(*) FROM manifests WHERE id = ?`, id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrManifestNotFound()
		}
	}
	return nil
}

// ManifestFilter narrows admin manifest listings.
type ManifestFilter struct {
	Search  string
	ParkID  int64
	AgentID int64
	Page    int
	Limit   int
}

func (f *ManifestFilter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

// List returns a page of manifests plus the unpaged total.
func (r ManifestRepository) List(f ManifestFilter) ([]models.Manifest, int, error) {
	f.normalize()

	where := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		where = append(where, `(manifest_code LIKE ? OR plate_number LIKE ? OR origin LIKE ? OR destination LIKE ?)`)
		args = append(args, like, like, like, like)
	}
	if f.ParkID > 0 {
		where = append(where, "park_id = ?")
		args = append(args, f.ParkID)
	}
	if f.AgentID > 0 {
		where = append(where, "agent_id = ?")
		args = append(args, f.AgentID)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM manifests WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(append([]any{}, args...), f.Limit, (f.Page-1)*f.Limit)
	rows, err := r.db().Query(`
		SELECT m.id, m.manifest_code, m.origin, m.destination, m.plate_number,
		       m.driver_name, m.driver_phone, m.capacity, m.is_locked,
		       COALESCE(m.compliance_status,''), m.agent_id, m.park_id, m.created_at,
		       (SELECT COUNT(*) FROM passengers p WHERE p.manifest_id = m.id)
		FROM manifests m
		WHERE `+cond+`
		ORDER BY m.id DESC
		LIMIT ? OFFSET ?`, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Manifest{}
	for rows.Next() {
		var m models.Manifest
		if err := rows.Scan(
			&m.ID, &m.ManifestCode, &m.Origin, &m.Destination, &m.PlateNumber,
			&m.DriverName, &m.DriverPhone, &m.Capacity, &m.IsLocked,
			&m.ComplianceStatus, &m.AgentID, &m.ParkID, &m.CreatedAt,
			&m.PassengerCount,
		); err != nil {
			return out, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

// ComplianceRows joins manifests with park/agent names for the report screen.
func (r ManifestRepository) ComplianceRows(parkID int64, page, limit int) ([]models.ComplianceRow, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	where := "1=1"
	args := []any{}
	if parkID > 0 {
		where = "m.park_id = ?"
		args = append(args, parkID)
	}

	var total int
	if err := r.db().QueryRow(
		`SELECT COUNT(*) FROM manifests m WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(append([]any{}, args...), limit, (page-1)*limit)
	rows, err := r.db().Query(`
		SELECT m.id, m.manifest_code, pk.name, ag.name, m.capacity, m.is_locked,
		       COALESCE(m.compliance_status,''),
		       (SELECT COUNT(*) FROM passengers p WHERE p.manifest_id = m.id)
		FROM manifests m
		JOIN parks pk ON pk.id = m.park_id
		JOIN agents ag ON ag.id = m.agent_id
		WHERE `+where+`
		ORDER BY m.id DESC
		LIMIT ? OFFSET ?`, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.ComplianceRow{}
	for rows.Next() {
		var row models.ComplianceRow
		var override string
		if err := rows.Scan(
			&row.ManifestID, &row.ManifestCode, &row.ParkName, &row.AgentName,
			&row.Capacity, &row.IsLocked, &override, &row.PassengerCount,
		); err != nil {
			return out, 0, err
		}
		row.Status = complianceStatus(override, row.IsLocked, row.PassengerCount, row.Capacity)
		out = append(out, row)
	}
	return out, total, rows.Err()
}

// complianceStatus derives a report status unless an admin set an override.
func complianceStatus(override string, locked bool, count, capacity int) string {
	if s := strings.TrimSpace(override); s != "" {
		return s
	}
	switch {
	case locked && count == capacity:
		return "compliant"
	case locked:
		return "partial"
	default:
		return "open"
	}
}
