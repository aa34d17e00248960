package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "emanifest/internal/config"
	"emanifest/internal/domain"
	"emanifest/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type AgentRepository struct {
	DB *sql.DB
}

func (r AgentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AgentRepository) List() ([]models.Agent, error) {
	rows, err := r.db().Query(`
		SELECT a.id, a.name, a.code, a.park_id, p.name, a.created_at
		FROM agents a
		JOIN parks p ON p.id = a.park_id
		ORDER BY a.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Agent{}
	for rows.Next() {
		var a models.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Code, &a.ParkID, &a.ParkName, &a.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r AgentRepository) GetByID(id int64) (models.Agent, error) {
	var a models.Agent
	err := r.db().QueryRow(`
		SELECT id, name, code, park_id, created_at
		FROM agents WHERE id = ? LIMIT 1`, id).
		Scan(&a.ID, &a.Name, &a.Code, &a.ParkID, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return a, domain.NotFoundError{Resource: "agent"}
	}
	return a, err
}

// GetByCode resolves an agent by its 4-character login code.
func (r AgentRepository) GetByCode(code string) (models.Agent, error) {
	var a models.Agent
	err := r.db().QueryRow(`
		SELECT id, name, code, park_id, created_at
		FROM agents WHERE code = ? LIMIT 1`, strings.TrimSpace(code)).
		Scan(&a.ID, &a.Name, &a.Code, &a.ParkID, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return a, domain.NotFoundError{Resource: "agent"}
	}
	return a, err
}

func (r AgentRepository) Create(a *models.Agent) error {
	res, err := r.db().Exec(`
		INSERT INTO agents (name, code, park_id) VALUES (?, ?, ?)`,
		a.Name, a.Code, a.ParkID)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return domain.ConflictError{Resource: "agent", Msg: "agent code already exists"}
		}
		return err
	}
	a.ID, _ = res.LastInsertId()
	return nil
}

func (r AgentRepository) Update(a models.Agent) error {
	res, err := r.db().Exec(`
		UPDATE agents SET name = ?, code = ?, park_id = ? WHERE id = ?`,
		a.Name, a.Code, a.ParkID, a.ID)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return domain.ConflictError{Resource: "agent", Msg: "agent code already exists"}
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(a.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r AgentRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM agents WHERE id = ?`, id)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && (me.Number == 1451 || me.Number == 1217) {
			return domain.ConflictError{Resource: "agent", Msg: "agent is still referenced by manifests"}
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "agent"}
	}
	return nil
}
