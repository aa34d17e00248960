package repositories

import (
	"database/sql"
	"errors"

	intconfig "emanifest/internal/config"
	"emanifest/internal/domain"
	"emanifest/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type ParkRepository struct {
	DB *sql.DB
}

func (r ParkRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ParkRepository) List() ([]models.Park, error) {
	rows, err := r.db().Query(`
		SELECT id, name, code, default_origin, created_at
		FROM parks ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Park{}
	for rows.Next() {
		var p models.Park
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.DefaultOrigin, &p.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r ParkRepository) GetByID(id int64) (models.Park, error) {
	var p models.Park
	err := r.db().QueryRow(`
		SELECT id, name, code, default_origin, created_at
		FROM parks WHERE id = ? LIMIT 1`, id).
		Scan(&p.ID, &p.Name, &p.Code, &p.DefaultOrigin, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return p, domain.NotFoundError{Resource: "park"}
	}
	return p, err
}

func (r ParkRepository) Create(p *models.Park) error {
	res, err := r.db().Exec(`
		INSERT INTO parks (name, code, default_origin) VALUES (?, ?, ?)`,
		p.Name, p.Code, p.DefaultOrigin)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return domain.ConflictError{Resource: "park", Msg: "park code already exists"}
		}
		return err
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

func (r ParkRepository) Update(p models.Park) error {
	res, err := r.db().Exec(`
		UPDATE parks SET name = ?, code = ?, default_origin = ? WHERE id = ?`,
		p.Name, p.Code, p.DefaultOrigin, p.ID)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return domain.ConflictError{Resource: "park", Msg: "park code already exists"}
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(p.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r ParkRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM parks WHERE id = ?`, id)
	if err != nil {
		var me *mysql.MySQLError
		// foreign key violation: park still referenced by agents/manifests
		if errors.As(err, &me) && (me.Number == 1451 || me.Number == 1217) {
			return domain.ConflictError{Resource: "park", Msg: "park is still referenced by agents or manifests"}
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "park"}
	}
	return nil
}
