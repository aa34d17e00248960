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

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmail returns the admin and its bcrypt hash for login checks.
func (r AdminRepository) GetByEmail(email string) (models.Admin, string, error) {
	var (
		a    models.Admin
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, email, name, password_hash, created_at
		FROM admins WHERE email = ? LIMIT 1`, strings.ToLower(strings.TrimSpace(email))).
		Scan(&a.ID, &a.Email, &a.Name, &hash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return a, "", domain.NotFoundError{Resource: "admin"}
	}
	return a, hash, err
}

func (r AdminRepository) Create(a *models.Admin, passwordHash string) error {
	res, err := r.db().Exec(`
		INSERT INTO admins (email, password_hash, name) VALUES (?, ?, ?)`,
		strings.ToLower(strings.TrimSpace(a.Email)), passwordHash, a.Name)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return domain.ConflictError{Resource: "admin", Msg: "email already registered"}
		}
		return err
	}
	a.ID, _ = res.LastInsertId()
	return nil
}
