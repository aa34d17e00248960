package db

import (
	"context"
	"database/sql"
	"fmt"
)

type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// HasTable probes information_schema for a table in the current database.
func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// schemaStatements are idempotent. The UNIQUE KEY on
// (manifest_id, seat_number) is the serialization point for concurrent
// passenger registration; every seat-conflict guarantee rests on it.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id            BIGINT AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(191) NOT NULL,
		password_hash VARCHAR(191) NOT NULL,
		name          VARCHAR(191) NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_admin_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS parks (
		id             BIGINT AUTO_INCREMENT PRIMARY KEY,
		name           VARCHAR(191) NOT NULL,
		code           VARCHAR(32) NOT NULL,
		default_origin VARCHAR(191) NOT NULL,
		created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_park_code (code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS agents (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(191) NOT NULL,
		code       CHAR(4) NOT NULL,
		park_id    BIGINT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_agent_code (code),
		KEY idx_agent_park (park_id),
		CONSTRAINT fk_agent_park FOREIGN KEY (park_id) REFERENCES parks (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS manifests (
		id                BIGINT AUTO_INCREMENT PRIMARY KEY,
		manifest_code     VARCHAR(191) NOT NULL,
		origin            VARCHAR(191) NOT NULL,
		destination       VARCHAR(191) NOT NULL,
		plate_number      VARCHAR(64) NOT NULL,
		driver_name       VARCHAR(191) NOT NULL,
		driver_phone      VARCHAR(32) NOT NULL,
		capacity          INT NOT NULL,
		is_locked         TINYINT(1) NOT NULL DEFAULT 0,
		compliance_status VARCHAR(32) NOT NULL DEFAULT '',
		agent_id          BIGINT NOT NULL,
		park_id           BIGINT NOT NULL,
		created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_manifest_plate (plate_number),
		KEY idx_manifest_agent (agent_id),
		KEY idx_manifest_park (park_id),
		CONSTRAINT fk_manifest_agent FOREIGN KEY (agent_id) REFERENCES agents (id),
		CONSTRAINT fk_manifest_park FOREIGN KEY (park_id) REFERENCES parks (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS passengers (
		id                BIGINT AUTO_INCREMENT PRIMARY KEY,
		manifest_id       BIGINT NOT NULL,
		name              VARCHAR(191) NOT NULL,
		next_of_kin       VARCHAR(191) NOT NULL,
		next_of_kin_phone VARCHAR(32) NOT NULL,
		seat_number       INT NOT NULL,
		created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_manifest_seat (manifest_id, seat_number),
		CONSTRAINT fk_passenger_manifest FOREIGN KEY (manifest_id) REFERENCES manifests (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates all tables when missing. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
