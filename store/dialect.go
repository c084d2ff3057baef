package store

import (
	"fmt"

	// Registered drivers: sqlite3, mysql and postgres.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const table = "urlq_location"

type dialect struct {
	driver      string
	createTable string
	selectOne   string
	upsert      string
}

var dialects = map[string]dialect{
	"sqlite3": {
		driver: "sqlite3",
		createTable: `CREATE TABLE IF NOT EXISTS ` + table + ` (
	session_id VARCHAR(191) PRIMARY KEY,
	href TEXT NOT NULL,
	title TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`,
		selectOne: `SELECT href, title FROM ` + table + ` WHERE session_id = ?`,
		upsert: `INSERT INTO ` + table + ` (session_id, href, title, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET href = excluded.href, title = excluded.title, updated_at = excluded.updated_at`,
	},
	"postgres": {
		driver: "postgres",
		createTable: `CREATE TABLE IF NOT EXISTS ` + table + ` (
	session_id VARCHAR(191) PRIMARY KEY,
	href TEXT NOT NULL,
	title TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`,
		selectOne: `SELECT href, title FROM ` + table + ` WHERE session_id = $1`,
		upsert: `INSERT INTO ` + table + ` (session_id, href, title, updated_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (session_id) DO UPDATE SET href = EXCLUDED.href, title = EXCLUDED.title, updated_at = EXCLUDED.updated_at`,
	},
	"mysql": {
		driver: "mysql",
		createTable: `CREATE TABLE IF NOT EXISTS ` + table + ` (
	session_id VARCHAR(191) PRIMARY KEY,
	href TEXT NOT NULL,
	title TEXT NOT NULL,
	updated_at DATETIME(6) NOT NULL
)`,
		selectOne: `SELECT href, title FROM ` + table + ` WHERE session_id = ?`,
		upsert: `INSERT INTO ` + table + ` (session_id, href, title, updated_at) VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE href = VALUES(href), title = VALUES(title), updated_at = VALUES(updated_at)`,
	},
}

func dialectOf(driver string) (dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported driver %q", driver)
	}
	return d, nil
}
