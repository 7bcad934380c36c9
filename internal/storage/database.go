package storage

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverSQLite is the driver name registered by github.com/mattn/go-sqlite3.
	DriverSQLite = "sqlite3"
	// DriverMySQL is the driver name registered by github.com/go-sql-driver/mysql.
	DriverMySQL = "mysql"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// New opens a database connection for driver at dsn.
// For SQLite it enables foreign keys. It sets connection pool settings
// and verifies the connection.
func New(driver, dsn string) (*sql.DB, error) {
	if driver != DriverSQLite && driver != DriverMySQL {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if driver == DriverSQLite {
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the word table if it does not exist.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB, driver, table, column string) error {
	if err := validateIdentifiers(table, column); err != nil {
		return err
	}

	var stmt string
	switch driver {
	case DriverSQLite:
		stmt = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			%s TEXT NOT NULL UNIQUE
		);`, table, column)
	case DriverMySQL:
		stmt = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INT AUTO_INCREMENT PRIMARY KEY,
			%s VARCHAR(255) NOT NULL,
			UNIQUE KEY uniq_%s_%s (%s)
		) DEFAULT CHARSET=utf8mb4;`, table, column, table, column, column)
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}

	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return nil
}

func validateIdentifiers(names ...string) error {
	for _, name := range names {
		if !identifierRe.MatchString(name) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return nil
}
