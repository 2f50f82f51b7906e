package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Connect opens the MySQL pool, verifies the connection and makes sure the
// schema exists.
func Connect(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	cfg.ParseTime = true
	// Conditional UPDATE/DELETE statements report matched rows, not changed
	// rows, so rewriting a note with identical values still counts as found.
	cfg.ClientFoundRows = true

	database, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}

	database.SetMaxOpenConns(25)
	database.SetMaxIdleConns(25)
	database.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := createTables(database); err != nil {
		return nil, err
	}
	return database, nil
}

func createTables(database *sql.DB) error {
	userTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(24) UNIQUE NOT NULL,
		email VARCHAR(254) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		pin CHAR(6) NOT NULL,
		session_token VARCHAR(64) NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	notesTable := `
	CREATE TABLE IF NOT EXISTS notes (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		title VARCHAR(24) NOT NULL,
		tags VARCHAR(36) NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	if _, err := database.Exec(userTable); err != nil {
		return err
	}
	if _, err := database.Exec(notesTable); err != nil {
		return err
	}
	return nil
}
