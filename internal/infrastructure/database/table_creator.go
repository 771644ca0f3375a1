// Package database provides schema instantiation
package database

import (
	"database/sql"
	"fmt"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS designs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		document TEXT NOT NULL,
		background_image_url TEXT,
		thumbnail_url TEXT,
		created TIMESTAMP NOT NULL,
		changed TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS invitations (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		design_id TEXT NOT NULL,
		event_date TIMESTAMP,
		event_time TEXT,
		location TEXT,
		custom_text TEXT,
		more_info TEXT,
		event_data TEXT,
		created TIMESTAMP NOT NULL,
		changed TIMESTAMP,
		FOREIGN KEY (design_id) REFERENCES designs(id)
	)`,
	`CREATE TABLE IF NOT EXISTS guests (
		id TEXT PRIMARY KEY,
		invitation_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		plus_ones INTEGER NOT NULL DEFAULT 0,
		message TEXT,
		responded_at TIMESTAMP,
		created TIMESTAMP NOT NULL,
		FOREIGN KEY (invitation_id) REFERENCES invitations(id)
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_invitations_design ON invitations(design_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invitations_slug ON invitations(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_guests_invitation ON guests(invitation_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_guests_invitation_email ON guests(invitation_id, email)`,
}

// TableCreator handles the creation of the database schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the database tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}
