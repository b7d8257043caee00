package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order; the database's user_version records how
// many have run. Append new statements, never edit old ones.
var migrations = []string{
	// 1: trips, friends, expenses
	`
CREATE TABLE IF NOT EXISTS trips (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS friends (
    trip_id TEXT NOT NULL,
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (trip_id, id),
    FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    trip_id TEXT NOT NULL,
    id TEXT NOT NULL,
    amount REAL NOT NULL CHECK (amount > 0),
    currency TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    paid_by TEXT NOT NULL,
    settled INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (trip_id, id),
    FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
    FOREIGN KEY (trip_id, paid_by) REFERENCES friends(trip_id, id)
);

CREATE TABLE IF NOT EXISTS expense_splits (
    trip_id TEXT NOT NULL,
    expense_id TEXT NOT NULL,
    friend_id TEXT NOT NULL,
    PRIMARY KEY (trip_id, expense_id, friend_id),
    FOREIGN KEY (trip_id, expense_id) REFERENCES expenses(trip_id, id) ON DELETE CASCADE,
    FOREIGN KEY (trip_id, friend_id) REFERENCES friends(trip_id, id)
);

CREATE INDEX IF NOT EXISTS idx_expenses_trip_created ON expenses(trip_id, created_at);
CREATE INDEX IF NOT EXISTS idx_expense_splits_friend ON expense_splits(trip_id, friend_id);
`,
	// 2: profile settings and display-only debt marks
	`
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS debt_marks (
    trip_id TEXT NOT NULL,
    participant_id TEXT NOT NULL,
    direction TEXT NOT NULL CHECK (direction IN ('settled', 'received')),
    mark_key TEXT NOT NULL,
    PRIMARY KEY (trip_id, participant_id, direction, mark_key),
    FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
);
`,
}

// runMigrations applies every migration newer than the database's user_version.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", i+1, err)
		}
	}

	return nil
}
