package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
)

const (
	settingUserName     = "user_name"
	settingSelectedTrip = "selected_trip_id"
)

// GetProfile returns the stored profile, filling in defaults.
func (s *SQLiteStore) GetProfile(ctx context.Context) (*models.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value FROM settings WHERE key IN (?, ?)",
		settingUserName, settingSelectedTrip,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	defer rows.Close()

	profile := &models.Profile{UserName: models.DefaultUserName}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		switch key {
		case settingUserName:
			profile.UserName = value
		case settingSelectedTrip:
			profile.SelectedTripID = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}

	return profile, nil
}

// SetUserName stores the name and renames the organizer in every trip.
func (s *SQLiteStore) SetUserName(ctx context.Context, name string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := putSetting(ctx, tx, settingUserName, name); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "UPDATE friends SET name = ? WHERE id = ?", name, models.OrganizerID); err != nil {
			return fmt.Errorf("failed to rename organizer: %w", err)
		}
		return nil
	})
}

// SelectTrip stores the selected trip; an empty ID clears the selection.
func (s *SQLiteStore) SelectTrip(ctx context.Context, tripID string) error {
	if tripID == "" {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", settingSelectedTrip); err != nil {
			return fmt.Errorf("failed to clear trip selection: %w", err)
		}
		return nil
	}
	return putSetting(ctx, s.db, settingSelectedTrip, tripID)
}

// ClearAll removes every trip, mark and setting.
func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			"DELETE FROM debt_marks",
			"DELETE FROM trips",
			"DELETE FROM settings",
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to clear data: %w", err)
			}
		}
		return nil
	})
}

func putSetting(ctx context.Context, q querier, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}
	return nil
}
