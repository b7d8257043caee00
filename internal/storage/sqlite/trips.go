package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage"
)

// CreateTrip persists a new trip with its friends.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	// Generate IDs if not set
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = s.nowMillis()
	}
	if err := prepareFriends(trip.Friends); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return insertTrip(ctx, tx, trip)
	})
}

// GetTrip retrieves a trip by ID, including friends and expenses.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	return loadTrip(ctx, s.db, tripID)
}

// ListTrips returns summaries of all trips, newest first.
func (s *SQLiteStore) ListTrips(ctx context.Context) ([]models.TripSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.created_at,
		       (SELECT COUNT(*) FROM friends f WHERE f.trip_id = t.id),
		       (SELECT COUNT(*) FROM expenses e WHERE e.trip_id = t.id),
		       (SELECT COALESCE(SUM(e.amount), 0) FROM expenses e WHERE e.trip_id = t.id)
		FROM trips t
		ORDER BY t.created_at DESC, t.rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var summaries []models.TripSummary
	for rows.Next() {
		var ts models.TripSummary
		if err := rows.Scan(&ts.ID, &ts.Name, &ts.CreatedAt, &ts.FriendCount, &ts.ExpenseCount, &ts.TotalSpent); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		summaries = append(summaries, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	return summaries, nil
}

// UpdateTrip replaces a trip's name and friend list.
// Friends that are dropped from the list must not be referenced by any expense.
func (s *SQLiteStore) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	if err := prepareFriends(trip.Friends); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "UPDATE trips SET name = ? WHERE id = ?", trip.Name, trip.ID)
		if err != nil {
			return fmt.Errorf("failed to update trip: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("trip %s: %w", trip.ID, storage.ErrNotFound)
		}

		existing, err := friendIDs(ctx, tx, trip.ID)
		if err != nil {
			return err
		}

		keep := make(map[string]bool, len(trip.Friends))
		for _, f := range trip.Friends {
			keep[f.ID] = true
		}

		for _, id := range existing {
			if keep[id] {
				continue
			}
			var refs int
			err := tx.QueryRowContext(ctx, `
				SELECT (SELECT COUNT(*) FROM expenses WHERE trip_id = ? AND paid_by = ?)
				     + (SELECT COUNT(*) FROM expense_splits WHERE trip_id = ? AND friend_id = ?)`,
				trip.ID, id, trip.ID, id,
			).Scan(&refs)
			if err != nil {
				return fmt.Errorf("failed to check friend references: %w", err)
			}
			if refs > 0 {
				return fmt.Errorf("friend %s is used by %d expense entries: %w", id, refs, storage.ErrConflict)
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM friends WHERE trip_id = ? AND id = ?", trip.ID, id); err != nil {
				return fmt.Errorf("failed to remove friend: %w", err)
			}
		}

		for i, f := range trip.Friends {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO friends (trip_id, id, name, position) VALUES (?, ?, ?, ?)
				ON CONFLICT (trip_id, id) DO UPDATE SET name = excluded.name, position = excluded.position`,
				trip.ID, f.ID, f.Name, i,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert friend: %w", err)
			}
		}

		return nil
	})
}

// DeleteTrip removes a trip; friends, expenses and marks cascade.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
		if err != nil {
			return fmt.Errorf("failed to delete trip: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM settings WHERE key = ? AND value = ?", settingSelectedTrip, tripID,
		); err != nil {
			return fmt.Errorf("failed to clear trip selection: %w", err)
		}
		return nil
	})
}

// ReplaceAll atomically swaps every stored trip for the given ones.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, trips []models.Trip) error {
	for i := range trips {
		if err := prepareFriends(trips[i].Friends); err != nil {
			return fmt.Errorf("trip %q: %w", trips[i].Name, err)
		}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM trips"); err != nil {
			return fmt.Errorf("failed to clear trips: %w", err)
		}

		// Insert oldest first so rowid order matches creation order.
		for i := len(trips) - 1; i >= 0; i-- {
			trip := &trips[i]
			if trip.ID == "" {
				trip.ID = uuid.New().String()
			}
			if err := insertTrip(ctx, tx, trip); err != nil {
				return err
			}
			friends := friendSet(trip.Friends)
			for j := len(trip.Expenses) - 1; j >= 0; j-- {
				e := &trip.Expenses[j]
				e.TripID = trip.ID
				if e.ID == "" {
					e.ID = uuid.New().String()
				}
				if err := checkExpense(friends, e); err != nil {
					return err
				}
				if err := insertExpense(ctx, tx, e); err != nil {
					return err
				}
			}
		}

		_, err := tx.ExecContext(ctx, `
			DELETE FROM settings WHERE key = ? AND value NOT IN (SELECT id FROM trips)`,
			settingSelectedTrip,
		)
		if err != nil {
			return fmt.Errorf("failed to clear stale trip selection: %w", err)
		}
		return nil
	})
}

// ExportTrips returns every trip in full, newest first.
func (s *SQLiteStore) ExportTrips(ctx context.Context) ([]models.Trip, error) {
	summaries, err := s.ListTrips(ctx)
	if err != nil {
		return nil, err
	}

	trips := make([]models.Trip, 0, len(summaries))
	for _, ts := range summaries {
		trip, err := loadTrip(ctx, s.db, ts.ID)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *trip)
	}
	return trips, nil
}

// prepareFriends assigns IDs to new friends and rejects empty or duplicate lists.
func prepareFriends(friends []models.Friend) error {
	if len(friends) == 0 {
		return fmt.Errorf("trip must have at least one friend: %w", storage.ErrInvalid)
	}
	seen := make(map[string]bool, len(friends))
	for i := range friends {
		if friends[i].ID == "" {
			friends[i].ID = uuid.New().String()
		}
		if seen[friends[i].ID] {
			return fmt.Errorf("duplicate friend id %s: %w", friends[i].ID, storage.ErrInvalid)
		}
		seen[friends[i].ID] = true
	}
	return nil
}

func friendSet(friends []models.Friend) map[string]bool {
	set := make(map[string]bool, len(friends))
	for _, f := range friends {
		set[f.ID] = true
	}
	return set
}

func insertTrip(ctx context.Context, tx *sql.Tx, trip *models.Trip) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO trips (id, name, created_at) VALUES (?, ?, ?)",
		trip.ID, trip.Name, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	for i, f := range trip.Friends {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO friends (trip_id, id, name, position) VALUES (?, ?, ?, ?)",
			trip.ID, f.ID, f.Name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert friend: %w", err)
		}
	}
	return nil
}

func friendIDs(ctx context.Context, q querier, tripID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT id FROM friends WHERE trip_id = ? ORDER BY position", tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}
	return ids, nil
}

// loadTrip reads a full trip. Each result set is drained before the next
// query so it works on a single connection.
func loadTrip(ctx context.Context, q querier, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := q.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM trips WHERE id = ?",
		tripID,
	).Scan(&trip.ID, &trip.Name, &trip.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	// Get friends
	rows, err := q.QueryContext(ctx,
		"SELECT id, name FROM friends WHERE trip_id = ? ORDER BY position",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		trip.Friends = append(trip.Friends, f)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}

	expenses, err := loadExpenses(ctx, q, tripID, "")
	if err != nil {
		return nil, err
	}
	trip.Expenses = expenses

	return trip, nil
}
