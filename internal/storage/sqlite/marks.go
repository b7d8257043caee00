package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
)

// ListMarks returns a participant's debt marks in a trip, keyed by direction.
func (s *SQLiteStore) ListMarks(ctx context.Context, tripID, participantID string) (map[models.Direction][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT direction, mark_key FROM debt_marks
		WHERE trip_id = ? AND participant_id = ?
		ORDER BY mark_key`,
		tripID, participantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debt marks: %w", err)
	}
	defer rows.Close()

	marks := map[models.Direction][]string{
		models.DirectionSettled:  {},
		models.DirectionReceived: {},
	}
	for rows.Next() {
		var direction, key string
		if err := rows.Scan(&direction, &key); err != nil {
			return nil, fmt.Errorf("failed to scan debt mark: %w", err)
		}
		d := models.Direction(direction)
		marks[d] = append(marks[d], key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debt marks: %w", err)
	}

	return marks, nil
}

// ToggleMark flips a debt mark and reports whether it is now set.
func (s *SQLiteStore) ToggleMark(ctx context.Context, mark models.DebtMark) (bool, error) {
	var marked bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM debt_marks
			WHERE trip_id = ? AND participant_id = ? AND direction = ? AND mark_key = ?`,
			mark.TripID, mark.ParticipantID, string(mark.Direction), mark.Key,
		)
		if err != nil {
			return fmt.Errorf("failed to remove debt mark: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			marked = false
			return nil
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO debt_marks (trip_id, participant_id, direction, mark_key)
			VALUES (?, ?, ?, ?)`,
			mark.TripID, mark.ParticipantID, string(mark.Direction), mark.Key,
		)
		if err != nil {
			return fmt.Errorf("failed to insert debt mark: %w", err)
		}
		marked = true
		return nil
	})
	return marked, err
}

// DeleteTripMarks removes every debt mark of a trip.
func (s *SQLiteStore) DeleteTripMarks(ctx context.Context, tripID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM debt_marks WHERE trip_id = ?", tripID); err != nil {
		return fmt.Errorf("failed to delete debt marks: %w", err)
	}
	return nil
}
