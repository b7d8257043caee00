package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage"
)

// AddExpense persists a new, unsettled expense.
func (s *SQLiteStore) AddExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = s.nowMillis()
	}
	if expense.Currency == "" {
		expense.Currency = models.DefaultCurrency
	}
	expense.Settled = false

	return s.withTx(ctx, func(tx *sql.Tx) error {
		friends, err := tripFriendSet(ctx, tx, expense.TripID)
		if err != nil {
			return err
		}
		if err := checkExpense(friends, expense); err != nil {
			return err
		}
		return insertExpense(ctx, tx, expense)
	})
}

// UpdateExpense replaces amount, currency, description, payer and split.
// Settled and CreatedAt keep their stored values and are copied back into expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.Currency == "" {
		expense.Currency = models.DefaultCurrency
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		friends, err := tripFriendSet(ctx, tx, expense.TripID)
		if err != nil {
			return err
		}
		if err := checkExpense(friends, expense); err != nil {
			return err
		}

		err = tx.QueryRowContext(ctx,
			"SELECT settled, created_at FROM expenses WHERE trip_id = ? AND id = ?",
			expense.TripID, expense.ID,
		).Scan(&expense.Settled, &expense.CreatedAt)
		if err == sql.ErrNoRows {
			return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get expense: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE expenses SET amount = ?, currency = ?, description = ?, paid_by = ?
			WHERE trip_id = ? AND id = ?`,
			expense.Amount, expense.Currency, expense.Description, expense.PaidByFriendID,
			expense.TripID, expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM expense_splits WHERE trip_id = ? AND expense_id = ?",
			expense.TripID, expense.ID,
		); err != nil {
			return fmt.Errorf("failed to clear expense split: %w", err)
		}
		return insertSplits(ctx, tx, expense)
	})
}

// DeleteExpense removes one expense and its split.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE trip_id = ? AND id = ?", tripID, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// ToggleExpenseSettled flips the settled flag of an expense.
func (s *SQLiteStore) ToggleExpenseSettled(ctx context.Context, tripID, expenseID string) (*models.Expense, error) {
	var updated *models.Expense
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE expenses SET settled = 1 - settled WHERE trip_id = ? AND id = ?",
			tripID, expenseID,
		)
		if err != nil {
			return fmt.Errorf("failed to toggle expense: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
		}

		expenses, err := loadExpenses(ctx, tx, tripID, expenseID)
		if err != nil {
			return err
		}
		updated = &expenses[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// checkExpense enforces the trip invariants for one expense and removes
// duplicate split entries in place.
func checkExpense(friends map[string]bool, e *models.Expense) error {
	if e.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v: %w", e.Amount, storage.ErrInvalid)
	}
	if len(e.SplitWithFriendIDs) == 0 {
		return fmt.Errorf("expense must be split with at least one friend: %w", storage.ErrInvalid)
	}
	if !friends[e.PaidByFriendID] {
		return fmt.Errorf("payer %q is not a friend of trip %s: %w", e.PaidByFriendID, e.TripID, storage.ErrConflict)
	}

	seen := make(map[string]bool, len(e.SplitWithFriendIDs))
	split := e.SplitWithFriendIDs[:0:0]
	for _, id := range e.SplitWithFriendIDs {
		if !friends[id] {
			return fmt.Errorf("participant %q is not a friend of trip %s: %w", id, e.TripID, storage.ErrConflict)
		}
		if !seen[id] {
			seen[id] = true
			split = append(split, id)
		}
	}
	e.SplitWithFriendIDs = split
	return nil
}

func tripFriendSet(ctx context.Context, q querier, tripID string) (map[string]bool, error) {
	var exists int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE id = ?", tripID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check trip existence: %w", err)
	}

	ids, err := friendIDs(ctx, q, tripID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func insertExpense(ctx context.Context, tx *sql.Tx, e *models.Expense) error {
	if e.Currency == "" {
		e.Currency = models.DefaultCurrency
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO expenses (trip_id, id, amount, currency, description, paid_by, settled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.TripID, e.ID, e.Amount, e.Currency, e.Description, e.PaidByFriendID, e.Settled, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return insertSplits(ctx, tx, e)
}

func insertSplits(ctx context.Context, tx *sql.Tx, e *models.Expense) error {
	for _, friendID := range e.SplitWithFriendIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_splits (trip_id, expense_id, friend_id) VALUES (?, ?, ?)",
			e.TripID, e.ID, friendID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}
	return nil
}

// loadExpenses reads a trip's expenses newest first. A non-empty expenseID
// restricts the result to that expense.
func loadExpenses(ctx context.Context, q querier, tripID, expenseID string) ([]models.Expense, error) {
	query := `
		SELECT id, trip_id, amount, currency, description, paid_by, settled, created_at
		FROM expenses WHERE trip_id = ?`
	args := []any{tripID}
	if expenseID != "" {
		query += " AND id = ?"
		args = append(args, expenseID)
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.TripID, &e.Amount, &e.Currency, &e.Description,
			&e.PaidByFriendID, &e.Settled, &e.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.SplitWithFriendIDs = []string{}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if expenseID != "" && len(expenses) == 0 {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}

	splitRows, err := q.QueryContext(ctx,
		"SELECT expense_id, friend_id FROM expense_splits WHERE trip_id = ? ORDER BY rowid",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expID, friendID string
		if err := splitRows.Scan(&expID, &friendID); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		if i, ok := index[expID]; ok {
			expenses[i].SplitWithFriendIDs = append(expenses[i].SplitWithFriendIDs, friendID)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return expenses, nil
}
