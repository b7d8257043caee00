// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
)

var (
	// ErrNotFound is returned when a trip or expense does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write would break a trip invariant,
	// such as removing a friend that expenses still reference.
	ErrConflict = errors.New("conflict")

	// ErrInvalid is returned for records that can never be stored, such as a
	// non-positive expense amount or an empty split.
	ErrInvalid = errors.New("invalid record")
)

// TripStore owns trips, their friends and their expenses.
// Implementations must enforce the Trip invariants documented on models.Trip.
type TripStore interface {
	// CreateTrip persists a new trip. ID and CreatedAt are populated by the
	// store when empty, as are empty friend IDs.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip with friends and expenses (newest first).
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips returns summaries of all trips, newest first.
	ListTrips(ctx context.Context) ([]models.TripSummary, error)

	// UpdateTrip replaces the trip's name and friend list.
	UpdateTrip(ctx context.Context, trip *models.Trip) error

	// DeleteTrip removes a trip and everything it owns.
	DeleteTrip(ctx context.Context, tripID string) error

	// AddExpense persists a new unsettled expense. ID and CreatedAt are
	// populated by the store.
	AddExpense(ctx context.Context, expense *models.Expense) error

	// UpdateExpense replaces the editable fields of an expense, keeping its
	// Settled flag and CreatedAt.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes one expense.
	DeleteExpense(ctx context.Context, tripID, expenseID string) error

	// ToggleExpenseSettled flips the Settled flag and returns the updated expense.
	ToggleExpenseSettled(ctx context.Context, tripID, expenseID string) (*models.Expense, error)

	// ReplaceAll atomically replaces every trip with the given ones.
	ReplaceAll(ctx context.Context, trips []models.Trip) error

	// ExportTrips returns every trip in full, newest first.
	ExportTrips(ctx context.Context) ([]models.Trip, error)
}

// ProfileStore owns the local user's settings.
type ProfileStore interface {
	GetProfile(ctx context.Context) (*models.Profile, error)

	// SetUserName stores the name and renames the organizer friend in every trip.
	SetUserName(ctx context.Context, name string) error

	// SelectTrip stores the selected trip ID; "" clears the selection.
	SelectTrip(ctx context.Context, tripID string) error

	// ClearAll removes every trip, mark and profile setting.
	ClearAll(ctx context.Context) error
}

// MarkStore holds display-only debt annotations. Nothing in it is ever read
// by the balance calculator.
type MarkStore interface {
	// ListMarks returns the participant's marks in a trip, keyed by direction.
	ListMarks(ctx context.Context, tripID, participantID string) (map[models.Direction][]string, error)

	// ToggleMark adds the mark if absent, removes it if present, and reports
	// whether it is now marked.
	ToggleMark(ctx context.Context, mark models.DebtMark) (bool, error)

	// DeleteTripMarks removes every mark of a trip.
	DeleteTripMarks(ctx context.Context, tripID string) error
}

// Store is the full storage backend used by the server.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	TripStore
	ProfileStore
	MarkStore

	// Close releases any resources held by the store.
	Close() error
}
