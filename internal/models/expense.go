package models

// DefaultCurrency is applied to expenses stored without a currency.
// Amounts are never converted; the currency is a display label only.
const DefaultCurrency = "USD"

// Expense represents a single payment recorded within a trip.
type Expense struct {
	// ID is the unique identifier for the expense.
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	// Amount is the total amount paid. Always positive.
	Amount float64

	// Currency is a display label (e.g., "USD", "INR").
	Currency string

	// Description is an optional free-text note (e.g., "Dinner at the beach").
	Description string

	// PaidByFriendID is the single friend who fronted the money.
	PaidByFriendID string

	// SplitWithFriendIDs are the friends the amount is divided among equally.
	// Order is irrelevant. May or may not include the payer.
	SplitWithFriendIDs []string

	// Settled marks the expense as closed out. Depending on the ledger policy
	// it excludes the expense from outstanding balances.
	Settled bool

	// CreatedAt is the Unix timestamp in milliseconds. Display ordering only.
	CreatedAt int64
}
