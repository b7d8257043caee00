package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Direction tells which side of a debt line a mark was made from.
type Direction string

const (
	// DirectionSettled is used when the participant is the debtor and has paid.
	DirectionSettled Direction = "settled"

	// DirectionReceived is used when the participant is the creditor and has been paid.
	DirectionReceived Direction = "received"
)

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionSettled, DirectionReceived:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("invalid direction %q: must be %q or %q", s, DirectionSettled, DirectionReceived)
	}
}

// DebtMark is a user-toggled checklist flag on a computed debt line.
//
// Marks are display annotations only. They are stored apart from trip data and
// never feed back into balance arithmetic; they are a different concept from
// Expense.Settled.
type DebtMark struct {
	// TripID is the trip the debt line was computed for.
	TripID string

	// ParticipantID is the friend whose summary the mark was made on.
	ParticipantID string

	// Direction is DirectionSettled when ParticipantID owes, DirectionReceived
	// when ParticipantID is owed.
	Direction Direction

	// Key identifies the debt line as "<counterpartyId>-<amount>".
	Key string
}

// DebtKey builds the key identifying a debt line: the counterparty ID and the
// amount rounded to cents, e.g. "ana-30.00".
func DebtKey(counterpartyID string, amount float64) string {
	return counterpartyID + "-" + FormatAmount(amount)
}

// FormatAmount renders an absolute amount with two decimals.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).Abs().StringFixed(2)
}

// IsZeroAmount reports whether the amount rounds to zero cents.
func IsZeroAmount(amount float64) bool {
	return decimal.NewFromFloat(amount).Round(2).IsZero()
}
