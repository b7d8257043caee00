// Package models defines the core domain models for TravelSplit.
//
// # Models
//
//   - Trip: aggregate root holding the friends and expenses of one trip
//   - Friend: a participant in a trip
//   - Expense: a single payment, split equally among some of the trip's friends
//   - Profile: the local user's name and currently selected trip
//   - DebtMark: a display-only "settled"/"received" checkmark on a computed debt line
//
// # Ownership
//
// The storage layer exclusively owns these records. The balance calculator
// receives read-only copies and never writes back into them; everything it
// returns is freshly allocated.
//
// # Identifiers
//
// All IDs are opaque strings. Newly created records get UUIDs, but imported
// data from the mobile app keeps its original short IDs, and the organizer of
// every trip uses the fixed ID OrganizerID.
package models
