package models

// OrganizerID is the friend ID reserved for the local user in every trip.
// Renaming the profile renames this friend everywhere.
const OrganizerID = "you"

// DefaultUserName is used when the profile has no name set.
const DefaultUserName = "You"

// Friend represents a participant in a trip.
type Friend struct {
	// ID is stable for the lifetime of the trip.
	ID string

	// Name is the display name. Names are not required to be unique.
	Name string
}

// Trip is the aggregate root for a group of friends sharing expenses.
//
// Invariants enforced by the store:
//   - Friends is never empty; the organizer is conventionally first.
//   - Every PaidByFriendID and SplitWithFriendIDs entry of every expense
//     references a friend in Friends.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format for new trips).
	ID string

	// Name is the human-readable trip name (e.g., "Goa 2025").
	Name string

	// Friends is the ordered participant list.
	Friends []Friend

	// Expenses are ordered newest first.
	Expenses []Expense

	// CreatedAt is the Unix timestamp in milliseconds when the trip was created.
	CreatedAt int64
}

// FriendIDs returns the IDs of all friends in trip order.
func (t *Trip) FriendIDs() []string {
	ids := make([]string, len(t.Friends))
	for i, f := range t.Friends {
		ids[i] = f.ID
	}
	return ids
}

// FriendName returns the display name for a friend ID, or "" if unknown.
func (t *Trip) FriendName(id string) string {
	for _, f := range t.Friends {
		if f.ID == id {
			return f.Name
		}
	}
	return ""
}

// HasFriend reports whether id belongs to one of the trip's friends.
func (t *Trip) HasFriend(id string) bool {
	for _, f := range t.Friends {
		if f.ID == id {
			return true
		}
	}
	return false
}

// TripSummary is a lightweight view of a trip used for listings.
type TripSummary struct {
	ID           string
	Name         string
	FriendCount  int
	ExpenseCount int
	TotalSpent   float64
	CreatedAt    int64
}
