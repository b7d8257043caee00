package models

// Profile holds the local user's settings.
type Profile struct {
	// UserName is the organizer's display name. Defaults to DefaultUserName.
	UserName string

	// SelectedTripID is the trip currently open in the client, or "".
	SelectedTripID string
}
