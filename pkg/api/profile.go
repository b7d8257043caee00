package api

type Profile struct {
	UserName       string `json:"userName"`
	SelectedTripID string `json:"selectedTripId"`
}

type GetProfileRequest struct{}

type GetProfileResponse struct {
	Profile *Profile `json:"profile"`
}

type SetUserNameRequest struct {
	UserName string `json:"userName" validate:"required,max=60"`
}

type SetUserNameResponse struct {
	Profile *Profile `json:"profile"`
}

type SelectTripRequest struct {
	// TripID may be empty to clear the selection.
	TripID string `json:"tripId"`
}

type SelectTripResponse struct {
	Profile *Profile `json:"profile"`
}

type ClearAllDataRequest struct{}

type ClearAllDataResponse struct {
	TripsDeleted int `json:"tripsDeleted"`
}
