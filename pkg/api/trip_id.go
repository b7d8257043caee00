package api

// TripScoped is implemented by requests that address a single trip.
type TripScoped interface {
	GetTripID() string
}

func (x *GetTripRequest) GetTripID() string {
	if x != nil {
		return x.TripID
	}
	return ""
}

func (x *UpdateTripRequest) GetTripID() string {
	if x != nil {
		return x.TripID
	}
	return ""
}

func (x *DeleteTripRequest) GetTripID() string {
	if x != nil {
		return x.TripID
	}
	return ""
}

func (x *AddExpenseRequest) GetTripID() string {
	if x != nil {
		return x.TripID
	}
	return ""
}

func (x *UpdateExpenseRequest) GetTripID() string {
	if x != nil {
		return x.TripID
	}
	return ""
}

func (x *DeleteExpenseRequest) GetTripID() string {
	if x != nil {
		return x.TripID
	}
	return ""
}

func (x *ToggleExpenseSettledRequest) GetTripID() string {
	if x != nil {
		return x.TripID
	}
	return ""
}

func (x *GetTripBalancesRequest) GetTripID() string {
	if x != nil {
		return x.TripID
	}
	return ""
}

func (x *GetParticipantSummaryRequest) GetTripID() string {
	if x != nil {
		return x.TripID
	}
	return ""
}

func (x *ListDebtMarksRequest) GetTripID() string {
	if x != nil {
		return x.TripID
	}
	return ""
}

func (x *ToggleDebtMarkRequest) GetTripID() string {
	if x != nil {
		return x.TripID
	}
	return ""
}

func (x *SelectTripRequest) GetTripID() string {
	if x != nil {
		return x.TripID
	}
	return ""
}
