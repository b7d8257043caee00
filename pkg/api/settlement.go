package api

type ListDebtMarksRequest struct {
	TripID        string `json:"tripId" validate:"required"`
	ParticipantID string `json:"participantId" validate:"required"`
}

type ListDebtMarksResponse struct {
	Settled  []string `json:"settled"`
	Received []string `json:"received"`
}

type ToggleDebtMarkRequest struct {
	TripID        string `json:"tripId" validate:"required"`
	ParticipantID string `json:"participantId" validate:"required"`
	// Direction is "settled" when the participant is the debtor and
	// "received" when the participant is the creditor.
	Direction      string  `json:"direction" validate:"required,oneof=settled received"`
	CounterpartyID string  `json:"counterpartyId" validate:"required"`
	Amount         float64 `json:"amount" validate:"positive_amount"`
}

type ToggleDebtMarkResponse struct {
	Key    string `json:"key"`
	Marked bool   `json:"marked"`
}
