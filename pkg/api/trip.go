package api

import "encoding/json"

type Friend struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required,max=60"`
}

type Expense struct {
	ID                 string   `json:"id"`
	TripID             string   `json:"tripId"`
	Amount             float64  `json:"amount"`
	Currency           string   `json:"currency"`
	Description        string   `json:"description"`
	PaidByFriendID     string   `json:"paidByFriendId"`
	SplitWithFriendIDs []string `json:"splitWithFriendIds"`
	Settled            bool     `json:"settled"`
	CreatedAt          int64    `json:"createdAt"`
}

type Trip struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Friends   []Friend  `json:"friends"`
	Expenses  []Expense `json:"expenses"`
	CreatedAt int64     `json:"createdAt"`
}

type TripSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	FriendCount  int     `json:"friendCount"`
	ExpenseCount int     `json:"expenseCount"`
	TotalSpent   float64 `json:"totalSpent"`
	CreatedAt    int64   `json:"createdAt"`
}

type CreateTripRequest struct {
	Name    string   `json:"name" validate:"required,max=100"`
	Friends []Friend `json:"friends" validate:"dive"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripID string `json:"tripId" validate:"required"`
}

type GetTripResponse struct {
	Trip *Trip `json:"trip"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []TripSummary `json:"trips"`
}

type UpdateTripRequest struct {
	TripID  string   `json:"tripId" validate:"required"`
	Name    string   `json:"name" validate:"required,max=100"`
	Friends []Friend `json:"friends" validate:"min=1,dive"`
}

type UpdateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type DeleteTripRequest struct {
	TripID string `json:"tripId" validate:"required"`
}

type DeleteTripResponse struct{}

// ExpenseInput carries the editable fields of an expense.
type ExpenseInput struct {
	Amount             float64  `json:"amount" validate:"positive_amount"`
	Currency           string   `json:"currency" validate:"omitempty,max=8"`
	Description        string   `json:"description" validate:"max=200"`
	PaidByFriendID     string   `json:"paidByFriendId" validate:"required"`
	SplitWithFriendIDs []string `json:"splitWithFriendIds" validate:"min=1,dive,required"`
}

type AddExpenseRequest struct {
	TripID  string       `json:"tripId" validate:"required"`
	Expense ExpenseInput `json:"expense"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type UpdateExpenseRequest struct {
	TripID    string       `json:"tripId" validate:"required"`
	ExpenseID string       `json:"expenseId" validate:"required"`
	Expense   ExpenseInput `json:"expense"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	TripID    string `json:"tripId" validate:"required"`
	ExpenseID string `json:"expenseId" validate:"required"`
}

type DeleteExpenseResponse struct{}

type ToggleExpenseSettledRequest struct {
	TripID    string `json:"tripId" validate:"required"`
	ExpenseID string `json:"expenseId" validate:"required"`
}

type ToggleExpenseSettledResponse struct {
	Expense *Expense `json:"expense"`
}

type ExportTripsRequest struct{}

type ExportTripsResponse struct {
	// Snapshot is a versioned trips document, importable with ImportTrips.
	Snapshot  json.RawMessage `json:"snapshot"`
	TripCount int             `json:"tripCount"`
}

type ImportTripsRequest struct {
	// Snapshot is either a versioned document or a legacy bare trip array.
	Snapshot json.RawMessage `json:"snapshot" validate:"required"`
}

type ImportTripsResponse struct {
	SourceVersion    int      `json:"sourceVersion"`
	TripsImported    int      `json:"tripsImported"`
	ExpensesImported int      `json:"expensesImported"`
	Defaulted        []string `json:"defaulted"`
	Repaired         []string `json:"repaired"`
	Dropped          []string `json:"dropped"`
}
