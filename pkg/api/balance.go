package api

// Balance statuses.
const (
	StatusSettled = "settled"
	StatusOwed    = "owed"
	StatusOwes    = "owes"
)

type FriendBalance struct {
	FriendID   string  `json:"friendId"`
	FriendName string  `json:"friendName"`
	NetBalance float64 `json:"netBalance"`
	TotalPaid  float64 `json:"totalPaid"`
	TotalShare float64 `json:"totalShare"`
	Status     string  `json:"status"`
}

// Debt is one directed edge: From owes To Amount.
type Debt struct {
	FromFriendID string  `json:"fromFriendId"`
	FromName     string  `json:"fromName"`
	ToFriendID   string  `json:"toFriendId"`
	ToName       string  `json:"toName"`
	Amount       float64 `json:"amount"`
}

type GetTripBalancesRequest struct {
	TripID string `json:"tripId" validate:"required"`
}

type GetTripBalancesResponse struct {
	TripID             string          `json:"tripId"`
	Policy             string          `json:"policy"`
	TotalSpent         float64         `json:"totalSpent"`
	ExpensesConsidered int             `json:"expensesConsidered"`
	Balances           []FriendBalance `json:"balances"`
	Debts              []Debt          `json:"debts"`
	SettlementPlan     []Debt          `json:"settlementPlan"`
}

// DebtLine is a simplified debt seen from one participant.
type DebtLine struct {
	CounterpartyID   string  `json:"counterpartyId"`
	CounterpartyName string  `json:"counterpartyName"`
	Amount           float64 `json:"amount"`
	DisplayAmount    string  `json:"displayAmount"`
	// Key identifies the line for debt marks.
	Key    string `json:"key"`
	Marked bool   `json:"marked"`
}

type GetParticipantSummaryRequest struct {
	TripID   string `json:"tripId" validate:"required"`
	FriendID string `json:"friendId" validate:"required"`
}

type GetParticipantSummaryResponse struct {
	TripID        string     `json:"tripId"`
	FriendID      string     `json:"friendId"`
	FriendName    string     `json:"friendName"`
	NetBalance    float64    `json:"netBalance"`
	DisplayAmount string     `json:"displayAmount"`
	Status        string     `json:"status"`
	Owes          []DebtLine `json:"owes"`
	OwedBy        []DebtLine `json:"owedBy"`
	// Expenses lists the expenses the friend paid or shares in that count
	// under the ledger policy.
	Expenses []Expense `json:"expenses"`
}
