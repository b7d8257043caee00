package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettlementPlan(t *testing.T) {
	tests := []struct {
		name    string
		friends []FriendBalance
		want    []DebtEdge
	}{
		{
			name: "one creditor two debtors",
			friends: []FriendBalance{
				{FriendID: "A", NetBalance: 60},
				{FriendID: "B", NetBalance: -30},
				{FriendID: "C", NetBalance: -30},
			},
			want: []DebtEdge{
				{From: "B", To: "A", Amount: 30},
				{From: "C", To: "A", Amount: 30},
			},
		},
		{
			name: "largest debt matched with largest credit",
			friends: []FriendBalance{
				{FriendID: "A", NetBalance: 10},
				{FriendID: "B", NetBalance: 40},
				{FriendID: "C", NetBalance: -50},
			},
			want: []DebtEdge{
				{From: "C", To: "B", Amount: 40},
				{From: "C", To: "A", Amount: 10},
			},
		},
		{
			name: "sub-cent noise ignored",
			friends: []FriendBalance{
				{FriendID: "A", NetBalance: 0.004},
				{FriendID: "B", NetBalance: -0.004},
			},
			want: nil,
		},
		{
			name:    "everyone settled",
			friends: []FriendBalance{{FriendID: "A"}, {FriendID: "B"}},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SettlementPlan(tt.friends))
		})
	}
}

func TestSettlementPlanClearsBalances(t *testing.T) {
	b := CalculateBalances([]string{"A", "B", "C", "D"}, []ExpenseForBalance{
		{Amount: 120, PaidBy: "A", SplitWith: []string{"A", "B", "C", "D"}},
		{Amount: 45, PaidBy: "B", SplitWith: []string{"C", "D"}},
		{Amount: 33, PaidBy: "D", SplitWith: []string{"A", "B", "C"}},
	}, PolicyActive)

	remaining := make(map[string]float64)
	for id, v := range b.Net {
		remaining[id] = v
	}
	for _, tr := range SettlementPlan(b.Friends) {
		remaining[tr.From] += tr.Amount
		remaining[tr.To] -= tr.Amount
	}
	for id, v := range remaining {
		if math.Abs(v) > 0.02 {
			t.Errorf("%s still has balance %v after plan", id, v)
		}
	}
}
