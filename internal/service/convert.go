package service

import (
	"strings"

	"github.com/sushant-k-tiwari/TravelSplit/internal/calculator"
	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
)

func toAPITrip(t *models.Trip) *api.Trip {
	trip := &api.Trip{
		ID:        t.ID,
		Name:      t.Name,
		Friends:   toAPIFriends(t.Friends),
		Expenses:  make([]api.Expense, len(t.Expenses)),
		CreatedAt: t.CreatedAt,
	}
	for i := range t.Expenses {
		trip.Expenses[i] = *toAPIExpense(&t.Expenses[i])
	}
	return trip
}

func toAPIFriends(friends []models.Friend) []api.Friend {
	out := make([]api.Friend, len(friends))
	for i, f := range friends {
		out[i] = api.Friend{ID: f.ID, Name: f.Name}
	}
	return out
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:                 e.ID,
		TripID:             e.TripID,
		Amount:             e.Amount,
		Currency:           e.Currency,
		Description:        e.Description,
		PaidByFriendID:     e.PaidByFriendID,
		SplitWithFriendIDs: e.SplitWithFriendIDs,
		Settled:            e.Settled,
		CreatedAt:          e.CreatedAt,
	}
}

func toAPIProfile(p *models.Profile) *api.Profile {
	return &api.Profile{UserName: p.UserName, SelectedTripID: p.SelectedTripID}
}

// fromAPIFriends trims names and IDs. Empty IDs are filled in by the store.
func fromAPIFriends(friends []api.Friend) []models.Friend {
	out := make([]models.Friend, len(friends))
	for i, f := range friends {
		out[i] = models.Friend{ID: strings.TrimSpace(f.ID), Name: strings.TrimSpace(f.Name)}
	}
	return out
}

func fromExpenseInput(tripID string, in api.ExpenseInput) *models.Expense {
	return &models.Expense{
		TripID:             tripID,
		Amount:             in.Amount,
		Currency:           strings.ToUpper(strings.TrimSpace(in.Currency)),
		Description:        strings.TrimSpace(in.Description),
		PaidByFriendID:     in.PaidByFriendID,
		SplitWithFriendIDs: in.SplitWithFriendIDs,
	}
}

func toBalanceInput(expenses []models.Expense) []calculator.ExpenseForBalance {
	out := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		out[i] = calculator.ExpenseForBalance{
			Amount:    e.Amount,
			PaidBy:    e.PaidByFriendID,
			SplitWith: e.SplitWithFriendIDs,
			Settled:   e.Settled,
		}
	}
	return out
}

func balanceStatus(net float64) string {
	switch {
	case models.IsZeroAmount(net):
		return api.StatusSettled
	case net > 0:
		return api.StatusOwed
	default:
		return api.StatusOwes
	}
}
