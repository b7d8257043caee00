package snapshot

import (
	"strings"

	"github.com/google/uuid"

	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
	"github.com/sushant-k-tiwari/TravelSplit/internal/validation"
)

const untitledTrip = "Untitled trip"

var validate = validation.New()

// repairTrip applies defaults and fixes a decoded trip. It returns false when
// the trip cannot be salvaged.
func repairTrip(rec *tripRecord, report *Report) (models.Trip, bool) {
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		rec.ID = uuid.NewString()
		report.repaired("trip %q: assigned id %s", rec.Name, rec.ID)
	}

	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		rec.Name = untitledTrip
		report.repaired("trip %s: empty name replaced with %q", rec.ID, untitledTrip)
	}

	friends := make([]friendRecord, 0, len(rec.Friends))
	seen := make(map[string]bool, len(rec.Friends))
	for _, f := range rec.Friends {
		f.ID = strings.TrimSpace(f.ID)
		f.Name = strings.TrimSpace(f.Name)
		switch {
		case f.ID == "":
			report.dropped("trip %s: friend %q without id", rec.ID, f.Name)
			continue
		case seen[f.ID]:
			report.dropped("trip %s: duplicate friend %s", rec.ID, f.ID)
			continue
		}
		if f.Name == "" {
			f.Name = f.ID
			report.repaired("trip %s: friend %s had no name", rec.ID, f.ID)
		}
		seen[f.ID] = true
		friends = append(friends, f)
	}
	rec.Friends = friends

	expenses := make([]expenseRecord, 0, len(rec.Expenses))
	expenseIDs := make(map[string]bool, len(rec.Expenses))
	for i := range rec.Expenses {
		e := &rec.Expenses[i]
		if !repairExpense(rec.ID, e, seen, report) {
			continue
		}
		if expenseIDs[e.ID] {
			old := e.ID
			e.ID = uuid.NewString()
			report.repaired("trip %s: duplicate expense id %s reassigned to %s", rec.ID, old, e.ID)
		}
		expenseIDs[e.ID] = true
		expenses = append(expenses, *e)
	}
	rec.Expenses = expenses

	if err := validate.Struct(rec); err != nil {
		report.dropped("trip %s: %v", rec.ID, err)
		return models.Trip{}, false
	}

	return toTrip(rec), true
}

// repairExpense fills missing fields and removes references to friends that
// are not in the trip. It returns false when the expense has to be dropped.
func repairExpense(tripID string, e *expenseRecord, friends map[string]bool, report *Report) bool {
	e.ID = strings.TrimSpace(e.ID)
	if e.ID == "" {
		e.ID = uuid.NewString()
		report.repaired("trip %s: expense without id assigned %s", tripID, e.ID)
	}
	if e.Settled == nil {
		settled := false
		e.Settled = &settled
		report.defaulted("trip %s expense %s: settled=false", tripID, e.ID)
	}
	if e.Currency == nil || strings.TrimSpace(*e.Currency) == "" {
		currency := models.DefaultCurrency
		e.Currency = &currency
		report.defaulted("trip %s expense %s: currency=%s", tripID, e.ID, currency)
	}
	if e.Description == nil {
		description := ""
		e.Description = &description
	}

	if !friends[e.PaidByFriendID] {
		report.dropped("trip %s expense %s: payer %q is not a trip friend", tripID, e.ID, e.PaidByFriendID)
		return false
	}

	split := make([]string, 0, len(e.SplitWithFriendIDs))
	inSplit := make(map[string]bool, len(e.SplitWithFriendIDs))
	for _, id := range e.SplitWithFriendIDs {
		switch {
		case !friends[id]:
			report.repaired("trip %s expense %s: removed unknown participant %q", tripID, e.ID, id)
		case inSplit[id]:
			report.repaired("trip %s expense %s: removed duplicate participant %s", tripID, e.ID, id)
		default:
			inSplit[id] = true
			split = append(split, id)
		}
	}
	e.SplitWithFriendIDs = split

	if err := validate.Struct(e); err != nil {
		report.dropped("trip %s expense %s: %v", tripID, e.ID, err)
		return false
	}
	return true
}

func toTrip(rec *tripRecord) models.Trip {
	trip := models.Trip{
		ID:        rec.ID,
		Name:      rec.Name,
		Friends:   make([]models.Friend, len(rec.Friends)),
		Expenses:  make([]models.Expense, len(rec.Expenses)),
		CreatedAt: rec.CreatedAt,
	}
	for i, f := range rec.Friends {
		trip.Friends[i] = models.Friend{ID: f.ID, Name: f.Name}
	}
	for i, e := range rec.Expenses {
		trip.Expenses[i] = models.Expense{
			ID:                 e.ID,
			TripID:             rec.ID,
			Amount:             e.Amount,
			Currency:           *e.Currency,
			Description:        *e.Description,
			PaidByFriendID:     e.PaidByFriendID,
			SplitWithFriendIDs: e.SplitWithFriendIDs,
			Settled:            *e.Settled,
			CreatedAt:          e.CreatedAt,
		}
	}
	return trip
}
