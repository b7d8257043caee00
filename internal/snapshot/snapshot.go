// Package snapshot reads and writes the portable JSON form of all trips.
//
// Two schema versions are understood:
//
//   - version 0: the bare JSON array of trips persisted by the mobile app.
//     Older records may lack "settled", "currency" or "description".
//   - version 1: an envelope {"version": 1, "exportedAt": ..., "userName": ..., "trips": [...]}
//     where every field is always written.
//
// Decoding applies explicit defaults for missing fields and then repairs or
// drops records that would break trip invariants, so nothing invalid ever
// reaches the store or the balance calculator. Every change is listed in the
// returned Report.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
)

// CurrentVersion is the schema version written by Encode.
const CurrentVersion = 1

// ErrUnsupportedVersion is returned for documents newer than CurrentVersion.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

type envelope struct {
	Version    int          `json:"version"`
	ExportedAt int64        `json:"exportedAt"`
	UserName   string       `json:"userName,omitempty"`
	Trips      []tripRecord `json:"trips"`
}

type friendRecord struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type tripRecord struct {
	ID        string          `json:"id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Friends   []friendRecord  `json:"friends" validate:"min=1,dive"`
	Expenses  []expenseRecord `json:"expenses" validate:"dive"`
	CreatedAt int64           `json:"createdAt"`
}

// expenseRecord uses pointers for fields older records may omit, so that
// "missing" and "zero" can be told apart.
type expenseRecord struct {
	ID                 string   `json:"id" validate:"required"`
	Amount             float64  `json:"amount" validate:"positive_amount"`
	Currency           *string  `json:"currency"`
	Description        *string  `json:"description"`
	PaidByFriendID     string   `json:"paidByFriendId" validate:"required"`
	SplitWithFriendIDs []string `json:"splitWithFriendIds" validate:"min=1,dive,required"`
	Settled            *bool    `json:"settled"`
	CreatedAt          int64    `json:"createdAt"`
}

// Document is a decoded, repaired snapshot.
type Document struct {
	Version  int
	UserName string
	Trips    []models.Trip
}

// Report lists what Decode had to change.
type Report struct {
	SourceVersion    int
	TripsImported    int
	ExpensesImported int
	Defaulted        []string
	Repaired         []string
	Dropped          []string
}

func (r *Report) defaulted(format string, args ...any) {
	r.Defaulted = append(r.Defaulted, fmt.Sprintf(format, args...))
}

func (r *Report) repaired(format string, args ...any) {
	r.Repaired = append(r.Repaired, fmt.Sprintf(format, args...))
}

func (r *Report) dropped(format string, args ...any) {
	r.Dropped = append(r.Dropped, fmt.Sprintf(format, args...))
}

// Decode parses a snapshot of any supported version.
func Decode(data []byte) (*Document, *Report, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil, errors.New("empty snapshot")
	}

	var env envelope
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &env.Trips); err != nil {
			return nil, nil, fmt.Errorf("failed to parse legacy trip list: %w", err)
		}
	case '{':
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, nil, fmt.Errorf("failed to parse snapshot: %w", err)
		}
		if env.Version < 1 || env.Version > CurrentVersion {
			return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
		}
	default:
		return nil, nil, errors.New("snapshot must be a JSON array or object")
	}

	report := &Report{SourceVersion: env.Version}
	doc := &Document{Version: CurrentVersion, UserName: env.UserName}
	tripIDs := make(map[string]bool, len(env.Trips))
	for i := range env.Trips {
		trip, ok := repairTrip(&env.Trips[i], report)
		if !ok {
			continue
		}
		if tripIDs[trip.ID] {
			old := trip.ID
			trip.ID = uuid.NewString()
			for j := range trip.Expenses {
				trip.Expenses[j].TripID = trip.ID
			}
			report.repaired("duplicate trip id %s reassigned to %s", old, trip.ID)
		}
		tripIDs[trip.ID] = true
		doc.Trips = append(doc.Trips, trip)
		report.TripsImported++
		report.ExpensesImported += len(trip.Expenses)
	}

	return doc, report, nil
}

// Encode writes trips as a CurrentVersion snapshot.
func Encode(trips []models.Trip, userName string, exportedAt time.Time) ([]byte, error) {
	env := envelope{
		Version:    CurrentVersion,
		ExportedAt: exportedAt.UnixMilli(),
		UserName:   userName,
		Trips:      make([]tripRecord, len(trips)),
	}
	for i, t := range trips {
		rec := tripRecord{
			ID:        t.ID,
			Name:      t.Name,
			Friends:   make([]friendRecord, len(t.Friends)),
			Expenses:  make([]expenseRecord, len(t.Expenses)),
			CreatedAt: t.CreatedAt,
		}
		for j, f := range t.Friends {
			rec.Friends[j] = friendRecord{ID: f.ID, Name: f.Name}
		}
		for j, e := range t.Expenses {
			currency, description, settled := e.Currency, e.Description, e.Settled
			rec.Expenses[j] = expenseRecord{
				ID:                 e.ID,
				Amount:             e.Amount,
				Currency:           &currency,
				Description:        &description,
				PaidByFriendID:     e.PaidByFriendID,
				SplitWithFriendIDs: e.SplitWithFriendIDs,
				Settled:            &settled,
				CreatedAt:          e.CreatedAt,
			}
		}
		env.Trips[i] = rec
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}
