package recurring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/508labs/spendings/internal/docstore"
	apperrors "github.com/508labs/spendings/internal/shared/errors"
)

// Service implements recurring schedule operations over the document store.
type Service struct {
	store docstore.Store
}

// NewService creates a new recurring service
func NewService(store docstore.Store) *Service {
	return &Service{store: store}
}

// Create validates the input, applies the frequency/type defaults and
// persists the schedule. NextDueDate defaults to the current time. The
// amount is stored exactly as given, whatever the type tag says.
func (s *Service) Create(ctx context.Context, in CreateInput) (uuid.UUID, error) {
	if err := in.Validate(); err != nil {
		return uuid.Nil, err
	}

	frequency := in.Frequency
	if frequency == "" {
		frequency = FrequencyMonthly
	}
	recType := in.Type
	if recType == "" {
		recType = TypeIncome
	}

	nextDue := time.Now().UTC()
	if in.NextDueDate != nil {
		nextDue = in.NextDueDate.UTC()
	}

	rec := Recurring{
		ClientID:    in.ClientID,
		Label:       in.Label,
		Amount:      *in.Amount,
		Category:    *in.Category,
		Frequency:   frequency,
		Type:        recType,
		NextDueDate: nextDue.Format(time.RFC3339Nano),
	}

	id, err := s.store.Insert(ctx, docstore.CollectionRecurring, rec)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert recurring: %w", err)
	}

	return id, nil
}

// List returns every recurring schedule for the client, unfiltered and
// unlimited.
func (s *Service) List(ctx context.Context, clientID string) ([]Record, error) {
	records, err := s.fetchAll(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Reminders returns the schedules whose due date has passed, projected to
// {label, category, amount}. The computation never mutates the schedules:
// a due item stays due on every call until its next_due_date document is
// replaced out of band.
func (s *Service) Reminders(ctx context.Context, clientID string) ([]DueItem, error) {
	records, err := s.fetchAll(ctx, clientID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	due := make([]DueItem, 0, len(records))
	for _, rec := range records {
		if !dueTime(rec.NextDueDate, now).After(now) {
			due = append(due, DueItem{
				Label:    rec.Label,
				Category: rec.Category,
				Amount:   rec.Amount,
			})
		}
	}
	return due, nil
}

// dueTime parses a stored due date. An unparsable value deliberately falls
// back to now, which makes the item immediately due: ambiguous data is
// surfaced rather than dropped.
func dueTime(raw string, now time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return now
}

func (s *Service) fetchAll(ctx context.Context, clientID string) ([]Record, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, apperrors.Validation(apperrors.FieldError{Field: "client_id", Message: "must be a non-empty string"})
	}

	docs, err := s.store.Find(ctx, docstore.CollectionRecurring, docstore.Filter{"client_id": clientID}, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch recurring: %w", err)
	}

	records := make([]Record, 0, len(docs))
	for _, d := range docs {
		var rec Recurring
		if err := json.Unmarshal(d.Data, &rec); err != nil {
			return nil, fmt.Errorf("decode recurring %s: %w", d.ID, err)
		}
		records = append(records, Record{ID: d.ID.String(), Recurring: rec})
	}
	return records, nil
}
