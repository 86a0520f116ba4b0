// Package recurring implements recurring payment schedules: creation,
// listing and due-item computation. Unlike transactions, a recurring
// record's amount and type tag are independent inputs; no sign
// normalization takes place.
package recurring

import (
	"strings"
	"time"

	apperrors "github.com/508labs/spendings/internal/shared/errors"
)

// Frequencies a schedule may repeat at.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Type tags. Stored as given, independent of the amount's sign: a schedule
// may represent planned income modeled with a negative contribution amount
// (savings-transfer semantics).
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Recurring is the document persisted in the recurring collection.
// NextDueDate is kept as RFC3339 text; reminder computation re-parses it
// defensively since the store itself enforces no schema.
type Recurring struct {
	ClientID    string  `json:"client_id"`
	Label       string  `json:"label"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Frequency   string  `json:"frequency"`
	Type        string  `json:"type"`
	NextDueDate string  `json:"next_due_date"`
}

// Record is a stored recurring schedule together with its document
// identifier.
type Record struct {
	ID string `json:"id"`
	Recurring
}

// DueItem is the reminders projection. The due date is intentionally
// dropped from the output.
type DueItem struct {
	Label    string  `json:"label"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// CreateInput is the payload for creating a recurring schedule. Frequency
// defaults to monthly and Type to income when absent.
type CreateInput struct {
	ClientID    string     `json:"client_id"`
	Label       string     `json:"label"`
	Amount      *float64   `json:"amount"`
	Category    *string    `json:"category"`
	Frequency   string     `json:"frequency"`
	Type        string     `json:"type"`
	NextDueDate *time.Time `json:"next_due_date"`
}

// Validate checks the input and reports every violated field.
func (in CreateInput) Validate() error {
	var fields []apperrors.FieldError

	if strings.TrimSpace(in.ClientID) == "" {
		fields = append(fields, apperrors.FieldError{Field: "client_id", Message: "must be a non-empty string"})
	}
	if strings.TrimSpace(in.Label) == "" {
		fields = append(fields, apperrors.FieldError{Field: "label", Message: "must be a non-empty string"})
	}
	if in.Amount == nil {
		fields = append(fields, apperrors.FieldError{Field: "amount", Message: "is required"})
	}
	if in.Category == nil {
		fields = append(fields, apperrors.FieldError{Field: "category", Message: "is required"})
	}

	switch in.Frequency {
	case "", FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		fields = append(fields, apperrors.FieldError{Field: "frequency", Message: `must be "daily", "weekly" or "monthly"`})
	}

	switch in.Type {
	case "", TypeIncome, TypeExpense:
	default:
		fields = append(fields, apperrors.FieldError{Field: "type", Message: `must be "income" or "expense"`})
	}

	if len(fields) > 0 {
		return apperrors.Validation(fields...)
	}
	return nil
}
