// Package spending implements transaction intake and aggregation for an
// anonymous client bucket: sign normalization on create, filtered listing,
// balance and per-category totals.
package spending

import (
	"math"
	"strings"
	"time"

	apperrors "github.com/508labs/spendings/internal/shared/errors"
)

// Transaction types. The stored type tag is always derived from the sign of
// the normalized amount; the client-supplied type only chooses the sign.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// UncategorizedLabel buckets transactions stored without a category.
const UncategorizedLabel = "Uncategorized"

// Transaction is the document persisted in the transaction collection.
// Invariant: Amount >= 0 iff Type == "income".
type Transaction struct {
	ClientID string    `json:"client_id"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Note     *string   `json:"note,omitempty"`
	Date     time.Time `json:"date"`
	Type     string    `json:"type"`
}

// Record is a stored transaction together with its document identifier.
type Record struct {
	ID string `json:"id"`
	Transaction
}

// Overview is the combined read-only projection of one client's data:
// everything a shared dashboard shows.
type Overview struct {
	Balance    float64            `json:"balance"`
	Items      []Record           `json:"items"`
	Categories map[string]float64 `json:"categories"`
}

// CreateInput is the payload for creating a transaction. Amount and Category
// are pointers so that absent fields are reported as validation errors
// rather than silently zeroed.
type CreateInput struct {
	ClientID string     `json:"client_id"`
	Amount   *float64   `json:"amount"`
	Category *string    `json:"category"`
	Note     *string    `json:"note"`
	Type     string     `json:"type"`
	Date     *time.Time `json:"date"`
}

// Validate checks the input and reports every violated field.
func (in CreateInput) Validate() error {
	var fields []apperrors.FieldError

	if strings.TrimSpace(in.ClientID) == "" {
		fields = append(fields, apperrors.FieldError{Field: "client_id", Message: "must be a non-empty string"})
	}
	if in.Amount == nil {
		fields = append(fields, apperrors.FieldError{Field: "amount", Message: "is required"})
	} else if math.IsNaN(*in.Amount) || math.IsInf(*in.Amount, 0) {
		fields = append(fields, apperrors.FieldError{Field: "amount", Message: "must be a finite number"})
	}
	if in.Category == nil {
		fields = append(fields, apperrors.FieldError{Field: "category", Message: "is required"})
	}
	if in.Type != TypeIncome && in.Type != TypeExpense {
		fields = append(fields, apperrors.FieldError{Field: "type", Message: `must be "income" or "expense"`})
	}

	if len(fields) > 0 {
		return apperrors.Validation(fields...)
	}
	return nil
}

// Normalize derives the stored amount and type tag. The amount becomes its
// absolute value, negated when the client asked for an expense; the type tag
// follows the resulting sign, so a zero amount is always tagged income.
func Normalize(amount float64, txType string) (float64, string) {
	normalized := math.Abs(amount)
	if txType == TypeExpense {
		normalized = -normalized
	}
	if normalized == 0 {
		normalized = 0 // collapse -0
	}

	tag := TypeIncome
	if normalized < 0 {
		tag = TypeExpense
	}
	return normalized, tag
}
