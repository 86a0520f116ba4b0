package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/508labs/spendings/internal/docstore"
	"github.com/508labs/spendings/internal/docstore/memory"
	apperrors "github.com/508labs/spendings/internal/shared/errors"
)

func ptr[T any](v T) *T { return &v }

func TestCreateInput_Validate(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		in := CreateInput{
			ClientID: "c1",
			Label:    "Netflix",
			Amount:   ptr(15.0),
			Category: ptr("Entertainment"),
		}
		assert.NoError(t, in.Validate())
	})

	t.Run("reports every violated field", func(t *testing.T) {
		in := CreateInput{Frequency: "yearly", Type: "bogus"}
		err := in.Validate()
		require.Error(t, err)

		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)

		var names []string
		for _, f := range appErr.Fields {
			names = append(names, f.Field)
		}
		assert.ElementsMatch(t, []string{"client_id", "label", "amount", "category", "frequency", "type"}, names)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		svc := NewService(memory.New())

		id, err := svc.Create(ctx, CreateInput{
			ClientID: "c1",
			Label:    "Rent",
			Amount:   ptr(900.0),
			Category: ptr("Housing"),
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		records, err := svc.List(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, FrequencyMonthly, records[0].Frequency)
		assert.Equal(t, TypeIncome, records[0].Type)

		due, err := time.Parse(time.RFC3339Nano, records[0].NextDueDate)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), due, time.Minute)
	})

	t.Run("stores amount as given regardless of type", func(t *testing.T) {
		svc := NewService(memory.New())

		_, err := svc.Create(ctx, CreateInput{
			ClientID: "c1",
			Label:    "Savings transfer",
			Amount:   ptr(-200.0),
			Category: ptr("Savings"),
			Type:     TypeExpense,
		})
		require.NoError(t, err)

		records, err := svc.List(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, -200.0, records[0].Amount)
		assert.Equal(t, TypeExpense, records[0].Type)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc := NewService(memory.New())
		_, err := svc.Create(ctx, CreateInput{ClientID: "c1"})
		require.Error(t, err)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	for _, label := range []string{"Rent", "Netflix"} {
		_, err := svc.Create(ctx, CreateInput{
			ClientID: "c1",
			Label:    label,
			Amount:   ptr(10.0),
			Category: ptr("Misc"),
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, CreateInput{
		ClientID: "c2",
		Label:    "Gym",
		Amount:   ptr(30.0),
		Category: ptr("Health"),
	})
	require.NoError(t, err)

	records, err := svc.List(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Rent", records[0].Label)
	assert.Equal(t, "Netflix", records[1].Label)

	_, err = svc.List(ctx, "")
	require.Error(t, err)
}

func TestService_Reminders(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewService(store)

	past := time.Now().UTC().Add(-48 * time.Hour)
	future := time.Now().UTC().Add(48 * time.Hour)

	_, err := svc.Create(ctx, CreateInput{
		ClientID:    "c1",
		Label:       "Rent",
		Amount:      ptr(900.0),
		Category:    ptr("Housing"),
		NextDueDate: &past,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{
		ClientID:    "c1",
		Label:       "Netflix",
		Amount:      ptr(15.0),
		Category:    ptr("Entertainment"),
		NextDueDate: &future,
	})
	require.NoError(t, err)

	t.Run("returns only past-due items projected", func(t *testing.T) {
		due, err := svc.Reminders(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, DueItem{Label: "Rent", Category: "Housing", Amount: 900}, due[0])
	})

	t.Run("is idempotent", func(t *testing.T) {
		first, err := svc.Reminders(ctx, "c1")
		require.NoError(t, err)
		second, err := svc.Reminders(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("unparsable due date is immediately due", func(t *testing.T) {
		_, err := store.Insert(ctx, docstore.CollectionRecurring, map[string]any{
			"client_id":     "c3",
			"label":         "Mystery",
			"amount":        1.0,
			"category":      "Misc",
			"frequency":     FrequencyMonthly,
			"type":          TypeIncome,
			"next_due_date": "not a date",
		})
		require.NoError(t, err)

		due, err := svc.Reminders(ctx, "c3")
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, "Mystery", due[0].Label)
	})
}

func TestDueTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339 nano", "2025-05-01T00:00:00.5Z", time.Date(2025, 5, 1, 0, 0, 0, 500000000, time.UTC)},
		{"rfc3339", "2025-05-01T00:00:00+02:00", time.Date(2025, 5, 1, 0, 0, 0, 0, time.FixedZone("", 2*3600))},
		{"garbage falls back to now", "tomorrow", now},
		{"empty falls back to now", "", now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(dueTime(tt.raw, now)))
		})
	}
}
