package spending

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/508labs/spendings/internal/docstore"
	apperrors "github.com/508labs/spendings/internal/shared/errors"
	"github.com/508labs/spendings/pkg/logger"
)

// Service implements transaction intake and aggregation over the document
// store. It holds no mutable state; every call is an independent round trip.
type Service struct {
	store  docstore.Store
	events EventPublisher
	log    *logger.Logger
}

// NewService creates a new spending service. events may be nil to disable
// event publishing.
func NewService(store docstore.Store, events EventPublisher, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		events: events,
		log:    log,
	}
}

// Create validates and normalizes the input, persists the transaction and
// returns the assigned document identifier. Date defaults to the current UTC
// time when absent.
func (s *Service) Create(ctx context.Context, in CreateInput) (uuid.UUID, error) {
	if err := in.Validate(); err != nil {
		return uuid.Nil, err
	}

	amount, txType := Normalize(*in.Amount, in.Type)

	date := time.Now().UTC()
	if in.Date != nil {
		date = in.Date.UTC()
	}

	tx := Transaction{
		ClientID: in.ClientID,
		Amount:   amount,
		Category: *in.Category,
		Note:     in.Note,
		Date:     date,
		Type:     txType,
	}

	id, err := s.store.Insert(ctx, docstore.CollectionTransaction, tx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert transaction: %w", err)
	}

	if s.events != nil {
		evt := TransactionCreatedEvent{
			ID:       id.String(),
			ClientID: tx.ClientID,
			Amount:   tx.Amount,
			Category: tx.Category,
			Type:     tx.Type,
			Date:     tx.Date,
		}
		if err := s.events.PublishTransactionCreated(ctx, evt); err != nil {
			s.log.Warn("Failed to publish transaction created event",
				"error", err,
				"transaction_id", evt.ID,
			)
		}
	}

	return id, nil
}

// List returns at most limit transactions for the client, optionally
// filtered by exact category match, sorted by date descending. The sort
// happens in memory after the fetch; the store only guarantees insertion
// order.
func (s *Service) List(ctx context.Context, clientID, category string, limit int) ([]Record, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, apperrors.Validation(apperrors.FieldError{Field: "client_id", Message: "must be a non-empty string"})
	}

	filter := docstore.Filter{"client_id": clientID}
	if category != "" {
		filter["category"] = category
	}

	docs, err := s.store.Find(ctx, docstore.CollectionTransaction, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	records, err := decodeRecords(docs)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	return records, nil
}

// Balance sums the stored amounts across every transaction of the client.
// No limit is applied; an empty set yields 0.
func (s *Service) Balance(ctx context.Context, clientID string) (float64, error) {
	records, err := s.fetchAll(ctx, clientID)
	if err != nil {
		return 0, err
	}
	return sumAmounts(records), nil
}

// CategoryTotals returns the category -> summed amount mapping for the
// client. Transactions without a category land in the Uncategorized bucket.
func (s *Service) CategoryTotals(ctx context.Context, clientID string) (map[string]float64, error) {
	records, err := s.fetchAll(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return totalsByCategory(records), nil
}

// Overview reads the client's transactions once and derives the full
// dashboard projection from that single fetch: balance, the date-sorted
// item list and the category mapping. The aggregation code paths are the
// same ones Balance and CategoryTotals use.
func (s *Service) Overview(ctx context.Context, clientID string) (Overview, error) {
	records, err := s.fetchAll(ctx, clientID)
	if err != nil {
		return Overview{}, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	return Overview{
		Balance:    sumAmounts(records),
		Items:      records,
		Categories: totalsByCategory(records),
	}, nil
}

func (s *Service) fetchAll(ctx context.Context, clientID string) ([]Record, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, apperrors.Validation(apperrors.FieldError{Field: "client_id", Message: "must be a non-empty string"})
	}

	docs, err := s.store.Find(ctx, docstore.CollectionTransaction, docstore.Filter{"client_id": clientID}, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	return decodeRecords(docs)
}

func decodeRecords(docs []docstore.Document) ([]Record, error) {
	records := make([]Record, 0, len(docs))
	for _, d := range docs {
		var tx Transaction
		if err := json.Unmarshal(d.Data, &tx); err != nil {
			return nil, fmt.Errorf("decode transaction %s: %w", d.ID, err)
		}
		records = append(records, Record{ID: d.ID.String(), Transaction: tx})
	}
	return records, nil
}

func sumAmounts(records []Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

func totalsByCategory(records []Record) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range records {
		category := r.Category
		if category == "" {
			category = UncategorizedLabel
		}
		totals[category] += r.Amount
	}
	return totals
}
