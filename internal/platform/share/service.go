package share

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/508labs/spendings/internal/docstore"
	"github.com/508labs/spendings/internal/platform/spending"
	apperrors "github.com/508labs/spendings/internal/shared/errors"
)

// TransactionReader supplies the dashboard projection for a client. It is
// satisfied by the spending service so that a resolved share reports the
// exact numbers the balance and category endpoints would.
type TransactionReader interface {
	Overview(ctx context.Context, clientID string) (spending.Overview, error)
}

// Service implements share token issuance and resolution.
type Service struct {
	store        docstore.Store
	transactions TransactionReader
}

// NewService creates a new share service
func NewService(store docstore.Store, transactions TransactionReader) *Service {
	return &Service{
		store:        store,
		transactions: transactions,
	}
}

// Create persists a new share for the client and returns its token. No
// uniqueness check is performed; creation always succeeds when the store
// does.
func (s *Service) Create(ctx context.Context, clientID string) (string, error) {
	if strings.TrimSpace(clientID) == "" {
		return "", apperrors.Validation(apperrors.FieldError{Field: "client_id", Message: "must be a non-empty string"})
	}

	token := newToken()
	record := Share{
		ClientID:  clientID,
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.store.Insert(ctx, docstore.CollectionShare, record); err != nil {
		return "", fmt.Errorf("insert share: %w", err)
	}

	return token, nil
}

// Resolve looks up a share by exact token match (first match when
// duplicates exist) and returns the owner's full dashboard projection.
func (s *Service) Resolve(ctx context.Context, token string) (*Dashboard, error) {
	docs, err := s.store.Find(ctx, docstore.CollectionShare, docstore.Filter{"token": token}, 1)
	if err != nil {
		return nil, fmt.Errorf("find share: %w", err)
	}
	if len(docs) == 0 {
		return nil, apperrors.NotFound("share")
	}

	var record Share
	if err := json.Unmarshal(docs[0].Data, &record); err != nil {
		return nil, fmt.Errorf("decode share %s: %w", docs[0].ID, err)
	}

	overview, err := s.transactions.Overview(ctx, record.ClientID)
	if err != nil {
		return nil, fmt.Errorf("resolve share overview: %w", err)
	}

	return &Dashboard{
		ClientID:   record.ClientID,
		Balance:    overview.Balance,
		Items:      overview.Items,
		Categories: overview.Categories,
	}, nil
}

// newToken returns the first TokenLength hex characters of a random UUID.
func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:TokenLength]
}
