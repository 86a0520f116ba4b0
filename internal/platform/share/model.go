// Package share implements public dashboard tokens: an opaque bearer
// capability granting read access to one client's transactions and
// aggregates. Tokens are never expired or revoked.
package share

import (
	"time"

	"github.com/508labs/spendings/internal/platform/spending"
)

// TokenLength is the number of hex characters in a share token (~40 bits of
// entropy). Collisions are possible and unchecked; a colliding token
// shadows the earlier share because resolution takes the first match.
const TokenLength = 10

// Share is the document persisted in the share collection. ClientID is a
// soft reference: it is not validated against existing transactions.
type Share struct {
	ClientID  string    `json:"client_id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Dashboard is the read-only projection returned for a resolved token.
type Dashboard struct {
	ClientID   string             `json:"client_id"`
	Balance    float64            `json:"balance"`
	Items      []spending.Record  `json:"items"`
	Categories map[string]float64 `json:"categories"`
}
