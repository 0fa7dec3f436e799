package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// idem:{scope}:{tenant_id}:{client_key} -> recorded Response
	keyFormat = "idem:%s:%s:%s"

	ScopeOrderCreate = "order:create"

	pendingMarker = "pending"
)

var (
	TTLResponse = 24 * time.Hour
	TTLPending  = 30 * time.Second
)

var ErrInFlight = errors.New("a request with this Idempotency-Key is still in progress")

// Response is a recorded HTTP response replayed for a repeated key.
type Response struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// Store records responses by idempotency key.
//
// Reserve claims an unused key and returns (nil, nil). When the key already
// holds a finished response that response is returned; when another request
// still holds it, ErrInFlight.
type Store interface {
	Reserve(ctx context.Context, key string) (*Response, error)
	Save(ctx context.Context, key string, resp Response) error
	Release(ctx context.Context, key string) error
}

func Key(scope string, tenantID uuid.UUID, clientKey string) string {
	return fmt.Sprintf(keyFormat, scope, tenantID, clientKey)
}

func decode(raw []byte) (*Response, error) {
	if string(raw) == pendingMarker {
		return nil, ErrInFlight
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode recorded response: %w", err)
	}
	return &resp, nil
}
