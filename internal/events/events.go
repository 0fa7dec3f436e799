package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EnvelopeVersion = 1
	producerName    = "tablepos-api"
)

// Envelope wraps every order lifecycle event, whichever transport carries it.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

func NewEnvelope(eventType string, tenantID, orderID uuid.UUID, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  EnvelopeVersion,
		OccurredAt:    time.Now().UTC(),
		Producer:      producerName,
		TenantID:      tenantID,
		CorrelationID: orderID.String(),
		Payload:       raw,
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(ctx context.Context, env Envelope) error { return nil }

// Multi fans an event out to every publisher. All publishers are attempted
// even when one fails.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, env Envelope) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
