package events

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	ErrQueueFull = errors.New("event queue is full")
	ErrClosed    = errors.New("event publisher is closed")
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher queues envelopes in memory and writes them from a single
// goroutine started by Run. Messages are keyed by order ID so one order's
// events stay on one partition.
type KafkaPublisher struct {
	w      messageWriter
	inbox  chan kafka.Message
	closed chan struct{}
}

func NewKafkaPublisher(brokers []string, topic string, buf int) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        true,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				log.Printf("ERROR: kafka write %d message(s): %v", len(msgs), err)
			}
		},
	}
	return newKafkaPublisher(w, buf)
}

func newKafkaPublisher(w messageWriter, buf int) *KafkaPublisher {
	return &KafkaPublisher{
		w:      w,
		inbox:  make(chan kafka.Message, buf),
		closed: make(chan struct{}),
	}
}

// Publish enqueues without blocking the request path.
func (p *KafkaPublisher) Publish(ctx context.Context, env Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(env.CorrelationID),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(env.EventType)},
			{Key: "x-event-version", Value: []byte(strconv.Itoa(env.EventVersion))},
		},
	}

	select {
	case <-p.closed:
		return ErrClosed
	default:
	}
	select {
	case p.inbox <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run writes queued messages until ctx is cancelled, then flushes what is
// left and closes the writer.
func (p *KafkaPublisher) Run(ctx context.Context) error {
	defer close(p.closed)
	for {
		select {
		case <-ctx.Done():
			p.drain()
			return p.w.Close()
		case m := <-p.inbox:
			p.write(m)
		}
	}
}

func (p *KafkaPublisher) drain() {
	for {
		select {
		case m := <-p.inbox:
			p.write(m)
		default:
			return
		}
	}
}

func (p *KafkaPublisher) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.w.WriteMessages(ctx, m); err != nil {
		log.Printf("ERROR: kafka publish %s: %v", m.Key, err)
	}
}
