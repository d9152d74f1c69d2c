package commandsink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/sahakari-society/members-console/internal/ports/out/commandsink"
)

// Channel is the subset of *amqp091.Channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Message is the wire form of a dispatched command.
type Message struct {
	CommandID string          `json:"commandId"`
	Kind      string          `json:"kind"`
	MemberID  string          `json:"memberId,omitempty"`
	Operator  string          `json:"operator"`
	IssuedAt  time.Time       `json:"issuedAt"`
	Payload   json.RawMessage `json:"payload"`
}

func NewMessage(cmd commandsink.Command) (Message, error) {
	payload, err := json.Marshal(cmd.Payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal payload: %w", err)
	}
	return Message{
		CommandID: string(cmd.ID),
		Kind:      string(cmd.Kind),
		MemberID:  string(cmd.MemberID),
		Operator:  cmd.Operator,
		IssuedAt:  cmd.IssuedAt,
		Payload:   payload,
	}, nil
}

// Publisher sends commands to a direct exchange as persistent JSON messages.
type Publisher struct {
	conn       *amqp091.Connection
	channel    Channel
	exchange   string
	routingKey string
	timeout    time.Duration
	log        *slog.Logger
}

// Dial connects to url and declares the exchange.
func Dial(url, exchange, routingKey string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p, err := NewPublisher(ch, exchange, routingKey, logger)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewPublisher wraps an open channel and declares the exchange on it.
func NewPublisher(ch Channel, exchange, routingKey string, logger *slog.Logger) (*Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	err := ch.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{
		channel:    ch,
		exchange:   exchange,
		routingKey: routingKey,
		timeout:    5 * time.Second,
		log:        logger.With("component", "amqp"),
	}, nil
}

func (p *Publisher) Dispatch(ctx context.Context, cmd commandsink.Command) error {
	msg, err := NewMessage(cmd)
	if err != nil {
		return err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.CommandID,
			Type:         msg.Kind,
			Timestamp:    cmd.IssuedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.log.DebugContext(ctx, "published command",
		"command_id", msg.CommandID,
		"kind", msg.Kind,
		"exchange", p.exchange,
		"routing_key", p.routingKey)
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
