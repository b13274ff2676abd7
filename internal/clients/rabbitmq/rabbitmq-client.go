package rabbitmq_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/N08I40K/schedule-parser-next/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

// RabbitMQDispatcher публикует уведомления в topic exchange, routing key = topic
type RabbitMQDispatcher struct {
	mu       sync.Mutex
	url      string
	exchange string
	conn     *amqp.Connection
	channel  *amqp.Channel
	log      *slog.Logger
}

var _ app.NotificationDispatcher = &RabbitMQDispatcher{}

func NewRabbitMQ(url, exchange string, log *slog.Logger) *RabbitMQDispatcher {
	return &RabbitMQDispatcher{url: url, exchange: exchange, log: log}
}

// connect открывает соединение лениво и переоткрывает его после разрыва
func (this *RabbitMQDispatcher) connect() (*amqp.Channel, error) {
	if this.channel != nil && !this.channel.IsClosed() {
		return this.channel, nil
	}
	if this.conn == nil || this.conn.IsClosed() {
		conn, err := amqp.Dial(this.url)
		if err != nil {
			return nil, fmt.Errorf("dial rabbitmq: %w", err)
		}
		this.conn = conn
	}

	ch, err := this.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(this.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", this.exchange, err)
	}
	this.channel = ch
	return ch, nil
}

func (this *RabbitMQDispatcher) SendByTopic(ctx context.Context, topic string, payload map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	this.mu.Lock()
	defer this.mu.Unlock()

	ch, err := this.connect()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, this.exchange, topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %q: %w", topic, err)
	}

	this.log.Debug("notification sent", slog.String("topic", topic), slog.String("type", payload["type"]))
	return nil
}

func (this *RabbitMQDispatcher) Close() error {
	this.mu.Lock()
	defer this.mu.Unlock()

	if this.channel != nil {
		_ = this.channel.Close()
		this.channel = nil
	}
	if this.conn != nil {
		err := this.conn.Close()
		this.conn = nil
		if err != nil && !errors.Is(err, amqp.ErrClosed) {
			return err
		}
	}
	return nil
}

// LogDispatcher заглушка без брокера, только пишет в лог
type LogDispatcher struct {
	log *slog.Logger
}

var _ app.NotificationDispatcher = &LogDispatcher{}

func NewLog(log *slog.Logger) *LogDispatcher {
	return &LogDispatcher{log}
}

func (this *LogDispatcher) SendByTopic(_ context.Context, topic string, payload map[string]string) error {
	attrs := make([]any, 0, len(payload)+1)
	attrs = append(attrs, slog.String("topic", topic))
	for k, v := range payload {
		attrs = append(attrs, slog.String(k, v))
	}
	this.log.Info("notification", attrs...)
	return nil
}

func New(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) app.NotificationDispatcher {
	if cfg.Infrastructure.RabbitMQ.Url == "" {
		log.Warn("RABBITMQ_URL is empty, notifications are only logged")
		return NewLog(log)
	}

	d := NewRabbitMQ(cfg.Infrastructure.RabbitMQ.Url, cfg.Infrastructure.RabbitMQ.Exchange, log)
	lc.Append(fx.StopHook(d.Close))
	return d
}
