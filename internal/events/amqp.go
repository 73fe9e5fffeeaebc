package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPMirror republishes changes to a topic exchange for consumers outside
// this process. Messages are transient and unconfirmed; a broker outage
// only costs log lines.
type AMQPMirror struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      *zap.Logger
}

func DialAMQP(url, exchange string, log *zap.Logger) (*AMQPMirror, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp declare %s: %w", exchange, err)
	}
	return &AMQPMirror{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

// RoutingKey is restaurant.<id>.<kind>, e.g. restaurant.7.order.status.
func RoutingKey(c Change) string {
	return fmt.Sprintf("restaurant.%d.%s", c.RestaurantID, c.Kind)
}

func (m *AMQPMirror) Forward(c Change) {
	body, err := json.Marshal(c)
	if err != nil {
		m.log.Error("amqp marshal change", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = m.ch.PublishWithContext(ctx, m.exchange, RoutingKey(c), false, false, amqp.Publishing{
		DeliveryMode: amqp.Transient,
		ContentType:  "application/json",
		Timestamp:    c.At,
		Body:         body,
		Headers:      amqp.Table{"x-source": "order-service"},
	})
	if err != nil {
		m.log.Warn("amqp publish failed",
			zap.String("routing_key", RoutingKey(c)),
			zap.Error(err))
	}
}

func (m *AMQPMirror) Close() {
	if m.ch != nil {
		_ = m.ch.Close()
	}
	if m.conn != nil {
		_ = m.conn.Close()
	}
}
