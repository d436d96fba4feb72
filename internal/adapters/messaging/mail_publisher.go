package messaging

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/milkwise/mother-care-service/internal/core/ports"
)

var _ ports.MailEventPublisher = (*RabbitMQBroker)(nil)

// PublishMailEvent hands one mail event to the queue. The event type rides
// in the message Type header so the mailer can pick its template.
func (rmq *RabbitMQBroker) PublishMailEvent(ctx context.Context, eventType string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Type:         eventType,
				Body:         payload,
			},
		)
		return nil, err
	})
	return err
}
