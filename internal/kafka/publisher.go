package kafka

import (
	"context"
)

type publisher interface {
	PublishWithRetry(ctx context.Context, topic, key string, payload interface{}, maxRetries int) error
}

// OrderPublisher sends order events to the orders topic and, when configured, mirrors them to notifications.
type OrderPublisher struct {
	producer           publisher
	ordersTopic        string
	notificationsTopic string
	retries            int
}

type OrderPublisherOption func(*OrderPublisher)

func WithNotificationsTopic(topic string) OrderPublisherOption {
	return func(p *OrderPublisher) {
		p.notificationsTopic = topic
	}
}

func WithRetries(n int) OrderPublisherOption {
	return func(p *OrderPublisher) {
		if n > 0 {
			p.retries = n
		}
	}
}

func NewOrderPublisher(producer publisher, ordersTopic string, opts ...OrderPublisherOption) *OrderPublisher {
	p := &OrderPublisher{producer: producer, ordersTopic: ordersTopic, retries: 3}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OrderPublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	if err := p.producer.PublishWithRetry(ctx, p.ordersTopic, event.Key(), event, p.retries); err != nil {
		return err
	}
	if p.notificationsTopic == "" {
		return nil
	}
	return p.producer.PublishWithRetry(ctx, p.notificationsTopic, event.Key(), event, p.retries)
}
