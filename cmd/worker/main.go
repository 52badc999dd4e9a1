package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airbooking/config"
	"github.com/Domenick1991/airbooking/internal/email"
	"github.com/Domenick1991/airbooking/internal/kafka"
	"github.com/Domenick1991/airbooking/internal/logger"
	kafkaGo "github.com/segmentio/kafka-go"
)

type notifier interface {
	Send(ctx context.Context, event kafka.OrderEvent) error
}

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.NewLogger().Fatal("WORKER", fmt.Sprintf("load config: %v", err))
	}
	log := logger.New(os.Stdout, logger.ParseLevel(cfg.Log.Level))

	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("WORKER", "no kafka brokers configured")
	}

	topic := cfg.Kafka.NotificationsTopic
	if topic == "" {
		topic = cfg.Kafka.OrdersTopic
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic, log)
	defer consumer.Close()

	log.LogKafka("CONSUME", topic, "notification worker started")
	if err := consumer.Consume(ctx, handleMessage(email.NewSender(log), log)); err != nil {
		log.Errorf("WORKER", "consumer stopped: %v", err)
		return
	}
	log.Info("WORKER", "shutting down")
}

// handleMessage skips undecodable messages and failed sends. Only cancellation stops the consumer.
func handleMessage(sender notifier, log *logger.Logger) func(context.Context, kafkaGo.Message) error {
	return func(ctx context.Context, msg kafkaGo.Message) error {
		event, err := kafka.DecodeOrderEvent(msg.Value)
		if err != nil {
			log.Warnf("WORKER", "skip message at offset %d: %v", msg.Offset, err)
			return nil
		}

		if err := sender.Send(ctx, event); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			log.Warnf("WORKER", "notification for order %d not sent: %v", event.OrderID, err)
		}
		return nil
	}
}
