package magic

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	model "github.com/glkeru/loyalty/magic/internal/models"
	"github.com/segmentio/kafka-go"
)

const orderGroup = "orders_magic_rules"

type KafkaOrder struct {
	reader *kafka.Reader
}

func GetNewReader(topic string) (reader *KafkaOrder, err error) {
	// config
	kafkaurl := os.Getenv("KAFKA_ORDER_URL")
	if kafkaurl == "" {
		return nil, fmt.Errorf("env KAFKA_ORDER_URL is not set")
	}
	kafkaport := os.Getenv("KAFKA_ORDER_PORT")
	if kafkaport == "" {
		return nil, fmt.Errorf("env KAFKA_ORDER_PORT is not set")
	}

	kafkaconfig := kafka.ReaderConfig{
		Brokers: []string{kafkaurl + ":" + kafkaport},
		Topic:   topic,
		GroupID: orderGroup,
	}
	return &KafkaOrder{kafka.NewReader(kafkaconfig)}, nil
}

// Событие по заказу из топика
type OrderEvent struct {
	OrganizationID string          `json:"organizationId"`
	OrderID        string          `json:"orderId"`
	Event          model.EventType `json:"event"`
}

func ParseOrderEvent(data []byte) (event OrderEvent, err error) {
	err = json.Unmarshal(data, &event)
	if err != nil {
		return event, fmt.Errorf("%w: %v", model.ErrInvalidEvent, err)
	}
	if event.OrganizationID == "" {
		return event, fmt.Errorf("%w: organizationId field is required", model.ErrInvalidEvent)
	}
	if event.OrderID == "" {
		return event, fmt.Errorf("%w: orderId field is required", model.ErrInvalidEvent)
	}
	if event.Event == "" {
		event.Event = model.EventOrderPaid
	}
	return event, nil
}

func (k *KafkaOrder) GetNewMessage(ctx context.Context) (event OrderEvent, err error) {
	msg, err := k.reader.ReadMessage(ctx)
	if err != nil {
		return event, err
	}
	return ParseOrderEvent(msg.Value)
}

func (k *KafkaOrder) CloseReader() {
	k.reader.Close()
}
