// Package events publishes domain events about placed orders to an external
// queue (Amazon SQS) so downstream consumers such as kitchen displays or
// analytics can react without polling the database.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/tbourn/go-table-order/internal/domain"
)

// TypeOrderPlaced is the event type emitted after an order is persisted.
const TypeOrderPlaced = "order.placed"

// Publisher emits order events.
type Publisher interface {
	OrderPlaced(ctx context.Context, o *domain.Order) error
}

// SQSAPI is the subset of the SQS client used by SQSPublisher.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// OrderEvent is the JSON body of an order.placed message.
type OrderEvent struct {
	Type      string             `json:"type"`
	OrderID   uint               `json:"order_id"`
	Table     string             `json:"table"`
	Total     int64              `json:"total"`
	UserID    string             `json:"user_id,omitempty"`
	Source    string             `json:"source"`
	Items     []domain.OrderLine `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}

// SQSPublisher sends order events to a single SQS queue.
type SQSPublisher struct {
	SQS      SQSAPI
	QueueURL string
}

// NewSQSPublisher returns a publisher bound to queueURL.
func NewSQSPublisher(client SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{SQS: client, QueueURL: queueURL}
}

// OrderPlaced implements Publisher.
func (p *SQSPublisher) OrderPlaced(ctx context.Context, o *domain.Order) error {
	body, err := json.Marshal(OrderEvent{
		Type:      TypeOrderPlaced,
		OrderID:   o.ID,
		Table:     o.Table,
		Total:     o.Total,
		UserID:    o.UserID,
		Source:    o.Source,
		Items:     o.Items,
		CreatedAt: o.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    sdkaws.String(p.QueueURL),
		MessageBody: sdkaws.String(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"event_type": {DataType: sdkaws.String("String"), StringValue: sdkaws.String(TypeOrderPlaced)},
			"source":     {DataType: sdkaws.String("String"), StringValue: sdkaws.String(o.Source)},
			"order_id":   {DataType: sdkaws.String("Number"), StringValue: sdkaws.String(strconv.FormatUint(uint64(o.ID), 10))},
		},
	}
	if _, err := p.SQS.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// NewSQSClient loads the default AWS configuration for region (falling back
// to us-east-1) and returns an SQS client.
func NewSQSClient(ctx context.Context, region string) (*sqs.Client, error) {
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return sqs.NewFromConfig(cfg), nil
}

// Nop discards events.
type Nop struct{}

// OrderPlaced implements Publisher.
func (Nop) OrderPlaced(context.Context, *domain.Order) error { return nil }

var (
	_ Publisher = (*SQSPublisher)(nil)
	_ Publisher = Nop{}
)
