package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/davidbz/creditledger/internal/observability"
)

const publishTimeout = 5 * time.Second

// SNSAPI is the subset of the SNS client used by the publisher.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Message is the JSON body sent to the topic.
type Message struct {
	Type       string                 `json:"type"`
	UserID     string                 `json:"user_id,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// SNSPublisher publishes ledger events to an SNS topic.
type SNSPublisher struct {
	client   SNSAPI
	topicArn string
	now      func() time.Time
}

// NewSNSPublisher loads the default AWS config for region and targets topicArn.
func NewSNSPublisher(ctx context.Context, region, topicArn string) (*SNSPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewSNSPublisherWithClient(sns.NewFromConfig(cfg), topicArn), nil
}

// NewSNSPublisherWithClient builds a publisher over an existing client.
func NewSNSPublisherWithClient(client SNSAPI, topicArn string) *SNSPublisher {
	return &SNSPublisher{
		client:   client,
		topicArn: topicArn,
		now:      time.Now,
	}
}

// Publish sends the event. Failures are logged; the ledger operation that raised
// the event has already committed.
func (p *SNSPublisher) Publish(ctx context.Context, eventType string, data map[string]interface{}) {
	logger := observability.FromContext(ctx)

	msg := Message{
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		Data:       data,
	}
	if userID, ok := data["user_id"].(string); ok {
		msg.UserID = userID
	}

	body, err := json.Marshal(msg)
	if err != nil {
		logger.Error("failed to encode event", observability.String("event_type", eventType), observability.Error(err))
		return
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(p.topicArn),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"Type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(eventType),
			},
		},
	}
	if msg.UserID != "" {
		input.MessageAttributes["UserID"] = snstypes.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(msg.UserID),
		}
	}

	// Detach from request cancellation so a finished HTTP call doesn't drop the event.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if _, err := p.client.Publish(publishCtx, input); err != nil {
		logger.Error("failed to publish event",
			observability.String("event_type", eventType),
			observability.String("topic_arn", p.topicArn),
			observability.Error(err))
		return
	}

	logger.Debug("event sent to sns", observability.String("event_type", eventType))
}
