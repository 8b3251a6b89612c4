package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/creditledger/internal/events"
	"github.com/davidbz/creditledger/internal/mocks"
)

type fakeSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSNSPublisher_Publish(t *testing.T) {
	client := &fakeSNS{}
	publisher := events.NewSNSPublisherWithClient(client, "arn:aws:sns:us-east-1:123456789012:ledger")

	publisher.Publish(context.Background(), "balance.transaction.recorded", map[string]interface{}{
		"user_id": "user-1",
		"amount":  "-15",
	})

	require.Len(t, client.inputs, 1)
	input := client.inputs[0]
	require.Equal(t, "arn:aws:sns:us-east-1:123456789012:ledger", aws.ToString(input.TopicArn))
	require.Equal(t, "balance.transaction.recorded", aws.ToString(input.MessageAttributes["Type"].StringValue))
	require.Equal(t, "user-1", aws.ToString(input.MessageAttributes["UserID"].StringValue))

	var msg events.Message
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(input.Message)), &msg))
	require.Equal(t, "balance.transaction.recorded", msg.Type)
	require.Equal(t, "user-1", msg.UserID)
	require.Equal(t, "-15", msg.Data["amount"])
	require.False(t, msg.OccurredAt.IsZero())
}

func TestSNSPublisher_PublishWithoutUser(t *testing.T) {
	client := &fakeSNS{}
	publisher := events.NewSNSPublisherWithClient(client, "arn")

	publisher.Publish(context.Background(), "catalog.reloaded", nil)

	require.Len(t, client.inputs, 1)
	_, hasUser := client.inputs[0].MessageAttributes["UserID"]
	require.False(t, hasUser)
}

func TestSNSPublisher_ErrorIsSwallowed(t *testing.T) {
	client := &fakeSNS{err: errors.New("throttled")}
	publisher := events.NewSNSPublisherWithClient(client, "arn")

	require.NotPanics(t, func() {
		publisher.Publish(context.Background(), "balance.insufficient", map[string]interface{}{"user_id": "u"})
	})
	require.Len(t, client.inputs, 1)
}

func TestFanout(t *testing.T) {
	first := mocks.NewMockEventPublisher(t)
	second := mocks.NewMockEventPublisher(t)
	data := map[string]interface{}{"user_id": "u"}

	first.EXPECT().Publish(context.Background(), "balance.insufficient", data).Return().Once()
	second.EXPECT().Publish(context.Background(), "balance.insufficient", data).Return().Once()

	events.Fanout{first, nil, second}.Publish(context.Background(), "balance.insufficient", data)
}
