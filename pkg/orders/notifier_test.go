package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSQSClient struct {
	mock.Mock
}

func (m *MockSQSClient) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.SendMessageOutput), args.Error(1)
}

const queueURL = "https://sqs.us-east-1.amazonaws.com/123456789012/order-events"

func TestSQSNotifier_OrderCreated(t *testing.T) {
	t.Run("publishes the created event", func(t *testing.T) {
		client := new(MockSQSClient)
		client.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			return aws.ToString(in.QueueUrl) == queueURL &&
				aws.ToString(in.MessageBody) == `{"orderId":"order-1","itemCount":2}` &&
				aws.ToString(in.MessageAttributes["eventType"].StringValue) == "OrderCreated"
		})).Return(&sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil)

		n := NewSQSNotifier(client, queueURL)
		err := n.OrderCreated(context.Background(), Order{PK: PartitionKey, SK: "order-1", Items: []any{1, 2}})

		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("wraps send errors", func(t *testing.T) {
		client := new(MockSQSClient)
		client.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

		err := NewSQSNotifier(client, queueURL).OrderCreated(context.Background(), Order{SK: "order-1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
		assert.Contains(t, err.Error(), queueURL)
	})
}
