package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSClient define apenas o que precisamos do SQS (permite mocking).
type SQSClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

var _ SQSClient = (*sqs.Client)(nil)

// CreatedEvent é o corpo da mensagem publicada para cada pedido criado.
type CreatedEvent struct {
	OrderID   string `json:"orderId"`
	ItemCount int    `json:"itemCount"`
}

// SQSNotifier publica um CreatedEvent na fila configurada.
type SQSNotifier struct {
	client   SQSClient
	queueURL string
}

func NewSQSNotifier(client SQSClient, queueURL string) *SQSNotifier {
	return &SQSNotifier{client: client, queueURL: queueURL}
}

func (n *SQSNotifier) OrderCreated(ctx context.Context, order Order) error {
	body, err := json.Marshal(CreatedEvent{OrderID: order.SK, ItemCount: len(order.Items)})
	if err != nil {
		return fmt.Errorf("orders: encode event: %w", err)
	}

	_, err = n.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(n.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("OrderCreated"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("orders: send to %s: %w", n.queueURL, err)
	}
	return nil
}
