package repairq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSQueue implements the Queue interface using AWS SQS.
type SQSQueue struct {
	Client   *sqs.Client
	QueueURL string
}

// NewSQSQueue creates a new SQSQueue.
func NewSQSQueue(client *sqs.Client, queueURL string) *SQSQueue {
	return &SQSQueue{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Queue = (*SQSQueue)(nil)

// EnqueueRepair sends the task to an SQS queue for the repair worker.
func (q *SQSQueue) EnqueueRepair(ctx context.Context, task *Task) error {
	// Marshal the task to JSON.
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal repair task for SQS: %w", err)
	}

	// Send the message to SQS.
	_, err = q.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.QueueURL),
		MessageBody: aws.String(string(body)),
	})

	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
