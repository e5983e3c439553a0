package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/config"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store/memory"
)

func testNotifierConfig() *config.Config {
	return &config.Config{
		Notifier: config.Notifier{
			MaxMessages:     10,
			WaitTimeSeconds: 1,
			BufferSize:      100,
		},
	}
}

func TestNotifier_Start_PipelineCoordination(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	documentStore := memory.New()
	log := zap.NewNop()

	mockConsumer.On("QueueURL").Return("https://sqs.us-east-2.amazonaws.com/123/announcements")

	messages := []types.Message{
		{
			MessageId:     aws.String("msg-1"),
			Body:          aws.String(`{"event_id": "e1", "event_name": "Hack Night", "action": "approved", "platforms": ["discord"], "start_time": "2024-01-05T18:00:00Z"}`),
			ReceiptHandle: aws.String("receipt-1"),
		},
	}

	mockConsumer.On("ReceiveMessages", mock.Anything, mock.AnythingOfType("*sqs.ReceiveMessageInput")).
		Return(&sqs.ReceiveMessageOutput{Messages: messages}, nil).Once()
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.AnythingOfType("*sqs.ReceiveMessageInput")).
		Return(&sqs.ReceiveMessageOutput{Messages: []types.Message{}}, nil).Maybe()
	mockConsumer.On("DeleteMessage", mock.Anything, mock.AnythingOfType("*sqs.DeleteMessageInput")).
		Return(&sqs.DeleteMessageOutput{}, nil)

	n := New(testNotifierConfig(), mockConsumer, documentStore, log)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := n.Start(ctx)
	assert.NoError(t, err)

	page, err := documentStore.QueryPage(context.Background(), store.Query{
		Collection: "announcements",
		OrderBy:    store.OrderBy{Field: "platform", Direction: store.Ascending},
	})
	assert.NoError(t, err)
	assert.Len(t, page.Documents, 1)
	assert.Equal(t, "e1", page.Documents[0].Data["eventId"])
	assert.Equal(t, "discord", page.Documents[0].Data["platform"])

	// The message was acked once dispatched.
	mockConsumer.AssertCalled(t, "DeleteMessage", mock.Anything, mock.AnythingOfType("*sqs.DeleteMessageInput"))
}

func TestNotifier_Start_GracefulShutdown(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	log := zap.NewNop()

	mockConsumer.On("QueueURL").Return("https://sqs.us-east-2.amazonaws.com/123/announcements").Maybe()
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.AnythingOfType("*sqs.ReceiveMessageInput")).
		Return(&sqs.ReceiveMessageOutput{Messages: []types.Message{}}, nil).Maybe()

	n := New(testNotifierConfig(), mockConsumer, memory.New(), log)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool)
	go func() {
		err := n.Start(ctx)
		assert.NoError(t, err)
		done <- true
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
		// Shutdown completed successfully
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Graceful shutdown took too long")
	}
}

func TestNotifier_New_ComponentInitialization(t *testing.T) {
	n := New(testNotifierConfig(), new(MockQueueConsumer), memory.New(), zap.NewNop())

	assert.NotNil(t, n)
	assert.NotNil(t, n.receiver)
	assert.NotNil(t, n.parser)
	assert.NotNil(t, n.dispatcher)
}

func TestNotifier_Start_EmptyQueue(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	documentStore := memory.New()
	log := zap.NewNop()

	mockConsumer.On("QueueURL").Return("https://sqs.us-east-2.amazonaws.com/123/announcements")
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.AnythingOfType("*sqs.ReceiveMessageInput")).
		Return(&sqs.ReceiveMessageOutput{Messages: []types.Message{}}, nil).Maybe()

	n := New(testNotifierConfig(), mockConsumer, documentStore, log)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := n.Start(ctx)
	assert.NoError(t, err)

	page, err := documentStore.QueryPage(context.Background(), store.Query{
		Collection: "announcements",
		OrderBy:    store.OrderBy{Field: "platform", Direction: store.Ascending},
	})
	assert.NoError(t, err)
	assert.Empty(t, page.Documents)
}
