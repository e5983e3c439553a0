package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
)

// AnnouncementPublisher defines the interface for publishing event
// announcements to a queue
type AnnouncementPublisher interface {
	PublishAnnouncement(ctx context.Context, announcement *domain.Announcement) error
}

// QueueConsumer defines the interface for consuming messages from a queue
type QueueConsumer interface {
	ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
	QueueURL() string
}
