package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/queue"
)

// JSONAnnouncementParser implements MessageParser for JSON-formatted
// announcement messages
type JSONAnnouncementParser struct{}

// NewJSONAnnouncementParser creates a new JSON announcement parser
func NewJSONAnnouncementParser() *JSONAnnouncementParser {
	return &JSONAnnouncementParser{}
}

// Parse parses a JSON message body into an Announcement
func (p *JSONAnnouncementParser) Parse(body []byte) (*domain.Announcement, error) {
	var announcement domain.Announcement
	if err := json.Unmarshal(body, &announcement); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	if announcement.EventID == "" {
		return nil, fmt.Errorf("announcement is missing event_id")
	}
	if len(announcement.Platforms) == 0 {
		return nil, fmt.Errorf("announcement has no platforms")
	}

	return &announcement, nil
}

// ParserStage handles parsing SQS messages into announcement envelopes
type ParserStage struct {
	consumer queue.QueueConsumer
	parser   MessageParser
	log      *zap.Logger
}

// NewParserStage creates a new parser stage
func NewParserStage(consumer queue.QueueConsumer, parser MessageParser, log *zap.Logger) *ParserStage {
	return &ParserStage{
		consumer: consumer,
		parser:   parser,
		log:      log,
	}
}

// Start begins parsing messages and outputs envelopes
func (p *ParserStage) Start(ctx context.Context, in <-chan types.Message, out chan<- *Envelope) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("Parser stage shutting down")
			return
		case msg, ok := <-in:
			if !ok {
				p.log.Info("Parser stage input channel closed")
				return
			}

			envelope := p.parseMessage(ctx, msg)
			if envelope == nil {
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- envelope:
				// Envelope sent to next stage
			}
		}
	}
}

// parseMessage parses a single SQS message into an envelope. Malformed
// messages are deleted so they do not cycle back forever.
func (p *ParserStage) parseMessage(ctx context.Context, msg types.Message) *Envelope {
	body := aws.ToString(msg.Body)
	announcement, err := p.parser.Parse([]byte(body))

	if err != nil {
		p.log.Warn("Failed to parse message",
			zap.String("message_id", aws.ToString(msg.MessageId)),
			zap.Error(err))
		if err := p.deleteMessage(ctx, msg); err != nil {
			p.log.Error("Failed to delete malformed message",
				zap.String("message_id", aws.ToString(msg.MessageId)),
				zap.Error(err))
		}
		return nil
	}

	ack := func(ctx context.Context) error {
		return p.deleteMessage(ctx, msg)
	}

	nack := func(ctx context.Context) error {
		// Left in the queue; visibility timeout returns it for redelivery.
		return nil
	}

	return NewEnvelope(announcement, ack, nack)
}

// deleteMessage deletes a message from SQS
func (p *ParserStage) deleteMessage(ctx context.Context, msg types.Message) error {
	_, err := p.consumer.DeleteMessage(ctx, &awssqs.DeleteMessageInput{
		QueueUrl:      aws.String(p.consumer.QueueURL()),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		p.log.Error("Failed to delete message",
			zap.String("message_id", aws.ToString(msg.MessageId)),
			zap.Error(err))
		return err
	}
	return nil
}
