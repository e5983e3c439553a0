package notifier

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/config"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/queue"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

// Notifier orchestrates a pipeline of stages that turn queued announcement
// messages into per-platform announcement documents
type Notifier struct {
	receiver   *Receiver
	parser     *ParserStage
	dispatcher *Dispatcher
	bufferSize int
}

// New creates a new notifier with a pipeline architecture
func New(cfg *config.Config, queueConsumer queue.QueueConsumer, storeClient store.Client, log *zap.Logger) *Notifier {
	receiver := NewReceiver(queueConsumer, ReceiverConfig{
		MaxMessages:     int32(cfg.Notifier.MaxMessages),
		WaitTimeSeconds: int32(cfg.Notifier.WaitTimeSeconds),
		BufferSize:      cfg.Notifier.BufferSize,
	}, log)

	parser := NewParserStage(queueConsumer, NewJSONAnnouncementParser(), log)

	dispatcher := NewDispatcher(storeClient, log)

	return &Notifier{
		receiver:   receiver,
		parser:     parser,
		dispatcher: dispatcher,
		bufferSize: cfg.Notifier.BufferSize,
	}
}

// Start begins the notifier pipeline
func (n *Notifier) Start(ctx context.Context) error {
	messageChan := make(chan types.Message, n.bufferSize)
	envelopeChan := make(chan *Envelope, n.bufferSize)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		n.receiver.Start(ctx, messageChan)
	}()

	go func() {
		defer wg.Done()
		n.parser.Start(ctx, messageChan, envelopeChan)
	}()

	go func() {
		defer wg.Done()
		n.dispatcher.Start(ctx, envelopeChan)
	}()

	wg.Wait()
	return nil
}
