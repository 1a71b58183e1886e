package service

import (
	"context"
	"encoding/json"

	"ai-docauthor-be/internal/dto"
	"ai-docauthor-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process ingestion topic and writes an audit
// record for every file that finished indexing.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.FileIngestedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal ingestion message", map[string]interface{}{"error": err.Error()})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	cs.logger.Info("consumer", "File ingestion completed", map[string]interface{}{
		"file_id":         payload.FileId,
		"vector_store_id": payload.VectorStoreId,
		"filename":        payload.Filename,
	})

	msg.Ack()
}
