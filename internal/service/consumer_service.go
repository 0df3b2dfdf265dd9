package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-chat-be/internal/dto"
	"ai-chat-be/pkg/retention"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains queued sweep jobs. The interval pass enqueues one
// job per auto-delete user; every job runs the same sweep the write paths
// trigger opportunistically.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sweeper   *retention.Sweeper
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sweeper *retention.Sweeper,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		sweeper:   sweeper,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SweepUserMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal sweep message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	deleted, err := cs.sweeper.Sweep(ctx, payload.UserId)
	if err != nil {
		log.Printf("[ERROR] Sweep failed for user %s: %v", payload.UserId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	if deleted > 0 {
		log.Printf("[INFO] Sweep deleted %d expired sessions for user %s", deleted, payload.UserId)
	}
	msg.Ack()
}
