package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"loremaker-codex-be/internal/dto"
	"loremaker-codex-be/internal/pkg/logger"
	"loremaker-codex-be/internal/websocket"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService reacts to roster refresh messages: it drops the
// memoised derived views and pushes the event to connected viewers.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	codex     ICodexService
	hub       *websocket.Hub
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	codex ICodexService,
	hub *websocket.Hub,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		codex:     codex,
		hub:       hub,
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
	var event dto.RosterRefreshedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal refresh event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.codex.InvalidateDerived()

	if cs.hub != nil {
		cs.hub.Broadcast("roster_refreshed", event)
	}

	cs.logger.Info("ConsumerService", "Roster refresh processed", map[string]interface{}{
		"load_id": event.LoadId,
		"source":  event.Source,
		"count":   event.Count,
	})
	msg.Ack()
}
