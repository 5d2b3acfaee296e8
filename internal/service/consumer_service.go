package service

import (
	"context"
	"encoding/json"

	"voicedraft-be/internal/dto"
	"voicedraft-be/internal/pkg/logger"
	"voicedraft-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains document snapshots off the in-process bus and
// persists them. Writes go through UpdateSnapshot, which drops anything
// older than the stored sequence, so redelivery and reordering are safe.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		log:        log,
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
	var payload dto.DocumentSnapshot
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("snapshot_consumer", "failed to unmarshal snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never get better on retry
		return
	}

	sessionID, err := uuid.Parse(payload.SessionId)
	if err != nil {
		cs.log.Error("snapshot_consumer", "snapshot carries invalid session id", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DictationSessionRepository().UpdateSnapshot(ctx, sessionID, payload.Document, payload.Seq); err != nil {
		cs.log.Error("snapshot_consumer", "failed to persist snapshot", map[string]interface{}{
			"session_id": payload.SessionId,
			"seq":        payload.Seq,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
