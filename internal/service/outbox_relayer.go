package service

import (
	"context"
	"time"

	"eventhub/internal/model"
	"eventhub/internal/pkg"
	"eventhub/internal/repository/mysql"

	"github.com/rs/zerolog/log"
)

// Sender delivers one outbox row to the transport.
type Sender func(ctx context.Context, ob *model.Outbox) error

// OutboxRelayer drains pending outbox rows on a fixed interval and hands them
// to the sender. Failed rows are marked for retry, not redelivered in-batch.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(repo *mysql.OutboxRepository, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		log.Error().Err(err).Msg("outbox query failed")
		return
	}
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			log.Warn().Err(err).Uint64("id", ob.ID).Str("type", ob.EventType).Msg("outbox send failed")
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// KafkaSender keys messages by subject id so events for one aggregate stay
// ordered.
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.Outbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.SubjectID), []byte(ob.Payload))
	}
}

// LogSender is the fallback when no brokers are configured.
func LogSender(ctx context.Context, ob *model.Outbox) error {
	log.Info().
		Str("type", ob.EventType).
		Uint64("user_id", ob.UserID).
		Uint64("subject_id", ob.SubjectID).
		RawJSON("payload", []byte(ob.Payload)).
		Msg("outbox event")
	return nil
}
