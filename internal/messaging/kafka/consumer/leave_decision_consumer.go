package consumer

import (
	"context"
	"encoding/json"

	"campus-portal/internal/events"
	"campus-portal/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveDecisions delivers workflow decisions to the requesting
// student's notification feed, so every API instance sees decisions made
// on any other instance. Delivery is keyed by the student's portal account
// id carried on the event; events for students without an account are
// committed and skipped.
func ConsumeLeaveDecisions(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decisions")
	log.Info("leave decisions consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decisions consumer stopped")
				return
			}
			log.Error("fetch leave decision message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecisionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decision event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.StudentUserID == "" {
			log.Debug("leave decision without portal account skipped",
				zap.String("leave_id", event.LeaveID),
				zap.String("student_id", event.StudentID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		notificationService.NotifyDecision(
			ctx,
			event.SchoolID,
			event.StudentUserID,
			event.Action,
			event.Level,
			event.StudentName,
			event.LeaveID,
		)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decision message failed", zap.Error(err))
			continue
		}

		log.Info("leave decision delivered",
			zap.String("leave_id", event.LeaveID),
			zap.String("user_id", event.StudentUserID),
			zap.String("action", event.Action),
		)
	}
}
