package consumer

import (
	"context"
	"encoding/json"

	"campus-portal/internal/events"
	"campus-portal/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// AccountResolver maps a roster student to their portal account id,
// returning "" when the student has not registered yet.
type AccountResolver func(ctx context.Context, schoolID, studentID string) (string, error)

// ConsumeStudentLifecycle welcomes newly enrolled students with a
// notification once the enrollment event lands on the broker. Enrollment
// usually precedes registration, so students without an account yet are
// committed and skipped; the registration path delivers the welcome in
// that case, deduped per roster student.
func ConsumeStudentLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	resolveAccount AccountResolver,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.student_lifecycle")
	log.Info("student lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("student lifecycle consumer stopped")
				return
			}
			log.Error("fetch student lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.StudentEnrolledEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode student_enrolled event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		userID, err := resolveAccount(ctx, event.SchoolID, event.StudentID)
		if err != nil {
			log.Error("resolve student account failed",
				zap.String("student_id", event.StudentID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if userID == "" {
			log.Debug("enrolled student has no portal account yet",
				zap.String("student_id", event.StudentID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		notificationService.NotifyEnrollment(ctx, event.SchoolID, userID, event.Department, event.StudentID)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit student lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("student enrollment notification delivered",
			zap.String("student_id", event.StudentID),
			zap.String("user_id", userID),
		)
	}
}
