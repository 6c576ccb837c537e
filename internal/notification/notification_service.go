package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	UnreadKeyPrefix    = "notifications:unread:"
	FeedKeyPrefix      = "notifications:feed:"
	DeliveredKeyPrefix = "notifications:delivered:"

	feedMax      = 100
	deliveredTTL = 72 * time.Hour
)

func GetUnreadKey(userID string) string {
	return UnreadKeyPrefix + userID
}

func GetFeedKey(userID string) string {
	return FeedKeyPrefix + userID
}

func GetDeliveredKey(kind, id string) string {
	return DeliveredKeyPrefix + kind + ":" + id
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Add(ctx context.Context, schoolID, userID, message string)
	NotifyDecision(ctx context.Context, schoolID, userID, action, level, studentName, leaveID string)
	NotifyEnrollment(ctx context.Context, schoolID, userID, department, studentID string)
	ListForUser(ctx context.Context, userID string) []Notification
	UnreadCount(ctx context.Context, userID string) int
	MarkAllRead(ctx context.Context, userID string)
}

// service keeps the per-user feed in Redis so every API instance and the
// consumer binary read and write the same backlog. The in-memory store is
// the fallback when Redis is not configured.
type service struct {
	store  *Store
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(store *Store, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{store: store, rdb: rdb, logger: l}
}

func (s *service) Add(ctx context.Context, schoolID, userID, message string) {
	n := Notification{
		ID:        uuid.New(),
		UserID:    userID,
		SchoolID:  schoolID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if s.rdb != nil {
		payload, err := json.Marshal(n)
		if err != nil {
			s.logger.Error("marshal notification failed", zap.Error(err))
			return
		}

		feedKey := GetFeedKey(userID)
		if err := s.rdb.LPush(ctx, feedKey, payload).Err(); err != nil {
			s.logger.Warn("push notification failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		} else {
			s.rdb.LTrim(ctx, feedKey, 0, feedMax-1)
		}

		if err := s.rdb.Incr(ctx, GetUnreadKey(userID)).Err(); err != nil {
			s.logger.Warn("increment unread counter failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
		return
	}

	if s.store != nil {
		s.store.Append(n)
	}

	s.logger.Debug("notification appended",
		zap.String("user_id", userID),
		zap.String("message", message),
	)
}

// NotifyDecision targets the student's portal account. The workflow
// service delivers it synchronously after commit and the Kafka consumer
// replays it from the outbox; the delivery claim keeps the feed and the
// unread counter at exactly one entry per (leave, level, action). The
// level is part of the claim because a request approved at Teacher and
// again at HOD is two distinct notifications.
func (s *service) NotifyDecision(ctx context.Context, schoolID, userID, action, level, studentName, leaveID string) {
	if userID == "" {
		return
	}
	if !s.claimDelivery(ctx, GetDeliveredKey("decision", leaveID+":"+level+":"+action)) {
		return
	}
	s.Add(ctx, schoolID, userID, fmt.Sprintf("%s applied to request for %s (%s)", action, studentName, leaveID))
}

// NotifyEnrollment welcomes a newly linked student account, deduped per
// roster student across the registration path and the lifecycle consumer.
func (s *service) NotifyEnrollment(ctx context.Context, schoolID, userID, department, studentID string) {
	if userID == "" {
		return
	}
	if !s.claimDelivery(ctx, GetDeliveredKey("enrollment", studentID)) {
		return
	}
	s.Add(ctx, schoolID, userID, fmt.Sprintf("enrollment confirmed in %s", department))
}

func (s *service) claimDelivery(ctx context.Context, key string) bool {
	if s.rdb == nil {
		return true
	}
	ok, err := s.rdb.SetNX(ctx, key, 1, deliveredTTL).Result()
	if err != nil {
		// Redis down: deliver rather than drop.
		s.logger.Warn("claim delivery failed", zap.String("key", key), zap.Error(err))
		return true
	}
	return ok
}

func (s *service) ListForUser(ctx context.Context, userID string) []Notification {
	if s.rdb != nil {
		vals, err := s.rdb.LRange(ctx, GetFeedKey(userID), 0, feedMax-1).Result()
		if err != nil {
			s.logger.Warn("read notification feed failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			return nil
		}

		out := make([]Notification, 0, len(vals))
		for _, v := range vals {
			var n Notification
			if json.Unmarshal([]byte(v), &n) == nil {
				out = append(out, n)
			}
		}
		return out
	}

	if s.store != nil {
		return s.store.ListForUser(userID)
	}
	return nil
}

func (s *service) UnreadCount(ctx context.Context, userID string) int {
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, GetUnreadKey(userID)).Result(); err == nil {
			if n, err := strconv.Atoi(val); err == nil {
				return n
			}
		}
		return 0
	}

	if s.store != nil {
		return s.store.UnreadCount(userID)
	}
	return 0
}

func (s *service) MarkAllRead(ctx context.Context, userID string) {
	if s.rdb != nil {
		feedKey := GetFeedKey(userID)

		vals, err := s.rdb.LRange(ctx, feedKey, 0, feedMax-1).Result()
		if err == nil && len(vals) > 0 {
			marked := make([]interface{}, 0, len(vals))
			for _, v := range vals {
				var n Notification
				if json.Unmarshal([]byte(v), &n) != nil {
					continue
				}
				n.Read = true
				if payload, err := json.Marshal(n); err == nil {
					marked = append(marked, payload)
				}
			}
			s.rdb.Del(ctx, feedKey)
			if len(marked) > 0 {
				s.rdb.RPush(ctx, feedKey, marked...)
			}
		}

		if err := s.rdb.Del(ctx, GetUnreadKey(userID)).Err(); err != nil {
			s.logger.Warn("reset unread counter failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
		return
	}

	if s.store != nil {
		s.store.MarkAllRead(userID)
	}
}
