package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"campus-portal/internal/auth"
	"campus-portal/internal/events"
	"campus-portal/internal/messaging/kafka/consumer"
	"campus-portal/internal/notification"
	"campus-portal/internal/shared/connection"
	"campus-portal/internal/student"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer subscribes to the lifecycle topics and feeds the shared
// Redis-backed notification service until signalled. The API instances
// serve the feed this process writes.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	defer rdb.Close()

	notificationService := notification.NewService(nil, rdb)

	authRepo := auth.NewRepository(gormDB)
	studentRepo := student.NewRepository(gormDB)
	profiles := NewProfileResolver(authRepo, studentRepo)

	decisionsReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.LeaveDecisionsTopic,
		GroupID:        "campus-portal-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer decisionsReader.Close()

	lifecycleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.StudentLifecycleTopic,
		GroupID:        "campus-portal-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer lifecycleReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveDecisions(ctx, decisionsReader, notificationService, logger)
	go consumer.ConsumeStudentLifecycle(ctx, lifecycleReader, notificationService, profiles.ResolveStudentAccount, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
