package app

import (
	"database/sql"
	"path/filepath"

	"campus-portal/internal/attendance"
	"campus-portal/internal/auth"
	"campus-portal/internal/batch"
	"campus-portal/internal/leaverequest"
	"campus-portal/internal/messaging/kafka"
	"campus-portal/internal/notification"
	"campus-portal/internal/rbac"
	"campus-portal/internal/rbac/infra"
	"campus-portal/internal/result"
	"campus-portal/internal/school"
	"campus-portal/internal/shared/counter"
	"campus-portal/internal/student"
	"campus-portal/internal/subject"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	batchRepo := batch.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	leaveRepo := leaverequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	resultRepo := result.NewRepository(gormDB)
	schoolRepo := school.NewRepository(gormDB)
	studentRepo := student.NewRepository(gormDB)
	subjectRepo := subject.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	notificationStore := notification.NewStore()
	notificationService := notification.NewService(notificationStore, rdb)
	authService := auth.NewService(authRepo, rbacService, studentRepo, notificationService)
	attendanceService := attendance.NewService(db, attendanceRepo)
	batchService := batch.NewService(db, batchRepo)
	resultService := result.NewService(db, resultRepo)
	schoolService := school.NewService(schoolRepo)
	studentService := student.NewServiceWithOutbox(db, studentRepo, counterRepo, outboxRepo, rdb)
	subjectService := subject.NewService(db, subjectRepo, rdb)

	profiles := NewProfileResolver(authRepo, studentRepo)
	leaveService := leaverequest.NewService(db, leaveRepo, outboxRepo, notificationService, profiles)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	batchHandler := batch.NewHandler(batchService)
	leaveHandler := leaverequest.NewHandler(leaveService)
	notificationHandler := notification.NewHandler(notificationService)
	rbacHandler := rbac.NewHandler(rbacService)
	resultHandler := result.NewHandler(resultService)
	schoolHandler := school.NewHandler(schoolService)
	studentHandler := student.NewHandler(studentService)
	subjectHandler := subject.NewHandler(subjectService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		batch.RegisterRoutes(api, batchHandler, rbacService)
		leaverequest.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		result.RegisterRoutes(api, resultHandler, rbacService, rdb)
		school.RegisterRoutes(api, schoolHandler, rbacService)
		student.RegisterRoutes(api, studentHandler, rbacService, logger)
		subject.RegisterRoutes(api, subjectHandler, rbacService)
	}

	return nil
}
