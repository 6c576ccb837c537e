package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"campus-portal/internal/auth"
	autherrors "campus-portal/internal/auth/errors"
	"campus-portal/internal/domain"
	"campus-portal/internal/notification"
	"campus-portal/internal/student"
	studenterrors "campus-portal/internal/student/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepository struct {
	createFn         func(ctx context.Context, user *auth.User) error
	getByEmailFn     func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*auth.User, error)
	getByStudentIDFn func(ctx context.Context, studentID uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByStudentID(ctx context.Context, studentID uuid.UUID) (*auth.User, error) {
	if f.getByStudentIDFn != nil {
		return f.getByStudentIDFn(ctx, studentID)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRbacService struct {
	loadSchoolPolicyFn func(schoolID string) error
	loadedSchools      []string
}

func (f *fakeRbacService) LoadSchoolPolicy(schoolID string) error {
	f.loadedSchools = append(f.loadedSchools, schoolID)
	if f.loadSchoolPolicyFn != nil {
		return f.loadSchoolPolicyFn(schoolID)
	}
	return nil
}

func (f *fakeRbacService) Enforce(req domain.EnforceRequest) (bool, error) { return true, nil }
func (f *fakeRbacService) AssignRoleToUser(schoolID, userID, roleName string) error {
	return nil
}
func (f *fakeRbacService) ListRoles(schoolID string) ([]domain.RoleResponse, error) {
	return nil, nil
}
func (f *fakeRbacService) GetRole(id string) (*domain.RoleResponse, error) { return nil, nil }
func (f *fakeRbacService) CreateRole(schoolID string, req domain.CreateRoleRequest) (*domain.RoleResponse, error) {
	return nil, nil
}
func (f *fakeRbacService) UpdateRole(id string, req domain.UpdateRoleRequest) (*domain.RoleResponse, error) {
	return nil, nil
}
func (f *fakeRbacService) DeleteRole(id string) error                            { return nil }
func (f *fakeRbacService) ListPermissions() ([]domain.PermissionResponse, error) { return nil, nil }

type fakeStudentRepository struct {
	findByIDFn func(ctx context.Context, id string) (*student.Student, error)
}

func (f *fakeStudentRepository) WithTx(tx *sql.Tx) student.Repository { return f }
func (f *fakeStudentRepository) Create(ctx context.Context, st *student.Student) error {
	return nil
}
func (f *fakeStudentRepository) FindAllBySchool(ctx context.Context, schoolID string) ([]student.Student, error) {
	return nil, nil
}
func (f *fakeStudentRepository) FindOptionsBySchool(ctx context.Context, schoolID string) ([]student.Student, error) {
	return nil, nil
}
func (f *fakeStudentRepository) FindByIDAndSchool(ctx context.Context, schoolID string, id string) (*student.Student, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepository) FindByID(ctx context.Context, id string) (*student.Student, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepository) FindByScope(ctx context.Context, schoolID, department, year, sem, div string) ([]student.Student, error) {
	return nil, nil
}
func (f *fakeStudentRepository) Update(ctx context.Context, st *student.Student) error { return nil }
func (f *fakeStudentRepository) Delete(ctx context.Context, schoolID string, id string) error {
	return nil
}

type fakeWelcomeNotifier struct {
	mu       sync.Mutex
	welcomed []string
}

func (f *fakeWelcomeNotifier) Add(ctx context.Context, schoolID, userID, message string) {}
func (f *fakeWelcomeNotifier) NotifyDecision(ctx context.Context, schoolID, userID, action, level, studentName, leaveID string) {
}

func (f *fakeWelcomeNotifier) NotifyEnrollment(ctx context.Context, schoolID, userID, department, studentID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomed = append(f.welcomed, userID)
}

func (f *fakeWelcomeNotifier) ListForUser(ctx context.Context, userID string) []notification.Notification {
	return nil
}
func (f *fakeWelcomeNotifier) UnreadCount(ctx context.Context, userID string) int { return 0 }
func (f *fakeWelcomeNotifier) MarkAllRead(ctx context.Context, userID string)     {}

type authServiceDeps struct {
	service  auth.Service
	repo     *fakeAuthRepository
	rbac     *fakeRbacService
	students *fakeStudentRepository
	notifier *fakeWelcomeNotifier
}

func setupAuthServiceTest(t *testing.T) *authServiceDeps {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	repo := &fakeAuthRepository{}
	rbacSvc := &fakeRbacService{}
	students := &fakeStudentRepository{}
	notifier := &fakeWelcomeNotifier{}
	svc := auth.NewService(repo, rbacSvc, students, notifier)

	return &authServiceDeps{
		service:  svc,
		repo:     repo,
		rbac:     rbacSvc,
		students: students,
		notifier: notifier,
	}
}

func activeUser(password string) *auth.User {
	pw, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return &auth.User{
		ID:         uuid.New(),
		SchoolID:   uuid.New(),
		Email:      "asha@school.example",
		Name:       "Asha Verma",
		Password:   string(pw),
		Role:       "Student",
		Department: "CS",
		IsActive:   true,
	}
}

func parseClaims(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	return claims
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	password := "password123"

	t.Run("success tokens carry account id school and role", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		user := activeUser(password)
		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			assert.Equal(t, user.Email, email)
			return user, nil
		}

		accessToken, refreshToken, resp, err := deps.service.Login(ctx, user.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, user.ID.String(), resp.ID)
		assert.Equal(t, []string{user.SchoolID.String()}, deps.rbac.loadedSchools)

		claims := parseClaims(t, accessToken)
		assert.Equal(t, user.ID.String(), claims["user_id"])
		assert.Equal(t, user.SchoolID.String(), claims["school_id"])
		assert.Equal(t, "Student", claims["role"])
		assert.Equal(t, "CS", claims["department"])
	})

	t.Run("negative unknown email", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, _, _, err := deps.service.Login(ctx, "nobody@school.example", password)

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		user := activeUser(password)
		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		}

		_, _, _, err := deps.service.Login(ctx, user.Email, "wrongpass")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative disabled account", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		user := activeUser(password)
		user.IsActive = false
		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		}

		_, _, _, err := deps.service.Login(ctx, user.Email, password)

		assert.ErrorIs(t, err, autherrors.ErrAccountDisabled)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	password := "password123"

	t.Run("success round trip issues fresh pair", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		user := activeUser(password)
		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		}
		deps.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			assert.Equal(t, user.ID, id)
			return user, nil
		}

		_, refreshToken, _, err := deps.service.Login(ctx, user.Email, password)
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := deps.service.RefreshToken(ctx, refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.ID.String(), resp.ID)
		assert.Equal(t, user.ID.String(), parseClaims(t, newAccess)["user_id"])
	})

	t.Run("negative garbage token", func(t *testing.T) {
		deps := setupAuthServiceTest(t)

		_, _, _, err := deps.service.RefreshToken(ctx, "not-a-token")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative token signed with another secret", func(t *testing.T) {
		deps := setupAuthServiceTest(t)

		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": uuid.New().String(),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := forged.SignedString([]byte("other-secret"))
		assert.NoError(t, err)

		_, _, _, err = deps.service.RefreshToken(ctx, tokenString)

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative user gone", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		user := activeUser(password)
		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		}
		deps.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, refreshToken, _, err := deps.service.Login(ctx, user.Email, password)
		assert.NoError(t, err)

		_, _, _, err = deps.service.RefreshToken(ctx, refreshToken)

		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()

	t.Run("success student link copies roster scope and welcomes account", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		rosterID := uuid.New()
		deps.students.findByIDFn = func(ctx context.Context, id string) (*student.Student, error) {
			assert.Equal(t, rosterID.String(), id)
			return &student.Student{
				ID:         rosterID,
				SchoolID:   schoolID,
				FullName:   "Asha Verma",
				Department: "CS",
				Year:       "2",
				Sem:        "4",
				Div:        "A",
			}, nil
		}

		var created *auth.User
		deps.repo.createFn = func(ctx context.Context, user *auth.User) error {
			created = user
			return nil
		}

		resp, err := deps.service.Register(ctx, auth.RegisterRequest{
			SchoolID:  uuid.New().String(),
			StudentID: rosterID.String(),
			Email:     "asha@school.example",
			Name:      "Asha Verma",
			Password:  "password123",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Student", resp.Role)
		assert.Equal(t, schoolID.String(), resp.SchoolID)
		assert.Equal(t, rosterID.String(), resp.StudentID)
		assert.Equal(t, "CS", resp.Department)
		assert.Equal(t, "4", resp.Sem)

		// The welcome lands on the account id the feed endpoints read
		// with, not the roster id.
		assert.Len(t, deps.notifier.welcomed, 1)
		assert.Equal(t, created.ID.String(), deps.notifier.welcomed[0])
		assert.NotEqual(t, rosterID.String(), deps.notifier.welcomed[0])
	})

	t.Run("success staff account without roster link", func(t *testing.T) {
		deps := setupAuthServiceTest(t)

		resp, err := deps.service.Register(ctx, auth.RegisterRequest{
			SchoolID:   schoolID.String(),
			Email:      "hod.cs@school.example",
			Name:       "Meera Nair",
			Password:   "password123",
			Role:       "HOD",
			Department: "CS",
		})

		assert.NoError(t, err)
		assert.Equal(t, "HOD", resp.Role)
		assert.Empty(t, resp.StudentID)
		assert.Empty(t, deps.notifier.welcomed)
	})

	t.Run("negative roster entry missing", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		deps.students.findByIDFn = func(ctx context.Context, id string) (*student.Student, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Register(ctx, auth.RegisterRequest{
			SchoolID:  schoolID.String(),
			StudentID: uuid.New().String(),
			Email:     "ghost@school.example",
			Name:      "Ghost",
			Password:  "password123",
		})

		assert.ErrorIs(t, err, studenterrors.ErrStudentNotFound)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		deps.repo.createFn = func(ctx context.Context, user *auth.User) error {
			return errors.New("duplicate key value violates unique constraint")
		}

		_, err := deps.service.Register(ctx, auth.RegisterRequest{
			SchoolID: schoolID.String(),
			Email:    "asha@school.example",
			Name:     "Asha Verma",
			Password: "password123",
		})

		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}
