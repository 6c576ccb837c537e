package auth

import (
	"context"
	"os"
	"time"

	autherrors "campus-portal/internal/auth/errors"
	"campus-portal/internal/notification"
	"campus-portal/internal/rbac"
	"campus-portal/internal/student"
	studenterrors "campus-portal/internal/student/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)

	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	repo        Repository
	rbac        rbac.Service
	studentRepo student.Repository
	notifier    notification.Service
}

func NewService(repo Repository, rbac rbac.Service, studentRepo student.Repository, notifier notification.Service) Service {
	return &service{repo: repo, rbac: rbac, studentRepo: studentRepo, notifier: notifier}
}

func (s *service) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountDisabled
	}

	// Warm the casbin policy for this school so the first authorized
	// request does not pay the load cost.
	if err := s.rbac.LoadSchoolPolicy(user.SchoolID.String()); err != nil {
		return "", "", AuthResponse{}, err
	}

	accessToken, err = s.generateToken(user, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err = s.generateToken(user, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, mapUserToResponse(user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	newAccessToken, err := s.generateToken(user, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	newRefreshToken, err := s.generateToken(user, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, mapUserToResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := mapUserToResponse(u)
	return &resp, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = "Student"
	}

	user := &User{
		ID:         uuid.New(),
		SchoolID:   uuid.MustParse(req.SchoolID),
		Email:      req.Email,
		Name:       req.Name,
		Password:   string(hashed),
		Role:       role,
		Department: req.Department,
		Year:       req.Year,
		Sem:        req.Sem,
		Div:        req.Div,
		IsActive:   true,
	}

	// A student account must point at an existing roster entry; the roster
	// row is the source of truth for the academic scope.
	if req.StudentID != "" {
		sID, err := uuid.Parse(req.StudentID)
		if err != nil {
			return AuthResponse{}, studenterrors.ErrInvalidStudentID
		}
		st, err := s.studentRepo.FindByID(ctx, sID.String())
		if err != nil {
			return AuthResponse{}, studenterrors.ErrStudentNotFound
		}
		user.StudentID = &sID
		user.SchoolID = st.SchoolID
		user.Department = st.Department
		user.Year = st.Year
		user.Sem = st.Sem
		user.Div = st.Div
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	if err := s.rbac.LoadSchoolPolicy(user.SchoolID.String()); err != nil {
		return AuthResponse{}, err
	}

	// Students enrolled before they register miss the broker-driven
	// welcome, so deliver it here; the per-student claim stops a second
	// copy when the consumer already delivered one.
	if s.notifier != nil && user.StudentID != nil {
		s.notifier.NotifyEnrollment(ctx, user.SchoolID.String(), user.ID.String(), user.Department, user.StudentID.String())
	}

	return mapUserToResponse(user), nil
}

// reusable token generator
func (s *service) generateToken(user *User, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID.String(),
		"school_id":  user.SchoolID.String(),
		"role":       user.Role,
		"department": user.Department,
		"exp":        time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapUserToResponse(u *User) AuthResponse {
	resp := AuthResponse{
		ID:         u.ID.String(),
		SchoolID:   u.SchoolID.String(),
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
		Year:       u.Year,
		Sem:        u.Sem,
		Div:        u.Div,
	}
	if u.StudentID != nil {
		resp.StudentID = u.StudentID.String()
	}
	return resp
}
