package rbac

import (
	"sync"

	"campus-portal/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadSchoolPolicy(schoolID string) error
	Enforce(req domain.EnforceRequest) (bool, error)
	AssignRoleToUser(schoolID, userID, roleName string) error

	ListRoles(schoolID string) ([]domain.RoleResponse, error)
	GetRole(id string) (*domain.RoleResponse, error)
	CreateRole(schoolID string, req domain.CreateRoleRequest) (*domain.RoleResponse, error)
	UpdateRole(id string, req domain.UpdateRoleRequest) (*domain.RoleResponse, error)
	DeleteRole(id string) error
	ListPermissions() ([]domain.PermissionResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadSchoolPolicy(schoolID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadSchoolPolicyUnlocked(schoolID)
}

func (s *service) loadSchoolPolicyUnlocked(schoolID string) error {
	s.enforcer.ClearPolicy()

	// Load grouping policy
	userRoles, err := s.repo.GetUserRoles(schoolID)
	if err != nil {
		return err
	}
	s.logger.Debug("rbac load policy",
		zap.String("school_id", schoolID),
		zap.Int("user_roles", len(userRoles)),
	)

	for _, ur := range userRoles {
		_, err := s.enforcer.AddGroupingPolicy(
			ur.UserID,
			ur.RoleID,
			schoolID,
		)
		if err != nil {
			return err
		}
	}

	// Load permission policy
	rolePerms, err := s.repo.GetRolePermissions(schoolID)
	if err != nil {
		return err
	}
	s.logger.Debug("rbac load policy",
		zap.String("school_id", schoolID),
		zap.Int("role_permissions", len(rolePerms)),
	)

	for _, rp := range rolePerms {
		_, err := s.enforcer.AddPolicy(
			rp.RoleID,
			schoolID,
			rp.Resource,
			rp.Action,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadSchoolPolicyUnlocked(req.SchoolID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.UserID,
		req.SchoolID,
		req.Resource,
		req.Action,
	)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("user_id", req.UserID),
			zap.String("school_id", req.SchoolID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("user_id", req.UserID),
		zap.String("school_id", req.SchoolID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}

func (s *service) AssignRoleToUser(schoolID, userID, roleName string) error {
	role, err := s.repo.GetRoleByName(schoolID, roleName)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.enforcer.AddGroupingPolicy(userID, role.ID, schoolID)
	return err
}

func (s *service) ListRoles(schoolID string) ([]domain.RoleResponse, error) {
	roles, err := s.repo.ListRoles(schoolID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.RoleResponse, len(roles))
	for i, role := range roles {
		perms, err := s.repo.GetPermissionsByRoleID(role.ID)
		if err != nil {
			return nil, err
		}
		resp[i] = mapRoleToResponse(role, perms)
	}
	return resp, nil
}

func (s *service) GetRole(id string) (*domain.RoleResponse, error) {
	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		return nil, err
	}
	perms, err := s.repo.GetPermissionsByRoleID(role.ID)
	if err != nil {
		return nil, err
	}
	resp := mapRoleToResponse(*role, perms)
	return &resp, nil
}

func (s *service) CreateRole(schoolID string, req domain.CreateRoleRequest) (*domain.RoleResponse, error) {
	role := &RoleRow{
		SchoolID:    schoolID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateRole(role); err != nil {
		return nil, err
	}
	if len(req.Permissions) > 0 {
		if err := s.repo.UpdateRolePermissions(role.ID, req.Permissions); err != nil {
			return nil, err
		}
	}
	return s.GetRole(role.ID)
}

func (s *service) UpdateRole(id string, req domain.UpdateRoleRequest) (*domain.RoleResponse, error) {
	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	if err := s.repo.UpdateRole(role); err != nil {
		return nil, err
	}
	if req.Permissions != nil {
		if err := s.repo.UpdateRolePermissions(id, req.Permissions); err != nil {
			return nil, err
		}
	}
	return s.GetRole(id)
}

func (s *service) DeleteRole(id string) error {
	return s.repo.DeleteRole(id)
}

func (s *service) ListPermissions() ([]domain.PermissionResponse, error) {
	perms, err := s.repo.ListPermissions()
	if err != nil {
		return nil, err
	}
	resp := make([]domain.PermissionResponse, len(perms))
	for i, p := range perms {
		resp[i] = domain.PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		}
	}
	return resp, nil
}

func mapRoleToResponse(role RoleRow, perms []PermissionRow) domain.RoleResponse {
	permNames := make([]string, len(perms))
	for i, p := range perms {
		permNames[i] = p.Resource + ":" + p.Action
	}
	return domain.RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permNames,
	}
}
