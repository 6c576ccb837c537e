package rbac_test

import (
	"errors"
	"testing"

	"campus-portal/internal/domain"
	"campus-portal/internal/rbac"
	"campus-portal/internal/rbac/infra"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRbacRepository struct {
	getUserRolesFn           func(schoolID string) ([]rbac.UserRoleRow, error)
	getRolePermissionsFn     func(schoolID string) ([]rbac.RolePermissionRow, error)
	listRolesFn              func(schoolID string) ([]rbac.RoleRow, error)
	getRoleByIDFn            func(id string) (*rbac.RoleRow, error)
	getRoleByNameFn          func(schoolID, name string) (*rbac.RoleRow, error)
	createRoleFn             func(role *rbac.RoleRow) error
	updateRoleFn             func(role *rbac.RoleRow) error
	deleteRoleFn             func(id string) error
	listPermissionsFn        func() ([]rbac.PermissionRow, error)
	getPermissionsByRoleIDFn func(roleID string) ([]rbac.PermissionRow, error)
	updateRolePermissionsFn  func(roleID string, permIDs []string) error
}

func (f *fakeRbacRepository) GetUserRoles(schoolID string) ([]rbac.UserRoleRow, error) {
	if f.getUserRolesFn != nil {
		return f.getUserRolesFn(schoolID)
	}
	return nil, nil
}

func (f *fakeRbacRepository) GetRolePermissions(schoolID string) ([]rbac.RolePermissionRow, error) {
	if f.getRolePermissionsFn != nil {
		return f.getRolePermissionsFn(schoolID)
	}
	return nil, nil
}

func (f *fakeRbacRepository) ListRoles(schoolID string) ([]rbac.RoleRow, error) {
	if f.listRolesFn != nil {
		return f.listRolesFn(schoolID)
	}
	return nil, nil
}

func (f *fakeRbacRepository) GetRoleByID(id string) (*rbac.RoleRow, error) {
	if f.getRoleByIDFn != nil {
		return f.getRoleByIDFn(id)
	}
	return nil, errors.New("role not found")
}

func (f *fakeRbacRepository) GetRoleByName(schoolID, name string) (*rbac.RoleRow, error) {
	if f.getRoleByNameFn != nil {
		return f.getRoleByNameFn(schoolID, name)
	}
	return nil, errors.New("role not found")
}

func (f *fakeRbacRepository) CreateRole(role *rbac.RoleRow) error {
	if f.createRoleFn != nil {
		return f.createRoleFn(role)
	}
	return nil
}

func (f *fakeRbacRepository) UpdateRole(role *rbac.RoleRow) error {
	if f.updateRoleFn != nil {
		return f.updateRoleFn(role)
	}
	return nil
}

func (f *fakeRbacRepository) DeleteRole(id string) error {
	if f.deleteRoleFn != nil {
		return f.deleteRoleFn(id)
	}
	return nil
}

func (f *fakeRbacRepository) ListPermissions() ([]rbac.PermissionRow, error) {
	if f.listPermissionsFn != nil {
		return f.listPermissionsFn()
	}
	return nil, nil
}

func (f *fakeRbacRepository) GetPermissionsByRoleID(roleID string) ([]rbac.PermissionRow, error) {
	if f.getPermissionsByRoleIDFn != nil {
		return f.getPermissionsByRoleIDFn(roleID)
	}
	return nil, nil
}

func (f *fakeRbacRepository) UpdateRolePermissions(roleID string, permIDs []string) error {
	if f.updateRolePermissionsFn != nil {
		return f.updateRolePermissionsFn(roleID, permIDs)
	}
	return nil
}

func setupRbacServiceTest(t *testing.T) (rbac.Service, *fakeRbacRepository) {
	t.Helper()

	enforcer, err := infra.NewEnforcer("infra/model.conf")
	assert.NoError(t, err)

	repo := &fakeRbacRepository{}
	return rbac.NewService(repo, enforcer), repo
}

func TestRbacService_Enforce(t *testing.T) {
	schoolID := uuid.New().String()
	userID := uuid.New().String()
	teacherRoleID := uuid.New().String()

	grant := func(repo *fakeRbacRepository) {
		repo.getUserRolesFn = func(sid string) ([]rbac.UserRoleRow, error) {
			return []rbac.UserRoleRow{{UserID: userID, RoleID: teacherRoleID}}, nil
		}
		repo.getRolePermissionsFn = func(sid string) ([]rbac.RolePermissionRow, error) {
			return []rbac.RolePermissionRow{
				{RoleID: teacherRoleID, Resource: "leave-requests", Action: "approve"},
			}, nil
		}
	}

	t.Run("success assigned role permission allowed", func(t *testing.T) {
		svc, repo := setupRbacServiceTest(t)
		grant(repo)

		allowed, err := svc.Enforce(domain.EnforceRequest{
			UserID:   userID,
			SchoolID: schoolID,
			Resource: "leave-requests",
			Action:   "approve",
		})

		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("negative action outside grant denied", func(t *testing.T) {
		svc, repo := setupRbacServiceTest(t)
		grant(repo)

		allowed, err := svc.Enforce(domain.EnforceRequest{
			UserID:   userID,
			SchoolID: schoolID,
			Resource: "leave-requests",
			Action:   "delete",
		})

		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("negative grant does not leak across schools", func(t *testing.T) {
		svc, repo := setupRbacServiceTest(t)
		otherSchool := uuid.New().String()
		repo.getUserRolesFn = func(sid string) ([]rbac.UserRoleRow, error) {
			if sid == schoolID {
				return []rbac.UserRoleRow{{UserID: userID, RoleID: teacherRoleID}}, nil
			}
			return nil, nil
		}
		repo.getRolePermissionsFn = func(sid string) ([]rbac.RolePermissionRow, error) {
			if sid == schoolID {
				return []rbac.RolePermissionRow{
					{RoleID: teacherRoleID, Resource: "leave-requests", Action: "approve"},
				}, nil
			}
			return nil, nil
		}

		allowed, err := svc.Enforce(domain.EnforceRequest{
			UserID:   userID,
			SchoolID: otherSchool,
			Resource: "leave-requests",
			Action:   "approve",
		})

		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("negative repo failure surfaces", func(t *testing.T) {
		svc, repo := setupRbacServiceTest(t)
		repo.getUserRolesFn = func(sid string) ([]rbac.UserRoleRow, error) {
			return nil, errors.New("db down")
		}

		_, err := svc.Enforce(domain.EnforceRequest{
			UserID:   userID,
			SchoolID: schoolID,
			Resource: "leave-requests",
			Action:   "approve",
		})

		assert.Error(t, err)
	})
}

func TestRbacService_Roles(t *testing.T) {
	schoolID := uuid.New().String()

	t.Run("success create role attaches permissions", func(t *testing.T) {
		svc, repo := setupRbacServiceTest(t)

		roleID := uuid.New().String()
		permID := uuid.New().String()
		var attached []string
		repo.createRoleFn = func(role *rbac.RoleRow) error {
			role.ID = roleID
			return nil
		}
		repo.updateRolePermissionsFn = func(rid string, permIDs []string) error {
			assert.Equal(t, roleID, rid)
			attached = permIDs
			return nil
		}
		repo.getRoleByIDFn = func(id string) (*rbac.RoleRow, error) {
			return &rbac.RoleRow{ID: roleID, SchoolID: schoolID, Name: "ExamCell"}, nil
		}
		repo.getPermissionsByRoleIDFn = func(rid string) ([]rbac.PermissionRow, error) {
			return []rbac.PermissionRow{{ID: permID, Resource: "results", Action: "publish"}}, nil
		}

		resp, err := svc.CreateRole(schoolID, domain.CreateRoleRequest{
			Name:        "ExamCell",
			Permissions: []string{permID},
		})

		assert.NoError(t, err)
		assert.Equal(t, "ExamCell", resp.Name)
		assert.Equal(t, []string{permID}, attached)
		assert.Equal(t, []string{"results:publish"}, resp.Permissions)
	})

	t.Run("negative assign unknown role", func(t *testing.T) {
		svc, repo := setupRbacServiceTest(t)
		repo.getRoleByNameFn = func(sid, name string) (*rbac.RoleRow, error) {
			return nil, errors.New("role not found")
		}

		err := svc.AssignRoleToUser(schoolID, uuid.New().String(), "Registrar")

		assert.Error(t, err)
	})
}
