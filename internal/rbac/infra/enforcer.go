package infra

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// NewEnforcer loads the RBAC model for the campus role set. Policies
// live in Postgres and the rbac service reloads them per school before
// each check, so no casbin storage adapter is attached.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load rbac model %s: %w", modelPath, err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("build rbac enforcer: %w", err)
	}

	return e, nil
}
