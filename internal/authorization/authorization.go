// Package authorization decides which platform role may touch which admin
// surface. Policies are static: roles live on the user record and the
// policy table is small enough to seed at startup.
package authorization

import (
	"errors"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	userdomain "github.com/clearlead/decisio/internal/user/domain"
	"go.uber.org/fx"
)

const (
	ObjectCompany       = "company"
	ObjectUser          = "user"
	ObjectDecisionAudit = "decision_audit"
	ObjectStats         = "stats"
)

const (
	ActionView   = "view"
	ActionManage = "manage"
)

var ErrForbidden = errors.New("forbidden")

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// NewEnforcer builds the enforcer and seeds the role policy table.
func NewEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// Company admins run their own people and see their audit trail.
		{roleSubject(userdomain.RoleCompanyAdmin), ObjectUser, ActionView},
		{roleSubject(userdomain.RoleCompanyAdmin), ObjectUser, ActionManage},
		{roleSubject(userdomain.RoleCompanyAdmin), ObjectDecisionAudit, ActionView},

		// Super admins additionally own companies and platform stats.
		{roleSubject(userdomain.RoleSuperAdmin), ObjectCompany, ActionView},
		{roleSubject(userdomain.RoleSuperAdmin), ObjectCompany, ActionManage},
		{roleSubject(userdomain.RoleSuperAdmin), ObjectStats, ActionView},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	// Super admin inherits everything a company admin can do.
	_, err := enforcer.AddGroupingPolicy(
		roleSubject(userdomain.RoleSuperAdmin),
		roleSubject(userdomain.RoleCompanyAdmin),
	)
	return err
}

type Service struct {
	enforcer *casbin.SyncedEnforcer
}

func NewService(enforcer *casbin.SyncedEnforcer) *Service {
	return &Service{enforcer: enforcer}
}

// Authorize returns ErrForbidden unless the role may perform the action on
// the object.
func (s *Service) Authorize(role userdomain.Role, object, action string) error {
	allowed, err := s.enforcer.Enforce(roleSubject(role), object, action)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}
	return nil
}

func roleSubject(role userdomain.Role) string {
	return "role:" + strings.ToLower(string(role))
}

var Module = fx.Module("authorization",
	fx.Provide(NewEnforcer),
	fx.Provide(NewService),
)
