// Package seed bootstraps a demo company and a super-admin account so a
// fresh install is explorable without any manual setup.
package seed

import (
	"context"

	"github.com/clearlead/decisio/internal/config"
	companydomain "github.com/clearlead/decisio/internal/company/domain"
	userdomain "github.com/clearlead/decisio/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	demoCompanyName    = "Acme Leadership"
	demoCompanyCountry = "US"
	adminEmail         = "admin@decisio.app"
	adminName          = "Decisio"
	adminSurname       = "Admin"
)

// Ensure seeds the demo tenant when the user table is empty. It never
// overwrites existing data and a failed seed does not block startup.
func Ensure(ctx context.Context, companies companydomain.Service, users userdomain.Service, log *zap.Logger) error {
	existing, err := users.List(ctx, userdomain.Filter{})
	if err != nil {
		return err
	}
	if len(existing.Value) > 0 {
		return nil
	}

	company, err := companies.Upsert(ctx, companydomain.Patch{
		Name:    strptr(demoCompanyName),
		Country: strptr(demoCompanyCountry),
	})
	if err != nil {
		return err
	}

	role := userdomain.RoleSuperAdmin
	plan := userdomain.PlanPremium
	companyID := company.Value.ID
	if _, err := users.Upsert(ctx, userdomain.Patch{
		Email:     strptr(adminEmail),
		Role:      &role,
		Plan:      &plan,
		CompanyID: &companyID,
		Name:      strptr(adminName),
		Surname:   strptr(adminSurname),
	}); err != nil {
		return err
	}

	log.Info("seeded demo company and super admin",
		zap.String("company_id", companyID),
		zap.String("admin_email", adminEmail))
	return nil
}

func strptr(s string) *string { return &s }

var Module = fx.Module("seed",
	fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, companies companydomain.Service, users userdomain.Service, log *zap.Logger) {
		if !cfg.SeedEnabled {
			return
		}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := Ensure(ctx, companies, users, log); err != nil {
					log.Warn("demo seed failed", zap.Error(err))
				}
				return nil
			},
		})
	}),
)
