package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lfpcrew/lfp-admin/internal/database"
	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/tools/common"
)

type options struct {
	envFile       string
	adminEmail    string
	adminName     string
	adminPassword string
	timeout       time.Duration
	ci            bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{Use: "seed", Short: "Built-in roles and bootstrap admin seeding"}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().StringVar(&opts.adminEmail, "bootstrap-admin-email", "", "override BOOTSTRAP_ADMIN_EMAIL")
	cmd.PersistentFlags().StringVar(&opts.adminName, "bootstrap-admin-name", "", "override BOOTSTRAP_ADMIN_NAME")
	cmd.PersistentFlags().StringVar(&opts.adminPassword, "bootstrap-admin-password", "", "override BOOTSTRAP_ADMIN_PASSWORD")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "operation timeout")
	cmd.PersistentFlags().BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")
	cmd.AddCommand(newApplyCommand(opts), newDryRunCommand(opts), newResetRolesCommand(opts))
	return cmd
}

func (o *options) bootstrapAdmin(fromEnv database.BootstrapAdmin) database.BootstrapAdmin {
	if o.adminEmail != "" {
		fromEnv.Email = strings.TrimSpace(strings.ToLower(o.adminEmail))
	}
	if o.adminName != "" {
		fromEnv.Name = o.adminName
	}
	if o.adminPassword != "" {
		fromEnv.Password = o.adminPassword
	}
	return fromEnv
}

func newApplyCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Create missing built-in roles and the bootstrap admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := common.Run(opts.ci, opts.timeout, "seed apply", func(ctx context.Context) ([]string, error) {
				cfg, db, closeDB, err := common.OpenConfigDB(opts.envFile)
				if err != nil {
					return nil, err
				}
				defer closeDB()
				admin := opts.bootstrapAdmin(database.BootstrapAdmin{
					Email:    cfg.BootstrapAdminEmail,
					Name:     cfg.BootstrapAdminName,
					Password: cfg.BootstrapAdminPassword,
				})
				report, err := database.Seed(ctx, db, admin)
				if err != nil {
					return nil, err
				}
				return reportLines(report, admin.Email), nil
			})
			common.Finish(opts.ci, "seed apply", details, err, 3)
			return nil
		},
	}
}

func newDryRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dry-run",
		Short: "Show what seeding would ensure",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := common.Run(opts.ci, opts.timeout, "seed dry-run", func(ctx context.Context) ([]string, error) {
				if err := common.LoadEnvFile(opts.envFile); err != nil {
					return nil, err
				}
				return planLines(opts.bootstrapAdmin(database.BootstrapAdmin{})), nil
			})
			common.Finish(opts.ci, "seed dry-run", details, err, 3)
			return nil
		},
	}
}

func newResetRolesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-roles",
		Short: "Restore built-in role permissions to their defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := common.Run(opts.ci, opts.timeout, "seed reset-roles", func(ctx context.Context) ([]string, error) {
				_, db, closeDB, err := common.OpenConfigDB(opts.envFile)
				if err != nil {
					return nil, err
				}
				defer closeDB()
				touched, err := database.ResetRolePermissions(ctx, db)
				if err != nil {
					return nil, err
				}
				return []string{fmt.Sprintf("restored %d built-in roles", touched)}, nil
			})
			common.Finish(opts.ci, "seed reset-roles", details, err, 3)
			return nil
		},
	}
}

func reportLines(report *database.SeedReport, email string) []string {
	lines := []string{fmt.Sprintf("created_roles=%d", report.CreatedRoles)}
	switch report.BootstrapAdmin {
	case "skipped":
		lines = append(lines, "bootstrap admin skipped, no email configured")
	default:
		lines = append(lines, fmt.Sprintf("bootstrap admin %s: %s", email, report.BootstrapAdmin))
	}
	if report.Noop {
		lines = append(lines, "nothing to do")
	}
	return lines
}

func planLines(admin database.BootstrapAdmin) []string {
	lines := make([]string, 0, len(domain.DefaultRoles())+1)
	for _, def := range domain.DefaultRoles() {
		lines = append(lines, fmt.Sprintf("would ensure role %s with %d permissions", def.Name, len(def.Permissions)))
	}
	if admin.Email != "" {
		lines = append(lines, "would create super_admin "+admin.Email+" if absent")
	}
	return lines
}
