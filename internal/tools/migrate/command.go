package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/database"
	"github.com/lfpcrew/lfp-admin/internal/di"
	"github.com/lfpcrew/lfp-admin/internal/tools/common"
)

type options struct {
	envFile string
	timeout time.Duration
	ci      bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema tooling",
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "operation timeout")
	cmd.PersistentFlags().BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")

	cmd.AddCommand(
		newUpCommand(opts),
		newStatusCommand(opts),
		newPlanCommand(opts),
	)
	return cmd
}

func newUpCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply the schema and seed built-in roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := common.Run(opts.ci, opts.timeout, "migrate up", func(ctx context.Context) ([]string, error) {
				if err := common.LoadEnvFile(opts.envFile); err != nil {
					return nil, err
				}
				runner, err := di.InitializeMigrationRunner()
				if err != nil {
					return nil, err
				}
				report, err := runner.Run(ctx)
				if err != nil {
					return nil, err
				}
				return []string{
					"schema applied",
					fmt.Sprintf("created_roles=%d", report.CreatedRoles),
					"bootstrap_admin=" + report.BootstrapAdmin,
				}, nil
			})
			common.Finish(opts.ci, "migrate up", details, err, 3)
			return nil
		},
	}
}

func newStatusCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report which tables exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := common.Run(opts.ci, opts.timeout, "migrate status", func(ctx context.Context) ([]string, error) {
				_, db, closeDB, err := common.OpenConfigDB(opts.envFile)
				if err != nil {
					return nil, err
				}
				defer closeDB()
				if err := ping(ctx, db); err != nil {
					return nil, err
				}
				status, err := database.MigrationStatus(db)
				if err != nil {
					return nil, err
				}
				out := make([]string, 0, len(status))
				for _, s := range status {
					state := "missing"
					if s.Present {
						state = "present"
					}
					out = append(out, s.Table+": "+state)
				}
				return out, nil
			})
			common.Finish(opts.ci, "migrate status", details, err, 3)
			return nil
		},
	}
}

func newPlanCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "List the tables migrate up would create",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := common.Run(opts.ci, opts.timeout, "migrate plan", func(ctx context.Context) ([]string, error) {
				_, db, closeDB, err := common.OpenConfigDB(opts.envFile)
				if err != nil {
					return nil, err
				}
				defer closeDB()
				if err := ping(ctx, db); err != nil {
					return nil, err
				}
				status, err := database.MigrationStatus(db)
				if err != nil {
					return nil, err
				}
				return planLines(status), nil
			})
			common.Finish(opts.ci, "migrate plan", details, err, 3)
			return nil
		},
	}
}

func planLines(status []database.TableStatus) []string {
	out := []string{}
	for _, s := range status {
		if !s.Present {
			out = append(out, "would create table "+s.Table)
		}
	}
	if len(out) == 0 {
		out = append(out, "schema up to date, AutoMigrate would only reconcile columns")
	}
	return append(out, "no mutation executed in plan mode")
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	return nil
}
