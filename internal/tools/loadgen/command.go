package loadgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lfpcrew/lfp-admin/internal/tools/common"
)

var errServerErrors = errors.New("server answered with 5xx")

type options struct {
	baseURL     string
	profile     string
	duration    time.Duration
	rps         int
	concurrency int
	seed        int64
	failOn5xx   bool
	ci          bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{Use: "loadgen", Short: "Replay admin and public catalog traffic against a running API"}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.baseURL, "base-url", "http://localhost:8080", "API base URL")
	flags.StringVar(&opts.profile, "profile", "mixed", "traffic profile: "+profileNames())
	flags.DurationVar(&opts.duration, "duration", 15*time.Second, "traffic duration")
	flags.IntVar(&opts.rps, "rps", 20, "requests per second across all workers")
	flags.IntVar(&opts.concurrency, "concurrency", 6, "concurrent workers")
	flags.Int64Var(&opts.seed, "seed", 42, "random seed for endpoint selection")
	flags.BoolVar(&opts.failOn5xx, "fail-on-5xx", false, "exit non-zero when any 5xx is observed")
	flags.BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")
	cmd.AddCommand(newRunCommand(opts), newProfilesCommand())
	return cmd
}

func newRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run load generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := common.Run(opts.ci, opts.duration+15*time.Second, "loadgen run", func(ctx context.Context) ([]string, error) {
				res, err := Run(ctx, Config{
					BaseURL:     opts.baseURL,
					Profile:     opts.profile,
					Duration:    opts.duration,
					RPS:         opts.rps,
					Concurrency: opts.concurrency,
					Seed:        opts.seed,
				})
				if err != nil {
					return nil, err
				}
				if opts.failOn5xx && res.Status5xx > 0 {
					return summary(res), fmt.Errorf("%w: %d responses", errServerErrors, res.Status5xx)
				}
				return summary(res), nil
			})
			common.Finish(opts.ci, "loadgen run", details, err, 4)
			return nil
		},
	}
}

func newProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List traffic profiles and the endpoints they hit",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, line := range profileLines() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func profileLines() []string {
	var lines []string
	for _, name := range profiles {
		lines = append(lines, name+":")
		for _, ep := range endpointsForProfile(name) {
			lines = append(lines, fmt.Sprintf("  %s %s", ep.method, ep.path))
		}
	}
	return lines
}

func summary(res Result) []string {
	pct := 0.0
	if res.TotalRequests > 0 {
		pct = float64(res.Status2xx) / float64(res.TotalRequests) * 100
	}
	return []string{
		fmt.Sprintf("total_requests=%d", res.TotalRequests),
		fmt.Sprintf("failures=%d", res.Failures),
		fmt.Sprintf("status_2xx=%d", res.Status2xx),
		fmt.Sprintf("status_4xx=%d", res.Status4xx),
		fmt.Sprintf("status_429=%d", res.Status429),
		fmt.Sprintf("status_5xx=%d", res.Status5xx),
		fmt.Sprintf("success_pct=%.1f", pct),
	}
}
