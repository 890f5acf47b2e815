package obscheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lfpcrew/lfp-admin/internal/tools/common"
	"github.com/lfpcrew/lfp-admin/internal/tools/loadgen"
)

// Datasource ids as provisioned by the local Grafana stack.
const (
	prometheusDatasource = 1
	lokiDatasource       = 2
	tempoDatasource      = 3
)

type options struct {
	grafanaURL      string
	grafanaUser     string
	grafanaPassword string
	serviceName     string
	metric          string
	window          time.Duration
	settle          time.Duration
	ci              bool
	baseURL         string
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{Use: "obscheck", Short: "Verify metrics, traces and logs correlation"}
	cmd.PersistentFlags().StringVar(&opts.grafanaURL, "grafana-url", "http://localhost:3000", "Grafana base URL")
	cmd.PersistentFlags().StringVar(&opts.grafanaUser, "grafana-user", "admin", "Grafana username")
	cmd.PersistentFlags().StringVar(&opts.grafanaPassword, "grafana-password", "admin", "Grafana password")
	cmd.PersistentFlags().StringVar(&opts.serviceName, "service-name", "lfp-admin", "OTel service name")
	cmd.PersistentFlags().StringVar(&opts.metric, "metric", "auth_request_duration_seconds_bucket", "histogram carrying trace exemplars")
	cmd.PersistentFlags().DurationVar(&opts.window, "window", 20*time.Minute, "query lookback window")
	cmd.PersistentFlags().DurationVar(&opts.settle, "settle", 8*time.Second, "wait for exporters to flush before querying")
	cmd.PersistentFlags().BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "http://localhost:8080", "API base URL for traffic")
	cmd.AddCommand(newRunCommand(opts))
	return cmd
}

func newRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Generate login traffic and follow an exemplar to its trace and logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := common.Run(opts.ci, 3*time.Minute, "obscheck run", func(ctx context.Context) ([]string, error) {
				lgRes, err := loadgen.Run(ctx, loadgen.Config{
					BaseURL:     opts.baseURL,
					Profile:     "auth",
					Duration:    6 * time.Second,
					RPS:         20,
					Concurrency: 6,
					Seed:        42,
				})
				if err != nil {
					return nil, err
				}
				details := []string{fmt.Sprintf("traffic generated total=%d failures=%d", lgRes.TotalRequests, lgRes.Failures)}

				select {
				case <-time.After(opts.settle):
				case <-ctx.Done():
					return details, ctx.Err()
				}

				g := grafana{baseURL: opts.grafanaURL, user: opts.grafanaUser, password: opts.grafanaPassword, client: &http.Client{Timeout: 20 * time.Second}}
				traceID, err := g.exemplarTraceID(ctx, opts.metric, opts.window)
				if err != nil {
					return details, err
				}
				details = append(details, "exemplar trace_id="+traceID)

				if err := g.verifyTrace(ctx, traceID); err != nil {
					return details, err
				}
				details = append(details, "tempo trace lookup: ok")

				if err := g.verifyTraceLogs(ctx, opts.serviceName, traceID); err != nil {
					return details, err
				}
				details = append(details, "loki trace correlation: ok")
				return details, nil
			})
			common.Finish(opts.ci, "obscheck run", details, err, 4)
			return nil
		},
	}
}

type grafana struct {
	baseURL  string
	user     string
	password string
	client   *http.Client
}

func (g grafana) get(ctx context.Context, datasource int, path string, out any) error {
	u, err := url.Parse(g.baseURL)
	if err != nil {
		return err
	}
	u = u.JoinPath("api", "datasources", "proxy", fmt.Sprint(datasource))
	target := strings.TrimRight(u.String(), "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.user, g.password)
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("grafana request failed: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type exemplarResponse struct {
	Data []struct {
		Exemplars []struct {
			Labels map[string]string `json:"labels"`
		} `json:"exemplars"`
	} `json:"data"`
}

func (g grafana) exemplarTraceID(ctx context.Context, metric string, window time.Duration) (string, error) {
	end := time.Now()
	path := fmt.Sprintf("/api/v1/query_exemplars?query=%s&start=%d&end=%d",
		url.QueryEscape(metric), end.Add(-window).Unix(), end.Unix())
	var payload exemplarResponse
	if err := g.get(ctx, prometheusDatasource, path, &payload); err != nil {
		return "", err
	}
	for _, series := range payload.Data {
		for _, e := range series.Exemplars {
			if tid := e.Labels["trace_id"]; len(tid) == 32 {
				return tid, nil
			}
		}
	}
	return "", fmt.Errorf("no trace_id exemplar found on %s", metric)
}

func (g grafana) verifyTrace(ctx context.Context, traceID string) error {
	var payload struct {
		Batches []json.RawMessage `json:"batches"`
	}
	if err := g.get(ctx, tempoDatasource, "/api/traces/"+traceID, &payload); err != nil {
		return err
	}
	if len(payload.Batches) == 0 {
		return fmt.Errorf("tempo trace %s has no batches", traceID)
	}
	return nil
}

func (g grafana) verifyTraceLogs(ctx context.Context, serviceName, traceID string) error {
	nowNS := time.Now().UnixNano()
	startNS := nowNS - int64(30*time.Minute)
	q := url.QueryEscape(fmt.Sprintf("{service_name=%q} |= %q", serviceName, "trace_id="+traceID))
	path := fmt.Sprintf("/loki/api/v1/query_range?query=%s&start=%d&end=%d&limit=1&direction=backward", q, startNS, nowNS)
	var payload struct {
		Data struct {
			Result []json.RawMessage `json:"result"`
		} `json:"data"`
	}
	if err := g.get(ctx, lokiDatasource, path, &payload); err != nil {
		return err
	}
	if len(payload.Data.Result) == 0 {
		return fmt.Errorf("no correlated loki logs found for trace_id %s", traceID)
	}
	return nil
}
