package loadgen

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

type Config struct {
	BaseURL     string
	Profile     string
	Duration    time.Duration
	RPS         int
	Concurrency int
	Seed        int64
}

type Result struct {
	TotalRequests int64
	Failures      int64
	Status2xx     int64
	Status4xx     int64
	Status429     int64
	Status5xx     int64
}

type endpoint struct {
	method string
	path   string
	body   string
}

func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 10 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 15
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}

	endpoints := endpointsForProfile(cfg.Profile)
	if len(endpoints) == 0 {
		return Result{}, fmt.Errorf("unknown profile: %s", cfg.Profile)
	}
	client := &http.Client{Timeout: 5 * time.Second}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	rng := rand.New(rand.NewSource(cfg.Seed))
	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), 1)

	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	var res Result
	jobs := make(chan endpoint, cfg.Concurrency*2)
	var wg sync.WaitGroup
	for range cfg.Concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ep := range jobs {
				status, err := send(ctx, client, baseURL, ep)
				if err != nil {
					atomic.AddInt64(&res.Failures, 1)
					continue
				}
				atomic.AddInt64(&res.TotalRequests, 1)
				switch {
				case status >= 200 && status < 300:
					atomic.AddInt64(&res.Status2xx, 1)
				case status == http.StatusTooManyRequests:
					atomic.AddInt64(&res.Status429, 1)
				case status >= 400 && status < 500:
					atomic.AddInt64(&res.Status4xx, 1)
				case status >= 500:
					atomic.AddInt64(&res.Status5xx, 1)
				}
			}
		}()
	}

	for {
		// Wait only fails once the run deadline is reached or would be.
		if err := limiter.Wait(ctx); err != nil {
			close(jobs)
			wg.Wait()
			return res, nil
		}
		select {
		case jobs <- endpoints[rng.Intn(len(endpoints))]:
		case <-ctx.Done():
		}
	}
}

func send(ctx context.Context, client *http.Client, baseURL string, ep endpoint) (int, error) {
	var body io.Reader
	if ep.body != "" {
		body = strings.NewReader(ep.body)
	}
	req, err := http.NewRequestWithContext(ctx, ep.method, baseURL+ep.path, body)
	if err != nil {
		return 0, err
	}
	if ep.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}

var profiles = []string{"public", "auth", "mixed", "error-heavy"}

func profileNames() string { return strings.Join(profiles, "|") }

func endpointsForProfile(profile string) []endpoint {
	public := []endpoint{
		{method: http.MethodGet, path: "/api/v1/public/members"},
		{method: http.MethodGet, path: "/api/v1/public/cars"},
		{method: http.MethodGet, path: "/api/v1/public/events"},
		{method: http.MethodGet, path: "/health/ready"},
	}
	auth := []endpoint{
		{method: http.MethodPost, path: "/api/v1/auth/login", body: `{"email":"loadgen@example.test","password":"wrong-password"}`},
		{method: http.MethodGet, path: "/api/v1/auth/setup-password?token=loadgen-invalid"},
		{method: http.MethodGet, path: "/api/v1/me"},
	}
	switch strings.ToLower(profile) {
	case "", "mixed":
		return append(public, auth...)
	case "public":
		return public
	case "auth":
		return auth
	case "error-heavy":
		return append(auth, endpoint{method: http.MethodGet, path: "/api/v1/admin/stats"})
	default:
		return nil
	}
}
