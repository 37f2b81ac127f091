// Package diagnostics checks connectivity with the MotoSegura backend and
// runs the small test suite shown by the "diag" command.
package diagnostics

import (
	"context"
	"fmt"
	"time"

	"github.com/manuelmariscal/coursera/internal/client/models"
	"github.com/manuelmariscal/coursera/internal/logging"
)

// TestTimeout bounds each diagnostic test.
const TestTimeout = 5 * time.Second

const (
	StateConnected = "connected"
	StateFailed    = "failed"
)

// API is the part of the backend client diagnostics relies on.
type API interface {
	BaseURL() string
	IsMobileDevice() bool
	CheckHealth(ctx context.Context) (map[string]any, error)
	GetAPIStatus(ctx context.Context) (map[string]any, error)
	ProbeHealth(ctx context.Context) (map[string]any, error)
	GetAllFichas(ctx context.Context) ([]models.Ficha, error)
}

// ConnectionReport is the outcome of CheckConnection.
type ConnectionReport struct {
	State       string
	BaseURL     string
	Mobile      bool
	Method      string
	APIResponse map[string]any
	Err         error
}

// TestResult is one row of RunTests.
type TestResult struct {
	Name     string
	OK       bool
	Duration time.Duration
	Details  string
	Err      error
}

type Service struct {
	api    API
	logger logging.Logger
	now    func() time.Time
}

func New(api API, logger logging.Logger) *Service {
	return &Service{api: api, logger: logger.With("component", "diagnostics"), now: time.Now}
}

// CheckConnection probes /health directly and falls back to the API status
// endpoint through the regular client.
func (s *Service) CheckConnection(ctx context.Context) ConnectionReport {
	rep := ConnectionReport{
		State:   StateFailed,
		BaseURL: s.api.BaseURL(),
		Mobile:  s.api.IsMobileDevice(),
	}

	resp, err := s.api.ProbeHealth(ctx)
	if err == nil {
		rep.State, rep.Method, rep.APIResponse = StateConnected, "direct", resp
		return rep
	}
	s.logger.Warn(ctx, "direct health probe failed", "error", err)

	resp, err = s.api.GetAPIStatus(ctx)
	if err != nil {
		s.logger.Error(ctx, "backend unreachable", "base_url", rep.BaseURL, "error", err)
		rep.Err = err
		return rep
	}

	rep.State, rep.Method, rep.APIResponse = StateConnected, "api", resp
	return rep
}

// RunTests runs every test in order. A failing test never stops the rest.
func (s *Service) RunTests(ctx context.Context) []TestResult {
	tests := []struct {
		name string
		run  func(ctx context.Context) (string, error)
	}{
		{"backend connection", s.testHealth},
		{"fetch medical records", s.testFichas},
	}

	results := make([]TestResult, 0, len(tests))
	for _, tt := range tests {
		tctx, cancel := context.WithTimeout(ctx, TestTimeout)
		start := s.now()
		details, err := tt.run(tctx)
		elapsed := s.now().Sub(start)
		cancel()

		results = append(results, TestResult{
			Name:     tt.name,
			OK:       err == nil,
			Duration: elapsed,
			Details:  details,
			Err:      err,
		})
	}
	return results
}

func (s *Service) testHealth(ctx context.Context) (string, error) {
	resp, err := s.api.CheckHealth(ctx)
	if err != nil {
		return "", err
	}
	return statusText(resp), nil
}

func (s *Service) testFichas(ctx context.Context) (string, error) {
	fichas, err := s.api.GetAllFichas(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("received %d records", len(fichas)), nil
}

// BackendStatus reports the backend's health status string.
func (s *Service) BackendStatus(ctx context.Context) (status, baseURL string, err error) {
	resp, err := s.api.CheckHealth(ctx)
	if err != nil {
		return "", s.api.BaseURL(), err
	}
	return statusText(resp), s.api.BaseURL(), nil
}

func statusText(resp map[string]any) string {
	if v, ok := resp["status"].(string); ok && v != "" {
		return v
	}
	return "OK"
}
