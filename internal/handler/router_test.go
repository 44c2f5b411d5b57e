package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/recruitdesk/internal/booking"
	"github.com/hitoshi/recruitdesk/internal/metrics"
	"github.com/hitoshi/recruitdesk/internal/middleware"
	"github.com/hitoshi/recruitdesk/internal/model"
)

type okPinger struct{}

func (okPinger) PingContext(ctx context.Context) error { return nil }

type failPinger struct{}

func (failPinger) PingContext(ctx context.Context) error { return errors.New("connection refused") }

func newTestRouterDeps() *RouterDeps {
	rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		GeneralRate:     100,
		GeneralBurst:    100,
		BookingRate:     100,
		BookingBurst:    100,
		CleanupInterval: 1 * time.Minute,
	})

	return &RouterDeps{
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		CORSAllowedOrigin: "http://localhost:5173",
		RateLimiter:       rl,
		BookingService:    &mockBookingService{},
		TemplateService:   &mockTemplateService{},
		DB:                okPinger{},
	}
}

// TestNewRouter_HealthzOK はDB疎通が取れる場合に/healthzが200を返すことを検証する。
func TestNewRouter_HealthzOK(t *testing.T) {
	deps := newTestRouterDeps()
	defer deps.RateLimiter.Stop()

	r := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
}

// TestNewRouter_HealthzUnhealthy はDB疎通が取れない場合に/healthzが503を返すことを検証する。
func TestNewRouter_HealthzUnhealthy(t *testing.T) {
	deps := newTestRouterDeps()
	defer deps.RateLimiter.Stop()
	deps.DB = failPinger{}

	r := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusServiceUnavailable)
	}
}

// TestNewRouter_MetricsEndpoint は/metricsがPrometheus形式で応答することを検証する。
func TestNewRouter_MetricsEndpoint(t *testing.T) {
	deps := newTestRouterDeps()
	defer deps.RateLimiter.Stop()

	reg := prometheus.NewRegistry()
	_ = metrics.NewCollector(reg)
	deps.Gatherer = reg

	r := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
}

// TestNewRouter_RoutesAreRegistered は各エンドポイントがルーティングされていることを検証する。
func TestNewRouter_RoutesAreRegistered(t *testing.T) {
	deps := newTestRouterDeps()
	defer deps.RateLimiter.Stop()
	deps.BookingService = &mockBookingService{
		confirmFn: func(ctx context.Context, token string) (booking.ConfirmationOutcome, *model.CalendarEvent, error) {
			return booking.OutcomeNotFound, nil, nil
		},
	}

	r := NewRouter(deps)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/interviews/upcoming", http.StatusOK},
		{http.MethodGet, "/api/interviews/window?day=2025-04-14", http.StatusOK},
		{http.MethodGet, "/api/interviews/confirm/unknown-token", http.StatusNotFound},
		{http.MethodGet, "/api/templates", http.StatusOK},
		{http.MethodGet, "/no/such/route", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		req.RemoteAddr = "10.0.0.1:12345"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Result().StatusCode != tt.status {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, w.Result().StatusCode, tt.status)
		}
	}
}

// TestNewRouter_SecurityHeadersApplied はAPIレスポンスにセキュリティヘッダーが
// 付与されることを検証する。
func TestNewRouter_SecurityHeadersApplied(t *testing.T) {
	deps := newTestRouterDeps()
	defer deps.RateLimiter.Stop()

	r := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/interviews/upcoming", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := w.Result()
	if nosniff := resp.Header.Get("X-Content-Type-Options"); nosniff != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want %q", nosniff, "nosniff")
	}
	if origin := resp.Header.Get("Access-Control-Allow-Origin"); origin != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", origin, "http://localhost:5173")
	}
}

// TestNewRouter_ErrorResponseFormat は存在しないイベントの削除で
// 統一エラーフォーマットが返ることを検証する。
func TestNewRouter_ErrorResponseFormat(t *testing.T) {
	deps := newTestRouterDeps()
	defer deps.RateLimiter.Stop()
	deps.BookingService = &mockBookingService{
		cancelFn: func(ctx context.Context, eventID string) error {
			return model.NewEventNotFoundError(eventID)
		},
	}

	r := NewRouter(deps)

	req := httptest.NewRequest(http.MethodDelete, "/api/interviews/no-such", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, field := range []string{"code", "message", "category", "action"} {
		if body[field] == "" {
			t.Errorf("missing field %q in error response", field)
		}
	}
}
