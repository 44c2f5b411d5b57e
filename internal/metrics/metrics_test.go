package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestRecordBookingCreated_IncrementsCounterWithLabel は予約作成カウンタが
// イベント種別ラベル付きで増加することを検証する。
func TestRecordBookingCreated_IncrementsCounterWithLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordBookingCreated("interview")
	c.RecordBookingCreated("interview")
	c.RecordBookingCreated("screening")

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "recruitdesk_bookings_total" {
			found = true
			if len(mf.GetMetric()) != 2 {
				t.Fatalf("expected 2 label combinations, got %d", len(mf.GetMetric()))
			}
			for _, m := range mf.GetMetric() {
				label := m.GetLabel()[0].GetValue()
				val := m.GetCounter().GetValue()
				switch label {
				case "interview":
					if val != 2 {
						t.Errorf("bookings_total{event_type=interview} = %v, want 2", val)
					}
				case "screening":
					if val != 1 {
						t.Errorf("bookings_total{event_type=screening} = %v, want 1", val)
					}
				default:
					t.Errorf("unexpected label value: %s", label)
				}
			}
		}
	}
	if !found {
		t.Error("recruitdesk_bookings_total metric not found")
	}
}

// TestRecordConfirmation_IncrementsCounter は参加確定カウンタが増加することを検証する。
func TestRecordConfirmation_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordConfirmation()
	c.RecordConfirmation()

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "recruitdesk_confirmations_total" {
			found = true
			val := mf.GetMetric()[0].GetCounter().GetValue()
			if val != 2 {
				t.Errorf("confirmations_total = %v, want 2", val)
			}
		}
	}
	if !found {
		t.Error("recruitdesk_confirmations_total metric not found")
	}
}

// TestRecordCancellation_IncrementsCounter はキャンセルカウンタが増加することを検証する。
func TestRecordCancellation_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCancellation()

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "recruitdesk_cancellations_total" {
			found = true
			val := mf.GetMetric()[0].GetCounter().GetValue()
			if val != 1 {
				t.Errorf("cancellations_total = %v, want 1", val)
			}
		}
	}
	if !found {
		t.Error("recruitdesk_cancellations_total metric not found")
	}
}

// TestRecordReminderSent_IncrementsCounter はリマインド送信カウンタが増加することを検証する。
func TestRecordReminderSent_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordReminderSent()
	c.RecordReminderSent()
	c.RecordReminderSent()

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "recruitdesk_reminders_sent_total" {
			found = true
			val := mf.GetMetric()[0].GetCounter().GetValue()
			if val != 3 {
				t.Errorf("reminders_sent_total = %v, want 3", val)
			}
		}
	}
	if !found {
		t.Error("recruitdesk_reminders_sent_total metric not found")
	}
}

// TestRecordHTTPStatus_IncrementsCounterWithLabel はHTTPステータスカウンタがラベル付きで増加することを検証する。
func TestRecordHTTPStatus_IncrementsCounterWithLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(201)
	c.RecordHTTPStatus(201)
	c.RecordHTTPStatus(404)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "recruitdesk_http_status_total" {
			found = true
			if len(mf.GetMetric()) != 2 {
				t.Fatalf("expected 2 label combinations, got %d", len(mf.GetMetric()))
			}
			for _, m := range mf.GetMetric() {
				label := m.GetLabel()[0].GetValue()
				val := m.GetCounter().GetValue()
				switch label {
				case "201":
					if val != 2 {
						t.Errorf("http_status_total{status_code=201} = %v, want 2", val)
					}
				case "404":
					if val != 1 {
						t.Errorf("http_status_total{status_code=404} = %v, want 1", val)
					}
				default:
					t.Errorf("unexpected label value: %s", label)
				}
			}
		}
	}
	if !found {
		t.Error("recruitdesk_http_status_total metric not found")
	}
}

// TestRecordBookingLatency_ObservesHistogram は予約レイテンシのヒストグラムに値が記録されることを検証する。
func TestRecordBookingLatency_ObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordBookingLatency(100 * time.Millisecond)
	c.RecordBookingLatency(2 * time.Second)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "recruitdesk_booking_latency_seconds" {
			found = true
			h := mf.GetMetric()[0].GetHistogram()
			if h.GetSampleCount() != 2 {
				t.Errorf("sample_count = %d, want 2", h.GetSampleCount())
			}
			// 合計は0.1 + 2.0 = 2.1秒
			if h.GetSampleSum() < 2.0 || h.GetSampleSum() > 2.2 {
				t.Errorf("sample_sum = %v, want ~2.1", h.GetSampleSum())
			}
		}
	}
	if !found {
		t.Error("recruitdesk_booking_latency_seconds metric not found")
	}
}

// TestMetricsHandler_ReturnsPrometheusFormat は/metricsエンドポイントがPrometheus形式で返すことを検証する。
func TestMetricsHandler_ReturnsPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	// いくつかのメトリクスを記録
	c.RecordBookingCreated("interview")
	c.RecordConfirmation()
	c.RecordHTTPStatus(200)
	c.RecordBookingLatency(500 * time.Millisecond)
	c.RecordReminderSent()

	handler := Handler(reg)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	// Prometheus形式のメトリクスが含まれていることを確認
	expectedMetrics := []string{
		"recruitdesk_bookings_total",
		"recruitdesk_confirmations_total",
		"recruitdesk_http_status_total",
		"recruitdesk_booking_latency_seconds",
		"recruitdesk_reminders_sent_total",
	}

	for _, metric := range expectedMetrics {
		if !strings.Contains(bodyStr, metric) {
			t.Errorf("response body does not contain %q", metric)
		}
	}
}

// TestCollector_ImplementsMetricsCollectorInterface はCollectorがMetricsCollectorインターフェースを実装することを検証する。
func TestCollector_ImplementsMetricsCollectorInterface(t *testing.T) {
	reg := prometheus.NewRegistry()
	var _ MetricsCollector = NewCollector(reg)
}

// TestMultipleCollectors_IndependentRegistries は異なるレジストリで独立に動作することを検証する。
func TestMultipleCollectors_IndependentRegistries(t *testing.T) {
	reg1 := prometheus.NewRegistry()
	reg2 := prometheus.NewRegistry()
	c1 := NewCollector(reg1)
	c2 := NewCollector(reg2)

	c1.RecordConfirmation()
	c2.RecordConfirmation()
	c2.RecordConfirmation()

	metrics1, _ := reg1.Gather()
	metrics2, _ := reg2.Gather()

	var val1, val2 float64
	for _, mf := range metrics1 {
		if mf.GetName() == "recruitdesk_confirmations_total" {
			val1 = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	for _, mf := range metrics2 {
		if mf.GetName() == "recruitdesk_confirmations_total" {
			val2 = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}

	if val1 != 1 {
		t.Errorf("reg1 confirmations = %v, want 1", val1)
	}
	if val2 != 2 {
		t.Errorf("reg2 confirmations = %v, want 2", val2)
	}
}
