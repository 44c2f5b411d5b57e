// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とワーカーから利用する。
type MetricsCollector interface {
	RecordBookingCreated(eventType string)
	RecordConfirmation()
	RecordCancellation()
	RecordReminderSent()
	RecordHTTPStatus(statusCode int)
	RecordBookingLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	bookingsCreated *prometheus.CounterVec
	confirmations   prometheus.Counter
	cancellations   prometheus.Counter
	remindersSent   prometheus.Counter
	httpStatus      *prometheus.CounterVec
	bookingLatency  prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recruitdesk_bookings_total",
			Help: "イベント種別ごとの予約作成の合計数",
		}, []string{"event_type"}),
		confirmations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recruitdesk_confirmations_total",
			Help: "確認リンク経由の参加確定の合計数",
		}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recruitdesk_cancellations_total",
			Help: "イベントキャンセルの合計数",
		}),
		remindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recruitdesk_reminders_sent_total",
			Help: "送信されたリマインド通知の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recruitdesk_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		bookingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recruitdesk_booking_latency_seconds",
			Help:    "予約作成処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.bookingsCreated,
		c.confirmations,
		c.cancellations,
		c.remindersSent,
		c.httpStatus,
		c.bookingLatency,
	)

	return c
}

// RecordBookingCreated は予約作成をイベント種別ラベル付きで記録する。
func (c *Collector) RecordBookingCreated(eventType string) {
	c.bookingsCreated.WithLabelValues(eventType).Inc()
}

// RecordConfirmation は参加確定を記録する。
func (c *Collector) RecordConfirmation() {
	c.confirmations.Inc()
}

// RecordCancellation はキャンセルを記録する。
func (c *Collector) RecordCancellation() {
	c.cancellations.Inc()
}

// RecordReminderSent はリマインド通知の送信を記録する。
func (c *Collector) RecordReminderSent() {
	c.remindersSent.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordBookingLatency は予約作成のレイテンシを記録する。
func (c *Collector) RecordBookingLatency(duration time.Duration) {
	c.bookingLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
