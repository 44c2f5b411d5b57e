// Package remind はイベント開始前のリマインド通知ジョブを提供する。
// 通知の配送は外部コラボレータの責務で、ここでは通知内容をログに
// 記録し、送信済み時刻を永続化するところまでを担う。
package remind

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/recruitdesk/internal/repository"
)

// ReminderMetrics はリマインド送信のメトリクス記録インターフェース。
type ReminderMetrics interface {
	RecordReminderSent()
}

// Reminder はリマインド対象イベントの定期スキャンを行う。
// leadの長さのウィンドウ内に開始し、まだリマインドされていない
// イベントを対象にする。
type Reminder struct {
	eventRepo repository.EventRepository
	metrics   ReminderMetrics
	logger    *slog.Logger
	lead      time.Duration
	now       func() time.Time
}

// NewReminder はReminderの新しいインスタンスを生成する。
// leadが0以下の場合はデフォルト値30分を使用する。
func NewReminder(eventRepo repository.EventRepository, metrics ReminderMetrics, logger *slog.Logger, lead time.Duration) *Reminder {
	if lead <= 0 {
		lead = 30 * time.Minute
	}
	return &Reminder{
		eventRepo: eventRepo,
		metrics:   metrics,
		logger:    logger,
		lead:      lead,
		now:       time.Now,
	}
}

// Start は指定間隔のティッカーでスキャンを起動する。
// コンテキストがキャンセルされるまで実行を継続する。
func (r *Reminder) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("リマインドスキャナを開始しました",
		slog.Duration("interval", interval),
		slog.Duration("lead", r.lead),
	)

	// 起動直後に1回実行
	if err := r.RunOnce(ctx); err != nil {
		r.logger.Error("リマインドサイクルの実行に失敗しました",
			slog.String("error", err.Error()),
		)
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("リマインドスキャナを停止しました")
			return
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				r.logger.Error("リマインドサイクルの実行に失敗しました",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// RunOnce はリマインド対象イベントを1回スキャンし、通知を記録する。
// 冪等: reminded_atを立てるため、同じイベントが二度対象になることはない。
func (r *Reminder) RunOnce(ctx context.Context) error {
	now := r.now()

	events, err := r.eventRepo.ListDueForReminder(ctx, now, now.Add(r.lead))
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	for _, ev := range events {
		// リマインド通知（配送は外部コラボレータ）
		r.logger.Info("イベント開始前のリマインド通知",
			slog.String("event_id", ev.ID),
			slog.String("title", ev.Title),
			slog.Time("start_at", ev.StartAt),
			slog.String("event_type", string(ev.Type)),
		)

		if err := r.eventRepo.MarkReminded(ctx, ev.ID, now); err != nil {
			r.logger.Error("リマインド時刻の記録に失敗しました",
				slog.String("event_id", ev.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		if r.metrics != nil {
			r.metrics.RecordReminderSent()
		}
	}

	r.logger.Info("リマインドサイクルが完了しました",
		slog.Int("event_count", len(events)),
	)
	return nil
}
