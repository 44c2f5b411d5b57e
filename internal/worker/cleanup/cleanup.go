// Package cleanup は終了済みイベントの自動削除ジョブを提供する。
// 保持期間（デフォルト180日）を超過した過去イベントを日次バッチで削除する。
// event_attendeesはCASCADE削除で自動的に処理される。
package cleanup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Executor はSQLのExecContextを抽象化するインターフェース。
// *sql.DB や *sql.Tx を受け付けることができる。
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// CleanupJob は保持期間を超過した過去イベントの自動削除ジョブ。
// 日次実行のバッチジョブとして設計されており、冪等な削除処理を保証する。
type CleanupJob struct {
	db            Executor
	logger        *slog.Logger
	RetentionDays int // 終了済みイベントの保持日数（デフォルト: 180）
}

// NewCleanupJob は新しいCleanupJobを生成する。
// デフォルトの保持日数は180日。
func NewCleanupJob(db Executor, logger *slog.Logger) *CleanupJob {
	return &CleanupJob{
		db:            db,
		logger:        logger,
		RetentionDays: 180,
	}
}

// Run は保持期間を超過した過去イベントを削除する。
// end_atがRetentionDays日前より古いイベントをDELETEする。
// event_attendeesはCASCADE削除により自動的に削除される。
// 冪等: 削除対象がない場合でもエラーにならない。
func (j *CleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	interval := fmt.Sprintf("%d days", j.RetentionDays)

	query := `DELETE FROM events WHERE end_at < now() - $1::interval`
	result, err := j.db.ExecContext(ctx, query, interval)
	if err != nil {
		j.logger.Error("イベントクリーンアップジョブの実行に失敗しました",
			slog.String("error", err.Error()),
			slog.Int("retention_days", j.RetentionDays),
		)
		return fmt.Errorf("イベントクリーンアップの実行に失敗: %w", err)
	}

	deletedCount, err := result.RowsAffected()
	if err != nil {
		j.logger.Error("削除件数の取得に失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("削除件数の取得に失敗: %w", err)
	}

	duration := time.Since(start)
	j.logger.Info("イベントクリーンアップジョブが完了しました",
		slog.Int64("deleted_count", deletedCount),
		slog.Int("retention_days", j.RetentionDays),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}

// Start は指定間隔でクリーンアップジョブを繰り返し実行する。
// 起動直後に1回実行し、以降はtickerで定期実行する。ctxのキャンセルで停止する。
func (j *CleanupJob) Start(ctx context.Context, interval time.Duration) {
	j.logger.Info("イベントクリーンアップジョブを開始しました",
		slog.Duration("interval", interval),
		slog.Int("retention_days", j.RetentionDays),
	)

	if err := j.Run(ctx); err != nil {
		j.logger.Error("クリーンアップの初回実行に失敗しました", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("イベントクリーンアップジョブを停止しました")
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Error("クリーンアップの定期実行に失敗しました", slog.String("error", err.Error()))
			}
		}
	}
}
