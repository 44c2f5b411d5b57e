package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/recruitdesk/internal/model"
)

// PostgresAttendeeRepo はPostgreSQLを使用した出席者リポジトリ。
type PostgresAttendeeRepo struct {
	db *sql.DB
}

// NewPostgresAttendeeRepo はPostgresAttendeeRepoを生成する。
func NewPostgresAttendeeRepo(db *sql.DB) *PostgresAttendeeRepo {
	return &PostgresAttendeeRepo{db: db}
}

// Create は出席者関係を作成する。
func (r *PostgresAttendeeRepo) Create(ctx context.Context, a *model.Attendee) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_attendees (id, event_id, user_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.EventID, a.UserID, a.Status, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("出席者の作成に失敗しました: %w", err)
	}
	return nil
}

// ListByEventID は指定イベントの出席者をユーザー表示情報付きで返す。
func (r *PostgresAttendeeRepo) ListByEventID(ctx context.Context, eventID string) ([]AttendeeWithUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.event_id, a.user_id, a.status, a.created_at,
			COALESCE(u.name, ''), COALESCE(u.avatar_url, '')
		 FROM event_attendees a
		 LEFT JOIN users u ON u.id = a.user_id
		 WHERE a.event_id = $1
		 ORDER BY a.created_at ASC`,
		eventID)
	if err != nil {
		return nil, fmt.Errorf("出席者一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var attendees []AttendeeWithUser
	for rows.Next() {
		var a AttendeeWithUser
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &a.Status, &a.CreatedAt, &a.UserName, &a.AvatarURL); err != nil {
			return nil, fmt.Errorf("出席者行の読み取りに失敗しました: %w", err)
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("出席者一覧の走査に失敗しました: %w", err)
	}
	return attendees, nil
}
