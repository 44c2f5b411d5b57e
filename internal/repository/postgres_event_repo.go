package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/recruitdesk/internal/model"
)

// PostgresEventRepo はPostgreSQLを使用したイベントリポジトリ。
type PostgresEventRepo struct {
	db *sql.DB
}

// NewPostgresEventRepo はPostgresEventRepoを生成する。
func NewPostgresEventRepo(db *sql.DB) *PostgresEventRepo {
	return &PostgresEventRepo{db: db}
}

const eventColumns = `id, title, description, start_at, end_at, event_type,
	location, location_link, scheduled_by, candidate_id, job_id,
	confirmation_token, confirmed, reminded_at, created_at, updated_at`

// scanEvent は1行分のイベントを読み取る。
func scanEvent(row interface{ Scan(...any) error }) (*model.CalendarEvent, error) {
	ev := &model.CalendarEvent{}
	var description, locationLink sql.NullString
	var candidateID, jobID sql.NullString
	var remindedAt sql.NullTime

	err := row.Scan(
		&ev.ID, &ev.Title, &description, &ev.StartAt, &ev.EndAt, &ev.Type,
		&ev.Location, &locationLink, &ev.ScheduledBy, &candidateID, &jobID,
		&ev.ConfirmationToken, &ev.Confirmed, &remindedAt, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	ev.Description = description.String
	ev.LocationLink = locationLink.String
	if candidateID.Valid {
		ev.CandidateID = &candidateID.String
	}
	if jobID.Valid {
		ev.JobID = &jobID.String
	}
	if remindedAt.Valid {
		t := remindedAt.Time
		ev.RemindedAt = &t
	}
	return ev, nil
}

// FindByID は指定IDのイベントを取得する。見つからない場合はnilを返す。
func (r *PostgresEventRepo) FindByID(ctx context.Context, id string) (*model.CalendarEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)

	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("イベントの取得に失敗しました: %w", err)
	}
	return ev, nil
}

// FindByToken は確認トークンでイベントを検索する。見つからない場合はnilを返す。
func (r *PostgresEventRepo) FindByToken(ctx context.Context, token string) (*model.CalendarEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE confirmation_token = $1`, token)

	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("トークンによるイベントの検索に失敗しました: %w", err)
	}
	return ev, nil
}

// Create はイベントを作成する。
func (r *PostgresEventRepo) Create(ctx context.Context, ev *model.CalendarEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, title, description, start_at, end_at, event_type,
			location, location_link, scheduled_by, candidate_id, job_id,
			confirmation_token, confirmed, created_at, updated_at)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13, $14, $15)`,
		ev.ID, ev.Title, ev.Description, ev.StartAt, ev.EndAt, ev.Type,
		ev.Location, ev.LocationLink, ev.ScheduledBy, ev.CandidateID, ev.JobID,
		ev.ConfirmationToken, ev.Confirmed, ev.CreatedAt, ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("イベントの作成に失敗しました: %w", err)
	}
	return nil
}

// MarkConfirmed はイベントの確認フラグを立てる。
func (r *PostgresEventRepo) MarkConfirmed(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE events SET confirmed = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("確認フラグの更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("イベントが見つかりません: %s", id)
	}
	return nil
}

// Delete は指定IDのイベントを削除する。出席者関係はCASCADE削除される。
func (r *PostgresEventRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("イベントの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("イベントが見つかりません: %s", id)
	}
	return nil
}

// ListAllWithRefs は全イベントを参照先の表示名付きでstart_at昇順で返す。
func (r *PostgresEventRepo) ListAllWithRefs(ctx context.Context) ([]EventWithRefs, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.id, e.title, e.description, e.start_at, e.end_at, e.event_type,
			e.location, e.location_link, e.scheduled_by, e.candidate_id, e.job_id,
			e.confirmation_token, e.confirmed, e.reminded_at, e.created_at, e.updated_at,
			COALESCE(c.first_name, ''), COALESCE(c.last_name, ''),
			COALESCE(u.name, ''), COALESCE(j.title, '')
		 FROM events e
		 LEFT JOIN candidates c ON c.id = e.candidate_id
		 LEFT JOIN users u ON u.id = e.scheduled_by
		 LEFT JOIN job_postings j ON j.id = e.job_id
		 ORDER BY e.start_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("イベント一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var results []EventWithRefs
	for rows.Next() {
		var item EventWithRefs
		var description, locationLink sql.NullString
		var candidateID, jobID sql.NullString
		var remindedAt sql.NullTime

		err := rows.Scan(
			&item.ID, &item.Title, &description, &item.StartAt, &item.EndAt, &item.Type,
			&item.Location, &locationLink, &item.ScheduledBy, &candidateID, &jobID,
			&item.ConfirmationToken, &item.Confirmed, &remindedAt, &item.CreatedAt, &item.UpdatedAt,
			&item.CandidateFirstName, &item.CandidateLastName,
			&item.InterviewerName, &item.JobTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("イベント行の読み取りに失敗しました: %w", err)
		}

		item.Description = description.String
		item.LocationLink = locationLink.String
		if candidateID.Valid {
			item.CandidateID = &candidateID.String
		}
		if jobID.Valid {
			item.JobID = &jobID.String
		}
		if remindedAt.Valid {
			t := remindedAt.Time
			item.RemindedAt = &t
		}

		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("イベント一覧の走査に失敗しました: %w", err)
	}
	return results, nil
}

// ListByWindow は開始時刻が[from, to)に入るイベントをstart_at昇順で返す。
func (r *PostgresEventRepo) ListByWindow(ctx context.Context, from, to time.Time) ([]*model.CalendarEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE start_at >= $1 AND start_at < $2
		 ORDER BY start_at ASC, created_at ASC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("ウィンドウ内イベントの取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListDueForReminder はstart_atが[from, to)でリマインド未送信のイベントを返す。
func (r *PostgresEventRepo) ListDueForReminder(ctx context.Context, from, to time.Time) ([]*model.CalendarEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE start_at >= $1 AND start_at < $2 AND reminded_at IS NULL
		 ORDER BY start_at ASC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("リマインド対象イベントの取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// MarkReminded はリマインド送信済み時刻を記録する。
func (r *PostgresEventRepo) MarkReminded(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE events SET reminded_at = $2, updated_at = NOW() WHERE id = $1`,
		id, at)
	if err != nil {
		return fmt.Errorf("リマインド時刻の記録に失敗しました: %w", err)
	}
	return nil
}

// collectEvents はクエリ結果の全行をイベントに変換する。
func collectEvents(rows *sql.Rows) ([]*model.CalendarEvent, error) {
	var events []*model.CalendarEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("イベント行の読み取りに失敗しました: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("イベント一覧の走査に失敗しました: %w", err)
	}
	return events, nil
}
