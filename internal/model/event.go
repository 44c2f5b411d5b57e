// Package model はドメインモデルを定義する。
package model

import "time"

// EventType はカレンダーイベントの種別を表す閉じた列挙型。
type EventType string

const (
	// EventTypeInterview は候補者との面接。
	EventTypeInterview EventType = "interview"
	// EventTypeScreening は書類・電話スクリーニング。
	EventTypeScreening EventType = "screening"
	// EventTypeTeamSync は採用チームの定例。
	EventTypeTeamSync EventType = "team_sync"
	// EventTypeBlocked は予定確保のためのブロック枠。
	EventTypeBlocked EventType = "blocked"
)

// ParseEventType は文字列をEventTypeに変換する。
// 未知の値の場合はfalseを返す。
func ParseEventType(s string) (EventType, bool) {
	switch EventType(s) {
	case EventTypeInterview, EventTypeScreening, EventTypeTeamSync, EventTypeBlocked:
		return EventType(s), true
	}
	return "", false
}

// CalendarEvent は永続化されたカレンダーイベントを表す。
// 日時は常に絶対時刻（UTC基準のtime.Time）で保持し、
// 表示時にのみローカル時刻へ変換する。
type CalendarEvent struct {
	ID                string
	Title             string
	Description       string
	StartAt           time.Time
	EndAt             time.Time
	Type              EventType
	Location          string
	LocationLink      string
	ScheduledBy       string
	CandidateID       *string
	JobID             *string
	ConfirmationToken string
	Confirmed         bool
	RemindedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AttendeeStatus は出席者の回答状態を表す。
type AttendeeStatus string

const (
	// AttendeeStatusPending は未回答。作成時のデフォルト。
	AttendeeStatusPending AttendeeStatus = "pending"
	// AttendeeStatusAccepted は出席承諾。
	AttendeeStatusAccepted AttendeeStatus = "accepted"
	// AttendeeStatusDeclined は欠席回答。
	AttendeeStatusDeclined AttendeeStatus = "declined"
)

// Attendee はイベントとユーザーの多対多関係を表す。
// イベント作成時に同時に作成され、このコアでは個別に更新されない。
type Attendee struct {
	ID        string
	EventID   string
	UserID    string
	Status    AttendeeStatus
	CreatedAt time.Time
}

// DraftEvent は保存前の編集中イベントを表す。
// 永続化ストアには存在せず、保存または破棄されるまでの間だけ
// リクエスト内に存在する（同時に1件のみ）。
type DraftEvent struct {
	Title           string
	Description     string
	StartAt         time.Time
	DurationMinutes int
	Type            EventType
	Location        string
	LocationLink    string
}

// Validate はDraftEventがCalendarEventへ昇格可能かを検証する。
// タイトル非空、開始時刻あり、分単位の正の所要時間、
// 場所（物理、ビデオリンク、Remoteのいずれか）が必要。
// 既存イベントとの重複チェックは仕様上行わない（ダブルブッキング許容）。
func (d *DraftEvent) Validate() error {
	if d.Title == "" {
		return NewValidationError("title", "タイトルを入力してください。")
	}
	if d.StartAt.IsZero() {
		return NewValidationError("interview_date", "開始日時を指定してください。")
	}
	if d.DurationMinutes <= 0 {
		return NewValidationError("duration", "所要時間は正の分数で指定してください。")
	}
	if d.Location == "" && d.LocationLink == "" {
		return NewValidationError("location", "場所（会場、ビデオリンク、またはRemote）を指定してください。")
	}
	return nil
}

// End はDraftEventの終了時刻を返す。
func (d *DraftEvent) End() time.Time {
	return d.StartAt.Add(time.Duration(d.DurationMinutes) * time.Minute)
}
