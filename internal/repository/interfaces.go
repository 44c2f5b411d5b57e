// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/recruitdesk/internal/model"
)

// EventWithRefs はイベントと参照先の表示名を結合した構造体。
// 一覧表示用に候補者名・面接官名・求人タイトルを非正規化して持つ。
type EventWithRefs struct {
	model.CalendarEvent
	CandidateFirstName string
	CandidateLastName  string
	InterviewerName    string
	JobTitle           string
}

// AttendeeWithUser は出席者関係とユーザー表示情報を結合した構造体。
type AttendeeWithUser struct {
	model.Attendee
	UserName  string
	AvatarURL string
}

// EventRepository はカレンダーイベントの永続化インターフェース。
type EventRepository interface {
	// FindByID は指定IDのイベントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.CalendarEvent, error)

	// FindByToken は確認トークンでイベントを検索する。見つからない場合はnilを返す。
	FindByToken(ctx context.Context, token string) (*model.CalendarEvent, error)

	// Create はイベントを作成する。
	Create(ctx context.Context, event *model.CalendarEvent) error

	// MarkConfirmed はイベントの確認フラグを立てる。
	MarkConfirmed(ctx context.Context, id string) error

	// Delete は指定IDのイベントを削除する。
	// 関連するevent_attendeesはCASCADE削除される。
	Delete(ctx context.Context, id string) error

	// ListAllWithRefs は全イベントを参照先の表示名付きで返す。
	// 名前に反して未来のイベントに絞り込まない（既知の仕様を保持）。
	ListAllWithRefs(ctx context.Context) ([]EventWithRefs, error)

	// ListByWindow は開始時刻が[from, to)に入るイベントを返す。
	ListByWindow(ctx context.Context, from, to time.Time) ([]*model.CalendarEvent, error)

	// ListDueForReminder はstart_atが[from, to)でreminded_atが未設定の
	// イベントを返す。
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]*model.CalendarEvent, error)

	// MarkReminded はリマインド送信済み時刻を記録する。
	MarkReminded(ctx context.Context, id string, at time.Time) error
}

// AttendeeRepository は出席者関係の永続化インターフェース。
type AttendeeRepository interface {
	// Create は出席者関係を作成する。
	Create(ctx context.Context, attendee *model.Attendee) error

	// ListByEventID は指定イベントの出席者をユーザー表示情報付きで返す。
	ListByEventID(ctx context.Context, eventID string) ([]AttendeeWithUser, error)
}

// EventTemplateRepository はイベントテンプレートの永続化インターフェース。
type EventTemplateRepository interface {
	// FindByID は指定IDのテンプレートを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.EventTemplate, error)

	// List は全テンプレートを名前順で返す。
	List(ctx context.Context) ([]*model.EventTemplate, error)

	// Create はテンプレートを作成する。
	Create(ctx context.Context, tmpl *model.EventTemplate) error

	// Update はテンプレートを上書き更新する。
	Update(ctx context.Context, tmpl *model.EventTemplate) error

	// Delete は指定IDのテンプレートを削除する。
	Delete(ctx context.Context, id string) error
}

// DirectoryRepository はユーザー・候補者・求人の参照読み取りインターフェース。
// 招待文面のプレースホルダ解決と表示名の取得にのみ使用する。
type DirectoryRepository interface {
	// FindUserByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindUserByID(ctx context.Context, id string) (*model.User, error)

	// FindCandidateByID は指定IDの候補者を取得する。見つからない場合はnilを返す。
	FindCandidateByID(ctx context.Context, id string) (*model.Candidate, error)

	// FindJobByID は指定IDの求人を取得する。見つからない場合はnilを返す。
	FindJobByID(ctx context.Context, id string) (*model.JobPosting, error)
}
