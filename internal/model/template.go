// Package model はドメインモデルを定義する。
package model

import "time"

// EventTemplate は再利用可能なイベント内容のテンプレートを表す。
// DraftEventや招待文面の事前入力にのみ使われ、それ自体は
// スケジュールされない。
type EventTemplate struct {
	ID                     string
	Name                   string
	TitleTemplate          string
	DescriptionTemplate    string
	DefaultDurationMinutes int
	DefaultLocation        string
	EventType              EventType
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Validate はテンプレートの必須項目を検証する。
func (t *EventTemplate) Validate() error {
	if t.Name == "" {
		return NewValidationError("name", "テンプレート名を入力してください。")
	}
	if t.TitleTemplate == "" {
		return NewValidationError("title_template", "タイトルテンプレートを入力してください。")
	}
	if t.DefaultDurationMinutes <= 0 {
		return NewValidationError("default_duration_minutes", "デフォルト所要時間は正の分数で指定してください。")
	}
	return nil
}
