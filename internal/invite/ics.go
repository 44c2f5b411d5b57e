package invite

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/hitoshi/recruitdesk/internal/model"
)

// Formatter はカレンダー招待アーティファクトの構築インターフェース。
// BookingServiceへ注入し、テスト時に差し替え可能にする。
type Formatter interface {
	// Format はイベントからプレーンテキストのカレンダー招待文書を構築する。
	Format(event *model.CalendarEvent) string
}

// ICSFormatter はiCalendar形式で招待文書を構築する実装。
type ICSFormatter struct{}

// NewICSFormatter はICSFormatterを生成する。
func NewICSFormatter() *ICSFormatter {
	return &ICSFormatter{}
}

// Format はイベントをVEVENT 1件のiCalendar文書にシリアライズする。
// UIDには確認トークンを使用し、開始・終了は絶対時刻（UTC）で記録する。
// 予約時に副産物として一度だけ生成され、後から再導出されない。
func (f *ICSFormatter) Format(event *model.CalendarEvent) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodRequest)
	cal.SetProductId("-//" + OrganizationName + "//recruitdesk//JA")

	ve := cal.AddEvent(event.ConfirmationToken)
	ve.SetDtStampTime(time.Now().UTC())
	ve.SetStartAt(event.StartAt.UTC())
	ve.SetEndAt(event.EndAt.UTC())
	ve.SetSummary(event.Title)
	if event.Description != "" {
		ve.SetDescription(event.Description)
	}

	// 物理会場を優先し、なければビデオリンクをLOCATIONに入れる
	location := event.Location
	if location == "" {
		location = event.LocationLink
	}
	if location != "" {
		ve.SetLocation(location)
	}

	return cal.Serialize()
}
