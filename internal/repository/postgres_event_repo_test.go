package repository

import (
	"testing"
	"time"

	"github.com/hitoshi/recruitdesk/internal/model"
)

// PostgresEventRepoはEventRepositoryインターフェースを満たすことを検証
func TestPostgresEventRepo_ImplementsInterface(t *testing.T) {
	var _ EventRepository = (*PostgresEventRepo)(nil)
}

// PostgresAttendeeRepoはAttendeeRepositoryインターフェースを満たすことを検証
func TestPostgresAttendeeRepo_ImplementsInterface(t *testing.T) {
	var _ AttendeeRepository = (*PostgresAttendeeRepo)(nil)
}

// PostgresEventTemplateRepoはEventTemplateRepositoryインターフェースを満たすことを検証
func TestPostgresEventTemplateRepo_ImplementsInterface(t *testing.T) {
	var _ EventTemplateRepository = (*PostgresEventTemplateRepo)(nil)
}

// PostgresDirectoryRepoはDirectoryRepositoryインターフェースを満たすことを検証
func TestPostgresDirectoryRepo_ImplementsInterface(t *testing.T) {
	var _ DirectoryRepository = (*PostgresDirectoryRepo)(nil)
}

// NewPostgresEventRepoが正しく初期化されることを検証
func TestNewPostgresEventRepo_Initializes(t *testing.T) {
	repo := NewPostgresEventRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// CalendarEventモデルの任意参照フィールドがnil許容であることを検証
func TestEventModel_OptionalRefs(t *testing.T) {
	now := time.Now()
	ev := &model.CalendarEvent{
		ID:        "ev-1",
		Title:     "一次面接",
		StartAt:   now,
		EndAt:     now.Add(time.Hour),
		Type:      model.EventTypeInterview,
		Location:  "会議室A",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if ev.CandidateID != nil {
		t.Error("candidate_id should be nil by default")
	}
	if ev.JobID != nil {
		t.Error("job_id should be nil by default")
	}
	if ev.RemindedAt != nil {
		t.Error("reminded_at should be nil by default")
	}
	if ev.Confirmed {
		t.Error("confirmed should be false by default")
	}
}

// EventWithRefs構造体がイベントのフィールドを埋め込みで公開することを検証
func TestEventWithRefs_Embedding(t *testing.T) {
	item := EventWithRefs{
		CalendarEvent: model.CalendarEvent{
			ID:    "ev-1",
			Title: "一次面接",
		},
		CandidateFirstName: "太郎",
		CandidateLastName:  "山田",
		InterviewerName:    "採用 花子",
		JobTitle:           "バックエンドエンジニア",
	}

	if item.ID != "ev-1" {
		t.Errorf("item.ID = %q, want %q", item.ID, "ev-1")
	}
	if item.CandidateFirstName != "太郎" {
		t.Errorf("item.CandidateFirstName = %q, want %q", item.CandidateFirstName, "太郎")
	}
}
