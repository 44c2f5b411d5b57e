// Package booking は面接・イベント予約のドメインロジックを提供する。
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/recruitdesk/internal/invite"
	"github.com/hitoshi/recruitdesk/internal/layout"
	"github.com/hitoshi/recruitdesk/internal/localtime"
	"github.com/hitoshi/recruitdesk/internal/model"
	"github.com/hitoshi/recruitdesk/internal/repository"
	"github.com/hitoshi/recruitdesk/internal/security"
)

// ConfirmationOutcome は確認トークン照合の結果を表す。
type ConfirmationOutcome string

const (
	// OutcomeConfirmed は今回の照合で確認済みになった。
	OutcomeConfirmed ConfirmationOutcome = "confirmed"
	// OutcomeAlreadyConfirmed は既に確認済み（冪等な成功）。
	OutcomeAlreadyConfirmed ConfirmationOutcome = "already_confirmed"
	// OutcomeNotFound はトークンに対応するイベントが存在しない。
	OutcomeNotFound ConfirmationOutcome = "not_found"
)

// Metrics は予約操作のメトリクス記録インターフェース。
type Metrics interface {
	RecordBookingCreated(eventType string)
	RecordConfirmation()
	RecordCancellation()
}

// ScheduleResult はScheduleの戻り値。
// 確認リンクとICS招待文書は予約時に一度だけ生成される副産物で、
// 後から再導出されない。
type ScheduleResult struct {
	Event            *model.CalendarEvent
	ConfirmationLink string
	Invite           string
}

// AttendeeInfo は一覧表示用の出席者情報。
type AttendeeInfo struct {
	UserID    string
	Name      string
	AvatarURL string
	Status    model.AttendeeStatus
}

// EventSummary は一覧表示用にイベントと参照先表示名・出席者を結合した
// ドメインオブジェクト。
type EventSummary struct {
	Event           model.CalendarEvent
	DisplayName     string
	CandidateName   string
	InterviewerName string
	JobTitle        string
	Attendees       []AttendeeInfo
}

// Service は予約のサービス層。
// ストアハンドルはコンストラクタで明示的に注入する（プロセス全体の
// シングルトンは使わない）。トークン発行と招待文書の構築も注入された
// コラボレータが担い、テスト時に決定的に差し替えられる。
type Service struct {
	eventRepo    repository.EventRepository
	attendeeRepo repository.AttendeeRepository
	directory    repository.DirectoryRepository
	tokens       invite.TokenSource
	formatter    invite.Formatter
	sanitizer    security.EventContentSanitizer
	metrics      Metrics
	logger       *slog.Logger
	baseURL      string
	gridConfig   layout.Config
	now          func() time.Time
}

// Config はServiceの生成パラメータ。
type Config struct {
	BaseURL    string        // 確認リンクの組み立てに使う公開URL
	GridConfig layout.Config // 週グリッドのレイアウト定数
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	eventRepo repository.EventRepository,
	attendeeRepo repository.AttendeeRepository,
	directory repository.DirectoryRepository,
	tokens invite.TokenSource,
	formatter invite.Formatter,
	sanitizer security.EventContentSanitizer,
	metrics Metrics,
	logger *slog.Logger,
	cfg Config,
) *Service {
	return &Service{
		eventRepo:    eventRepo,
		attendeeRepo: attendeeRepo,
		directory:    directory,
		tokens:       tokens,
		formatter:    formatter,
		sanitizer:    sanitizer,
		metrics:      metrics,
		logger:       logger,
		baseURL:      cfg.BaseURL,
		gridConfig:   cfg.GridConfig,
		now:          time.Now,
	}
}

// Schedule はDraftEventを検証し、確認トークン付きのCalendarEventとして
// 永続化する。イベント行の直後に出席者行を順次作成する。出席者の作成に
// 失敗してもイベント行はロールバックされず、そのイベントは出席者なしの
// まま残る（既知のギャップ。失敗はログにのみ記録する）。
// タイトル・説明のプレースホルダは登録前にコンテキストで解決する。
func (s *Service) Schedule(ctx context.Context, draft *model.DraftEvent, scheduledBy string, candidateID, jobID *string, attendeeIDs []string) (*ScheduleResult, error) {
	if scheduledBy == "" {
		return nil, model.NewValidationError("scheduled_by", "作成者を指定してください。")
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	renderCtx, err := s.buildRenderContext(ctx, scheduledBy, candidateID, jobID)
	if err != nil {
		return nil, err
	}

	title := s.sanitizer.SanitizeTitle(invite.Render(draft.Title, renderCtx))
	description := s.sanitizer.SanitizeDescription(invite.Render(draft.Description, renderCtx))

	token, err := s.tokens.NewToken()
	if err != nil {
		return nil, fmt.Errorf("確認トークンの発行に失敗しました: %w", err)
	}

	now := s.now()
	event := &model.CalendarEvent{
		ID:                uuid.NewString(),
		Title:             title,
		Description:       description,
		StartAt:           draft.StartAt,
		EndAt:             draft.End(),
		Type:              draft.Type,
		Location:          draft.Location,
		LocationLink:      draft.LocationLink,
		ScheduledBy:       scheduledBy,
		CandidateID:       candidateID,
		JobID:             jobID,
		ConfirmationToken: token,
		Confirmed:         false,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if event.Type == "" {
		event.Type = model.EventTypeInterview
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("イベントの保存に失敗しました: %w", err)
	}

	// イベント行の直後に出席者行を作成する。トランザクションは張らない。
	for _, userID := range attendeeIDs {
		attendee := &model.Attendee{
			ID:        uuid.NewString(),
			EventID:   event.ID,
			UserID:    userID,
			Status:    model.AttendeeStatusPending,
			CreatedAt: now,
		}
		if err := s.attendeeRepo.Create(ctx, attendee); err != nil {
			s.logger.Warn("出席者の作成に失敗しました（イベントは保存済み）",
				slog.String("event_id", event.ID),
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordBookingCreated(string(event.Type))
	}

	return &ScheduleResult{
		Event:            event,
		ConfirmationLink: s.baseURL + "/api/interviews/confirm/" + token,
		Invite:           s.formatter.Format(event),
	}, nil
}

// buildRenderContext は招待文面のプレースホルダ解決用コンテキストを構築する。
// 参照先が見つからないグループは単にnilのままにする（トークンは残る）。
func (s *Service) buildRenderContext(ctx context.Context, scheduledBy string, candidateID, jobID *string) (invite.RenderContext, error) {
	var renderCtx invite.RenderContext

	sender, err := s.directory.FindUserByID(ctx, scheduledBy)
	if err != nil {
		return renderCtx, fmt.Errorf("作成者の取得に失敗しました: %w", err)
	}
	if sender != nil {
		renderCtx.Sender = &invite.SenderContext{Name: sender.Name, Email: sender.Email}
	}

	if candidateID != nil {
		candidate, err := s.directory.FindCandidateByID(ctx, *candidateID)
		if err != nil {
			return renderCtx, fmt.Errorf("候補者の取得に失敗しました: %w", err)
		}
		if candidate != nil {
			renderCtx.Candidate = &invite.CandidateContext{
				FirstName: candidate.FirstName,
				LastName:  candidate.LastName,
			}
		}
	}

	if jobID != nil {
		job, err := s.directory.FindJobByID(ctx, *jobID)
		if err != nil {
			return renderCtx, fmt.Errorf("求人の取得に失敗しました: %w", err)
		}
		if job != nil {
			renderCtx.Job = &invite.JobContext{Title: job.Title}
		}
	}

	return renderCtx, nil
}

// Confirm は確認トークンを照合する。
// 未知のトークンはOutcomeNotFound、確認済みはOutcomeAlreadyConfirmed
// （エラーではない冪等な成功）、それ以外はフラグを立てて
// OutcomeConfirmedを返す。
func (s *Service) Confirm(ctx context.Context, token string) (ConfirmationOutcome, *model.CalendarEvent, error) {
	event, err := s.eventRepo.FindByToken(ctx, token)
	if err != nil {
		return "", nil, fmt.Errorf("トークンの照合に失敗しました: %w", err)
	}
	if event == nil {
		return OutcomeNotFound, nil, nil
	}
	if event.Confirmed {
		return OutcomeAlreadyConfirmed, event, nil
	}

	if err := s.eventRepo.MarkConfirmed(ctx, event.ID); err != nil {
		return "", nil, fmt.Errorf("確認フラグの更新に失敗しました: %w", err)
	}
	event.Confirmed = true

	if s.metrics != nil {
		s.metrics.RecordConfirmation()
	}
	return OutcomeConfirmed, event, nil
}

// Cancel はイベントを取り消す。通知の発送は外部コラボレータの責務で、
// ここでは通知内容をログに記録するだけにとどめる。イベント行を削除すると
// 出席者関係はCASCADEで一緒に消える（「取消済みで表示される」状態はない）。
func (s *Service) Cancel(ctx context.Context, eventID string) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("イベントの取得に失敗しました: %w", err)
	}
	if event == nil {
		return model.NewEventNotFoundError(eventID)
	}

	// 取消通知（配送は外部コラボレータ）
	s.logger.Info("イベント取消の通知",
		slog.String("event_id", event.ID),
		slog.String("title", event.Title),
		slog.Time("start_at", event.StartAt),
		slog.String("scheduled_by", event.ScheduledBy),
	)

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("イベントの削除に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordCancellation()
	}
	return nil
}

// ListUpcoming は全イベントを出席者一覧付きで返す。
// 名前に反して未来のイベントに絞り込まない（既知の仕様を保持）。
// 出席者はイベントごとに個別取得する。
func (s *Service) ListUpcoming(ctx context.Context) ([]EventSummary, error) {
	rows, err := s.eventRepo.ListAllWithRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("イベント一覧の取得に失敗しました: %w", err)
	}

	summaries := make([]EventSummary, 0, len(rows))
	for _, row := range rows {
		attendees, err := s.attendeeRepo.ListByEventID(ctx, row.ID)
		if err != nil {
			return nil, fmt.Errorf("出席者一覧の取得に失敗しました: %w", err)
		}

		infos := make([]AttendeeInfo, 0, len(attendees))
		for _, a := range attendees {
			infos = append(infos, AttendeeInfo{
				UserID:    a.UserID,
				Name:      a.UserName,
				AvatarURL: a.AvatarURL,
				Status:    a.Status,
			})
		}

		summary := EventSummary{
			Event:           row.CalendarEvent,
			InterviewerName: row.InterviewerName,
			JobTitle:        row.JobTitle,
			Attendees:       infos,
		}
		if row.CandidateFirstName != "" || row.CandidateLastName != "" {
			summary.CandidateName = row.CandidateFirstName + " " + row.CandidateLastName
		}

		// 候補者・求人のどちらも紐付かないイベントの表示名はデフォルト値
		switch {
		case summary.CandidateName != "":
			summary.DisplayName = summary.CandidateName
		case summary.JobTitle != "":
			summary.DisplayName = summary.JobTitle
		default:
			summary.DisplayName = "General Event"
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// DayGrid は指定ローカル暦日のイベントをレイアウト注釈付きで返す。
// ウィンドウの境界はビューワーのタイムゾーンの0時で区切り、
// レイアウトは呼び出しのたびに再計算する。
func (s *Service) DayGrid(ctx context.Context, day localtime.LocalDateTime, loc *time.Location) ([]layout.Placed, error) {
	dayStart := localtime.ToAbsolute(localtime.LocalDateTime{
		Year: day.Year, Month: day.Month, Day: day.Day,
	}, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := s.eventRepo.ListByWindow(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("ウィンドウ内イベントの取得に失敗しました: %w", err)
	}

	values := make([]model.CalendarEvent, len(events))
	for i, ev := range events {
		values[i] = *ev
	}

	return layout.Compute(values, loc, s.gridConfig), nil
}
