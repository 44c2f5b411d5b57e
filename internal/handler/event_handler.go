package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/recruitdesk/internal/booking"
	"github.com/hitoshi/recruitdesk/internal/layout"
	"github.com/hitoshi/recruitdesk/internal/localtime"
	"github.com/hitoshi/recruitdesk/internal/model"
)

// BookingServiceInterface は面接予約ハンドラーが必要とするサービスインターフェース。
type BookingServiceInterface interface {
	// Schedule はドラフトを検証し、確認トークン付きイベントとして永続化する。
	Schedule(ctx context.Context, draft *model.DraftEvent, scheduledBy string, candidateID, jobID *string, attendeeIDs []string) (*booking.ScheduleResult, error)
	// Confirm は確認トークンで参加を確定する（冪等）。
	Confirm(ctx context.Context, token string) (booking.ConfirmationOutcome, *model.CalendarEvent, error)
	// Cancel はイベントを削除し、キャンセル通知を記録する。
	Cancel(ctx context.Context, eventID string) error
	// ListUpcoming は全イベントを表示名・出席者付きで返す。
	ListUpcoming(ctx context.Context) ([]booking.EventSummary, error)
	// DayGrid は指定ローカル日のイベントにレイアウト注釈を付与して返す。
	DayGrid(ctx context.Context, day localtime.LocalDateTime, loc *time.Location) ([]layout.Placed, error)
}

// EventHandler は面接予約のHTTPハンドラー。
type EventHandler struct {
	service BookingServiceInterface
}

// NewEventHandler はEventHandlerを生成する。
func NewEventHandler(service BookingServiceInterface) *EventHandler {
	return &EventHandler{service: service}
}

// createInterviewRequest は面接予約リクエストのボディ。
type createInterviewRequest struct {
	ScheduledBy   string   `json:"scheduled_by"`
	InterviewDate string   `json:"interview_date"`
	Location      string   `json:"location"`
	Duration      int      `json:"duration,omitempty"`
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	LocationLink  string   `json:"location_link,omitempty"`
	Attendees     []string `json:"attendees,omitempty"`
	EventType     string   `json:"event_type,omitempty"`
	CandidateID   *string  `json:"candidate_id,omitempty"`
	JobID         *string  `json:"job_id,omitempty"`
}

// interviewResponse はイベントのAPIレスポンス。
type interviewResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	EventType    string    `json:"event_type"`
	Location     string    `json:"location,omitempty"`
	LocationLink string    `json:"location_link,omitempty"`
	ScheduledBy  string    `json:"scheduled_by"`
	CandidateID  *string   `json:"candidate_id,omitempty"`
	JobID        *string   `json:"job_id,omitempty"`
	Confirmed    bool      `json:"confirmed"`
	CreatedAt    time.Time `json:"created_at"`
}

// createInterviewResponse は面接予約成功時のレスポンス。
type createInterviewResponse struct {
	Interview        interviewResponse `json:"interview"`
	ConfirmationLink string            `json:"confirmationLink"`
}

// confirmResponse は参加確定のレスポンス。
type confirmResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Interview interviewResponse `json:"interview"`
}

// attendeeResponse は出席者情報のAPIレスポンス。
type attendeeResponse struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Status    string `json:"status"`
}

// eventSummaryResponse は一覧表示用の非正規化レスポンス。
type eventSummaryResponse struct {
	interviewResponse
	DisplayName     string             `json:"display_name"`
	CandidateName   string             `json:"candidate_name,omitempty"`
	InterviewerName string             `json:"interviewer_name,omitempty"`
	JobTitle        string             `json:"job_title,omitempty"`
	Attendees       []attendeeResponse `json:"attendees"`
}

// placedEventResponse はレイアウト注釈付きイベントのレスポンス。
type placedEventResponse struct {
	interviewResponse
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// CreateInterview は面接予約を処理する。
// POST /api/interviews
func (h *EventHandler) CreateInterview(w http.ResponseWriter, r *http.Request) {
	var req createInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	if req.ScheduledBy == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("scheduled_by", "予約者は必須です"))
		return
	}
	if req.InterviewDate == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("interview_date", "開始日時は必須です"))
		return
	}
	if req.Location == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("location", "場所は必須です"))
		return
	}

	startAt, err := time.Parse(time.RFC3339, req.InterviewDate)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("interview_date", "RFC 3339形式の日時を指定してください"))
		return
	}

	eventType := model.EventTypeInterview
	if req.EventType != "" {
		parsed, ok := model.ParseEventType(req.EventType)
		if !ok {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidEventTypeError(req.EventType))
			return
		}
		eventType = parsed
	}

	duration := req.Duration
	if duration <= 0 {
		duration = 60
	}

	title := req.Title
	if title == "" {
		title = "面接"
	}

	draft := &model.DraftEvent{
		Title:           title,
		Description:     req.Description,
		StartAt:         startAt,
		DurationMinutes: duration,
		Type:            eventType,
		Location:        req.Location,
		LocationLink:    req.LocationLink,
	}

	result, err := h.service.Schedule(r.Context(), draft, req.ScheduledBy, req.CandidateID, req.JobID, req.Attendees)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(createInterviewResponse{
		Interview:        toInterviewResponse(result.Event),
		ConfirmationLink: result.ConfirmationLink,
	})
}

// ConfirmByToken は確認トークンによる参加確定を処理する。
// GET /api/interviews/confirm/{token}
func (h *EventHandler) ConfirmByToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	outcome, event, err := h.service.Confirm(r.Context(), token)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if outcome == booking.OutcomeNotFound {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewTokenNotFoundError())
		return
	}

	message := "ご参加ありがとうございます。面接の参加が確定しました。"
	if outcome == booking.OutcomeAlreadyConfirmed {
		message = "この面接はすでに確定済みです。"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(confirmResponse{
		Status:    string(outcome),
		Message:   message,
		Interview: toInterviewResponse(event),
	})
}

// ListUpcoming はイベント一覧を取得する。
// GET /api/interviews/upcoming
func (h *EventHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListUpcoming(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]eventSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		attendees := make([]attendeeResponse, 0, len(s.Attendees))
		for _, a := range s.Attendees {
			attendees = append(attendees, attendeeResponse{
				UserID:    a.UserID,
				Name:      a.Name,
				AvatarURL: a.AvatarURL,
				Status:    string(a.Status),
			})
		}
		resp = append(resp, eventSummaryResponse{
			interviewResponse: toInterviewResponse(&s.Event),
			DisplayName:       s.DisplayName,
			CandidateName:     s.CandidateName,
			InterviewerName:   s.InterviewerName,
			JobTitle:          s.JobTitle,
			Attendees:         attendees,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// DeleteInterview はイベントのキャンセルを処理する。
// DELETE /api/interviews/{id}
func (h *EventHandler) DeleteInterview(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	if err := h.service.Cancel(r.Context(), eventID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "イベントをキャンセルしました。",
	})
}

// DayWindow は指定ローカル日のレイアウト注釈付きイベント集合を返す。
// GET /api/interviews/window?day=YYYY-MM-DD&tz=<IANA>
func (h *EventHandler) DayWindow(w http.ResponseWriter, r *http.Request) {
	dayParam := r.URL.Query().Get("day")
	if dayParam == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("day", "描画日は必須です"))
		return
	}

	dayTime, err := time.Parse("2006-01-02", dayParam)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("day", "YYYY-MM-DD形式で指定してください"))
		return
	}

	tzParam := r.URL.Query().Get("tz")
	if tzParam == "" {
		tzParam = "UTC"
	}
	loc, err := time.LoadLocation(tzParam)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("tz", "IANAタイムゾーン名を指定してください"))
		return
	}

	day := localtime.LocalDateTime{
		Year:  dayTime.Year(),
		Month: dayTime.Month(),
		Day:   dayTime.Day(),
	}

	placed, err := h.service.DayGrid(r.Context(), day, loc)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]placedEventResponse, 0, len(placed))
	for _, p := range placed {
		resp = append(resp, placedEventResponse{
			interviewResponse: toInterviewResponse(&p.Event),
			Top:               p.Annotation.Top,
			Height:            p.Annotation.Height,
			Left:              p.Annotation.Left,
			Width:             p.Annotation.Width,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// --- ヘルパー関数 ---

// toInterviewResponse はmodel.CalendarEventからAPIレスポンスに変換する。
// 確認トークンはレスポンスに含めない（確認リンク経由でのみ渡る）。
func toInterviewResponse(ev *model.CalendarEvent) interviewResponse {
	return interviewResponse{
		ID:           ev.ID,
		Title:        ev.Title,
		Description:  ev.Description,
		StartAt:      ev.StartAt,
		EndAt:        ev.EndAt,
		EventType:    string(ev.Type),
		Location:     ev.Location,
		LocationLink: ev.LocationLink,
		ScheduledBy:  ev.ScheduledBy,
		CandidateID:  ev.CandidateID,
		JobID:        ev.JobID,
		Confirmed:    ev.Confirmed,
		CreatedAt:    ev.CreatedAt,
	}
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorカテゴリからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Category {
	case "validation":
		return http.StatusBadRequest
	case "notfound":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
