package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/recruitdesk/internal/invite"
	"github.com/hitoshi/recruitdesk/internal/model"
	"github.com/hitoshi/recruitdesk/internal/template"
)

// TemplateServiceInterface はテンプレートハンドラーが必要とするサービスインターフェース。
type TemplateServiceInterface interface {
	List(ctx context.Context) ([]*model.EventTemplate, error)
	Get(ctx context.Context, id string) (*model.EventTemplate, error)
	Create(ctx context.Context, tmpl *model.EventTemplate) (*model.EventTemplate, error)
	Update(ctx context.Context, id string, tmpl *model.EventTemplate) (*model.EventTemplate, error)
	Delete(ctx context.Context, id string) error
	// Render はプレースホルダを解決したプレビューを返す。
	Render(ctx context.Context, id string, renderCtx invite.RenderContext) (*template.Preview, error)
}

// TemplateHandler はイベントテンプレートのHTTPハンドラー。
type TemplateHandler struct {
	service TemplateServiceInterface
}

// NewTemplateHandler はTemplateHandlerを生成する。
func NewTemplateHandler(service TemplateServiceInterface) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// templateRequest はテンプレート作成・更新リクエストのボディ。
type templateRequest struct {
	Name                   string `json:"name"`
	TitleTemplate          string `json:"title_template"`
	DescriptionTemplate    string `json:"description_template,omitempty"`
	DefaultDurationMinutes int    `json:"default_duration_minutes"`
	DefaultLocation        string `json:"default_location,omitempty"`
	EventType              string `json:"event_type,omitempty"`
}

// templateResponse はテンプレートのAPIレスポンス。
type templateResponse struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	TitleTemplate          string    `json:"title_template"`
	DescriptionTemplate    string    `json:"description_template,omitempty"`
	DefaultDurationMinutes int       `json:"default_duration_minutes"`
	DefaultLocation        string    `json:"default_location,omitempty"`
	EventType              string    `json:"event_type"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// previewRequest はプレビューリクエストのボディ。解決コンテキストの
// 各グループは省略可能で、省略されたグループのトークンはそのまま残る。
type previewRequest struct {
	Candidate *struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"candidate,omitempty"`
	Sender *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender,omitempty"`
	Job *struct {
		Title string `json:"title"`
	} `json:"job,omitempty"`
}

// previewResponse はプレースホルダ解決済みのプレビューレスポンス。
type previewResponse struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	Location        string `json:"location,omitempty"`
	EventType       string `json:"event_type"`
}

// ListTemplates はテンプレート一覧を取得する。
// GET /api/templates
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]templateResponse, 0, len(templates))
	for _, tmpl := range templates {
		resp = append(resp, toTemplateResponse(tmpl))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetTemplate はテンプレート詳細を取得する。
// GET /api/templates/{id}
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toTemplateResponse(tmpl))
}

// CreateTemplate はテンプレート作成を処理する。
// POST /api/templates
func (h *TemplateHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := decodeTemplateRequest(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), tmpl)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toTemplateResponse(created))
}

// UpdateTemplate はテンプレート更新を処理する。
// PUT /api/templates/{id}
func (h *TemplateHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := decodeTemplateRequest(w, r)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), tmpl)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toTemplateResponse(updated))
}

// DeleteTemplate はテンプレート削除を処理する。
// DELETE /api/templates/{id}
func (h *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PreviewTemplate はプレースホルダを解決したプレビューを返す。
// POST /api/templates/{id}/preview
func (h *TemplateHandler) PreviewTemplate(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	renderCtx := invite.RenderContext{}
	if req.Candidate != nil {
		renderCtx.Candidate = &invite.CandidateContext{
			FirstName: req.Candidate.FirstName,
			LastName:  req.Candidate.LastName,
		}
	}
	if req.Sender != nil {
		renderCtx.Sender = &invite.SenderContext{
			Name:  req.Sender.Name,
			Email: req.Sender.Email,
		}
	}
	if req.Job != nil {
		renderCtx.Job = &invite.JobContext{Title: req.Job.Title}
	}

	preview, err := h.service.Render(r.Context(), chi.URLParam(r, "id"), renderCtx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(previewResponse{
		Title:           preview.Title,
		Description:     preview.Description,
		DurationMinutes: preview.DurationMinutes,
		Location:        preview.Location,
		EventType:       string(preview.EventType),
	})
}

// --- ヘルパー関数 ---

// decodeTemplateRequest はリクエストボディをmodel.EventTemplateに変換する。
// 解析に失敗した場合はエラーレスポンスを書き込み、falseを返す。
func decodeTemplateRequest(w http.ResponseWriter, r *http.Request) (*model.EventTemplate, bool) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return nil, false
	}

	var eventType model.EventType
	if req.EventType != "" {
		parsed, ok := model.ParseEventType(req.EventType)
		if !ok {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidEventTypeError(req.EventType))
			return nil, false
		}
		eventType = parsed
	}

	return &model.EventTemplate{
		Name:                   req.Name,
		TitleTemplate:          req.TitleTemplate,
		DescriptionTemplate:    req.DescriptionTemplate,
		DefaultDurationMinutes: req.DefaultDurationMinutes,
		DefaultLocation:        req.DefaultLocation,
		EventType:              eventType,
	}, true
}

// toTemplateResponse はmodel.EventTemplateからAPIレスポンスに変換する。
func toTemplateResponse(tmpl *model.EventTemplate) templateResponse {
	return templateResponse{
		ID:                     tmpl.ID,
		Name:                   tmpl.Name,
		TitleTemplate:          tmpl.TitleTemplate,
		DescriptionTemplate:    tmpl.DescriptionTemplate,
		DefaultDurationMinutes: tmpl.DefaultDurationMinutes,
		DefaultLocation:        tmpl.DefaultLocation,
		EventType:              string(tmpl.EventType),
		CreatedAt:              tmpl.CreatedAt,
		UpdatedAt:              tmpl.UpdatedAt,
	}
}
