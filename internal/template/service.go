// Package template はイベントテンプレート集合の管理ロジックを提供する。
// テンプレートはDraftEventや招待文面の事前入力にのみ使われ、
// それ自体はスケジュールされない編集可能なコレクション。
package template

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/recruitdesk/internal/invite"
	"github.com/hitoshi/recruitdesk/internal/model"
	"github.com/hitoshi/recruitdesk/internal/repository"
	"github.com/hitoshi/recruitdesk/internal/security"
)

// Preview はプレースホルダ解決済みのテンプレート内容。
// DraftEventの事前入力にそのまま使える形を返す。
type Preview struct {
	Title           string
	Description     string
	DurationMinutes int
	Location        string
	EventType       model.EventType
}

// Service はテンプレート管理のサービス層。
type Service struct {
	repo      repository.EventTemplateRepository
	sanitizer security.EventContentSanitizer
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.EventTemplateRepository, sanitizer security.EventContentSanitizer) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// List は全テンプレートを返す。
func (s *Service) List(ctx context.Context) ([]*model.EventTemplate, error) {
	templates, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("テンプレート一覧の取得に失敗しました: %w", err)
	}
	return templates, nil
}

// Get は指定IDのテンプレートを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.EventTemplate, error) {
	tmpl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("テンプレートの取得に失敗しました: %w", err)
	}
	if tmpl == nil {
		return nil, model.NewTemplateNotFoundError(id)
	}
	return tmpl, nil
}

// Create は新しいテンプレートを作成する。
// テンプレート文字列はプレースホルダを残したままサニタイズのみ行う。
func (s *Service) Create(ctx context.Context, tmpl *model.EventTemplate) (*model.EventTemplate, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	tmpl.ID = uuid.NewString()
	tmpl.TitleTemplate = s.sanitizer.SanitizeTitle(tmpl.TitleTemplate)
	tmpl.DescriptionTemplate = s.sanitizer.SanitizeDescription(tmpl.DescriptionTemplate)
	tmpl.CreatedAt = now
	tmpl.UpdatedAt = now
	if tmpl.EventType == "" {
		tmpl.EventType = model.EventTypeInterview
	}

	if err := s.repo.Create(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("テンプレートの作成に失敗しました: %w", err)
	}
	return tmpl, nil
}

// Update は既存テンプレートを上書き更新する。
func (s *Service) Update(ctx context.Context, id string, tmpl *model.EventTemplate) (*model.EventTemplate, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("テンプレートの取得に失敗しました: %w", err)
	}
	if existing == nil {
		return nil, model.NewTemplateNotFoundError(id)
	}

	tmpl.ID = id
	tmpl.TitleTemplate = s.sanitizer.SanitizeTitle(tmpl.TitleTemplate)
	tmpl.DescriptionTemplate = s.sanitizer.SanitizeDescription(tmpl.DescriptionTemplate)
	tmpl.CreatedAt = existing.CreatedAt
	tmpl.UpdatedAt = s.now()
	if tmpl.EventType == "" {
		tmpl.EventType = existing.EventType
	}

	if err := s.repo.Update(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("テンプレートの更新に失敗しました: %w", err)
	}
	return tmpl, nil
}

// Delete は指定IDのテンプレートを削除する。
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("テンプレートの取得に失敗しました: %w", err)
	}
	if existing == nil {
		return model.NewTemplateNotFoundError(id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("テンプレートの削除に失敗しました: %w", err)
	}
	return nil
}

// Render はテンプレートのプレースホルダをコンテキストで解決し、
// DraftEvent事前入力用のプレビューを返す。コンテキストにない
// グループのトークンはそのまま残る。
func (s *Service) Render(ctx context.Context, id string, renderCtx invite.RenderContext) (*Preview, error) {
	tmpl, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Preview{
		Title:           invite.Render(tmpl.TitleTemplate, renderCtx),
		Description:     invite.Render(tmpl.DescriptionTemplate, renderCtx),
		DurationMinutes: tmpl.DefaultDurationMinutes,
		Location:        tmpl.DefaultLocation,
		EventType:       tmpl.EventType,
	}, nil
}
