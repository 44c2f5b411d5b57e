package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/recruitdesk/internal/model"
)

// PostgresEventTemplateRepo はPostgreSQLを使用したテンプレートリポジトリ。
type PostgresEventTemplateRepo struct {
	db *sql.DB
}

// NewPostgresEventTemplateRepo はPostgresEventTemplateRepoを生成する。
func NewPostgresEventTemplateRepo(db *sql.DB) *PostgresEventTemplateRepo {
	return &PostgresEventTemplateRepo{db: db}
}

const templateColumns = `id, name, title_template, description_template,
	default_duration_minutes, default_location, event_type, created_at, updated_at`

// FindByID は指定IDのテンプレートを取得する。見つからない場合はnilを返す。
func (r *PostgresEventTemplateRepo) FindByID(ctx context.Context, id string) (*model.EventTemplate, error) {
	tmpl := &model.EventTemplate{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM event_templates WHERE id = $1`, id,
	).Scan(
		&tmpl.ID, &tmpl.Name, &tmpl.TitleTemplate, &tmpl.DescriptionTemplate,
		&tmpl.DefaultDurationMinutes, &tmpl.DefaultLocation, &tmpl.EventType,
		&tmpl.CreatedAt, &tmpl.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("テンプレートの取得に失敗しました: %w", err)
	}
	return tmpl, nil
}

// List は全テンプレートを名前順で返す。
func (r *PostgresEventTemplateRepo) List(ctx context.Context) ([]*model.EventTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM event_templates ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("テンプレート一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var templates []*model.EventTemplate
	for rows.Next() {
		tmpl := &model.EventTemplate{}
		err := rows.Scan(
			&tmpl.ID, &tmpl.Name, &tmpl.TitleTemplate, &tmpl.DescriptionTemplate,
			&tmpl.DefaultDurationMinutes, &tmpl.DefaultLocation, &tmpl.EventType,
			&tmpl.CreatedAt, &tmpl.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("テンプレート行の読み取りに失敗しました: %w", err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("テンプレート一覧の走査に失敗しました: %w", err)
	}
	return templates, nil
}

// Create はテンプレートを作成する。
func (r *PostgresEventTemplateRepo) Create(ctx context.Context, tmpl *model.EventTemplate) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_templates (id, name, title_template, description_template,
			default_duration_minutes, default_location, event_type, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		tmpl.ID, tmpl.Name, tmpl.TitleTemplate, tmpl.DescriptionTemplate,
		tmpl.DefaultDurationMinutes, tmpl.DefaultLocation, tmpl.EventType,
		tmpl.CreatedAt, tmpl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("テンプレートの作成に失敗しました: %w", err)
	}
	return nil
}

// Update はテンプレートを上書き更新する。
func (r *PostgresEventTemplateRepo) Update(ctx context.Context, tmpl *model.EventTemplate) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE event_templates
		 SET name = $2, title_template = $3, description_template = $4,
			default_duration_minutes = $5, default_location = $6, event_type = $7,
			updated_at = NOW()
		 WHERE id = $1`,
		tmpl.ID, tmpl.Name, tmpl.TitleTemplate, tmpl.DescriptionTemplate,
		tmpl.DefaultDurationMinutes, tmpl.DefaultLocation, tmpl.EventType,
	)
	if err != nil {
		return fmt.Errorf("テンプレートの更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("テンプレートが見つかりません: %s", tmpl.ID)
	}
	return nil
}

// Delete は指定IDのテンプレートを削除する。
func (r *PostgresEventTemplateRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM event_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("テンプレートの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("テンプレートが見つかりません: %s", id)
	}
	return nil
}
