package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/recruitdesk/internal/model"
)

// PostgresDirectoryRepo はPostgreSQLを使用した参照読み取りリポジトリ。
// ユーザー・候補者・求人の取得のみを提供する（これらのCRUDは
// 本コアの対象外で、外部のバックオフィス機能が管理する）。
type PostgresDirectoryRepo struct {
	db *sql.DB
}

// NewPostgresDirectoryRepo はPostgresDirectoryRepoを生成する。
func NewPostgresDirectoryRepo(db *sql.DB) *PostgresDirectoryRepo {
	return &PostgresDirectoryRepo{db: db}
}

// FindUserByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresDirectoryRepo) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	var avatarURL sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, avatar_url, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &avatarURL, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	user.AvatarURL = avatarURL.String
	return user, nil
}

// FindCandidateByID は指定IDの候補者を取得する。見つからない場合はnilを返す。
func (r *PostgresDirectoryRepo) FindCandidateByID(ctx context.Context, id string) (*model.Candidate, error) {
	c := &model.Candidate{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, created_at FROM candidates WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("候補者の取得に失敗しました: %w", err)
	}
	return c, nil
}

// FindJobByID は指定IDの求人を取得する。見つからない場合はnilを返す。
func (r *PostgresDirectoryRepo) FindJobByID(ctx context.Context, id string) (*model.JobPosting, error) {
	j := &model.JobPosting{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, created_at FROM job_postings WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.Title, &j.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("求人の取得に失敗しました: %w", err)
	}
	return j, nil
}
