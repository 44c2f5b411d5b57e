// Package model はドメインモデルを定義する。
package model

import "time"

// User は採用チームのメンバー（面接官・リクルーター）を表す。
// 認証・セッション管理は本コアの対象外で、出席者・作成者の
// 参照先としてのみ使用する。
type User struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
	CreatedAt time.Time
}

// Candidate は選考中の候補者を表す。
type Candidate struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}

// FullName は候補者の表示用フルネームを返す。
func (c *Candidate) FullName() string {
	return c.FirstName + " " + c.LastName
}

// JobPosting は求人票を表す。イベントから任意参照される。
type JobPosting struct {
	ID        string
	Title     string
	CreatedAt time.Time
}
