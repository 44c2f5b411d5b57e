// Package invite は招待コンテンツの生成を提供する。
// テンプレート文字列のプレースホルダ置換、カレンダー招待（ICS）
// アーティファクトの構築、確認トークンの発行を担う。
package invite

import "strings"

// OrganizationName は [ORGANIZATION_NAME] トークンの置換に使う固定値。
// コンテキストの有無に関わらず常に置換される。
const OrganizationName = "RecruitDesk"

// 認識するプレースホルダトークン。角括弧付きの未知のトークンは
// そのまま通過させる。
const (
	TokenCandidateFirstName = "[CANDIDATE_FIRST_NAME]"
	TokenCandidateLastName  = "[CANDIDATE_LAST_NAME]"
	TokenCandidateFullName  = "[CANDIDATE_FULL_NAME]"
	TokenSenderName         = "[SENDER_NAME]"
	TokenSenderEmail        = "[SENDER_EMAIL]"
	TokenJobTitle           = "[JOB_TITLE]"
	TokenOrganizationName   = "[ORGANIZATION_NAME]"
)

// CandidateContext は候補者グループのプレースホルダ値。
type CandidateContext struct {
	FirstName string
	LastName  string
}

// SenderContext は送信者グループのプレースホルダ値。
type SenderContext struct {
	Name  string
	Email string
}

// JobContext は求人グループのプレースホルダ値。
type JobContext struct {
	Title string
}

// RenderContext はRenderに渡す置換コンテキスト。
// 各グループは任意で、nilのグループに対応するトークンは
// 置換されずにそのまま残る（エラーにも空置換にもしない）。
type RenderContext struct {
	Candidate *CandidateContext
	Sender    *SenderContext
	Job       *JobContext
}

// Render はテンプレート内の認識済みトークンをコンテキスト値で置換する。
// 対応グループが存在するトークンは全出現箇所を置換し、存在しない
// グループのトークンは手を付けない。組織名トークンは常に置換する。
// この関数は全域的でエラーを返さない。置換後の値自体がトークン様の
// テキストを含む場合の再帰置換は保証しない（仕様上許容）。
func Render(template string, ctx RenderContext) string {
	out := template

	if ctx.Candidate != nil {
		out = strings.ReplaceAll(out, TokenCandidateFirstName, ctx.Candidate.FirstName)
		out = strings.ReplaceAll(out, TokenCandidateLastName, ctx.Candidate.LastName)
		out = strings.ReplaceAll(out, TokenCandidateFullName, ctx.Candidate.FirstName+" "+ctx.Candidate.LastName)
	}
	if ctx.Sender != nil {
		out = strings.ReplaceAll(out, TokenSenderName, ctx.Sender.Name)
		out = strings.ReplaceAll(out, TokenSenderEmail, ctx.Sender.Email)
	}
	if ctx.Job != nil {
		out = strings.ReplaceAll(out, TokenJobTitle, ctx.Job.Title)
	}

	out = strings.ReplaceAll(out, TokenOrganizationName, OrganizationName)

	return out
}
