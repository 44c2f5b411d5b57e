// Package security はアプリケーションのセキュリティ機能を提供する。
//
// EventContentSanitizer はユーザーが入力するイベントのタイトル・説明を
// サニタイズし、保存データ経由のXSSからUIを保護する。
// bluemondayライブラリを使用した許可リストベースのポリシーで、
// タイトルは全タグ除去、説明は最小限の整形タグのみを通過させる。
package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// EventContentSanitizer はイベントコンテンツのサニタイズ機能のインターフェース。
// BookingServiceおよびテンプレートサービスが保存前に使用する。
type EventContentSanitizer interface {
	// SanitizeTitle はタイトルから全HTMLタグを除去したプレーンテキストを返す。
	SanitizeTitle(raw string) string
	// SanitizeDescription は説明から許可タグ（p, br, ul, ol, li,
	// strong, em, a）以外を除去する。scriptタグとon*イベント属性は
	// 許可リストに含まれないため常に除去される。
	// 同一入力に対して常に同一出力を返す（冪等）。
	SanitizeDescription(raw string) string
}

// eventContentSanitizer はEventContentSanitizerの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type eventContentSanitizer struct {
	titlePolicy       *bluemonday.Policy
	descriptionPolicy *bluemonday.Policy
}

// NewEventContentSanitizer はEventContentSanitizerの新しいインスタンスを生成する。
// タイトル用にはStrictPolicy（全タグ除去）、説明用には最小限の
// 整形タグのみを許可するカスタムポリシーを構築する。
func NewEventContentSanitizer() *eventContentSanitizer {
	desc := bluemonday.NewPolicy()
	desc.AllowElements("p", "br", "ul", "ol", "li", "strong", "em")

	// リンクはhref付きで許可し、別タブ + noopener を強制する
	desc.AllowAttrs("href").OnElements("a")
	desc.AllowStandardURLs()
	desc.AddTargetBlankToFullyQualifiedLinks(true)
	desc.RequireNoReferrerOnLinks(true)

	return &eventContentSanitizer{
		titlePolicy:       bluemonday.StrictPolicy(),
		descriptionPolicy: desc,
	}
}

// SanitizeTitle はタイトルから全HTMLタグを除去する。
func (s *eventContentSanitizer) SanitizeTitle(raw string) string {
	return s.titlePolicy.Sanitize(raw)
}

// SanitizeDescription は説明を許可リストポリシーでサニタイズする。
func (s *eventContentSanitizer) SanitizeDescription(raw string) string {
	return s.descriptionPolicy.Sanitize(raw)
}
