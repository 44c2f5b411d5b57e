// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, notfound, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation       = "VALIDATION_FAILED"
	ErrCodeEventNotFound    = "EVENT_NOT_FOUND"
	ErrCodeTokenNotFound    = "TOKEN_NOT_FOUND"
	ErrCodeTemplateNotFound = "TEMPLATE_NOT_FOUND"
	ErrCodeInvalidEventType = "INVALID_EVENT_TYPE"
	ErrCodePersistence      = "PERSISTENCE_FAILED"
)

// NewValidationError は必須項目の欠落・不正値エラーを生成する。
// fieldには問題のあったリクエストフィールド名を指定する。
func NewValidationError(field, message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  fmt.Sprintf("%s: %s", field, message),
		Category: "validation",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewEventNotFoundError はイベント未検出エラーを生成する。
func NewEventNotFoundError(eventID string) *APIError {
	return &APIError{
		Code:     ErrCodeEventNotFound,
		Message:  fmt.Sprintf("指定されたイベントが見つかりません: %s", eventID),
		Category: "notfound",
		Action:   "イベントIDを確認してください。",
	}
}

// NewTokenNotFoundError は確認トークン未検出エラーを生成する。
// トークン値そのものはログ・レスポンスに含めない。
func NewTokenNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenNotFound,
		Message:  "確認トークンに対応するイベントが見つかりません。",
		Category: "notfound",
		Action:   "招待メールに記載されたリンクを確認してください。",
	}
}

// NewTemplateNotFoundError はイベントテンプレート未検出エラーを生成する。
func NewTemplateNotFoundError(templateID string) *APIError {
	return &APIError{
		Code:     ErrCodeTemplateNotFound,
		Message:  fmt.Sprintf("指定されたテンプレートが見つかりません: %s", templateID),
		Category: "notfound",
		Action:   "テンプレートIDを確認してください。",
	}
}

// NewInvalidEventTypeError は未知のイベント種別エラーを生成する。
func NewInvalidEventTypeError(value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidEventType,
		Message:  fmt.Sprintf("無効なイベント種別です: %s", value),
		Category: "validation",
		Action:   "イベント種別には interview、screening、team_sync、blocked のいずれかを指定してください。",
	}
}

// NewPersistenceError はストア障害エラーを生成する。
// 詳細はログにのみ記録し、ユーザーには一般的なメッセージを返す。
func NewPersistenceError() *APIError {
	return &APIError{
		Code:     ErrCodePersistence,
		Message:  "データの保存に失敗しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
