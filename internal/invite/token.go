package invite

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenSource は確認トークンの発行インターフェース。
// BookingServiceへ注入し、テストでは決定的な実装に差し替える。
type TokenSource interface {
	// NewToken は一意で推測不能な不透明トークン文字列を返す。
	NewToken() (string, error)
}

// RandomTokenSource はcrypto/randによるTokenSourceの実装。
type RandomTokenSource struct{}

// NewRandomTokenSource はRandomTokenSourceを生成する。
func NewRandomTokenSource() *RandomTokenSource {
	return &RandomTokenSource{}
}

// NewToken は128ビットの乱数を16進数文字列として返す。
func (s *RandomTokenSource) NewToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("トークンの生成に失敗しました: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
