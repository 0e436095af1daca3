// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizerService はユーザーが入力する自由テキスト
// （ジャーナルのメモ・トリガー・カレンダーのタイトル等）をサニタイズし、
// 保存型XSSからクライアントを保護する。
// bluemondayのStrictPolicyを使用し、HTMLタグは一切許可しない。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizerService はユーザー自由テキストのサニタイズ機能のインターフェースを定義する。
// 保存前のリクエストボディに対して使用される。
type TextSanitizerService interface {
	// Sanitize は自由テキストからHTMLタグを全て除去し、前後の空白を取り除く。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(text string) string

	// SanitizeAll はスライス内の各要素をサニタイズし、
	// サニタイズ後に空になった要素を除外した新しいスライスを返す。
	SanitizeAll(texts []string) []string
}

// textSanitizer はTextSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyは許可リストが空のポリシーで、全てのHTML要素と属性を除去する。
func NewTextSanitizer() *textSanitizer {
	return &textSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は自由テキストからHTMLタグを全て除去し、前後の空白を取り除く。
func (s *textSanitizer) Sanitize(text string) string {
	return strings.TrimSpace(s.policy.Sanitize(text))
}

// SanitizeAll はスライス内の各要素をサニタイズし、空要素を除外して返す。
func (s *textSanitizer) SanitizeAll(texts []string) []string {
	if texts == nil {
		return nil
	}
	result := make([]string, 0, len(texts))
	for _, t := range texts {
		cleaned := s.Sanitize(t)
		if cleaned != "" {
			result = append(result, cleaned)
		}
	}
	return result
}

// compile-time interface check
var _ TextSanitizerService = (*textSanitizer)(nil)
