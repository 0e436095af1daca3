// Package model はドメインモデルを定義する。
package model

import "time"

// Outcome はジャーナルエントリの結果を表す。
type Outcome string

const (
	// OutcomeResisted は衝動をやり過ごせた結果。
	OutcomeResisted Outcome = "resisted"
	// OutcomePartial は部分的にやり過ごせた結果。
	OutcomePartial Outcome = "partial"
	// OutcomeUsed は使用に至った結果。
	OutcomeUsed Outcome = "used"
)

// IsValidOutcome はアウトカムが定義済みの列挙値かを判定する。
func IsValidOutcome(o Outcome) bool {
	switch o {
	case OutcomeResisted, OutcomePartial, OutcomeUsed:
		return true
	}
	return false
}

// JournalEntry はジャーナルエントリを表す。
// 手動入力と自動生成（必須ツール全完了時）の2つの作成経路がある。
// ToolsUsedはツールタイトルの自由テキストであり外部キーではない。
type JournalEntry struct {
	ID            string
	UserID        string
	CreatedAt     time.Time
	HadCraving    bool
	Triggers      []string
	Intensity     *int // 1-10（任意）
	ToolsUsed     []string
	Outcome       Outcome
	Notes         *string
	AutoGenerated bool // 自動ジャーナルトリガーによる生成かどうか
}
