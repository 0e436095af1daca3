// Package model はドメインモデルを定義する。
package model

import "time"

// CopingTool はコーピングツール（対処法エクササイズ）を表す。
// カタログはマイグレーションでシードされ、エンドユーザーによる変更はない。
// IsMandatoryフラグはサーバー側が唯一の情報源となる。
type CopingTool struct {
	ID            string
	Title         string
	DurationLabel string   // 所要時間の表示ラベル（例: "5 min"）
	Steps         []string // 手順（順序付き）
	WhenToUse     string   // 使いどころの表示ラベル
	IsMandatory   bool
	Position      int // カタログ内の表示順
	CreatedAt     time.Time
}

// CopingToolCompletion はツール完了の台帳レコードを表す。
// 追記のみで、更新・削除するAPIは存在しない。
// 同一ユーザーが同一ツールを複数回完了することは許容される（一意制約なし）。
type CopingToolCompletion struct {
	ID          string
	UserID      string
	ToolID      string
	SessionID   *string // 紐づくクレービングセッション（任意）
	CompletedAt time.Time
}
