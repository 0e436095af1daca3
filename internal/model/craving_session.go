// Package model はドメインモデルを定義する。
package model

import "time"

// NeedType はクレービング時にユーザーが求めるサポートの種別を表す。
type NeedType string

const (
	// NeedTypeDistract は気をそらしたい状態。
	NeedTypeDistract NeedType = "distract"
	// NeedTypeCalm は落ち着きたい状態。
	NeedTypeCalm NeedType = "calm"
	// NeedTypeSupport は誰かの支えが欲しい状態。
	NeedTypeSupport NeedType = "support"
	// NeedTypeEscape はその場から離れたい状態。
	NeedTypeEscape NeedType = "escape"
	// NeedTypeReflect は振り返りたい状態。
	NeedTypeReflect NeedType = "reflect"
)

// IsValidNeedType はニードタイプが定義済みの列挙値かを判定する。
func IsValidNeedType(n NeedType) bool {
	switch n {
	case NeedTypeDistract, NeedTypeCalm, NeedTypeSupport, NeedTypeEscape, NeedTypeReflect:
		return true
	}
	return false
}

// CravingSession はクレービングエピソード1回分を表す。
// エピソード開始時に作成され、完了時刻の設定以外は不変。
type CravingSession struct {
	ID          string
	UserID      string
	StartedAt   time.Time
	CompletedAt *time.Time // 未完了の場合はnil
	Triggers    []string
	Intensity   int // 1-10
	NeedType    NeedType
}
