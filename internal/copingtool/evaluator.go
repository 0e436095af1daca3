// Package copingtool はコーピングツールカタログと完了記録のドメインロジックを提供する。
package copingtool

import (
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// MandatorySatisfied は必須ツールがすべて完了しているかを判定する純粋関数。
// 必須サブセットが空の場合は常にfalseを返す。
// 同一ツールの重複完了は冪等に扱う。
func MandatorySatisfied(tools []*model.CopingTool, completions []*model.CopingToolCompletion) bool {
	completed, total := MandatoryProgress(tools, completions)
	return total > 0 && completed == total
}

// MandatoryProgress は必須ツールの完了数と必須ツール総数を返す。
// completedはcompletionsに1件以上現れる必須ツールの個数で、重複は数えない。
func MandatoryProgress(tools []*model.CopingTool, completions []*model.CopingToolCompletion) (completed, total int) {
	completedToolIDs := make(map[string]bool, len(completions))
	for _, c := range completions {
		completedToolIDs[c.ToolID] = true
	}

	for _, tool := range tools {
		if !tool.IsMandatory {
			continue
		}
		total++
		if completedToolIDs[tool.ID] {
			completed++
		}
	}
	return completed, total
}
