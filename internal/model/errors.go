// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// CategoryはHTTPステータスへのマッピングに使用する。
type APIError struct {
	Code     string // エラーコード
	Message  string // クライアントに返すメッセージ
	Category string // カテゴリ: validation, not_found, forbidden, auth, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// エラーカテゴリ
const (
	CategoryValidation = "validation"
	CategoryNotFound   = "not_found"
	CategoryForbidden  = "forbidden"
	CategoryAuth       = "auth"
	CategorySystem     = "system"
)

// 定義済みエラーコード
const (
	ErrCodeInvalidRequest          = "INVALID_REQUEST"
	ErrCodeNothingToUpdate         = "NOTHING_TO_UPDATE"
	ErrCodeInvalidDate             = "INVALID_DATE"
	ErrCodeInvalidTime             = "INVALID_TIME"
	ErrCodeInvalidMonth            = "INVALID_MONTH"
	ErrCodeInvalidDuration         = "INVALID_DURATION"
	ErrCodeInvalidReminder         = "INVALID_REMINDER"
	ErrCodeInvalidOutcome          = "INVALID_OUTCOME"
	ErrCodeInvalidIntensity        = "INVALID_INTENSITY"
	ErrCodeInvalidNeedType         = "INVALID_NEED_TYPE"
	ErrCodeInvalidPassword         = "INVALID_PASSWORD"
	ErrCodeWrongPassword           = "WRONG_PASSWORD"
	ErrCodeSobrietyDateInFuture    = "SOBRIETY_DATE_IN_FUTURE"
	ErrCodeSessionAlreadyCompleted = "SESSION_ALREADY_COMPLETED"
	ErrCodeEmailAlreadyRegistered  = "EMAIL_ALREADY_REGISTERED"
	ErrCodeInvalidCredentials      = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized            = "UNAUTHORIZED"
	ErrCodeForbidden               = "FORBIDDEN"
	ErrCodeToolNotFound            = "TOOL_NOT_FOUND"
	ErrCodeCravingSessionNotFound  = "CRAVING_SESSION_NOT_FOUND"
	ErrCodeJournalEntryNotFound    = "JOURNAL_ENTRY_NOT_FOUND"
	ErrCodeCalendarEventNotFound   = "CALENDAR_EVENT_NOT_FOUND"
	ErrCodeUserNotFound            = "USER_NOT_FOUND"
)

// NewValidationError は汎用のバリデーションエラーを生成する。
func NewValidationError(code, message string) *APIError {
	return &APIError{Code: code, Message: message, Category: CategoryValidation}
}

// NewNothingToUpdateError は更新フィールドが1つも指定されていない場合のエラーを生成する。
func NewNothingToUpdateError() *APIError {
	return &APIError{
		Code:     ErrCodeNothingToUpdate,
		Message:  "nothing to update",
		Category: CategoryValidation,
	}
}

// NewInvalidDateError は日付形式エラーを生成する。
func NewInvalidDateError(date string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDate,
		Message:  fmt.Sprintf("invalid date format: %q (expected YYYY-MM-DD)", date),
		Category: CategoryValidation,
	}
}

// NewInvalidTimeError は時刻形式エラーを生成する。
func NewInvalidTimeError(t string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidTime,
		Message:  fmt.Sprintf("invalid time format: %q (expected HH:MM)", t),
		Category: CategoryValidation,
	}
}

// NewInvalidMonthError は月トークン形式エラーを生成する。
func NewInvalidMonthError(month string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidMonth,
		Message:  fmt.Sprintf("invalid month format: %q (expected YYYY-MM)", month),
		Category: CategoryValidation,
	}
}

// NewInvalidOutcomeError はアウトカム列挙値エラーを生成する。
func NewInvalidOutcomeError(outcome string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidOutcome,
		Message:  fmt.Sprintf("invalid outcome: %q (expected resisted, partial, or used)", outcome),
		Category: CategoryValidation,
	}
}

// NewInvalidIntensityError は強度範囲エラーを生成する。
func NewInvalidIntensityError(intensity int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidIntensity,
		Message:  fmt.Sprintf("invalid intensity: %d (expected 1-10)", intensity),
		Category: CategoryValidation,
	}
}

// NewInvalidNeedTypeError はニードタイプ列挙値エラーを生成する。
func NewInvalidNeedTypeError(needType string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidNeedType,
		Message:  fmt.Sprintf("invalid need_type: %q (expected distract, calm, support, escape, or reflect)", needType),
		Category: CategoryValidation,
	}
}

// NewInvalidPasswordError はパスワードポリシー違反エラーを生成する。
func NewInvalidPasswordError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPassword,
		Message:  fmt.Sprintf("invalid password: %s", reason),
		Category: CategoryValidation,
	}
}

// NewWrongPasswordError は現在のパスワード不一致エラーを生成する。
func NewWrongPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeWrongPassword,
		Message:  "current password is incorrect",
		Category: CategoryValidation,
	}
}

// NewSobrietyDateInFutureError は断酒開始日が未来日の場合のエラーを生成する。
func NewSobrietyDateInFutureError() *APIError {
	return &APIError{
		Code:     ErrCodeSobrietyDateInFuture,
		Message:  "sobriety_date must not be in the future",
		Category: CategoryValidation,
	}
}

// NewSessionAlreadyCompletedError は完了済みセッションの再完了エラーを生成する。
func NewSessionAlreadyCompletedError(sessionID string) *APIError {
	return &APIError{
		Code:     ErrCodeSessionAlreadyCompleted,
		Message:  fmt.Sprintf("craving session already completed: %s", sessionID),
		Category: CategoryValidation,
	}
}

// NewEmailAlreadyRegisteredError はメールアドレス重複エラーを生成する。
func NewEmailAlreadyRegisteredError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailAlreadyRegistered,
		Message:  "email is already registered",
		Category: CategoryValidation,
	}
}

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// メールアドレス未登録とパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "invalid email or password",
		Category: CategoryAuth,
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "authentication required",
		Category: CategoryAuth,
	}
}

// NewForbiddenError は所有者チェック違反エラーを生成する。
// エンティティは存在するが呼び出し元が所有者でない場合に返す。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "you do not have permission to modify this resource",
		Category: CategoryForbidden,
	}
}

// NewToolNotFoundError はコーピングツール未検出エラーを生成する。
func NewToolNotFoundError(toolID string) *APIError {
	return &APIError{
		Code:     ErrCodeToolNotFound,
		Message:  fmt.Sprintf("coping tool not found: %s", toolID),
		Category: CategoryNotFound,
	}
}

// NewCravingSessionNotFoundError はクレービングセッション未検出エラーを生成する。
func NewCravingSessionNotFoundError(sessionID string) *APIError {
	return &APIError{
		Code:     ErrCodeCravingSessionNotFound,
		Message:  fmt.Sprintf("craving session not found: %s", sessionID),
		Category: CategoryNotFound,
	}
}

// NewJournalEntryNotFoundError はジャーナルエントリ未検出エラーを生成する。
func NewJournalEntryNotFoundError(entryID string) *APIError {
	return &APIError{
		Code:     ErrCodeJournalEntryNotFound,
		Message:  fmt.Sprintf("journal entry not found: %s", entryID),
		Category: CategoryNotFound,
	}
}

// NewCalendarEventNotFoundError はカレンダーイベント未検出エラーを生成する。
func NewCalendarEventNotFoundError(eventID string) *APIError {
	return &APIError{
		Code:     ErrCodeCalendarEventNotFound,
		Message:  fmt.Sprintf("calendar event not found: %s", eventID),
		Category: CategoryNotFound,
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "user not found",
		Category: CategoryNotFound,
	}
}
