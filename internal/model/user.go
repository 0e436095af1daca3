// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashはbcryptハッシュでありAPIレスポンスには含めない。
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	SobrietyDate *time.Time // 断酒開始日（未設定の場合はnil）
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session はユーザーのログインセッションを表す。
// IDはAuthorization: Bearerヘッダーで提示される不透明トークン。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
